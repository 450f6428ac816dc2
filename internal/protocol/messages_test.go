package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"natak/internal/game"
)

func TestNewErrorPayloadCodes(t *testing.T) {
	var syntaxErr error
	if err := json.Unmarshal([]byte("{"), &struct{}{}); err != nil {
		syntaxErr = err
	}

	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"game error", game.ErrInvalidGamePhase, ErrorCode(game.KindInvalidGamePhase)},
		{"wrapped game error", fmt.Errorf("roll: %w", game.ErrRoadIsBlocked), ErrorCode(game.KindRoadIsBlocked)},
		{"unknown type", fmt.Errorf("%w: dance", ErrUnknownMessage), ErrCodeUnknownMessage},
		{"missing payload", ErrMissingPayload, ErrCodeBadPayload},
		{"syntax", syntaxErr, ErrCodeBadPayload},
		{"other", errors.New("disk on fire"), ErrCodeInternalError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewErrorPayload(tt.err)
			if p.Code != tt.want {
				t.Errorf("code = %q, want %q", p.Code, tt.want)
			}
			if p.Message != tt.err.Error() {
				t.Errorf("message = %q", p.Message)
			}
		})
	}
}

func TestIsAction(t *testing.T) {
	for _, a := range ActionTypes() {
		if !a.IsAction() {
			t.Errorf("%s is not an action", a)
		}
	}
	for _, m := range []MessageType{TypeCreateGame, TypeGetGame, TypeError, TypeActionResult} {
		if m.IsAction() {
			t.Errorf("%s counted as an action", m)
		}
	}
}

func TestMessagePayload(t *testing.T) {
	msg, err := NewGameMessage("g1", TypePlaceRoad, RoadPayload{From: game.NewPoint(2, 0), To: game.NewPoint(3, 0)})
	if err != nil {
		t.Fatalf("NewGameMessage: %v", err)
	}
	if msg.GameID != "g1" || msg.ID == "" {
		t.Errorf("envelope = %+v", msg)
	}
	var road RoadPayload
	if err := msg.ParsePayload(&road); err != nil {
		t.Fatalf("ParsePayload: %v", err)
	}
	if road.From != game.NewPoint(2, 0) || road.To != game.NewPoint(3, 0) {
		t.Errorf("road = %+v", road)
	}

	empty, err := NewGameMessage("g1", TypeEndTurn, nil)
	if err != nil {
		t.Fatalf("NewGameMessage: %v", err)
	}
	if err := empty.ParsePayload(&road); !errors.Is(err, ErrMissingPayload) {
		t.Errorf("empty payload: got %v", err)
	}
}

func TestResourceKeysUseNames(t *testing.T) {
	p := DiscardResourcesPayload{
		Colour:    game.ColourRed,
		Resources: map[game.ResourceType]int{game.ResourceWood: 2},
	}
	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"colour":"red","resources":{"wood":2}}`
	if string(data) != want {
		t.Errorf("json = %s, want %s", data, want)
	}
}
