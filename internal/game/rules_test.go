package game

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"natak/internal/config"
)

func TestDefaultRules(t *testing.T) {
	r := DefaultRules()
	if err := r.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if r.Pieces[PieceRoad] != 15 || r.Pieces[PieceVillage] != 5 || r.Pieces[PieceTown] != 4 {
		t.Errorf("pieces = %v", r.Pieces)
	}
	if r.TownCost[ResourceMetal] != 3 || r.TownCost[ResourceFood] != 2 {
		t.Errorf("town cost = %v", r.TownCost)
	}
	deck := 0
	for _, n := range r.GrowthDeck {
		deck += n
	}
	if deck != 25 {
		t.Errorf("growth deck = %d cards", deck)
	}
}

func TestRulesFromConfigErrors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *config.Rules)
	}{
		{"too few tiles", func(c *config.Rules) { c.Tiles = map[string]int{"none": 1, "wood": 4} }},
		{"two deserts", func(c *config.Rules) { c.Tiles["none"] = 2; c.Tiles["wood"] = 3 }},
		{"activation seven", func(c *config.Rules) { c.ActivationNumbers[0] = 7 }},
		{"missing activation number", func(c *config.Rules) { c.ActivationNumbers = c.ActivationNumbers[1:] }},
		{"bad piece", func(c *config.Rules) { c.Pieces["castle"] = 1 }},
		{"bad growth card", func(c *config.Rules) { c.GrowthDeck["dragon"] = 1 }},
		{"no points to win", func(c *config.Rules) { c.PointsToWin = 0 }},
		{"player range", func(c *config.Rules) { c.MaxPlayers = 6 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := config.DefaultRules()
			tt.modify(&c)
			if _, err := RulesFromConfig(c); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestRulesFromConfigResourceNames(t *testing.T) {
	c := config.DefaultRules()
	c.Costs["road"] = map[string]int{"gold": 1}
	if _, err := RulesFromConfig(c); !errors.Is(err, ErrInvalidResourceType) {
		t.Errorf("unknown resource: got %v", err)
	}

	c = config.DefaultRules()
	c.Costs["road"] = map[string]int{"desert": 1}
	if _, err := RulesFromConfig(c); !errors.Is(err, ErrInvalidResourceType) {
		t.Errorf("desert in a cost: got %v", err)
	}

	c = config.DefaultRules()
	c.Costs["road"] = map[string]int{"brick": 1, "wood": 1}
	r, err := RulesFromConfig(c)
	if err != nil {
		t.Fatalf("RulesFromConfig: %v", err)
	}
	if r.RoadCost[ResourceClay] != 1 {
		t.Errorf("road cost = %v", r.RoadCost)
	}
}

func TestRulesJSONRoundTrip(t *testing.T) {
	r := DefaultRules()
	r.PointsToWin = 12
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var got Rules
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !reflect.DeepEqual(got, r) {
		t.Errorf("round trip changed the rules:\n got %+v\nwant %+v", got, r)
	}
}
