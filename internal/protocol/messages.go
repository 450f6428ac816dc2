// Package protocol defines the action messages applied to games. Accepted
// messages are stored in order, so a game can be rebuilt from its seed and
// its message log.
package protocol

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"natak/internal/game"
)

// MessageType identifies the type of message.
type MessageType string

// Lobby message types
const (
	TypeCreateGame  MessageType = "create_game"
	TypeGameCreated MessageType = "game_created"
	TypeGetGame     MessageType = "get_game"
	TypeGameState   MessageType = "game_state"
)

// Action message types
const (
	TypePlaceVillage      MessageType = "place_village"
	TypePlaceRoad         MessageType = "place_road"
	TypePlaceRoamingRoads MessageType = "place_roaming_roads"
	TypePlaceTown         MessageType = "place_town"
	TypeRollDice          MessageType = "roll_dice"
	TypeDiscardResources  MessageType = "discard_resources"
	TypeMoveThief         MessageType = "move_thief"
	TypeStealResource     MessageType = "steal_resource"
	TypePlaySoldierCard   MessageType = "play_soldier_card"
	TypePlayRoamingCard   MessageType = "play_roaming_card"
	TypePlayGathererCard  MessageType = "play_gatherer_card"
	TypePlayWealthCard    MessageType = "play_wealth_card"
	TypeFinishRoaming     MessageType = "finish_roaming"
	TypeBuyGrowthCard     MessageType = "buy_growth_card"
	TypeTradeWithBank     MessageType = "trade_with_bank"
	TypeMakeTradeOffer    MessageType = "make_trade_offer"
	TypeRespondTradeOffer MessageType = "respond_trade_offer"
	TypeEmbargoPlayer     MessageType = "embargo_player"
	TypeEndTurn           MessageType = "end_turn"
)

// Result message types
const (
	TypeActionResult MessageType = "action_result"
	TypeError        MessageType = "error"
)

// ActionTypes lists every message type that changes a game.
func ActionTypes() []MessageType {
	return []MessageType{
		TypePlaceVillage,
		TypePlaceRoad,
		TypePlaceRoamingRoads,
		TypePlaceTown,
		TypeRollDice,
		TypeDiscardResources,
		TypeMoveThief,
		TypeStealResource,
		TypePlaySoldierCard,
		TypePlayRoamingCard,
		TypePlayGathererCard,
		TypePlayWealthCard,
		TypeFinishRoaming,
		TypeBuyGrowthCard,
		TypeTradeWithBank,
		TypeMakeTradeOffer,
		TypeRespondTradeOffer,
		TypeEmbargoPlayer,
		TypeEndTurn,
	}
}

// IsAction reports whether t changes a game.
func (t MessageType) IsAction() bool {
	for _, a := range ActionTypes() {
		if a == t {
			return true
		}
	}
	return false
}

// Message is the envelope for all messages.
type Message struct {
	Type      MessageType     `json:"type"`
	ID        string          `json:"id"`
	GameID    string          `json:"game_id,omitempty"`
	Timestamp int64           `json:"timestamp"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// NewMessage creates a new message with the given type and payload. A nil
// payload leaves the payload empty.
func NewMessage(msgType MessageType, payload any) (*Message, error) {
	msg := &Message{
		Type:      msgType,
		ID:        uuid.New().String(),
		Timestamp: time.Now().UnixMilli(),
	}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		msg.Payload = data
	}
	return msg, nil
}

// NewGameMessage creates a message addressed to a game.
func NewGameMessage(gameID string, msgType MessageType, payload any) (*Message, error) {
	msg, err := NewMessage(msgType, payload)
	if err != nil {
		return nil, err
	}
	msg.GameID = gameID
	return msg, nil
}

// ParsePayload unmarshals the payload into the given type.
func (m *Message) ParsePayload(v any) error {
	if len(m.Payload) == 0 {
		return ErrMissingPayload
	}
	return json.Unmarshal(m.Payload, v)
}

// ErrMissingPayload is returned when a message needs a payload and has none.
var ErrMissingPayload = errors.New("message has no payload")

// ErrorCode represents an error type. Rule failures use the game's error
// kinds as codes.
type ErrorCode string

const (
	ErrCodeUnknownMessage ErrorCode = "unknown_message"
	ErrCodeBadPayload     ErrorCode = "bad_payload"
	ErrCodeInternalError  ErrorCode = "internal_error"
)

// ErrorPayload is the payload for error messages.
type ErrorPayload struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// ErrUnknownMessage is returned for message types with no handler.
var ErrUnknownMessage = errors.New("unknown message type")

// NewErrorPayload classifies err.
func NewErrorPayload(err error) ErrorPayload {
	code := ErrCodeInternalError
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case game.KindOf(err) != "":
		code = ErrorCode(game.KindOf(err))
	case errors.Is(err, ErrUnknownMessage):
		code = ErrCodeUnknownMessage
	case errors.Is(err, ErrMissingPayload), errors.As(err, &syntaxErr), errors.As(err, &typeErr):
		code = ErrCodeBadPayload
	}
	return ErrorPayload{Code: code, Message: err.Error()}
}
