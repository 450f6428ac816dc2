package protocol

import "natak/internal/game"

// ==================== Lobby Payloads ====================

// CreateGamePayload is sent to create a new game. A nil seed picks one.
type CreateGamePayload struct {
	PlayerCount int    `json:"player_count"`
	Seed        *int64 `json:"seed,omitempty"`
}

// GameCreatedPayload is the response when a game is created.
type GameCreatedPayload struct {
	GameID    string              `json:"game_id"`
	Seed      int64               `json:"seed"`
	TurnOrder []game.PlayerColour `json:"turn_order"`
}

// GameStatePayload carries a full game view.
type GameStatePayload struct {
	Game game.View `json:"game"`
}

// ==================== Building Payloads ====================

// PointPayload names one house or tile point.
type PointPayload struct {
	Point game.Point `json:"point"`
}

// RoadPayload names the two endpoints of a road.
type RoadPayload struct {
	From game.Point `json:"from"`
	To   game.Point `json:"to"`
}

// RoamingRoadsPayload places both roaming roads at once.
type RoamingRoadsPayload struct {
	First  RoadPayload `json:"first"`
	Second RoadPayload `json:"second"`
}

// ==================== Thief Payloads ====================

// DiscardResourcesPayload discards a player's owed cards after a seven.
type DiscardResourcesPayload struct {
	Colour    game.PlayerColour         `json:"colour"`
	Resources map[game.ResourceType]int `json:"resources"`
}

// StealResourcePayload names the player to steal from.
type StealResourcePayload struct {
	Victim game.PlayerColour `json:"victim"`
}

// ==================== Growth Card Payloads ====================

// GathererCardPayload names the resource collected by a gatherer card.
type GathererCardPayload struct {
	Resource game.ResourceType `json:"resource"`
}

// WealthCardPayload names the two resources taken by a wealth card.
type WealthCardPayload struct {
	First  game.ResourceType `json:"first"`
	Second game.ResourceType `json:"second"`
}

// ==================== Trade Payloads ====================

// BankTradePayload trades with the bank. Without a port the best ratio
// is used.
type BankTradePayload struct {
	Give game.ResourceType `json:"give"`
	Want game.ResourceType `json:"want"`
	Port *game.PortType    `json:"port,omitempty"`
}

// TradeOfferPayload opens an offer to the table.
type TradeOfferPayload struct {
	Offer   map[game.ResourceType]int `json:"offer"`
	Request map[game.ResourceType]int `json:"request"`
}

// RespondTradePayload accepts or rejects the active offer.
type RespondTradePayload struct {
	Colour game.PlayerColour `json:"colour"`
	Accept bool              `json:"accept"`
}

// EmbargoPayload places or lifts an embargo.
type EmbargoPayload struct {
	Colour game.PlayerColour `json:"colour"`
	Target game.PlayerColour `json:"target"`
	Remove bool              `json:"remove,omitempty"`
}

// ==================== Result Payloads ====================

// ActionResultPayload reports the outcome of an accepted action.
type ActionResultPayload struct {
	State    game.GameState       `json:"state"`
	Player   game.PlayerColour    `json:"player"`
	Roll     *game.RolledDice     `json:"roll,omitempty"`
	Resource *game.ResourceType   `json:"resource,omitempty"`
	Card     *game.GrowthCardType `json:"card,omitempty"`
	Ratio    int                  `json:"ratio,omitempty"`
	Count    int                  `json:"count,omitempty"`
	Winner   game.PlayerColour    `json:"winner,omitempty"`
}
