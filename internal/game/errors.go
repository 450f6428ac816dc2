package game

import (
	"errors"
	"fmt"
)

// ErrorKind is the stable code of an expected rule failure. The request
// layer maps kinds to transport status codes.
type ErrorKind string

const (
	KindInvalidPlayerCount      ErrorKind = "invalid_player_count"
	KindInvalidPlayerColour     ErrorKind = "invalid_player_colour"
	KindGameNotFound            ErrorKind = "game_not_found"
	KindInvalidGamePhase        ErrorKind = "invalid_game_phase"
	KindInvalidBuildLocation    ErrorKind = "invalid_build_location"
	KindInvalidRoadPoints       ErrorKind = "invalid_road_points"
	KindRoadAlreadyExists       ErrorKind = "road_already_exists"
	KindRoadIsBlocked           ErrorKind = "road_is_blocked"
	KindRoadDoesNotConnect      ErrorKind = "road_does_not_connect"
	KindVillageAlreadyExists    ErrorKind = "village_already_exists"
	KindVillageIsTooClose       ErrorKind = "village_is_too_close"
	KindVillageDoesNotConnect   ErrorKind = "village_does_not_connect"
	KindVillageNotOwnedByPlayer ErrorKind = "village_not_owned_by_player"
	KindVillageAlreadyUpgraded  ErrorKind = "village_already_upgraded"
	KindInsufficientResources   ErrorKind = "insufficient_resources"
	KindMissingResources        ErrorKind = "missing_resources"
	KindDoesNotOwnPort          ErrorKind = "does_not_own_port"
	KindNoPiecesRemaining       ErrorKind = "no_pieces_remaining"
	KindGrowthCardAlreadyPlayed ErrorKind = "growth_card_already_played"
	KindNoGrowthCard            ErrorKind = "no_growth_card"
	KindIncorrectDiscardCount   ErrorKind = "incorrect_discard_count"
	KindCannotStealFromSelf     ErrorKind = "cannot_steal_from_self"
	KindInvalidStealTarget      ErrorKind = "invalid_steal_target"
	KindInvalidThiefLocation    ErrorKind = "invalid_thief_location"
	KindCannotEmbargoSelf       ErrorKind = "cannot_embargo_self"
	KindAlreadyEmbargoed        ErrorKind = "already_embargoed"
	KindNotEmbargoed            ErrorKind = "not_embargoed"
	KindPlayerEmbargoed         ErrorKind = "player_embargoed"
	KindTradeOfferNotActive     ErrorKind = "trade_offer_not_active"
	KindAlreadyRejectedTrade    ErrorKind = "already_rejected_trade"
	KindCannotTradeWithSelf     ErrorKind = "cannot_trade_with_self"
	KindInvalidTrade            ErrorKind = "invalid_trade"
	KindInvalidResourceType     ErrorKind = "invalid_resource_type"
	KindPlayerNotFound          ErrorKind = "player_not_found"
)

// Error is a recoverable rule failure. Two errors are equal under errors.Is
// when their kinds match, so wrapped errors with extra detail still compare
// equal to the sentinels below.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func newError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Game errors
var (
	ErrInvalidPlayerCount      = newError(KindInvalidPlayerCount, "invalid player count")
	ErrInvalidPlayerColour     = newError(KindInvalidPlayerColour, "invalid player colour")
	ErrGameNotFound            = newError(KindGameNotFound, "game not found")
	ErrInvalidGamePhase        = newError(KindInvalidGamePhase, "invalid action for current phase")
	ErrInvalidBuildLocation    = newError(KindInvalidBuildLocation, "invalid build location")
	ErrInvalidRoadPoints       = newError(KindInvalidRoadPoints, "invalid road points")
	ErrRoadAlreadyExists       = newError(KindRoadAlreadyExists, "road already exists")
	ErrRoadIsBlocked           = newError(KindRoadIsBlocked, "road is blocked by another player's village")
	ErrRoadDoesNotConnect      = newError(KindRoadDoesNotConnect, "road does not connect to the player's network")
	ErrVillageAlreadyExists    = newError(KindVillageAlreadyExists, "village already exists")
	ErrVillageIsTooClose       = newError(KindVillageIsTooClose, "village is too close to another village")
	ErrVillageDoesNotConnect   = newError(KindVillageDoesNotConnect, "village does not connect to the player's roads")
	ErrVillageNotOwnedByPlayer = newError(KindVillageNotOwnedByPlayer, "village not owned by player")
	ErrVillageAlreadyUpgraded  = newError(KindVillageAlreadyUpgraded, "village already upgraded")
	ErrInsufficientResources   = newError(KindInsufficientResources, "insufficient resources")
	ErrMissingResources        = newError(KindMissingResources, "bank is missing resources")
	ErrDoesNotOwnPort          = newError(KindDoesNotOwnPort, "player does not own port")
	ErrNoPiecesRemaining       = newError(KindNoPiecesRemaining, "no pieces remaining")
	ErrGrowthCardAlreadyPlayed = newError(KindGrowthCardAlreadyPlayed, "growth card already played this turn")
	ErrNoGrowthCard            = newError(KindNoGrowthCard, "no playable growth card")
	ErrIncorrectDiscardCount   = newError(KindIncorrectDiscardCount, "incorrect discard count")
	ErrCannotStealFromSelf     = newError(KindCannotStealFromSelf, "cannot steal from self")
	ErrInvalidStealTarget      = newError(KindInvalidStealTarget, "player has no village next to the thief")
	ErrInvalidThiefLocation    = newError(KindInvalidThiefLocation, "invalid thief location")
	ErrCannotEmbargoSelf       = newError(KindCannotEmbargoSelf, "cannot embargo self")
	ErrAlreadyEmbargoed        = newError(KindAlreadyEmbargoed, "player already embargoed")
	ErrNotEmbargoed            = newError(KindNotEmbargoed, "player not embargoed")
	ErrPlayerEmbargoed         = newError(KindPlayerEmbargoed, "trades with this player are embargoed")
	ErrTradeOfferNotActive     = newError(KindTradeOfferNotActive, "trade offer not active")
	ErrAlreadyRejectedTrade    = newError(KindAlreadyRejectedTrade, "trade offer already rejected")
	ErrCannotTradeWithSelf     = newError(KindCannotTradeWithSelf, "cannot trade with self")
	ErrInvalidTrade            = newError(KindInvalidTrade, "invalid trade")
	ErrInvalidResourceType     = newError(KindInvalidResourceType, "invalid resource type")
	ErrPlayerNotFound          = newError(KindPlayerNotFound, "player not found")
)

// errorf wraps a sentinel with detail while keeping its kind.
func errorf(base *Error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", base, fmt.Sprintf(format, args...))
}

// KindOf returns the kind of a rule error, or "" if err is not one.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
