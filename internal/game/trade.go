package game

import "slices"

// TradeOffer is a proposal from the current player to everyone else.
type TradeOffer struct {
	Active     bool                 `json:"active"`
	Offerer    PlayerColour         `json:"offerer"`
	Offer      map[ResourceType]int `json:"offer"`
	Request    map[ResourceType]int `json:"request"`
	RejectedBy []PlayerColour       `json:"rejectedBy"`
}

// PlayerTradeManager holds the active trade offer and embargoes. At most
// one offer is active at a time.
type PlayerTradeManager struct {
	offer     TradeOffer
	embargoes map[PlayerColour]map[PlayerColour]bool
}

// NewPlayerTradeManager creates a manager with no offer or embargoes.
func NewPlayerTradeManager() *PlayerTradeManager {
	return &PlayerTradeManager{
		embargoes: make(map[PlayerColour]map[PlayerColour]bool),
	}
}

// Offer returns a copy of the current offer.
func (tm *PlayerTradeManager) Offer() TradeOffer {
	o := tm.offer
	o.RejectedBy = slices.Clone(o.RejectedBy)
	return o
}

func validateTradeAmounts(amounts map[ResourceType]int) error {
	total := 0
	for r, n := range amounts {
		if !r.IsTradeable() {
			return errorf(ErrInvalidResourceType, "%s", r)
		}
		if n < 0 {
			return errorf(ErrInvalidTrade, "negative amount of %s", r)
		}
		total += n
	}
	if total == 0 {
		return errorf(ErrInvalidTrade, "trade must include at least one card each way")
	}
	return nil
}

// CanMakeOffer checks an offer from offerer.
func (tm *PlayerTradeManager) CanMakeOffer(offerer *Player, offer, request map[ResourceType]int) error {
	if err := validateTradeAmounts(offer); err != nil {
		return err
	}
	if err := validateTradeAmounts(request); err != nil {
		return err
	}
	for r := range offer {
		if request[r] > 0 && offer[r] > 0 {
			return errorf(ErrInvalidTrade, "%s is both offered and requested", r)
		}
	}
	if !offerer.Resources.HasAll(offer) {
		return errorf(ErrInsufficientResources, "cannot cover the offer")
	}
	return nil
}

// MakeOffer replaces any active offer with a new one.
func (tm *PlayerTradeManager) MakeOffer(offerer *Player, offer, request map[ResourceType]int) error {
	if err := tm.CanMakeOffer(offerer, offer, request); err != nil {
		return err
	}
	tm.offer = TradeOffer{
		Active:  true,
		Offerer: offerer.Colour,
		Offer:   cloneCounts(offer),
		Request: cloneCounts(request),
	}
	return nil
}

func (tm *PlayerTradeManager) checkResponder(colour PlayerColour) error {
	if !tm.offer.Active {
		return ErrTradeOfferNotActive
	}
	if colour == tm.offer.Offerer {
		return ErrCannotTradeWithSelf
	}
	if slices.Contains(tm.offer.RejectedBy, colour) {
		return ErrAlreadyRejectedTrade
	}
	return nil
}

// CanAcceptOffer checks that responder can take the active offer. A player
// who has embargoed the offerer cannot accept.
func (tm *PlayerTradeManager) CanAcceptOffer(responder, offerer *Player) error {
	if err := tm.checkResponder(responder.Colour); err != nil {
		return err
	}
	if offerer.Colour != tm.offer.Offerer {
		return errorf(ErrTradeOfferNotActive, "no offer from %s", offerer.Colour)
	}
	if tm.IsEmbargoed(responder.Colour, offerer.Colour) {
		return errorf(ErrPlayerEmbargoed, "%s has embargoed %s", responder.Colour, offerer.Colour)
	}
	if !responder.Resources.HasAll(tm.offer.Request) {
		return errorf(ErrInsufficientResources, "%s cannot cover the request", responder.Colour)
	}
	if !offerer.Resources.HasAll(tm.offer.Offer) {
		return errorf(ErrInsufficientResources, "%s can no longer cover the offer", offerer.Colour)
	}
	return nil
}

// AcceptOffer swaps the cards and closes the offer.
func (tm *PlayerTradeManager) AcceptOffer(responder, offerer *Player) error {
	if err := tm.CanAcceptOffer(responder, offerer); err != nil {
		return err
	}
	if err := offerer.Resources.RemoveAll(tm.offer.Offer); err != nil {
		panic("accept offer: " + err.Error())
	}
	if err := responder.Resources.RemoveAll(tm.offer.Request); err != nil {
		panic("accept offer: " + err.Error())
	}
	responder.Resources.AddAll(tm.offer.Offer)
	offerer.Resources.AddAll(tm.offer.Request)
	tm.offer.Active = false
	return nil
}

// RejectOffer records that colour declined the active offer. Once every
// other player has declined, the offer closes.
func (tm *PlayerTradeManager) RejectOffer(colour PlayerColour, playerCount int) error {
	if err := tm.checkResponder(colour); err != nil {
		return err
	}
	tm.offer.RejectedBy = append(tm.offer.RejectedBy, colour)
	if len(tm.offer.RejectedBy) >= playerCount-1 {
		tm.offer.Active = false
	}
	return nil
}

// CancelOffer closes any active offer.
func (tm *PlayerTradeManager) CancelOffer() {
	tm.offer.Active = false
}

// IsEmbargoed reports whether colour has embargoed target.
func (tm *PlayerTradeManager) IsEmbargoed(colour, target PlayerColour) bool {
	return tm.embargoes[colour][target]
}

// Embargoes returns the colours embargoed by colour, sorted.
func (tm *PlayerTradeManager) Embargoes(colour PlayerColour) []PlayerColour {
	var targets []PlayerColour
	for t, ok := range tm.embargoes[colour] {
		if ok {
			targets = append(targets, t)
		}
	}
	slices.Sort(targets)
	return targets
}

// CanEmbargo checks that colour may embargo target.
func (tm *PlayerTradeManager) CanEmbargo(colour, target PlayerColour) error {
	if colour == target {
		return ErrCannotEmbargoSelf
	}
	if tm.IsEmbargoed(colour, target) {
		return ErrAlreadyEmbargoed
	}
	return nil
}

// Embargo stops colour from accepting offers made by target.
func (tm *PlayerTradeManager) Embargo(colour, target PlayerColour) error {
	if err := tm.CanEmbargo(colour, target); err != nil {
		return err
	}
	if tm.embargoes[colour] == nil {
		tm.embargoes[colour] = make(map[PlayerColour]bool)
	}
	tm.embargoes[colour][target] = true
	return nil
}

// RemoveEmbargo lifts an embargo.
func (tm *PlayerTradeManager) RemoveEmbargo(colour, target PlayerColour) error {
	if !tm.IsEmbargoed(colour, target) {
		return ErrNotEmbargoed
	}
	delete(tm.embargoes[colour], target)
	return nil
}

func cloneCounts(in map[ResourceType]int) map[ResourceType]int {
	out := make(map[ResourceType]int, len(in))
	for r, n := range in {
		if n > 0 {
			out[r] = n
		}
	}
	return out
}
