package game

// Purchase is an exchange between a player and the bank. Validate never
// mutates; Apply validates first and then changes everything or nothing.
type Purchase interface {
	Validate(p *Player, bank *BankTradeManager) error
	Apply(p *Player, bank *BankTradeManager) error
}

// piecePurchase buys one piece from the player's supply.
type piecePurchase struct {
	piece PieceType
	cost  map[ResourceType]int
}

func (pp piecePurchase) Validate(p *Player, _ *BankTradeManager) error {
	if !p.Pieces.Has(pp.piece, 1) {
		return errorf(ErrNoPiecesRemaining, "no %s pieces left", pp.piece)
	}
	if !p.Resources.HasAll(pp.cost) {
		return errorf(ErrInsufficientResources, "cannot afford a %s", pp.piece)
	}
	return nil
}

func (pp piecePurchase) Apply(p *Player, bank *BankTradeManager) error {
	if err := pp.Validate(p, bank); err != nil {
		return err
	}
	if err := p.Resources.RemoveAll(pp.cost); err != nil {
		panic("purchase: " + err.Error())
	}
	if err := p.Pieces.Remove(pp.piece, 1); err != nil {
		panic("purchase: " + err.Error())
	}
	bank.Receive(pp.cost)
	return nil
}

// RoadPurchase buys a road piece.
type RoadPurchase struct{ piecePurchase }

// NewRoadPurchase returns a road purchase priced by the rules.
func NewRoadPurchase(rules Rules) RoadPurchase {
	return RoadPurchase{piecePurchase{piece: PieceRoad, cost: rules.RoadCost}}
}

// VillagePurchase buys a village piece.
type VillagePurchase struct{ piecePurchase }

// NewVillagePurchase returns a village purchase priced by the rules.
func NewVillagePurchase(rules Rules) VillagePurchase {
	return VillagePurchase{piecePurchase{piece: PieceVillage, cost: rules.VillageCost}}
}

// TownPurchase buys a town piece. The village it replaces is not returned.
type TownPurchase struct{ piecePurchase }

// NewTownPurchase returns a town purchase priced by the rules.
func NewTownPurchase(rules Rules) TownPurchase {
	return TownPurchase{piecePurchase{piece: PieceTown, cost: rules.TownCost}}
}

// GrowthCardPurchase draws a growth card from the deck. Card holds the
// drawn card after Apply.
type GrowthCardPurchase struct {
	cost map[ResourceType]int
	Card GrowthCardType
}

// NewGrowthCardPurchase returns a growth card purchase priced by the rules.
func NewGrowthCardPurchase(rules Rules) *GrowthCardPurchase {
	return &GrowthCardPurchase{cost: rules.GrowthCardCost}
}

func (gp *GrowthCardPurchase) Validate(p *Player, bank *BankTradeManager) error {
	if bank.GrowthCards().Total() == 0 {
		return errorf(ErrNoGrowthCard, "growth deck is empty")
	}
	if !p.Resources.HasAll(gp.cost) {
		return errorf(ErrInsufficientResources, "cannot afford a growth card")
	}
	return nil
}

// Apply pays for and draws a card. Victory point cards count immediately as
// hidden points; other cards wait until the next turn.
func (gp *GrowthCardPurchase) Apply(p *Player, bank *BankTradeManager) error {
	if err := gp.Validate(p, bank); err != nil {
		return err
	}
	card, err := bank.DrawGrowthCard()
	if err != nil {
		panic("growth card purchase: " + err.Error())
	}
	if err := p.Resources.RemoveAll(gp.cost); err != nil {
		panic("growth card purchase: " + err.Error())
	}
	bank.Receive(gp.cost)

	if card == GrowthVictoryPoint {
		p.GrowthCards.Add(card, 1)
		p.Score.AddHidden(1)
	} else {
		p.OnHold.Add(card, 1)
	}
	gp.Card = card
	return nil
}

// DiscardResourcesPurchase returns a player's owed discard to the bank.
type DiscardResourcesPurchase struct {
	Amounts map[ResourceType]int
}

func (dp DiscardResourcesPurchase) Validate(p *Player, _ *BankTradeManager) error {
	if p.CardsToDiscard == 0 {
		return errorf(ErrIncorrectDiscardCount, "%s has nothing to discard", p.Colour)
	}
	total := 0
	for r, n := range dp.Amounts {
		if !r.IsTradeable() {
			return errorf(ErrInvalidResourceType, "%s", r)
		}
		if n < 0 {
			return errorf(ErrIncorrectDiscardCount, "negative amount of %s", r)
		}
		total += n
	}
	if total != p.CardsToDiscard {
		return errorf(ErrIncorrectDiscardCount, "must discard %d, got %d", p.CardsToDiscard, total)
	}
	if !p.Resources.HasAll(dp.Amounts) {
		return errorf(ErrInsufficientResources, "cannot discard cards not held")
	}
	return nil
}

func (dp DiscardResourcesPurchase) Apply(p *Player, bank *BankTradeManager) error {
	if err := dp.Validate(p, bank); err != nil {
		return err
	}
	if err := p.Resources.RemoveAll(dp.Amounts); err != nil {
		panic("discard: " + err.Error())
	}
	bank.Receive(dp.Amounts)
	p.CardsToDiscard = 0
	return nil
}

// FreeResourcesPurchase gives the player resources from the bank at no cost.
type FreeResourcesPurchase struct {
	Amounts map[ResourceType]int
}

func (fp FreeResourcesPurchase) Validate(_ *Player, bank *BankTradeManager) error {
	for r, n := range fp.Amounts {
		if !r.IsTradeable() {
			return errorf(ErrInvalidResourceType, "%s", r)
		}
		if n < 0 {
			return errorf(ErrInvalidTrade, "negative amount of %s", r)
		}
	}
	if !bank.Resources().HasAll(fp.Amounts) {
		return errorf(ErrMissingResources, "bank cannot cover %v", fp.Amounts)
	}
	return nil
}

func (fp FreeResourcesPurchase) Apply(p *Player, bank *BankTradeManager) error {
	if err := fp.Validate(p, bank); err != nil {
		return err
	}
	return bank.Pay(p, fp.Amounts)
}
