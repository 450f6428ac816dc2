package game

import (
	"math/rand"
	"slices"
)

// Trade ratios, best first.
const (
	portRatio    = 2
	genericRatio = 3
	bankRatio    = 4
)

// BankTradeManager holds the bank's resource pool and growth deck.
type BankTradeManager struct {
	resources   *ItemManager[ResourceType]
	growthCards *ItemManager[GrowthCardType]
	rng         *rand.Rand
}

// NewBankTradeManager fills the bank from the rules.
func NewBankTradeManager(rng *rand.Rand, rules Rules) *BankTradeManager {
	b := &BankTradeManager{
		resources:   NewItemManager[ResourceType](ErrMissingResources),
		growthCards: NewItemManager[GrowthCardType](ErrNoGrowthCard),
		rng:         rng,
	}
	for _, r := range AllResourceTypes() {
		b.resources.Add(r, rules.BankResources)
	}
	b.growthCards.AddAll(rules.GrowthDeck)
	return b
}

// Resources returns the bank's resource pool.
func (b *BankTradeManager) Resources() *ItemManager[ResourceType] {
	return b.resources
}

// GrowthCards returns the remaining growth deck.
func (b *BankTradeManager) GrowthCards() *ItemManager[GrowthCardType] {
	return b.growthCards
}

// TradeRatio returns the best ratio the player can get when giving
// resource, ignoring whether the player can afford it.
func TradeRatio(p *Player, give ResourceType) int {
	switch {
	case p.HasPort(PortForResource(give)):
		return portRatio
	case p.HasPort(PortThreeToOne):
		return genericRatio
	default:
		return bankRatio
	}
}

func checkTradePair(give, want ResourceType) error {
	if !give.IsTradeable() || !want.IsTradeable() {
		return errorf(ErrInvalidResourceType, "cannot trade %s for %s", give, want)
	}
	if give == want {
		return errorf(ErrInvalidTrade, "cannot trade %s for itself", give)
	}
	return nil
}

// CanTrade checks a bank trade and returns the ratio it would use. Ratios
// are tried from 2:1 (matching port) through 3:1 (generic port) to 4:1 and
// the first the player can afford is used.
func (b *BankTradeManager) CanTrade(p *Player, give, want ResourceType) (int, error) {
	if err := checkTradePair(give, want); err != nil {
		return 0, err
	}
	if !b.resources.Has(want, 1) {
		return 0, errorf(ErrMissingResources, "bank has no %s", want)
	}

	var ratios []int
	if p.HasPort(PortForResource(give)) {
		ratios = append(ratios, portRatio)
	}
	if p.HasPort(PortThreeToOne) {
		ratios = append(ratios, genericRatio)
	}
	ratios = append(ratios, bankRatio)

	for _, ratio := range ratios {
		if p.Resources.Has(give, ratio) {
			return ratio, nil
		}
	}
	return 0, errorf(ErrInsufficientResources, "need %d %s, have %d", slices.Min(ratios), give, p.Resources.Count(give))
}

// Trade swaps resources with the bank at the best affordable ratio.
func (b *BankTradeManager) Trade(p *Player, give, want ResourceType) (int, error) {
	ratio, err := b.CanTrade(p, give, want)
	if err != nil {
		return 0, err
	}
	b.exchange(p, give, ratio, want)
	return ratio, nil
}

// CanTradeUsingPort checks a trade through a specific port.
func (b *BankTradeManager) CanTradeUsingPort(p *Player, port PortType, give, want ResourceType) (int, error) {
	if err := checkTradePair(give, want); err != nil {
		return 0, err
	}
	if !p.HasPort(port) {
		return 0, errorf(ErrDoesNotOwnPort, "%s", port)
	}
	ratio := genericRatio
	if port != PortThreeToOne {
		if port.Resource() != give {
			return 0, errorf(ErrInvalidTrade, "%s port does not take %s", port, give)
		}
		ratio = portRatio
	}
	if !b.resources.Has(want, 1) {
		return 0, errorf(ErrMissingResources, "bank has no %s", want)
	}
	if !p.Resources.Has(give, ratio) {
		return 0, errorf(ErrInsufficientResources, "need %d %s, have %d", ratio, give, p.Resources.Count(give))
	}
	return ratio, nil
}

// TradeUsingPort swaps resources with the bank through a specific port.
func (b *BankTradeManager) TradeUsingPort(p *Player, port PortType, give, want ResourceType) (int, error) {
	ratio, err := b.CanTradeUsingPort(p, port, give, want)
	if err != nil {
		return 0, err
	}
	b.exchange(p, give, ratio, want)
	return ratio, nil
}

func (b *BankTradeManager) exchange(p *Player, give ResourceType, ratio int, want ResourceType) {
	if err := p.Resources.Remove(give, ratio); err != nil {
		panic("bank trade: " + err.Error())
	}
	b.resources.Add(give, ratio)
	if err := b.resources.Remove(want, 1); err != nil {
		panic("bank trade: " + err.Error())
	}
	p.Resources.Add(want, 1)
}

// DrawGrowthCard takes one card from the deck, weighted by what is left.
func (b *BankTradeManager) DrawGrowthCard() (GrowthCardType, error) {
	card, ok := b.growthCards.Draw(b.rng)
	if !ok {
		return 0, errorf(ErrNoGrowthCard, "growth deck is empty")
	}
	return card, nil
}

// Payout applies a dice yield. For each resource, if the bank cannot cover
// every claim and more than one player has a claim, nobody is paid; a lone
// claimant gets whatever is left. It returns what was actually paid.
func (b *BankTradeManager) Payout(players map[PlayerColour]*Player, yield map[PlayerColour]map[ResourceType]int) map[PlayerColour]map[ResourceType]int {
	paid := make(map[PlayerColour]map[ResourceType]int)
	colours := make([]PlayerColour, 0, len(yield))
	for c := range yield {
		colours = append(colours, c)
	}
	slices.Sort(colours)

	for _, r := range AllResourceTypes() {
		claimants, claimed := 0, 0
		for _, c := range colours {
			if n := yield[c][r]; n > 0 {
				claimants++
				claimed += n
			}
		}
		if claimants == 0 {
			continue
		}
		available := b.resources.Count(r)
		if claimed > available && claimants > 1 {
			continue
		}
		for _, c := range colours {
			n := min(yield[c][r], available)
			if n == 0 {
				continue
			}
			p, ok := players[c]
			if !ok {
				continue
			}
			if err := b.resources.Remove(r, n); err != nil {
				panic("bank payout: " + err.Error())
			}
			available -= n
			p.Resources.Add(r, n)
			if paid[c] == nil {
				paid[c] = make(map[ResourceType]int)
			}
			paid[c][r] += n
		}
	}
	return paid
}

// Receive returns resources to the bank.
func (b *BankTradeManager) Receive(resources map[ResourceType]int) {
	b.resources.AddAll(resources)
}

// Pay moves resources from the bank to p, failing without change if the
// bank is short.
func (b *BankTradeManager) Pay(p *Player, resources map[ResourceType]int) error {
	if err := b.resources.RemoveAll(resources); err != nil {
		return err
	}
	p.Resources.AddAll(resources)
	return nil
}
