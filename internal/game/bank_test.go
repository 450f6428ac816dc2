package game

import (
	"errors"
	"testing"
)

func newTestBank() *BankTradeManager {
	return NewBankTradeManager(newTestRand(), DefaultRules())
}

func TestBankStartsFull(t *testing.T) {
	b := newTestBank()
	for _, r := range AllResourceTypes() {
		if got := b.Resources().Count(r); got != 19 {
			t.Errorf("bank %s = %d, want 19", r, got)
		}
	}
	if got := b.GrowthCards().Total(); got != 25 {
		t.Errorf("growth deck = %d, want 25", got)
	}
}

func TestBankTradeRatio(t *testing.T) {
	tests := []struct {
		name  string
		ports []PortType
		wood  int
		want  int
	}{
		{"no port", nil, 4, 4},
		{"generic port", []PortType{PortThreeToOne}, 3, 3},
		{"generic port with plenty", []PortType{PortThreeToOne}, 6, 3},
		{"matching port", []PortType{PortWood}, 2, 2},
		{"both ports", []PortType{PortThreeToOne, PortWood}, 2, 2},
		{"other resource port", []PortType{PortClay}, 4, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBank()
			p := NewPlayer(ColourRed, DefaultRules())
			for _, port := range tt.ports {
				p.AddPort(port)
			}
			p.Resources.Add(ResourceWood, tt.wood)

			ratio, err := b.Trade(p, ResourceWood, ResourceMetal)
			if err != nil {
				t.Fatalf("Trade: %v", err)
			}
			if ratio != tt.want {
				t.Errorf("ratio = %d, want %d", ratio, tt.want)
			}
			if got := p.Resources.Count(ResourceWood); got != tt.wood-tt.want {
				t.Errorf("wood left = %d, want %d", got, tt.wood-tt.want)
			}
			if p.Resources.Count(ResourceMetal) != 1 {
				t.Error("no metal received")
			}
			if b.Resources().Count(ResourceWood) != 19+tt.want || b.Resources().Count(ResourceMetal) != 18 {
				t.Errorf("bank = %v", b.Resources().Snapshot())
			}
		})
	}
}

func TestBankTradeErrors(t *testing.T) {
	b := newTestBank()
	p := NewPlayer(ColourRed, DefaultRules())
	p.Resources.Add(ResourceWood, 3)

	if _, err := b.Trade(p, ResourceWood, ResourceClay); !errors.Is(err, ErrInsufficientResources) {
		t.Errorf("3 wood without port: got %v", err)
	}
	if _, err := b.Trade(p, ResourceWood, ResourceWood); !errors.Is(err, ErrInvalidTrade) {
		t.Errorf("same resource: got %v", err)
	}
	if _, err := b.Trade(p, ResourceNone, ResourceWood); !errors.Is(err, ErrInvalidResourceType) {
		t.Errorf("desert resource: got %v", err)
	}

	b.Resources().Set(ResourceClay, 0)
	p.Resources.Add(ResourceWood, 1)
	if _, err := b.Trade(p, ResourceWood, ResourceClay); !errors.Is(err, ErrMissingResources) {
		t.Errorf("empty bank: got %v", err)
	}
	if p.Resources.Count(ResourceWood) != 4 {
		t.Errorf("failed trades changed the hand: %v", p.Resources.Snapshot())
	}
}

func TestBankTradeUsingPort(t *testing.T) {
	b := newTestBank()
	p := NewPlayer(ColourRed, DefaultRules())
	p.Resources.Add(ResourceWood, 4)

	if _, err := b.TradeUsingPort(p, PortWood, ResourceWood, ResourceFood); !errors.Is(err, ErrDoesNotOwnPort) {
		t.Errorf("unowned port: got %v", err)
	}

	p.AddPort(PortClay)
	if _, err := b.TradeUsingPort(p, PortClay, ResourceWood, ResourceFood); !errors.Is(err, ErrInvalidTrade) {
		t.Errorf("wrong port resource: got %v", err)
	}

	p.AddPort(PortThreeToOne)
	ratio, err := b.TradeUsingPort(p, PortThreeToOne, ResourceWood, ResourceFood)
	if err != nil {
		t.Fatalf("TradeUsingPort: %v", err)
	}
	if ratio != 3 || p.Resources.Count(ResourceWood) != 1 {
		t.Errorf("ratio %d, wood left %d", ratio, p.Resources.Count(ResourceWood))
	}
}

func TestBankPayoutSupplyRule(t *testing.T) {
	red := NewPlayer(ColourRed, DefaultRules())
	blue := NewPlayer(ColourBlue, DefaultRules())
	players := map[PlayerColour]*Player{ColourRed: red, ColourBlue: blue}

	t.Run("enough for everyone", func(t *testing.T) {
		b := newTestBank()
		b.Payout(players, map[PlayerColour]map[ResourceType]int{
			ColourRed:  {ResourceWood: 2},
			ColourBlue: {ResourceWood: 1, ResourceClay: 1},
		})
		if red.Resources.Count(ResourceWood) != 2 || blue.Resources.Count(ResourceWood) != 1 {
			t.Errorf("red %v, blue %v", red.Resources.Snapshot(), blue.Resources.Snapshot())
		}
		if b.Resources().Count(ResourceWood) != 16 {
			t.Errorf("bank wood = %d, want 16", b.Resources().Count(ResourceWood))
		}
		red.Resources.Clear()
		blue.Resources.Clear()
	})

	t.Run("short with several claimants", func(t *testing.T) {
		b := newTestBank()
		b.Resources().Set(ResourceWood, 2)
		paid := b.Payout(players, map[PlayerColour]map[ResourceType]int{
			ColourRed:  {ResourceWood: 2, ResourceClay: 1},
			ColourBlue: {ResourceWood: 1},
		})
		if red.Resources.Count(ResourceWood) != 0 || blue.Resources.Count(ResourceWood) != 0 {
			t.Error("wood paid out despite shortage")
		}
		if paid[ColourRed][ResourceClay] != 1 {
			t.Errorf("clay not paid: %v", paid)
		}
		red.Resources.Clear()
		blue.Resources.Clear()
	})

	t.Run("short with one claimant", func(t *testing.T) {
		b := newTestBank()
		b.Resources().Set(ResourceWood, 1)
		b.Payout(players, map[PlayerColour]map[ResourceType]int{
			ColourRed: {ResourceWood: 2},
		})
		if red.Resources.Count(ResourceWood) != 1 {
			t.Errorf("lone claimant got %d wood, want 1", red.Resources.Count(ResourceWood))
		}
		if b.Resources().Count(ResourceWood) != 0 {
			t.Errorf("bank wood = %d, want 0", b.Resources().Count(ResourceWood))
		}
	})
}
