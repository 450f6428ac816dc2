package game

import (
	"fmt"

	"natak/internal/config"
)

// Rules holds the tunable constants of a match.
type Rules struct {
	MinPlayers         int
	MaxPlayers         int
	Pieces             map[PieceType]int
	RoadCost           map[ResourceType]int
	VillageCost        map[ResourceType]int
	TownCost           map[ResourceType]int
	GrowthCardCost     map[ResourceType]int
	BankResources      int
	GrowthDeck         map[GrowthCardType]int
	TileResources      map[ResourceType]int
	ActivationNumbers  []int
	PointsToWin        int
	LongestRoadMinimum int
	LargestArmyMinimum int
	DiscardThreshold   int
}

// DefaultRules returns the standard rule set.
func DefaultRules() Rules {
	r, err := RulesFromConfig(config.DefaultRules())
	if err != nil {
		panic("default rules: " + err.Error())
	}
	return r
}

// RulesFromConfig parses the file form of the rules.
func RulesFromConfig(c config.Rules) (Rules, error) {
	r := Rules{
		MinPlayers:         c.MinPlayers,
		MaxPlayers:         c.MaxPlayers,
		BankResources:      c.BankResources,
		ActivationNumbers:  append([]int(nil), c.ActivationNumbers...),
		PointsToWin:        c.PointsToWin,
		LongestRoadMinimum: c.LongestRoadMinimum,
		LargestArmyMinimum: c.LargestArmyMinimum,
		DiscardThreshold:   c.DiscardThreshold,
		Pieces:             make(map[PieceType]int),
		GrowthDeck:         make(map[GrowthCardType]int),
	}

	for name, n := range c.Pieces {
		p, err := ParsePieceType(name)
		if err != nil {
			return r, fmt.Errorf("pieces: %w", err)
		}
		r.Pieces[p] = n
	}
	for name, n := range c.GrowthDeck {
		g, err := ParseGrowthCardType(name)
		if err != nil {
			return r, fmt.Errorf("growth_deck: %w", err)
		}
		r.GrowthDeck[g] = n
	}

	var err error
	if r.TileResources, err = parseResourceCounts(c.Tiles, true); err != nil {
		return r, fmt.Errorf("tiles: %w", err)
	}
	costs := map[string]*map[ResourceType]int{
		"road":        &r.RoadCost,
		"village":     &r.VillageCost,
		"town":        &r.TownCost,
		"growth_card": &r.GrowthCardCost,
	}
	for name, dst := range costs {
		if *dst, err = parseResourceCounts(c.Costs[name], false); err != nil {
			return r, fmt.Errorf("costs.%s: %w", name, err)
		}
	}

	return r, r.Validate()
}

func parseResourceCounts(in map[string]int, allowNone bool) (map[ResourceType]int, error) {
	out := make(map[ResourceType]int, len(in))
	for name, n := range in {
		res, err := ParseResourceType(name)
		if err != nil {
			return nil, err
		}
		if res == ResourceNone && !allowNone {
			return nil, fmt.Errorf("%w: %q", ErrInvalidResourceType, name)
		}
		if n < 0 {
			return nil, fmt.Errorf("negative amount for %s", res)
		}
		out[res] += n
	}
	return out, nil
}

// Validate checks the rule set is playable on the fixed board.
func (r Rules) Validate() error {
	if r.MinPlayers < 2 || r.MaxPlayers > len(AllColours()) || r.MinPlayers > r.MaxPlayers {
		return fmt.Errorf("player range %d-%d is not supported", r.MinPlayers, r.MaxPlayers)
	}
	tiles := 0
	for _, n := range r.TileResources {
		tiles += n
	}
	if tiles != len(TilePoints()) {
		return fmt.Errorf("tile counts sum to %d, board has %d tiles", tiles, len(TilePoints()))
	}
	if r.TileResources[ResourceNone] != 1 {
		return fmt.Errorf("board needs exactly one desert")
	}
	if len(r.ActivationNumbers) != tiles-1 {
		return fmt.Errorf("need %d activation numbers, have %d", tiles-1, len(r.ActivationNumbers))
	}
	for _, n := range r.ActivationNumbers {
		if n < 2 || n > 12 || n == 7 {
			return fmt.Errorf("activation number %d out of range", n)
		}
	}
	if r.PointsToWin <= 0 {
		return fmt.Errorf("points_to_win must be positive")
	}
	return nil
}
