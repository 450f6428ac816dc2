package game

import (
	"math/rand"
	"slices"

	"github.com/rs/zerolog"

	"natak/internal/logger"
)

// PlayerManager owns the players, the turn order and the setup order.
type PlayerManager struct {
	players    map[PlayerColour]*Player
	order      []PlayerColour
	setupOrder []PlayerColour
	setupIndex int
	current    int

	largestArmy    PlayerColour
	largestArmyMin int

	rng *rand.Rand
	log zerolog.Logger
}

// NewPlayerManager seats playerCount players in a random turn order. The
// setup order walks that order forward then back.
func NewPlayerManager(rng *rand.Rand, playerCount int, rules Rules, log zerolog.Logger) (*PlayerManager, error) {
	if playerCount < rules.MinPlayers || playerCount > rules.MaxPlayers {
		return nil, errorf(ErrInvalidPlayerCount, "%d players, want %d to %d", playerCount, rules.MinPlayers, rules.MaxPlayers)
	}

	colours := AllColours()[:playerCount]
	order := slices.Clone(colours)
	rng.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})

	pm := &PlayerManager{
		players:        make(map[PlayerColour]*Player, playerCount),
		order:          order,
		largestArmyMin: rules.LargestArmyMinimum,
		rng:            rng,
		log:            logger.Component(log, "PlayerManager"),
	}
	for _, c := range colours {
		pm.players[c] = NewPlayer(c, rules)
	}

	pm.setupOrder = slices.Clone(order)
	for i := len(order) - 1; i >= 0; i-- {
		pm.setupOrder = append(pm.setupOrder, order[i])
	}
	return pm, nil
}

// Order returns the main-phase turn order.
func (pm *PlayerManager) Order() []PlayerColour {
	return slices.Clone(pm.order)
}

// SetupOrder returns the snake order used during setup.
func (pm *PlayerManager) SetupOrder() []PlayerColour {
	return slices.Clone(pm.setupOrder)
}

// Players returns every player in turn order.
func (pm *PlayerManager) Players() []*Player {
	players := make([]*Player, 0, len(pm.order))
	for _, c := range pm.order {
		players = append(players, pm.players[c])
	}
	return players
}

// Player looks up a player by colour.
func (pm *PlayerManager) Player(colour PlayerColour) (*Player, error) {
	if !colour.IsValid() {
		return nil, errorf(ErrInvalidPlayerColour, "%q", colour)
	}
	p, ok := pm.players[colour]
	if !ok {
		return nil, errorf(ErrPlayerNotFound, "no %s player", colour)
	}
	return p, nil
}

// IsSetupFinished reports whether every setup turn has been taken.
func (pm *PlayerManager) IsSetupFinished() bool {
	return pm.setupIndex >= len(pm.setupOrder)
}

// IsSecondRoundOfSetup reports whether setup has passed the forward half.
func (pm *PlayerManager) IsSecondRoundOfSetup() bool {
	return !pm.IsSetupFinished() && pm.setupIndex >= len(pm.order)
}

// CurrentPlayer returns the player whose turn it is.
func (pm *PlayerManager) CurrentPlayer() *Player {
	if !pm.IsSetupFinished() {
		return pm.players[pm.setupOrder[pm.setupIndex]]
	}
	return pm.players[pm.order[pm.current]]
}

// NextPlayer ends the current turn and returns the next player. Setup turns
// follow the snake order; afterwards play starts again with the first player.
func (pm *PlayerManager) NextPlayer() *Player {
	pm.CurrentPlayer().ResetTurn()
	if !pm.IsSetupFinished() {
		pm.setupIndex++
		if pm.IsSetupFinished() {
			pm.current = 0
		}
	} else {
		pm.current = (pm.current + 1) % len(pm.order)
	}
	return pm.CurrentPlayer()
}

// Opponents returns every player other than colour in turn order.
func (pm *PlayerManager) Opponents(colour PlayerColour) []*Player {
	var players []*Player
	for _, c := range pm.order {
		if c != colour {
			players = append(players, pm.players[c])
		}
	}
	return players
}

// GivePlayerGathererResource moves every card of resource held by the other
// players to colour. It returns how many cards moved.
func (pm *PlayerManager) GivePlayerGathererResource(colour PlayerColour, resource ResourceType) (int, error) {
	if !resource.IsTradeable() {
		return 0, errorf(ErrInvalidResourceType, "%s", resource)
	}
	player, err := pm.Player(colour)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, other := range pm.Opponents(colour) {
		total += other.Resources.Take(resource)
	}
	player.Resources.Add(resource, total)
	return total, nil
}

// StealFromPlayer moves one random card from victim to thief. A victim with
// no cards is not an error; ok is false and nothing moves.
func (pm *PlayerManager) StealFromPlayer(thief, victim PlayerColour) (ResourceType, bool, error) {
	if thief == victim {
		return ResourceNone, false, ErrCannotStealFromSelf
	}
	from, err := pm.Player(victim)
	if err != nil {
		return ResourceNone, false, err
	}
	to, err := pm.Player(thief)
	if err != nil {
		return ResourceNone, false, err
	}
	r, ok := from.Resources.RemoveRandom(pm.rng)
	if !ok {
		return ResourceNone, false, nil
	}
	to.Resources.Add(r, 1)
	return r, true, nil
}

// LargestArmyHolder returns the colour holding the largest army award.
func (pm *PlayerManager) LargestArmyHolder() PlayerColour {
	return pm.largestArmy
}

// UpdateLargestArmy gives the award to the player with a strict maximum of
// soldiers played, once that maximum reaches the minimum.
func (pm *PlayerManager) UpdateLargestArmy() {
	best, bestCount, tied := ColourNone, 0, false
	for _, p := range pm.Players() {
		switch {
		case p.SoldiersPlayed > bestCount:
			best, bestCount, tied = p.Colour, p.SoldiersPlayed, false
		case p.SoldiersPlayed == bestCount:
			tied = true
		}
	}
	if tied || bestCount < pm.largestArmyMin || best == pm.largestArmy {
		return
	}

	if pm.largestArmy != ColourNone {
		pm.players[pm.largestArmy].Score.SetLargestArmy(false)
	}
	pm.players[best].Score.SetLargestArmy(true)
	pm.log.Info().Str("from", string(pm.largestArmy)).Str("to", string(best)).Int("soldiers", bestCount).Msg("largest army changed hands")
	pm.largestArmy = best
}

// SetLongestRoadHolder moves the longest road award between players.
func (pm *PlayerManager) SetLongestRoadHolder(from, to PlayerColour) {
	if from == to {
		return
	}
	if p, ok := pm.players[from]; ok {
		p.Score.SetLongestRoad(false)
	}
	if p, ok := pm.players[to]; ok {
		p.Score.SetLongestRoad(true)
	}
}

// SetDiscardObligations marks every player holding more than threshold
// cards to discard half their hand, rounded down. It reports whether anyone
// has to discard.
func (pm *PlayerManager) SetDiscardObligations(threshold int) bool {
	pending := false
	for _, p := range pm.Players() {
		p.CardsToDiscard = 0
		if n := p.Resources.Total(); n > threshold {
			p.CardsToDiscard = n / 2
			pending = true
		}
	}
	return pending
}

// HasPendingDiscards reports whether any player still owes a discard.
func (pm *PlayerManager) HasPendingDiscards() bool {
	for _, p := range pm.players {
		if p.CardsToDiscard > 0 {
			return true
		}
	}
	return false
}
