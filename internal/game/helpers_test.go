package game

import (
	"math/rand"
	"testing"

	"github.com/rs/zerolog"
)

func newTestRand() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

func newTestGame(t *testing.T, players int, seed int64, opts ...Option) *Game {
	t.Helper()
	opts = append([]Option{WithSeed(seed), WithID("test")}, opts...)
	g, err := NewGame(players, opts...)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	return g
}

// testLayout puts the desert in the centre and wood on a five everywhere
// else.
func testLayout() []Tile {
	var tiles []Tile
	for _, p := range TilePoints() {
		t := Tile{Point: p, Resource: ResourceWood, ActivationNumber: 5}
		if p == NewPoint(2, 2) {
			t = Tile{Point: p}
		}
		tiles = append(tiles, t)
	}
	return tiles
}

func newTestBoard(t *testing.T) *Board {
	t.Helper()
	ports := []PortType{PortWood, PortThreeToOne, PortClay, PortThreeToOne, PortAnimal, PortThreeToOne, PortFood, PortThreeToOne, PortMetal}
	b, err := NewBoardFromLayout(testLayout(), ports, DefaultRules(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewBoardFromLayout: %v", err)
	}
	return b
}

// playSetupTurn places the first legal village and a road leaving it, then
// ends the turn.
func playSetupTurn(t *testing.T, g *Game) {
	t.Helper()
	colour := g.CurrentPlayer().Colour

	village, found := Point{}, false
	for _, p := range HousePoints() {
		if g.Board().CanPlaceVillage(colour, p, true) == nil {
			village, found = p, true
			break
		}
	}
	if !found {
		t.Fatalf("no legal village for %s", colour)
	}
	if err := g.PlaceVillage(village); err != nil {
		t.Fatalf("PlaceVillage(%s): %v", village, err)
	}

	placed := false
	for _, q := range g.Board().Buildings().AdjacentHousePoints(village) {
		if g.Board().CanPlaceSetupRoadBetweenPoints(colour, village, q) == nil {
			if err := g.PlaceRoad(village, q); err != nil {
				t.Fatalf("PlaceRoad(%s, %s): %v", village, q, err)
			}
			placed = true
			break
		}
	}
	if !placed {
		t.Fatalf("no legal setup road from %s", village)
	}
	if err := g.EndTurn(); err != nil {
		t.Fatalf("EndTurn: %v", err)
	}
}

func completeSetup(t *testing.T, g *Game) {
	t.Helper()
	for g.IsSetup() {
		playSetupTurn(t, g)
	}
}

// pickCards chooses n cards from a player's hand in resource order.
func pickCards(p *Player, n int) map[ResourceType]int {
	cards := make(map[ResourceType]int)
	for _, r := range AllResourceTypes() {
		if n == 0 {
			break
		}
		take := min(p.Resources.Count(r), n)
		if take > 0 {
			cards[r] = take
			n -= take
		}
	}
	return cards
}

// resolveThief moves the thief to the first other tile and steals from the
// first target if there is one.
func resolveThief(t *testing.T, g *Game) {
	t.Helper()
	if g.State() != StateMoveThief {
		t.Fatalf("state = %s, want move_thief", g.State())
	}
	for _, p := range TilePoints() {
		if p != g.Board().ThiefPoint() {
			if err := g.MoveThief(p); err != nil {
				t.Fatalf("MoveThief(%s): %v", p, err)
			}
			break
		}
	}
	if g.State() == StateStealResource {
		targets := g.stealTargets()
		if len(targets) == 0 {
			t.Fatal("steal state with no targets")
		}
		if _, err := g.StealResourceFromPlayer(targets[0]); err != nil {
			t.Fatalf("StealResourceFromPlayer: %v", err)
		}
	}
}

func resolveSeven(t *testing.T, g *Game) {
	t.Helper()
	for g.State() == StateDiscardResources {
		for _, p := range g.Players().Players() {
			if p.CardsToDiscard > 0 {
				if err := g.DiscardResources(p.Colour, pickCards(p, p.CardsToDiscard)); err != nil {
					t.Fatalf("DiscardResources(%s): %v", p.Colour, err)
				}
			}
		}
	}
	resolveThief(t, g)
}

// rollAndResolve rolls and plays out a seven so the turn ends up after the
// roll.
func rollAndResolve(t *testing.T, g *Game) RolledDice {
	t.Helper()
	roll, err := g.RollDice()
	if err != nil {
		t.Fatalf("RollDice: %v", err)
	}
	if roll.IsSeven() {
		resolveSeven(t, g)
	}
	if g.State() != StateAfterRoll {
		t.Fatalf("state after roll = %s, want after_roll", g.State())
	}
	return roll
}

func totalResources(g *Game) int {
	total := g.Bank().Resources().Total()
	for _, p := range g.Players().Players() {
		total += p.Resources.Total()
	}
	return total
}
