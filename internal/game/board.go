package game

import (
	"math/rand"

	"github.com/rs/zerolog"

	"natak/internal/logger"
)

// Board composes the tiles, building slots, ports and thief. It is the
// single surface for placement legality and board-derived queries.
type Board struct {
	tiles     *TileManager
	buildings *BuildingManager
	ports     map[Point]PortType
	thief     Point

	longestRoadColour PlayerColour
	longestRoadLength int
	longestRoadMin    int

	log zerolog.Logger
}

// NewBoard generates a board. Tile, number and port layouts come from rng.
func NewBoard(rng *rand.Rand, rules Rules, log zerolog.Logger) (*Board, error) {
	tiles, err := NewTileManager(rng, rules)
	if err != nil {
		return nil, err
	}
	return newBoard(tiles, shufflePorts(rng), rules, log), nil
}

// NewBoardFromLayout builds a board from a fixed tile layout and port
// assignment, one port type per coastal port edge.
func NewBoardFromLayout(tiles []Tile, ports []PortType, rules Rules, log zerolog.Logger) (*Board, error) {
	tm, err := NewTileManagerFromTiles(tiles)
	if err != nil {
		return nil, err
	}
	return newBoard(tm, ports, rules, log), nil
}

func newBoard(tiles *TileManager, ports []PortType, rules Rules, log zerolog.Logger) *Board {
	b := &Board{
		tiles:          tiles,
		buildings:      NewBuildingManager(),
		ports:          make(map[Point]PortType),
		thief:          tiles.Desert().Point,
		longestRoadMin: rules.LongestRoadMinimum,
		log:            logger.Component(log, "Board"),
	}
	for i, edge := range portEdges {
		if i >= len(ports) {
			break
		}
		b.ports[edge[0]] = ports[i]
		b.ports[edge[1]] = ports[i]
	}
	return b
}

// shufflePorts returns four generic ports and one port per resource in a
// random order.
func shufflePorts(rng *rand.Rand) []PortType {
	ports := []PortType{PortThreeToOne, PortThreeToOne, PortThreeToOne, PortThreeToOne}
	for _, r := range AllResourceTypes() {
		ports = append(ports, PortForResource(r))
	}
	rng.Shuffle(len(ports), func(i, j int) {
		ports[i], ports[j] = ports[j], ports[i]
	})
	return ports
}

// Tiles returns the tile manager.
func (b *Board) Tiles() *TileManager {
	return b.tiles
}

// Buildings returns the building manager.
func (b *Board) Buildings() *BuildingManager {
	return b.buildings
}

// House returns the house slot at p.
func (b *Board) House(p Point) (*House, bool) {
	return b.buildings.House(p)
}

// Road returns the road slot between p and q.
func (b *Board) Road(p, q Point) (*Road, bool) {
	return b.buildings.Road(p, q)
}

// Ports returns every port entry row by row.
func (b *Board) Ports() []Port {
	var ports []Port
	for _, p := range HousePoints() {
		if t, ok := b.ports[p]; ok {
			ports = append(ports, Port{Type: t, Point: p})
		}
	}
	return ports
}

// PortAt returns the port on a house point.
func (b *Board) PortAt(p Point) (PortType, bool) {
	t, ok := b.ports[p]
	return t, ok
}

// ThiefPoint returns the tile the thief sits on.
func (b *Board) ThiefPoint() Point {
	return b.thief
}

// CanPlaceVillage checks a village placement. Outside setup the village must
// touch one of the colour's roads.
func (b *Board) CanPlaceVillage(colour PlayerColour, p Point, setup bool) error {
	if err := b.buildings.CanAddVillage(colour, p); err != nil {
		return err
	}
	if !setup && !b.buildings.HasRoadOfColourAt(colour, p) {
		return ErrVillageDoesNotConnect
	}
	return nil
}

// PlaceVillage places a village after checking it.
func (b *Board) PlaceVillage(colour PlayerColour, p Point, setup bool) error {
	if err := b.CanPlaceVillage(colour, p, setup); err != nil {
		return err
	}
	if err := b.buildings.AddVillage(colour, p); err != nil {
		return err
	}
	b.log.Debug().Str("colour", string(colour)).Stringer("point", p).Msg("village placed")
	return nil
}

// CanUpgradeVillage checks that colour owns an upgradable village at p.
func (b *Board) CanUpgradeVillage(colour PlayerColour, p Point) error {
	if err := b.buildings.CanUpgradeVillage(p); err != nil {
		return err
	}
	if h, _ := b.buildings.House(p); h.Colour != colour {
		return ErrVillageNotOwnedByPlayer
	}
	return nil
}

// UpgradeVillage turns colour's village at p into a town.
func (b *Board) UpgradeVillage(colour PlayerColour, p Point) error {
	if err := b.CanUpgradeVillage(colour, p); err != nil {
		return err
	}
	return b.buildings.UpgradeVillage(p)
}

// CanPlaceRoadBetweenPoints checks a main-phase road: the slot must be free,
// not blocked by an opposing house, and connected to the colour's network.
func (b *Board) CanPlaceRoadBetweenPoints(colour PlayerColour, p, q Point) error {
	return b.canPlaceRoad(colour, p, q, nil)
}

// CanPlaceRoadPair checks two roads placed in sequence, treating the first
// as already built when checking the second. Nothing is mutated.
func (b *Board) CanPlaceRoadPair(colour PlayerColour, first, second [2]Point) error {
	if err := b.canPlaceRoad(colour, first[0], first[1], nil); err != nil {
		return err
	}
	assumed := newEdgeKey(first[0], first[1])
	return b.canPlaceRoad(colour, second[0], second[1], &assumed)
}

// canPlaceRoad checks a road, optionally treating one extra edge as owned
// by colour.
func (b *Board) canPlaceRoad(colour PlayerColour, p, q Point, assumed *edgeKey) error {
	if err := b.buildings.CanAddRoad(colour, p, q); err != nil {
		return err
	}
	if assumed != nil && *assumed == newEdgeKey(p, q) {
		return ErrRoadAlreadyExists
	}

	hasRoad := func(at Point) bool {
		if b.buildings.HasRoadOfColourAt(colour, at) {
			return true
		}
		return assumed != nil && (assumed.a == at || assumed.b == at)
	}
	opposing := func(at Point) bool {
		h, _ := b.buildings.House(at)
		return h.IsClaimed() && h.Colour != colour
	}
	owns := func(at Point) bool {
		h, _ := b.buildings.House(at)
		return h.Colour == colour
	}

	if (opposing(p) && !hasRoad(q)) || (opposing(q) && !hasRoad(p)) {
		return ErrRoadIsBlocked
	}
	for _, at := range []Point{p, q} {
		if owns(at) || (hasRoad(at) && !opposing(at)) {
			return nil
		}
	}
	return ErrRoadDoesNotConnect
}

// CanPlaceSetupRoadBetweenPoints checks a setup road. It must leave from one
// of the colour's houses that has no road of that colour yet, so each setup
// road belongs to the village placed just before it.
func (b *Board) CanPlaceSetupRoadBetweenPoints(colour PlayerColour, p, q Point) error {
	if err := b.CanPlaceRoadBetweenPoints(colour, p, q); err != nil {
		return err
	}
	for _, at := range []Point{p, q} {
		h, _ := b.buildings.House(at)
		if h.Colour == colour && !b.buildings.HasRoadOfColourAt(colour, at) {
			return nil
		}
	}
	return errorf(ErrRoadDoesNotConnect, "setup road must leave from a village without a road")
}

// PlaceRoad places a main-phase road after checking it.
func (b *Board) PlaceRoad(colour PlayerColour, p, q Point) error {
	if err := b.CanPlaceRoadBetweenPoints(colour, p, q); err != nil {
		return err
	}
	return b.addRoad(colour, p, q)
}

// PlaceSetupRoad places a setup road after checking it.
func (b *Board) PlaceSetupRoad(colour PlayerColour, p, q Point) error {
	if err := b.CanPlaceSetupRoadBetweenPoints(colour, p, q); err != nil {
		return err
	}
	return b.addRoad(colour, p, q)
}

func (b *Board) addRoad(colour PlayerColour, p, q Point) error {
	if err := b.buildings.AddRoad(colour, p, q); err != nil {
		return err
	}
	b.log.Debug().Str("colour", string(colour)).Stringer("from", p).Stringer("to", q).Msg("road placed")
	return nil
}

// CanMoveThief checks that p is a tile other than the thief's current one.
func (b *Board) CanMoveThief(p Point) error {
	if _, ok := b.tiles.Tile(p); !ok {
		return errorf(ErrInvalidThiefLocation, "%s is not a tile", p)
	}
	if p == b.thief {
		return errorf(ErrInvalidThiefLocation, "thief is already on %s", p)
	}
	return nil
}

// MoveThief moves the thief to p.
func (b *Board) MoveThief(p Point) error {
	if err := b.CanMoveThief(p); err != nil {
		return err
	}
	b.thief = p
	return nil
}

// ResourcesAroundHouse returns the resource of every non-desert tile
// touching the house point.
func (b *Board) ResourcesAroundHouse(p Point) []ResourceType {
	var resources []ResourceType
	for _, tp := range TilePointsAroundHouse(p) {
		if t, ok := b.tiles.Tile(tp); ok && !t.IsDesert() {
			resources = append(resources, t.Resource)
		}
	}
	return resources
}

// HousesOnTile returns the claimed houses at the corners of a tile.
func (b *Board) HousesOnTile(tile Point) []*House {
	var houses []*House
	for _, p := range HousePointsAroundTile(tile) {
		if h, ok := b.buildings.House(p); ok && h.IsClaimed() {
			houses = append(houses, h)
		}
	}
	return houses
}

// ColoursOnTile returns the distinct colours with a house on a tile.
func (b *Board) ColoursOnTile(tile Point) []PlayerColour {
	var colours []PlayerColour
	seen := make(map[PlayerColour]bool)
	for _, h := range b.HousesOnTile(tile) {
		if !seen[h.Colour] {
			seen[h.Colour] = true
			colours = append(colours, h.Colour)
		}
	}
	return colours
}

// Yield returns what each colour earns from a roll: one card per village
// and two per town on every matching tile not holding the thief.
func (b *Board) Yield(roll int) map[PlayerColour]map[ResourceType]int {
	yield := make(map[PlayerColour]map[ResourceType]int)
	for _, t := range b.tiles.TilesWithActivationNumber(roll) {
		if t.Point == b.thief {
			continue
		}
		for _, h := range b.HousesOnTile(t.Point) {
			if yield[h.Colour] == nil {
				yield[h.Colour] = make(map[ResourceType]int)
			}
			yield[h.Colour][t.Resource] += h.Type.Points()
		}
	}
	return yield
}

// LongestRoadLength returns colour's longest road.
func (b *Board) LongestRoadLength(colour PlayerColour) int {
	return b.buildings.LongestRoadLength(colour)
}

// LongestRoadHolder returns the award holder and their length.
func (b *Board) LongestRoadHolder() (PlayerColour, int) {
	return b.longestRoadColour, b.longestRoadLength
}

// UpdateLongestRoad recomputes the award after a placement. Another colour
// takes the award only by strictly exceeding the holder's current length,
// so ties never move it. If nobody reaches the minimum the award is cleared.
// It returns the previous and current holders.
func (b *Board) UpdateLongestRoad(colours []PlayerColour) (PlayerColour, PlayerColour) {
	previous := b.longestRoadColour
	if previous != ColourNone {
		b.longestRoadLength = b.buildings.LongestRoadLength(previous)
	}

	bestColour, bestLength := ColourNone, 0
	for _, c := range colours {
		if c == previous {
			continue
		}
		if n := b.buildings.LongestRoadLength(c); n > bestLength {
			bestColour, bestLength = c, n
		}
	}

	switch {
	case bestLength >= b.longestRoadMin && bestLength > b.longestRoadLength:
		b.longestRoadColour, b.longestRoadLength = bestColour, bestLength
	case previous != ColourNone && b.longestRoadLength < b.longestRoadMin:
		b.longestRoadColour, b.longestRoadLength = ColourNone, 0
	}

	if b.longestRoadColour != previous {
		b.log.Info().
			Str("from", string(previous)).
			Str("to", string(b.longestRoadColour)).
			Int("length", b.longestRoadLength).
			Msg("longest road changed hands")
	}
	return previous, b.longestRoadColour
}
