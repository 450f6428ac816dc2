package game

import (
	"fmt"
	"math/rand"
	"slices"
)

// Tile is a resource hex. The desert has ResourceNone and activation number 0.
type Tile struct {
	Resource         ResourceType `json:"resource"`
	ActivationNumber int          `json:"activationNumber"`
	Point            Point        `json:"point"`
}

// IsDesert reports whether the tile yields nothing.
func (t *Tile) IsDesert() bool {
	return t.Resource == ResourceNone
}

// TileManager owns the fixed set of tiles.
type TileManager struct {
	tiles  map[Point]*Tile
	order  []Point
	desert Point
}

// NewTileManager shuffles the configured resources and activation numbers
// onto the tile points using rng.
func NewTileManager(rng *rand.Rand, rules Rules) (*TileManager, error) {
	var resources []ResourceType
	for _, r := range append([]ResourceType{ResourceNone}, AllResourceTypes()...) {
		for i := 0; i < rules.TileResources[r]; i++ {
			resources = append(resources, r)
		}
	}
	points := TilePoints()
	if len(resources) != len(points) {
		return nil, fmt.Errorf("tile resources: have %d, need %d", len(resources), len(points))
	}

	numbers := slices.Clone(rules.ActivationNumbers)
	if len(numbers) != len(points)-rules.TileResources[ResourceNone] {
		return nil, fmt.Errorf("activation numbers: have %d, need %d", len(numbers), len(points)-rules.TileResources[ResourceNone])
	}

	rng.Shuffle(len(resources), func(i, j int) {
		resources[i], resources[j] = resources[j], resources[i]
	})
	rng.Shuffle(len(numbers), func(i, j int) {
		numbers[i], numbers[j] = numbers[j], numbers[i]
	})

	tiles := make([]Tile, 0, len(points))
	for i, p := range points {
		t := Tile{Resource: resources[i], Point: p}
		if !t.IsDesert() {
			t.ActivationNumber, numbers = numbers[0], numbers[1:]
		}
		tiles = append(tiles, t)
	}
	return NewTileManagerFromTiles(tiles)
}

// NewTileManagerFromTiles builds a manager from a fixed layout.
func NewTileManagerFromTiles(tiles []Tile) (*TileManager, error) {
	tm := &TileManager{tiles: make(map[Point]*Tile)}
	deserts := 0
	for i := range tiles {
		t := tiles[i]
		if !IsTilePoint(t.Point) {
			return nil, fmt.Errorf("%s is not a tile point", t.Point)
		}
		if _, dup := tm.tiles[t.Point]; dup {
			return nil, fmt.Errorf("duplicate tile at %s", t.Point)
		}
		if t.IsDesert() {
			deserts++
			tm.desert = t.Point
		} else if t.ActivationNumber < 2 || t.ActivationNumber > 12 || t.ActivationNumber == 7 {
			return nil, fmt.Errorf("tile %s has activation number %d", t.Point, t.ActivationNumber)
		}
		tm.tiles[t.Point] = &t
	}
	if deserts != 1 {
		return nil, fmt.Errorf("need exactly one desert, have %d", deserts)
	}
	for _, p := range TilePoints() {
		if _, ok := tm.tiles[p]; ok {
			tm.order = append(tm.order, p)
		}
	}
	return tm, nil
}

// Tile returns the tile at p.
func (tm *TileManager) Tile(p Point) (*Tile, bool) {
	t, ok := tm.tiles[p]
	return t, ok
}

// Tiles returns every tile row by row.
func (tm *TileManager) Tiles() []*Tile {
	tiles := make([]*Tile, 0, len(tm.order))
	for _, p := range tm.order {
		tiles = append(tiles, tm.tiles[p])
	}
	return tiles
}

// Desert returns the desert tile.
func (tm *TileManager) Desert() *Tile {
	return tm.tiles[tm.desert]
}

// TilesWithActivationNumber returns the tiles that produce on a roll of n.
func (tm *TileManager) TilesWithActivationNumber(n int) []*Tile {
	var tiles []*Tile
	for _, t := range tm.Tiles() {
		if !t.IsDesert() && t.ActivationNumber == n {
			tiles = append(tiles, t)
		}
	}
	return tiles
}

// TilesWithResource returns the tiles of a resource type.
func (tm *TileManager) TilesWithResource(r ResourceType) []*Tile {
	var tiles []*Tile
	for _, t := range tm.Tiles() {
		if t.Resource == r {
			tiles = append(tiles, t)
		}
	}
	return tiles
}
