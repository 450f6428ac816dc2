package game

import (
	"slices"
	"testing"
)

func TestNewTileManagerUsesRules(t *testing.T) {
	rules := DefaultRules()
	tm, err := NewTileManager(newTestRand(), rules)
	if err != nil {
		t.Fatalf("NewTileManager: %v", err)
	}

	tiles := tm.Tiles()
	if len(tiles) != 19 {
		t.Fatalf("got %d tiles, want 19", len(tiles))
	}

	resources := make(map[ResourceType]int)
	var numbers []int
	for _, tile := range tiles {
		resources[tile.Resource]++
		if tile.IsDesert() {
			if tile.ActivationNumber != 0 {
				t.Errorf("desert has number %d", tile.ActivationNumber)
			}
			continue
		}
		numbers = append(numbers, tile.ActivationNumber)
	}
	for r, n := range rules.TileResources {
		if resources[r] != n {
			t.Errorf("%s tiles = %d, want %d", r, resources[r], n)
		}
	}

	want := slices.Clone(rules.ActivationNumbers)
	slices.Sort(want)
	slices.Sort(numbers)
	if !slices.Equal(numbers, want) {
		t.Errorf("activation numbers = %v, want %v", numbers, want)
	}
	if tm.Desert() == nil || !tm.Desert().IsDesert() {
		t.Error("Desert() did not return the desert")
	}
}

func TestNewTileManagerFromTilesValidates(t *testing.T) {
	tests := []struct {
		name   string
		mutate func([]Tile) []Tile
	}{
		{"two deserts", func(ts []Tile) []Tile {
			ts[0] = Tile{Point: ts[0].Point}
			return ts
		}},
		{"off board", func(ts []Tile) []Tile {
			ts[0].Point = NewPoint(0, 0)
			return ts
		}},
		{"seven", func(ts []Tile) []Tile {
			ts[0].ActivationNumber = 7
			return ts
		}},
		{"duplicate point", func(ts []Tile) []Tile {
			ts[1].Point = ts[0].Point
			return ts
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewTileManagerFromTiles(tt.mutate(testLayout())); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestTilesWithActivationNumber(t *testing.T) {
	tm, err := NewTileManagerFromTiles(testLayout())
	if err != nil {
		t.Fatalf("NewTileManagerFromTiles: %v", err)
	}
	if got := len(tm.TilesWithActivationNumber(5)); got != 18 {
		t.Errorf("tiles on 5 = %d, want 18", got)
	}
	if got := len(tm.TilesWithActivationNumber(6)); got != 0 {
		t.Errorf("tiles on 6 = %d, want 0", got)
	}
	if got := len(tm.TilesWithResource(ResourceWood)); got != 18 {
		t.Errorf("wood tiles = %d, want 18", got)
	}
}
