package game

import (
	"fmt"
	"strings"
)

var resourceGlyphs = map[ResourceType]string{
	ResourceNone:   "--",
	ResourceWood:   "Wd",
	ResourceClay:   "Cl",
	ResourceAnimal: "An",
	ResourceFood:   "Fd",
	ResourceMetal:  "Mt",
}

// Debug returns a text rendering of the board.
func (b *Board) Debug() string {
	var sb strings.Builder

	colour, length := b.LongestRoadHolder()
	sb.WriteString(fmt.Sprintf("Tiles: %d\n", len(b.tiles.Tiles())))
	sb.WriteString(fmt.Sprintf("Thief: %s\n", b.thief))
	if colour != ColourNone {
		sb.WriteString(fmt.Sprintf("Longest road: %s (%d)\n", colour, length))
	}

	// Tile grid, one cell per tile point
	sb.WriteString("\nTile Grid:\n")
	for y := 0; y < TileGridHeight; y++ {
		sb.WriteString(strings.Repeat("   ", y))
		for x := 0; x < TileGridWidth; x++ {
			p := Point{X: x, Y: y}
			t, ok := b.tiles.Tile(p)
			switch {
			case !ok:
				sb.WriteString("      ")
			case p == b.thief:
				sb.WriteString(fmt.Sprintf(" %s*%2d", resourceGlyphs[t.Resource], t.ActivationNumber))
			default:
				sb.WriteString(fmt.Sprintf(" %s %2d", resourceGlyphs[t.Resource], t.ActivationNumber))
			}
		}
		sb.WriteString("\n")
	}

	// House grid: initials of the owner, upper case for towns
	sb.WriteString("\nHouse Grid:\n")
	for y := 0; y < HouseGridHeight; y++ {
		for x := 0; x < HouseGridWidth; x++ {
			h, ok := b.buildings.House(Point{X: x, Y: y})
			switch {
			case !ok:
				sb.WriteString("  ")
			case !h.IsClaimed():
				sb.WriteString(" .")
			case h.Type == HouseTown:
				sb.WriteString(" " + strings.ToUpper(string(h.Colour[0])))
			default:
				sb.WriteString(" " + string(h.Colour[0]))
			}
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\nRoads:\n")
	for _, r := range b.buildings.Roads() {
		if r.IsClaimed() {
			sb.WriteString(fmt.Sprintf("  %s %s-%s\n", r.Colour, r.First, r.Second))
		}
	}

	sb.WriteString("\nPorts:\n")
	for _, p := range b.Ports() {
		sb.WriteString(fmt.Sprintf("  %s %s\n", p.Point, p.Type))
	}

	return sb.String()
}
