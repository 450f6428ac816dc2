package game

import "slices"

// Board dimensions for house points. Houses sit on an 11x6 grid; tiles on a
// 5x5 grid. Both are clipped to the hexagonal island by the predicates below.
const (
	HouseGridWidth  = 11
	HouseGridHeight = 6
	TileGridWidth   = 5
	TileGridHeight  = 5
)

// roadVectors are the two neighbour offsets tested from every house point.
var roadVectors = []Point{{X: 0, Y: -1}, {X: -1, Y: 0}}

// IsHousePoint reports whether p is one of the 54 house slots.
func IsHousePoint(p Point) bool {
	if p.X < 0 || p.X >= HouseGridWidth || p.Y < 0 || p.Y >= HouseGridHeight {
		return false
	}
	sum, diff := p.X+p.Y, p.Y-p.X
	return sum >= 2 && sum <= 13 && diff >= -8 && diff <= 3
}

// IsTilePoint reports whether p is one of the 19 tile positions.
func IsTilePoint(p Point) bool {
	if p.X < 0 || p.X >= TileGridWidth || p.Y < 0 || p.Y >= TileGridHeight {
		return false
	}
	sum := p.X + p.Y
	return sum >= 2 && sum <= 6
}

// HousePoints returns all house points row by row.
func HousePoints() []Point {
	points := make([]Point, 0, 54)
	for y := 0; y < HouseGridHeight; y++ {
		for x := 0; x < HouseGridWidth; x++ {
			if p := NewPoint(x, y); IsHousePoint(p) {
				points = append(points, p)
			}
		}
	}
	return points
}

// TilePoints returns all tile points row by row.
func TilePoints() []Point {
	points := make([]Point, 0, 19)
	for y := 0; y < TileGridHeight; y++ {
		for x := 0; x < TileGridWidth; x++ {
			if p := NewPoint(x, y); IsTilePoint(p) {
				points = append(points, p)
			}
		}
	}
	return points
}

// RoadEdges returns the 72 house-point pairs that may hold a road. A
// vertical candidate is kept only when its parity matches the hex column,
// which drops edges that would cut across a tile.
func RoadEdges() [][2]Point {
	edges := make([][2]Point, 0, 72)
	for _, p := range HousePoints() {
		for _, v := range roadVectors {
			q := p.Add(v)
			if !IsHousePoint(q) {
				continue
			}
			if min(p.Y, q.Y)%2 != p.X%2 && v.Y != 0 {
				continue
			}
			edges = append(edges, [2]Point{q, p})
		}
	}
	return edges
}

// HousePointsAroundTile returns the six house points at the corners of a tile.
func HousePointsAroundTile(tile Point) []Point {
	firstX := 2*(tile.X-1) + tile.Y
	points := make([]Point, 0, 6)
	for j := 0; j <= 1; j++ {
		for i := 0; i <= 2; i++ {
			points = append(points, NewPoint(firstX+i, tile.Y+j))
		}
	}
	return points
}

// TilePointsAroundHouse returns the one to three tiles touching a house point.
func TilePointsAroundHouse(house Point) []Point {
	x := floorDiv(house.X-house.Y, 2) + 1
	candidates := []Point{
		NewPoint(x, house.Y),
		NewPoint(x, house.Y-1),
	}
	if (house.X+house.Y)%2 == 1 {
		candidates = append(candidates, NewPoint(x+1, house.Y-1))
	} else {
		candidates = append(candidates, NewPoint(x-1, house.Y))
	}

	tiles := make([]Point, 0, 3)
	for _, c := range candidates {
		if IsTilePoint(c) {
			tiles = append(tiles, c)
		}
	}
	slices.SortFunc(tiles, comparePoints)
	return tiles
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func comparePoints(a, b Point) int {
	switch {
	case a.Less(b):
		return -1
	case b.Less(a):
		return 1
	default:
		return 0
	}
}

// portEdges are the coastal edges that carry a port. Each port covers both
// house points of its edge.
var portEdges = [][2]Point{
	{{X: 2, Y: 0}, {X: 3, Y: 0}},
	{{X: 5, Y: 0}, {X: 6, Y: 0}},
	{{X: 9, Y: 1}, {X: 9, Y: 2}},
	{{X: 10, Y: 2}, {X: 10, Y: 3}},
	{{X: 8, Y: 4}, {X: 9, Y: 4}},
	{{X: 6, Y: 5}, {X: 7, Y: 5}},
	{{X: 3, Y: 5}, {X: 4, Y: 5}},
	{{X: 1, Y: 3}, {X: 1, Y: 4}},
	{{X: 1, Y: 1}, {X: 1, Y: 2}},
}
