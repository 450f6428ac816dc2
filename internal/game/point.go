package game

import "fmt"

// Point is a coordinate in the board's offset coordinate system. House
// points and tile points use separate grids.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// NewPoint creates a point.
func NewPoint(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns p translated by v.
func (p Point) Add(v Point) Point {
	return Point{X: p.X + v.X, Y: p.Y + v.Y}
}

// Less orders points row by row.
func (p Point) Less(o Point) bool {
	if p.Y != o.Y {
		return p.Y < o.Y
	}
	return p.X < o.X
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}
