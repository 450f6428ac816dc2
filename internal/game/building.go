package game

// BuildingKind discriminates the two kinds of building slot.
type BuildingKind int

const (
	BuildingHouse BuildingKind = iota
	BuildingRoad
)

// Building holds the fields shared by house and road slots.
type Building struct {
	Kind   BuildingKind `json:"-"`
	Colour PlayerColour `json:"colour,omitempty"`
}

// IsClaimed reports whether a player owns the slot.
func (b Building) IsClaimed() bool {
	return b.Colour != ColourNone
}

// House is a house slot. Colour is none exactly when Type is none.
type House struct {
	Building
	Point Point     `json:"point"`
	Type  HouseType `json:"type"`
}

// Road is a road slot between two adjacent house points. First is always
// the lesser point.
type Road struct {
	Building
	First  Point `json:"first"`
	Second Point `json:"second"`
}

// Touches reports whether p is an endpoint of the road.
func (r *Road) Touches(p Point) bool {
	return r.First == p || r.Second == p
}

// Other returns the endpoint opposite p.
func (r *Road) Other(p Point) Point {
	if r.First == p {
		return r.Second
	}
	return r.First
}

// Points returns both endpoints.
func (r *Road) Points() [2]Point {
	return [2]Point{r.First, r.Second}
}

// edgeKey identifies a road independent of endpoint order.
type edgeKey struct {
	a, b Point
}

func newEdgeKey(p, q Point) edgeKey {
	if q.Less(p) {
		p, q = q, p
	}
	return edgeKey{a: p, b: q}
}

// Port is a fixed trade bonus on a house point.
type Port struct {
	Type  PortType `json:"type"`
	Point Point    `json:"point"`
}
