package game

import "slices"

// BuildingManager owns the fixed graph of house and road slots generated at
// board construction. Placement only colours existing slots.
type BuildingManager struct {
	houses  map[Point]*House
	roads   map[edgeKey]*Road
	roadsAt map[Point][]*Road
	points  []Point
	edges   []*Road
}

// NewBuildingManager builds the 54 house slots and 72 road slots.
func NewBuildingManager() *BuildingManager {
	bm := &BuildingManager{
		houses:  make(map[Point]*House),
		roads:   make(map[edgeKey]*Road),
		roadsAt: make(map[Point][]*Road),
	}

	for _, p := range HousePoints() {
		bm.houses[p] = &House{Building: Building{Kind: BuildingHouse}, Point: p}
		bm.points = append(bm.points, p)
	}

	for _, e := range RoadEdges() {
		r := &Road{Building: Building{Kind: BuildingRoad}, First: e[0], Second: e[1]}
		bm.roads[newEdgeKey(e[0], e[1])] = r
		bm.roadsAt[e[0]] = append(bm.roadsAt[e[0]], r)
		bm.roadsAt[e[1]] = append(bm.roadsAt[e[1]], r)
		bm.edges = append(bm.edges, r)
	}

	return bm
}

// House returns the house slot at p.
func (bm *BuildingManager) House(p Point) (*House, bool) {
	h, ok := bm.houses[p]
	return h, ok
}

// Road returns the road slot between p and q.
func (bm *BuildingManager) Road(p, q Point) (*Road, bool) {
	r, ok := bm.roads[newEdgeKey(p, q)]
	return r, ok
}

// Houses returns every house slot row by row.
func (bm *BuildingManager) Houses() []*House {
	houses := make([]*House, 0, len(bm.points))
	for _, p := range bm.points {
		houses = append(houses, bm.houses[p])
	}
	return houses
}

// Roads returns every road slot.
func (bm *BuildingManager) Roads() []*Road {
	return slices.Clone(bm.edges)
}

// RoadsAt returns the road slots touching p.
func (bm *BuildingManager) RoadsAt(p Point) []*Road {
	return bm.roadsAt[p]
}

// AdjacentHousePoints returns the house points one road away from p.
func (bm *BuildingManager) AdjacentHousePoints(p Point) []Point {
	roads := bm.roadsAt[p]
	points := make([]Point, 0, len(roads))
	for _, r := range roads {
		points = append(points, r.Other(p))
	}
	return points
}

// HousesOfColour returns the houses owned by colour.
func (bm *BuildingManager) HousesOfColour(colour PlayerColour) []*House {
	var houses []*House
	for _, p := range bm.points {
		if h := bm.houses[p]; h.Colour == colour && colour != ColourNone {
			houses = append(houses, h)
		}
	}
	return houses
}

// RoadsOfColour returns the roads owned by colour.
func (bm *BuildingManager) RoadsOfColour(colour PlayerColour) []*Road {
	var roads []*Road
	for _, r := range bm.edges {
		if r.Colour == colour && colour != ColourNone {
			roads = append(roads, r)
		}
	}
	return roads
}

// HasRoadOfColourAt reports whether colour owns a road touching p.
func (bm *BuildingManager) HasRoadOfColourAt(colour PlayerColour, p Point) bool {
	return bm.roadCountAt(colour, p) > 0
}

func (bm *BuildingManager) roadCountAt(colour PlayerColour, p Point) int {
	n := 0
	for _, r := range bm.roadsAt[p] {
		if r.Colour == colour {
			n++
		}
	}
	return n
}

// CanAddVillage checks the colour, occupancy and distance rules. Road
// connectivity depends on the phase and is checked by the board.
func (bm *BuildingManager) CanAddVillage(colour PlayerColour, p Point) error {
	if colour == ColourNone {
		return ErrInvalidPlayerColour
	}
	h, ok := bm.houses[p]
	if !ok {
		return errorf(ErrInvalidBuildLocation, "%s is not a house point", p)
	}
	if h.IsClaimed() {
		return ErrVillageAlreadyExists
	}
	for _, q := range bm.AdjacentHousePoints(p) {
		if bm.houses[q].IsClaimed() {
			return errorf(ErrVillageIsTooClose, "%s neighbours a house at %s", p, q)
		}
	}
	return nil
}

// AddVillage claims the house slot at p.
func (bm *BuildingManager) AddVillage(colour PlayerColour, p Point) error {
	if err := bm.CanAddVillage(colour, p); err != nil {
		return err
	}
	h := bm.houses[p]
	h.Colour = colour
	h.Type = HouseVillage
	return nil
}

// CanUpgradeVillage checks that p holds a village that can become a town.
// Ownership is checked by the board.
func (bm *BuildingManager) CanUpgradeVillage(p Point) error {
	h, ok := bm.houses[p]
	if !ok {
		return errorf(ErrInvalidBuildLocation, "%s is not a house point", p)
	}
	if !h.IsClaimed() {
		return errorf(ErrInvalidBuildLocation, "no village at %s", p)
	}
	if h.Type == HouseTown {
		return ErrVillageAlreadyUpgraded
	}
	return nil
}

// UpgradeVillage turns the village at p into a town.
func (bm *BuildingManager) UpgradeVillage(p Point) error {
	if err := bm.CanUpgradeVillage(p); err != nil {
		return err
	}
	bm.houses[p].Type = HouseTown
	return nil
}

// CanAddRoad checks the colour and that the slot exists and is free.
func (bm *BuildingManager) CanAddRoad(colour PlayerColour, p, q Point) error {
	if colour == ColourNone {
		return ErrInvalidPlayerColour
	}
	r, ok := bm.Road(p, q)
	if !ok {
		return errorf(ErrInvalidRoadPoints, "no road slot between %s and %s", p, q)
	}
	if r.IsClaimed() {
		return ErrRoadAlreadyExists
	}
	return nil
}

// AddRoad claims the road slot between p and q.
func (bm *BuildingManager) AddRoad(colour PlayerColour, p, q Point) error {
	if err := bm.CanAddRoad(colour, p, q); err != nil {
		return err
	}
	r, _ := bm.Road(p, q)
	r.Colour = colour
	return nil
}
