package game

// LongestRoadLength returns the length of colour's longest continuous road.
//
// A walk starts at every point the colour's roads touch. Each walk may use
// an edge once, explores every branch and stops at points holding an
// opposing house. Starting only at branch ends would miss a loop whose
// network has a separate road elsewhere.
func (bm *BuildingManager) LongestRoadLength(colour PlayerColour) int {
	roads := bm.RoadsOfColour(colour)
	if len(roads) == 0 {
		return 0
	}

	var starts []Point
	seen := make(map[Point]bool)
	for _, r := range roads {
		for _, p := range r.Points() {
			if !seen[p] {
				seen[p] = true
				starts = append(starts, p)
			}
		}
	}

	longest := 0
	for _, p := range starts {
		longest = max(longest, bm.walkRoad(colour, p, make(map[edgeKey]bool), 0))
	}
	return longest
}

func (bm *BuildingManager) walkRoad(colour PlayerColour, at Point, used map[edgeKey]bool, distance int) int {
	if distance > 0 {
		if h := bm.houses[at]; h.IsClaimed() && h.Colour != colour {
			return distance
		}
	}

	best := distance
	for _, r := range bm.roadsAt[at] {
		if r.Colour != colour {
			continue
		}
		key := newEdgeKey(r.First, r.Second)
		if used[key] {
			continue
		}
		used[key] = true
		best = max(best, bm.walkRoad(colour, r.Other(at), used, distance+1))
		delete(used, key)
	}
	return best
}
