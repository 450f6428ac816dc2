package game

// AwardPoints is the value of the longest road and largest army awards.
const AwardPoints = 2

// PlayerScoreManager tracks a player's victory points. Visible points come
// from houses and awards; hidden points from victory-point cards.
type PlayerScoreManager struct {
	VisiblePoints  int
	HiddenPoints   int
	HasLargestArmy bool
	HasLongestRoad bool
}

// NewPlayerScoreManager creates an empty score.
func NewPlayerScoreManager() *PlayerScoreManager {
	return &PlayerScoreManager{}
}

// Total returns visible plus hidden points.
func (s *PlayerScoreManager) Total() int {
	return s.VisiblePoints + s.HiddenPoints
}

func (s *PlayerScoreManager) AddVisible(n int) {
	s.VisiblePoints += n
}

func (s *PlayerScoreManager) AddHidden(n int) {
	s.HiddenPoints += n
}

// SetLargestArmy grants or removes the largest army award.
func (s *PlayerScoreManager) SetLargestArmy(has bool) {
	if has == s.HasLargestArmy {
		return
	}
	s.HasLargestArmy = has
	if has {
		s.VisiblePoints += AwardPoints
	} else {
		s.VisiblePoints -= AwardPoints
	}
}

// SetLongestRoad grants or removes the longest road award.
func (s *PlayerScoreManager) SetLongestRoad(has bool) {
	if has == s.HasLongestRoad {
		return
	}
	s.HasLongestRoad = has
	if has {
		s.VisiblePoints += AwardPoints
	} else {
		s.VisiblePoints -= AwardPoints
	}
}
