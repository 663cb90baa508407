package engine

// ScoreTracker accumulates the score and the highest merged tile
type ScoreTracker struct {
	score   int
	maxTile int
}

// OnMerge records a merge that produced a tile showing value
func (s *ScoreTracker) OnMerge(value int) {
	s.score += value
	if value > s.maxTile {
		s.maxTile = value
	}
}

// Reset zeroes both counters
func (s *ScoreTracker) Reset() {
	s.score = 0
	s.maxTile = 0
}

// Score returns the cumulative score
func (s *ScoreTracker) Score() int {
	return s.score
}

// MaxTile returns the highest displayed value produced by a merge
func (s *ScoreTracker) MaxTile() int {
	return s.maxTile
}
