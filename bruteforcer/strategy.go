package main

import (
	"github.com/wricardo/nc2048/game/engine"
)

// Heuristic weights
const (
	emptyWeight    = 270.0
	mergeWeight    = 1.0
	cornerWeight   = 4.0
	monotoneWeight = 47.0
)

// cornerMask rewards keeping big tiles along the top row, snaking down.
// Row 0 is the top.
var cornerMask = [engine.Size][engine.Size]float64{
	{15, 14, 13, 12},
	{8, 9, 10, 11},
	{7, 6, 5, 4},
	{0, 1, 2, 3},
}

// LookaheadStrategy searches every move sequence up to Depth moves deep and
// scores the resulting boards. Spawns are ignored, so the search is exact
// only for the first move.
type LookaheadStrategy struct {
	Depth int

	nodes int
}

// NewLookaheadStrategy returns a strategy searching depth moves ahead
func NewLookaheadStrategy(depth int) *LookaheadStrategy {
	if depth < 1 {
		depth = 1
	}
	return &LookaheadStrategy{Depth: depth}
}

// NextMove returns the best direction for g, or false when nothing moves
func (s *LookaheadStrategy) NextMove(g engine.Grid) (engine.Direction, bool) {
	var best engine.Direction
	bestScore, found := 0.0, false

	for _, dir := range engine.Directions {
		next, count, gained := engine.SimulateMove(g, dir)
		if count == 0 {
			continue
		}
		score := mergeWeight*float64(gained) + s.search(next, s.Depth-1)
		if !found || score > bestScore {
			best, bestScore, found = dir, score, true
		}
	}
	return best, found
}

// Plan returns up to n moves chained on the simulated board. The server
// spawns tiles in between, so a long plan drifts from reality.
func (s *LookaheadStrategy) Plan(g engine.Grid, n int) []engine.Direction {
	plan := make([]engine.Direction, 0, n)
	for len(plan) < n {
		dir, ok := s.NextMove(g)
		if !ok {
			break
		}
		g, _, _ = engine.SimulateMove(g, dir)
		plan = append(plan, dir)
	}
	return plan
}

// Nodes is how many boards were evaluated since the last Reset
func (s *LookaheadStrategy) Nodes() int {
	return s.nodes
}

// Reset clears the node counter
func (s *LookaheadStrategy) Reset() {
	s.nodes = 0
}

func (s *LookaheadStrategy) search(g engine.Grid, depth int) float64 {
	s.nodes++
	if depth <= 0 {
		return evaluate(g)
	}

	best, found := 0.0, false
	for _, dir := range engine.Directions {
		next, count, gained := engine.SimulateMove(g, dir)
		if count == 0 {
			continue
		}
		if score := mergeWeight*float64(gained) + s.search(next, depth-1); !found || score > best {
			best, found = score, true
		}
	}
	if !found {
		// Stuck: no further moves, judge the board as it is
		return evaluate(g)
	}
	return best
}

// evaluate rewards empty cells and big tiles along the corner snake, and
// penalises rows and columns that zigzag
func evaluate(g engine.Grid) float64 {
	score := emptyWeight * float64(g.EmptyCells())

	for y, row := range g {
		for x, cell := range row {
			score += cornerWeight * cornerMask[y][x] * float64(cell)
		}
	}

	score -= monotoneWeight * float64(nonMonotonicity(g))
	return score
}

// nonMonotonicity sums, over every row and column, the smaller of the
// increasing and decreasing exponent steps
func nonMonotonicity(g engine.Grid) int {
	total := 0
	for i := 0; i < engine.Size; i++ {
		var incRow, decRow, incCol, decCol int
		for j := 0; j+1 < engine.Size; j++ {
			if d := g[i][j+1] - g[i][j]; d > 0 {
				incRow += d
			} else {
				decRow -= d
			}
			if d := g[j+1][i] - g[j][i]; d > 0 {
				incCol += d
			} else {
				decCol -= d
			}
		}
		total += min(incRow, decRow) + min(incCol, decCol)
	}
	return total
}
