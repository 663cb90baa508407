package engine

// SimulateMove applies direction to a copy of g and returns the copy together
// with the move count and the score the merges would add
func SimulateMove(g Grid, direction Direction) (Grid, int, int) {
	gained := 0
	count := g.Move(direction, func(value int) {
		gained += value
	})
	return g, count, gained
}

// GreedyMove picks the direction whose merges add the most score. Ties go to
// the direction that leaves the most empty cells, then to Directions order.
// It returns false when no direction changes the grid.
func GreedyMove(g Grid) (Direction, bool) {
	var best Direction
	bestGain, bestEmpty := -1, -1

	for _, dir := range Directions {
		next, count, gained := SimulateMove(g, dir)
		if count == 0 {
			continue
		}
		empty := next.EmptyCells()
		if gained > bestGain || (gained == bestGain && empty > bestEmpty) {
			best, bestGain, bestEmpty = dir, gained, empty
		}
	}

	return best, bestGain >= 0
}
