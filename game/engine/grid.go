package engine

import (
	"errors"
	"fmt"
)

var (
	ErrGridFull         = errors.New("grid is full")
	ErrInvalidDirection = errors.New("invalid direction")
	ErrInvalidGrid      = errors.New("invalid grid")
)

// Grid holds tile exponents indexed [row][column]. Zero is an empty cell,
// any other value E is a tile showing 2^E.
type Grid [Size][Size]int

func (g *Grid) at(p Position) int {
	return g[p.Y][p.X]
}

func (g *Grid) set(p Position, exponent int) {
	g[p.Y][p.X] = exponent
}

// Clear empties every cell
func (g *Grid) Clear() {
	*g = Grid{}
}

// IsFull reports whether no cell is empty
func (g Grid) IsFull() bool {
	for _, row := range g {
		for _, cell := range row {
			if cell == 0 {
				return false
			}
		}
	}
	return true
}

// EmptyCells counts the empty cells
func (g Grid) EmptyCells() int {
	count := 0
	for _, row := range g {
		for _, cell := range row {
			if cell == 0 {
				count++
			}
		}
	}
	return count
}

// Values returns the displayed values, 0 for empty cells
func (g Grid) Values() [Size][Size]int {
	var out [Size][Size]int
	for y, row := range g {
		for x, cell := range row {
			out[y][x] = TileValue(cell)
		}
	}
	return out
}

// Sum returns the total displayed value of all tiles
func (g Grid) Sum() int {
	sum := 0
	for _, row := range g {
		for _, cell := range row {
			sum += TileValue(cell)
		}
	}
	return sum
}

// Validate checks that every cell is within [0, MaxExponent]
func (g Grid) Validate() error {
	for y, row := range g {
		for x, cell := range row {
			if cell < 0 || cell > MaxExponent {
				return fmt.Errorf("%w: cell (%d,%d) has exponent %d, want 0..%d", ErrInvalidGrid, x, y, cell, MaxExponent)
			}
		}
	}
	return nil
}

// SpawnTile places a new tile on a random empty cell. Coordinates are drawn
// over the whole grid and redrawn until an empty cell comes up. The tile is a
// 2 with probability 9/10 and a 4 otherwise.
//
// The grid must have at least one empty cell; a full grid returns ErrGridFull.
func (g *Grid) SpawnTile(rng *Selector) (Spawn, error) {
	if g.IsFull() {
		return Spawn{}, ErrGridFull
	}

	var pos Position
	for {
		pos = Position{X: rng.UniformInt(Size - 1), Y: rng.UniformInt(Size - 1)}
		if g.at(pos) == 0 {
			break
		}
	}

	exponent := 1
	if rng.UniformInt(9) == 0 {
		exponent = 2
	}
	g.set(pos, exponent)

	return Spawn{Position: pos, Exponent: exponent, Value: TileValue(exponent)}, nil
}

// TileValue converts an exponent into the displayed tile value
func TileValue(exponent int) int {
	if exponent <= 0 {
		return 0
	}
	return 1 << exponent
}

// GridFromValues builds a grid from displayed values such as 2, 4, 8.
// Zero marks an empty cell; any other value must be a power of two
// between 2 and WinningValue.
func GridFromValues(values [Size][Size]int) (Grid, error) {
	var g Grid
	for y, row := range values {
		for x, value := range row {
			if value == 0 {
				continue
			}
			exponent := 0
			for v := value; v > 1 && v%2 == 0; v /= 2 {
				exponent++
			}
			if exponent == 0 || TileValue(exponent) != value || exponent > MaxExponent {
				return Grid{}, fmt.Errorf("%w: cell (%d,%d) has value %d", ErrInvalidGrid, x, y, value)
			}
			g[y][x] = exponent
		}
	}
	return g, nil
}
