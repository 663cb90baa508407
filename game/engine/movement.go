package engine

import (
	"fmt"
	"strings"
)

// ParseDirection converts user or wire input into a Direction.
// It accepts the full names in any case plus the w/a/s/d keys.
func ParseDirection(input string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "up", "w":
		return Up, nil
	case "down", "s":
		return Down, nil
	case "left", "a":
		return Left, nil
	case "right", "d":
		return Right, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDirection, input)
}

// line is an ordered run of cell coordinates, anchor end first
type line [Size]Position

// lines returns the Size lines a move in direction collapses, each ordered
// from the anchor end outwards. Rows serve left/right, columns up/down.
func lines(direction Direction) [Size]line {
	var out [Size]line
	for i := 0; i < Size; i++ {
		for j := 0; j < Size; j++ {
			switch direction {
			case Left:
				out[i][j] = Position{X: j, Y: i}
			case Right:
				out[i][j] = Position{X: Size - 1 - j, Y: i}
			case Up:
				out[i][j] = Position{X: i, Y: j}
			case Down:
				out[i][j] = Position{X: i, Y: Size - 1 - j}
			}
		}
	}
	return out
}

// Move slides every tile of the grid towards direction, merging equal
// neighbours once per tile. onMerge, if non-nil, receives the displayed value
// of every merged tile in the order the merges happen. The returned count is
// the number of relocations plus merges; zero means the grid is unchanged.
func (g *Grid) Move(direction Direction, onMerge func(value int)) int {
	if !direction.Valid() {
		return 0
	}
	moved := 0
	for _, ln := range lines(direction) {
		moved += g.compact(ln, onMerge)
	}
	return moved
}

// compact collapses one line towards its anchor.
//
// boundary is the first index in the line that is not yet settled. Cells
// before it can neither receive a tile nor merge again during this pass.
func (g *Grid) compact(ln line, onMerge func(value int)) int {
	moved := 0
	boundary := 0

	for p := 1; p < Size; p++ {
		src := ln[p]
		tile := g.at(src)
		if tile == 0 {
			continue
		}

		for d := boundary; d < p; d++ {
			dst := ln[d]
			target := g.at(dst)

			if target == 0 {
				g.set(dst, tile)
				g.set(src, 0)
				moved++
				boundary = d
				break
			}

			if target == tile && tile < MaxExponent {
				g.set(dst, target+1)
				g.set(src, 0)
				moved++
				if onMerge != nil {
					onMerge(1 << (target + 1))
				}
				boundary = d + 1
				break
			}

			if d == p-1 {
				boundary = d + 1
				break
			}
		}
	}

	return moved
}

// CanMove reports whether a move in direction would change the grid.
// The grid itself is left untouched.
func (g Grid) CanMove(direction Direction) bool {
	probe := g
	return probe.Move(direction, nil) > 0
}

// IsMovable reports whether any direction would change the grid
func (g Grid) IsMovable() bool {
	for _, dir := range Directions {
		if g.CanMove(dir) {
			return true
		}
	}
	return false
}

// PossibleMoves returns every direction that would change the grid
func (g Grid) PossibleMoves() []Direction {
	var possible []Direction
	for _, dir := range Directions {
		if g.CanMove(dir) {
			possible = append(possible, dir)
		}
	}
	return possible
}
