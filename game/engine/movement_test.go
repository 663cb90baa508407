package engine

import (
	"errors"
	"reflect"
	"testing"
)

// mustGrid builds a grid from displayed values
func mustGrid(t *testing.T, values [Size][Size]int) Grid {
	t.Helper()
	g, err := GridFromValues(values)
	if err != nil {
		t.Fatalf("GridFromValues: %v", err)
	}
	return g
}

// randomGrid fills every cell with an exponent in [0, maxExponent]
func randomGrid(rng *Selector, maxExponent int) Grid {
	var g Grid
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			g[y][x] = rng.UniformInt(maxExponent)
		}
	}
	return g
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		input    string
		expected Direction
	}{
		{"up", Up}, {"UP", Up}, {"w", Up},
		{"down", Down}, {" Down ", Down}, {"s", Down},
		{"left", Left}, {"a", Left}, {"A", Left},
		{"right", Right}, {"d", Right}, {"Right", Right},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			got, err := ParseDirection(test.input)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != test.expected {
				t.Errorf("Expected %s, got %s", test.expected, got)
			}
		})
	}

	for _, bad := range []string{"", "north", "x", "upp"} {
		t.Run("invalid "+bad, func(t *testing.T) {
			_, err := ParseDirection(bad)
			if !errors.Is(err, ErrInvalidDirection) {
				t.Errorf("Expected ErrInvalidDirection, got %v", err)
			}
		})
	}
}

func TestGridMove_Rows(t *testing.T) {
	tests := []struct {
		name      string
		row       [Size]int
		direction Direction
		expected  [Size]int
		count     int
		merges    []int
	}{
		{"gap and merge left", [Size]int{2, 0, 2, 4}, Left, [Size]int{4, 4, 0, 0}, 2, []int{4}},
		{"four equal right", [Size]int{2, 2, 2, 2}, Right, [Size]int{0, 0, 4, 4}, 3, []int{4, 4}},
		{"three equal left", [Size]int{2, 2, 2, 0}, Left, [Size]int{4, 2, 0, 0}, 2, []int{4}},
		{"merged tile does not merge again", [Size]int{4, 4, 8, 0}, Left, [Size]int{8, 8, 0, 0}, 2, []int{8}},
		{"slide only", [Size]int{0, 0, 0, 2}, Left, [Size]int{2, 0, 0, 0}, 1, nil},
		{"merge across gap", [Size]int{4, 0, 2, 2}, Left, [Size]int{4, 4, 0, 0}, 2, []int{4}},
		{"blocked row", [Size]int{2, 4, 8, 16}, Left, [Size]int{2, 4, 8, 16}, 0, nil},
		{"blocked row right", [Size]int{2, 4, 8, 16}, Right, [Size]int{2, 4, 8, 16}, 0, nil},
		{"right merges nearest pair first", [Size]int{0, 2, 2, 2}, Right, [Size]int{0, 0, 2, 4}, 2, []int{4}},
		{"winning tiles do not merge", [Size]int{2048, 2048, 0, 0}, Left, [Size]int{2048, 2048, 0, 0}, 0, nil},
		{"merge into winning tile", [Size]int{1024, 1024, 0, 0}, Left, [Size]int{2048, 0, 0, 0}, 1, []int{2048}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			g := mustGrid(t, [Size][Size]int{test.row})

			var merges []int
			count := g.Move(test.direction, func(value int) {
				merges = append(merges, value)
			})

			if count != test.count {
				t.Errorf("Expected move count %d, got %d", test.count, count)
			}
			if got := g.Values()[0]; got != test.expected {
				t.Errorf("Expected row %v, got %v", test.expected, got)
			}
			if !reflect.DeepEqual(merges, test.merges) {
				t.Errorf("Expected merges %v, got %v", test.merges, merges)
			}
		})
	}
}

func TestGridMove_Columns(t *testing.T) {
	start := [Size][Size]int{
		{2, 0, 0, 0},
		{2, 4, 0, 0},
		{0, 4, 0, 0},
		{4, 4, 0, 0},
	}

	t.Run("up", func(t *testing.T) {
		g := mustGrid(t, start)
		count := g.Move(Up, nil)
		expected := [Size][Size]int{
			{4, 8, 0, 0},
			{4, 4, 0, 0},
			{0, 0, 0, 0},
			{0, 0, 0, 0},
		}
		if g.Values() != expected {
			t.Errorf("Expected %v, got %v", expected, g.Values())
		}
		if count != 5 {
			t.Errorf("Expected move count 5, got %d", count)
		}
	})

	t.Run("down", func(t *testing.T) {
		g := mustGrid(t, start)
		count := g.Move(Down, nil)
		expected := [Size][Size]int{
			{0, 0, 0, 0},
			{0, 0, 0, 0},
			{4, 4, 0, 0},
			{4, 8, 0, 0},
		}
		if g.Values() != expected {
			t.Errorf("Expected %v, got %v", expected, g.Values())
		}
		if count != 4 {
			t.Errorf("Expected move count 4, got %d", count)
		}
	})
}

func TestGridMove_InvalidDirection(t *testing.T) {
	g := mustGrid(t, [Size][Size]int{{2, 2, 0, 0}})
	before := g
	if count := g.Move(Direction("sideways"), nil); count != 0 {
		t.Errorf("Expected 0 for unknown direction, got %d", count)
	}
	if g != before {
		t.Error("Expected grid to be unchanged")
	}
}

func TestGridMove_NoOpIdempotence(t *testing.T) {
	rng := NewSeededSelector(99)
	for i := 0; i < 500; i++ {
		g := randomGrid(rng, 6)
		for _, dir := range Directions {
			once := g
			once.Move(dir, nil)

			twice := once
			if count := twice.Move(dir, nil); count == 0 && twice != once {
				t.Fatalf("Zero-count move changed the grid: %v -> %v", once, twice)
			}
		}
	}
}

func TestGridMove_Conservation(t *testing.T) {
	rng := NewSeededSelector(2048)
	for i := 0; i < 500; i++ {
		g := randomGrid(rng, 6)
		for _, dir := range Directions {
			after := g
			merges := 0
			after.Move(dir, func(int) {
				merges++
			})

			if after.Sum() != g.Sum() {
				t.Fatalf("Sum changed moving %s: %d -> %d", dir, g.Sum(), after.Sum())
			}

			tilesBefore := Size*Size - g.EmptyCells()
			tilesAfter := Size*Size - after.EmptyCells()
			if tilesBefore-tilesAfter != merges {
				t.Fatalf("Expected %d tiles to disappear moving %s, got %d", merges, dir, tilesBefore-tilesAfter)
			}
			if err := after.Validate(); err != nil {
				t.Fatalf("Move produced invalid grid: %v", err)
			}
		}
	}
}

func TestGridMove_Determinism(t *testing.T) {
	rng := NewSeededSelector(7)
	for i := 0; i < 100; i++ {
		g := randomGrid(rng, 5)
		for _, dir := range Directions {
			a, b := g, g
			ca := a.Move(dir, nil)
			cb := b.Move(dir, nil)
			if a != b || ca != cb {
				t.Fatalf("Move %s is not deterministic", dir)
			}
		}
	}
}

func TestGrid_CanMoveLeavesGridUntouched(t *testing.T) {
	g := mustGrid(t, [Size][Size]int{{2, 2, 0, 0}})
	before := g
	if !g.CanMove(Left) {
		t.Error("Expected left to be possible")
	}
	if g != before {
		t.Error("CanMove mutated the grid")
	}
}

func TestGrid_IsMovable(t *testing.T) {
	t.Run("full and unmovable", func(t *testing.T) {
		g := mustGrid(t, [Size][Size]int{
			{2, 4, 2, 4},
			{4, 2, 4, 2},
			{2, 4, 2, 4},
			{4, 2, 4, 2},
		})
		if !g.IsFull() {
			t.Error("Expected grid to be full")
		}
		if g.IsMovable() {
			t.Error("Expected grid to be unmovable")
		}
		if moves := g.PossibleMoves(); len(moves) != 0 {
			t.Errorf("Expected no possible moves, got %v", moves)
		}
	})

	t.Run("full with a vertical merge", func(t *testing.T) {
		g := mustGrid(t, [Size][Size]int{
			{2, 4, 2, 4},
			{4, 2, 4, 2},
			{2, 4, 2, 4},
			{2, 8, 16, 32},
		})
		if !g.IsFull() {
			t.Error("Expected grid to be full")
		}
		if !g.IsMovable() {
			t.Error("Expected grid to be movable")
		}
		expected := []Direction{Up, Down}
		if moves := g.PossibleMoves(); !reflect.DeepEqual(moves, expected) {
			t.Errorf("Expected %v, got %v", expected, moves)
		}
	})

	t.Run("empty grid", func(t *testing.T) {
		var g Grid
		if g.IsMovable() {
			t.Error("Expected empty grid to be unmovable")
		}
	})
}
