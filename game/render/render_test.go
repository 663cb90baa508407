package render

import (
	"strings"
	"testing"

	"github.com/wricardo/nc2048/game/engine"
)

func TestTile(t *testing.T) {
	tests := []struct {
		exponent int
		expected string
	}{
		{0, "[    ]"},
		{1, "[   2]"},
		{4, "[  16]"},
		{7, "[ 128]"},
		{10, "[1024]"},
		{11, "[2048]"},
	}

	for _, test := range tests {
		t.Run(test.expected, func(t *testing.T) {
			got := Tile(test.exponent)
			if got != test.expected {
				t.Errorf("Expected %q, got %q", test.expected, got)
			}
			if len(got) != TileWidth {
				t.Errorf("Expected width %d, got %d", TileWidth, len(got))
			}
		})
	}
}

func TestBoard(t *testing.T) {
	g, err := engine.GridFromValues([engine.Size][engine.Size]int{
		{2, 0, 0, 2048},
	})
	if err != nil {
		t.Fatal(err)
	}

	lines := BoardLines(g)
	if len(lines) != engine.Size {
		t.Fatalf("Expected %d lines, got %d", engine.Size, len(lines))
	}
	if lines[0] != "[   2] [    ] [    ] [2048]" {
		t.Errorf("Unexpected first row %q", lines[0])
	}
	if len(lines[1]) != BoardWidth() {
		t.Errorf("Expected row width %d, got %d", BoardWidth(), len(lines[1]))
	}
	if strings.Count(Board(g), "\n") != engine.Size-1 {
		t.Error("Expected rows to be joined by newlines")
	}
}

func TestScorePanel(t *testing.T) {
	panel := ScorePanel(1234, 256)
	if panel[0] != "Score:" || panel[1] != " 1234" || panel[3] != "Highest Block:" || panel[4] != " 256" {
		t.Errorf("Unexpected panel %q", panel)
	}
}

func TestPopups(t *testing.T) {
	win, ok := PopupFor(engine.StatusWon)
	if !ok || win.Title != "Congratulations!" {
		t.Errorf("Unexpected win popup %+v", win)
	}
	loss, ok := PopupFor(engine.StatusLost)
	if !ok || loss.Title != "Oh no... You lost!" {
		t.Errorf("Unexpected loss popup %+v", loss)
	}
	if _, ok := PopupFor(engine.StatusPlaying); ok {
		t.Error("Expected no popup while playing")
	}

	lines := win.Lines()
	if lines[0] != win.Title || !strings.Contains(strings.Join(lines, " "), "Press any key to") {
		t.Errorf("Unexpected popup lines %q", lines)
	}
	if win.Width() != len("2048. That's very") {
		t.Errorf("Unexpected popup width %d", win.Width())
	}
}

func TestDebugLines(t *testing.T) {
	if got := KeyDebug(engine.Left); got != "Pressed arrow LEFT." {
		t.Errorf("Unexpected key debug %q", got)
	}
	if got := ResultDebug(engine.StatusWon); got != "Congratulations! You won." {
		t.Errorf("Unexpected win debug %q", got)
	}
	if got := ResultDebug(engine.StatusLost); got != "Oh no... You lost." {
		t.Errorf("Unexpected loss debug %q", got)
	}
	if ResultDebug(engine.StatusPlaying) != "" {
		t.Error("Expected no debug while playing")
	}
}

func TestText(t *testing.T) {
	state := engine.NewEngineWithDefaults().GetState()
	text := Text(state)
	if !strings.Contains(text, "Score: 0") || !strings.Contains(text, "Status: playing") {
		t.Errorf("Unexpected text %q", text)
	}
	if !strings.Contains(text, state.Message) {
		t.Error("Expected the message to be included")
	}
}
