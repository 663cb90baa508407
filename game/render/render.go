package render

import (
	"fmt"
	"strings"

	"github.com/wricardo/nc2048/game/engine"
)

// TileWidth is the width of one rendered cell including its brackets
const TileWidth = 6

// EmptyTile is how an empty cell renders
const EmptyTile = "[    ]"

// Logo is the banner drawn above the board
var Logo = []string{
	`               mmmm   mmmm     mm   mmmm `,
	`m mm    mmm   "   "# m"  "m   m"#  #    #`,
	`#"  #  #"  "      m" #  m #  #" #  "mmmm"`,
	`#   #  #        m"   #    # #mmm#m #   "#`,
	`#   #  "#mm"  m#mmmm  #mm#      #  "#mmm"`,
	`            Press 'Q' to exit.`,
}

// Popup is a boxed message shown when a game ends
type Popup struct {
	Title  string
	Body   []string
	Footer []string
}

// WinPopup is shown after a merge produces 2048
var WinPopup = Popup{
	Title:  "Congratulations!",
	Body:   []string{"You reached the", "maximum value of", "2048. That's very", "impressive."},
	Footer: []string{"Press any key to", "   continue.."},
}

// LossPopup is shown when the grid is full and nothing moves
var LossPopup = Popup{
	Title:  "Oh no... You lost!",
	Body:   []string{"Try a bit harder", "on your next", "attempt. I know", "you can do it!"},
	Footer: []string{"Press any key to", "   continue.."},
}

// Lines returns the popup text top to bottom with a blank line between sections
func (p Popup) Lines() []string {
	lines := []string{p.Title, ""}
	lines = append(lines, p.Body...)
	lines = append(lines, "")
	return append(lines, p.Footer...)
}

// Width is the length of the longest popup line
func (p Popup) Width() int {
	width := 0
	for _, line := range p.Lines() {
		if len(line) > width {
			width = len(line)
		}
	}
	return width
}

// PopupFor returns the popup matching a finished game
func PopupFor(status engine.Status) (Popup, bool) {
	switch status {
	case engine.StatusWon:
		return WinPopup, true
	case engine.StatusLost:
		return LossPopup, true
	}
	return Popup{}, false
}

// Tile formats one cell as a bracketed right-aligned value
func Tile(exponent int) string {
	if exponent <= 0 {
		return EmptyTile
	}
	return fmt.Sprintf("[%4d]", engine.TileValue(exponent))
}

// BoardLines renders each grid row as tiles separated by single spaces
func BoardLines(g engine.Grid) []string {
	lines := make([]string, 0, engine.Size)
	for _, row := range g {
		cells := make([]string, 0, engine.Size)
		for _, cell := range row {
			cells = append(cells, Tile(cell))
		}
		lines = append(lines, strings.Join(cells, " "))
	}
	return lines
}

// Board renders the whole grid as text
func Board(g engine.Grid) string {
	return strings.Join(BoardLines(g), "\n")
}

// BoardWidth is the width of one rendered row
func BoardWidth() int {
	return engine.Size*TileWidth + engine.Size - 1
}

// ScorePanel returns the score panel lines
func ScorePanel(score, maxTile int) []string {
	return []string{
		"Score:",
		fmt.Sprintf(" %d", score),
		"",
		"Highest Block:",
		fmt.Sprintf(" %d", maxTile),
	}
}

// KeyDebug is the status line shown after a direction key
func KeyDebug(direction engine.Direction) string {
	return fmt.Sprintf("Pressed arrow %s.", strings.ToUpper(string(direction)))
}

// ResultDebug is the status line shown when a game ends
func ResultDebug(status engine.Status) string {
	switch status {
	case engine.StatusWon:
		return "Congratulations! You won."
	case engine.StatusLost:
		return "Oh no... You lost."
	}
	return ""
}

// Text renders a state snapshot as plain text: board, score and message
func Text(state *engine.GameState) string {
	var b strings.Builder
	b.WriteString(Board(state.Grid))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Score: %d   Highest Block: %d   Status: %s\n", state.Score, state.MaxTile, state.Status)
	if state.Message != "" {
		b.WriteString(state.Message)
		b.WriteString("\n")
	}
	return b.String()
}
