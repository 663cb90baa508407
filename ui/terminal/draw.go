package terminal

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/wricardo/nc2048/game/engine"
	"github.com/wricardo/nc2048/game/render"
)

// Layout offsets, in cells
const (
	boardTop  = 8
	boardLeft = 2
	panelGap  = 4
)

var (
	styleDefault = tcell.StyleDefault
	styleTitle   = tcell.StyleDefault.Bold(true)
	stylePopup   = tcell.StyleDefault.Reverse(true)
	styleDebug   = tcell.StyleDefault.Dim(true)
)

// draw repaints the logo, message, board, score panel and popup for state,
// with footer on the bottom row
func draw(screen tcell.Screen, state *engine.GameState, footer string) {
	screen.Clear()

	for i, line := range render.Logo {
		drawText(screen, boardLeft, i, styleTitle, line)
	}

	if state != nil {
		drawText(screen, boardLeft, len(render.Logo)+1, styleDefault, state.Message)

		for i, line := range render.BoardLines(state.Grid) {
			drawText(screen, boardLeft, boardTop+i*2, styleDefault, line)
		}

		panelLeft := boardLeft + render.BoardWidth() + panelGap
		for i, line := range render.ScorePanel(state.Score, state.MaxTile) {
			drawText(screen, panelLeft, boardTop+i, styleDefault, line)
		}

		if popup, ok := render.PopupFor(state.Status); ok {
			drawPopup(screen, popup)
		}
	}

	_, height := screen.Size()
	drawText(screen, 0, height-1, styleDebug, footer)
	screen.Show()
}

// drawPopup paints a boxed popup centred over the board
func drawPopup(screen tcell.Screen, p render.Popup) {
	lines := p.Lines()
	width := p.Width() + 4
	height := len(lines) + 2
	left := max(boardLeft+(render.BoardWidth()-width)/2, 0)
	top := max(boardTop+(engine.Size*2-1-height)/2, 0)

	border := "+" + strings.Repeat("-", width-2) + "+"
	drawText(screen, left, top, stylePopup, border)
	for i, line := range lines {
		row := "| " + line + strings.Repeat(" ", width-4-len(line)) + " |"
		drawText(screen, left, top+1+i, stylePopup, row)
	}
	drawText(screen, left, top+height-1, stylePopup, border)
}

func drawText(screen tcell.Screen, x, y int, style tcell.Style, text string) {
	col := x
	for _, r := range text {
		screen.SetContent(col, y, r, nil, style)
		col++
	}
}
