// Package terminal is the interactive front end: a tcell screen showing the
// logo, the board, the score panel and the win/loss popups, driven by the
// keyboard.
//
// Arrows, WASD and hjkl slide the tiles. q, Esc and Ctrl-C quit. After a
// popup any other key starts a new game.
package terminal
