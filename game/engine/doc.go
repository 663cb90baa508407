// Package engine provides the core game logic for nc2048.
//
// The engine package implements the game mechanics including:
//   - Line compaction for the four slide directions
//   - Tile spawning over an unbiased random selector
//   - Score and highest-tile bookkeeping
//   - Win and loss detection
//
// Core Types:
//
// Grid holds tile exponents; a cell value E shows as 2^E and zero is empty.
// GameEngine owns one Grid, one ScoreTracker and one Selector and exposes them
// through the Engine interface. GameState is the read-only snapshot handed to
// renderers and remote clients.
//
// Usage:
//
//	gameEngine, err := engine.NewEngine(engine.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	outcome := gameEngine.ApplyMove(engine.Left)
//	if outcome.Moved() {
//		state := gameEngine.GetState()
//		fmt.Println(state.Score, state.Status)
//	}
//
// Game Rules:
//
// Every move slides all tiles towards one edge. Two equal tiles that meet
// merge into one of double value, and a tile merges at most once per move.
// A move that changes the grid spawns one new tile, a 2 nine times in ten and
// a 4 otherwise. Producing a 2048 tile wins before anything spawns; a full
// grid on which no direction changes anything loses.
package engine
