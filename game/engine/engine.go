package engine

import (
	"fmt"

	"github.com/google/uuid"
)

// Engine provides the main interface for game operations
type Engine interface {
	// Game state management
	GetState() *GameState
	NewGame() *GameState
	Status() Status
	IsGameOver() bool
	IsVictory() bool
	GetScore() int
	GetMaxTile() int
	GridSnapshot() Grid

	// Movement operations
	ApplyMove(direction Direction) MoveOutcome
	CanMove(direction Direction) bool
	GetPossibleMoves() []Direction
	IsFull() bool
	IsMovable() bool

	// Configuration
	GetConfig() *GameConfig
	SetConfig(config *GameConfig) error

	// History
	GetMoveHistory() []MoveHistoryEntry
}

// GameEngine implements the Engine interface. It owns the grid, the score
// tracker and the random selector of a single game; callers must not use it
// from more than one goroutine at a time.
type GameEngine struct {
	config *GameConfig
	rng    *Selector

	grid   Grid
	score  ScoreTracker
	gameID uuid.UUID
	status Status
	msg    string

	history     []MoveHistoryEntry
	current     []MoveHistoryEntry
	gamesPlayed int
}

// NewEngine creates a new game engine with the provided configuration and
// starts the first game. The random source is seeded from config.Seed.
func NewEngine(config *GameConfig) (*GameEngine, error) {
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}
	return newEngine(config, NewSeededSelector(config.Seed)), nil
}

// NewEngineWithSource is NewEngine with an explicit random source
func NewEngineWithSource(config *GameConfig, src Source) (*GameEngine, error) {
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}
	return newEngine(config, NewSelector(src)), nil
}

// NewEngineWithDefaults creates a new game engine with default configuration
func NewEngineWithDefaults() *GameEngine {
	config := DefaultConfig()
	return newEngine(config, NewSeededSelector(config.Seed))
}

func newEngine(config *GameConfig, rng *Selector) *GameEngine {
	e := &GameEngine{
		config:  config,
		rng:     rng,
		history: []MoveHistoryEntry{},
	}
	e.NewGame()
	return e
}

// NewGame clears the grid and the score together, spawns the opening tiles
// and starts a new round. Cumulative history is kept.
func (e *GameEngine) NewGame() *GameState {
	e.grid.Clear()
	e.score.Reset()
	for i := 0; i < InitialTiles; i++ {
		if _, err := e.grid.SpawnTile(e.rng); err != nil {
			break
		}
	}

	e.gameID = uuid.New()
	e.status = StatusPlaying
	e.msg = e.config.Messages.Welcome
	e.current = []MoveHistoryEntry{}
	e.gamesPlayed++

	return e.GetState()
}

// ApplyMove slides the grid towards direction. When anything moved it checks
// for a win, spawns one tile and then checks for a loss. A move that changes
// nothing, or any move after the game ended, returns a zero MoveCount and
// leaves the grid untouched.
func (e *GameEngine) ApplyMove(direction Direction) MoveOutcome {
	outcome := MoveOutcome{Direction: direction, Status: e.status}

	if e.status != StatusPlaying {
		return outcome
	}
	if !direction.Valid() {
		e.msg = fmt.Sprintf("Unknown direction %q", direction)
		return outcome
	}

	won := false
	outcome.MoveCount = e.grid.Move(direction, func(value int) {
		e.score.OnMerge(value)
		outcome.Merges = append(outcome.Merges, value)
		outcome.ScoreGained += value
		if value >= WinningValue {
			won = true
		}
	})

	switch {
	case outcome.MoveCount == 0:
		e.msg = e.config.Messages.CantMove

	case won:
		e.status = StatusWon
		e.msg = fmt.Sprintf(e.config.Messages.Victory, e.score.Score())

	default:
		if spawn, err := e.grid.SpawnTile(e.rng); err == nil {
			outcome.Spawned = &spawn
		}
		if e.grid.IsFull() && !e.grid.IsMovable() {
			e.status = StatusLost
			e.msg = fmt.Sprintf(e.config.Messages.GameOver, e.score.Score())
		} else if e.config.Messages.ScoreStatus != "" {
			e.msg = fmt.Sprintf(e.config.Messages.ScoreStatus, e.score.Score(), e.score.MaxTile())
		}
	}

	outcome.Status = e.status
	e.addMoveToHistory(outcome)
	return outcome
}

// addMoveToHistory appends to both the cumulative and the current-round history
func (e *GameEngine) addMoveToHistory(outcome MoveOutcome) {
	entry := newHistoryEntry(outcome, e.gameID, e.score.Score(), len(e.history)+1)
	e.history = append(e.history, entry)
	e.current = append(e.current, entry)
}

// GetState returns a snapshot of the current game state. The snapshot does
// not alias engine memory.
func (e *GameEngine) GetState() *GameState {
	history := make([]MoveHistoryEntry, len(e.history))
	copy(history, e.history)
	current := make([]MoveHistoryEntry, len(e.current))
	copy(current, e.current)

	return &GameState{
		GameID:            e.gameID,
		Grid:              e.grid,
		Values:            e.grid.Values(),
		Score:             e.score.Score(),
		MaxTile:           e.score.MaxTile(),
		Status:            e.status,
		Message:           e.msg,
		GameOver:          e.status != StatusPlaying,
		Victory:           e.status == StatusWon,
		Movable:           e.grid.IsMovable(),
		ConfigName:        e.config.Name,
		GamesPlayed:       e.gamesPlayed,
		MoveHistory:       history,
		TotalMoves:        len(history),
		CurrentMoves:      current,
		CurrentMovesCount: len(current),
	}
}

// SetGrid replaces the board, keeping the score. The status is recomputed:
// a full, unmovable grid is a loss, anything else is playing.
func (e *GameEngine) SetGrid(grid Grid) error {
	if err := grid.Validate(); err != nil {
		return err
	}
	e.grid = grid
	e.status = StatusPlaying
	if grid.IsFull() && !grid.IsMovable() {
		e.status = StatusLost
	}
	return nil
}

// GridSnapshot returns a copy of the grid
func (e *GameEngine) GridSnapshot() Grid {
	return e.grid
}

// Status returns the current game status
func (e *GameEngine) Status() Status {
	return e.status
}

// IsGameOver returns whether the game is over
func (e *GameEngine) IsGameOver() bool {
	return e.status != StatusPlaying
}

// IsVictory returns whether the player has won
func (e *GameEngine) IsVictory() bool {
	return e.status == StatusWon
}

// GetScore returns the current score
func (e *GameEngine) GetScore() int {
	return e.score.Score()
}

// GetMaxTile returns the highest tile value produced by a merge this game
func (e *GameEngine) GetMaxTile() int {
	return e.score.MaxTile()
}

// CanMove checks if a move in the specified direction would change the grid
func (e *GameEngine) CanMove(direction Direction) bool {
	if e.IsGameOver() || !direction.Valid() {
		return false
	}
	return e.grid.CanMove(direction)
}

// GetPossibleMoves returns all directions that would change the grid
func (e *GameEngine) GetPossibleMoves() []Direction {
	if e.IsGameOver() {
		return nil
	}
	return e.grid.PossibleMoves()
}

// IsFull reports whether every cell holds a tile
func (e *GameEngine) IsFull() bool {
	return e.grid.IsFull()
}

// IsMovable reports whether any direction would change the grid
func (e *GameEngine) IsMovable() bool {
	return e.grid.IsMovable()
}

// GetConfig returns the current game configuration
func (e *GameEngine) GetConfig() *GameConfig {
	return e.config
}

// SetConfig sets a new game configuration and starts a new game
func (e *GameEngine) SetConfig(config *GameConfig) error {
	if err := ValidateGameConfig(config); err != nil {
		return err
	}

	e.config = config
	e.NewGame()
	return nil
}

// GetMoveHistory returns the complete move history
func (e *GameEngine) GetMoveHistory() []MoveHistoryEntry {
	history := make([]MoveHistoryEntry, len(e.history))
	copy(history, e.history)
	return history
}
