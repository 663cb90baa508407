package engine

import (
	"time"

	"github.com/google/uuid"
)

const (
	// Size is the side length of the square board.
	Size = 4

	// MaxExponent is the exponent of the winning tile (2^11 = 2048).
	MaxExponent = 11
	// WinningValue is the displayed value of the winning tile.
	WinningValue = 1 << MaxExponent

	// InitialTiles is the number of tiles spawned by a new game.
	InitialTiles = 2

	// Validation constants
	MaxBulkMoves        = 50
	WebSocketBufferSize = 256
)

// Direction is one of the four slide directions
type Direction string

const (
	Up    Direction = "up"
	Down  Direction = "down"
	Left  Direction = "left"
	Right Direction = "right"
)

// Directions lists every direction in a fixed order
var Directions = []Direction{Up, Down, Left, Right}

// Valid reports whether d is one of the four directions
func (d Direction) Valid() bool {
	switch d {
	case Up, Down, Left, Right:
		return true
	}
	return false
}

// Status describes whether a game is still running
type Status string

const (
	StatusPlaying Status = "playing"
	StatusWon     Status = "won"
	StatusLost    Status = "lost"
)

// Position represents x,y coordinates. X is the column, Y the row.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Spawn describes a tile placed on the grid after a move
type Spawn struct {
	Position Position `json:"position"`
	Exponent int      `json:"exponent"`
	Value    int      `json:"value"`
}

// MoveOutcome is the result of applying a direction to a game
type MoveOutcome struct {
	Direction   Direction `json:"direction"`
	MoveCount   int       `json:"move_count"`
	Merges      []int     `json:"merges,omitempty"`
	ScoreGained int       `json:"score_gained"`
	Spawned     *Spawn    `json:"spawned,omitempty"`
	Status      Status    `json:"status"`
}

// Moved reports whether the move changed the grid
func (o MoveOutcome) Moved() bool {
	return o.MoveCount > 0
}

// GameState represents the complete game state as seen by renderers and clients
type GameState struct {
	GameID      uuid.UUID       `json:"game_id"`
	Grid        Grid            `json:"grid"`
	Values      [Size][Size]int `json:"values"`
	Score       int             `json:"score"`
	MaxTile     int             `json:"max_tile"`
	Status      Status          `json:"status"`
	Message     string          `json:"message"`
	GameOver    bool            `json:"game_over"`
	Victory     bool            `json:"victory"`
	Movable     bool            `json:"movable"`
	ConfigName  string          `json:"config_name"`
	GamesPlayed int             `json:"games_played"`

	MoveHistory []MoveHistoryEntry `json:"move_history"`
	TotalMoves  int                `json:"total_moves"`

	// CurrentMoves tracks only the moves since the last new game. It mirrors MoveHistory entries
	// but gets cleared on new game while MoveHistory remains cumulative.
	CurrentMoves      []MoveHistoryEntry `json:"current_moves"`
	CurrentMovesCount int                `json:"current_moves_count"`
}

// MoveHistoryEntry represents a single move in the game history
type MoveHistoryEntry struct {
	Action      Direction `json:"action"`
	GameID      uuid.UUID `json:"game_id"`
	MoveCount   int       `json:"move_count"`
	ScoreGained int       `json:"score_gained"`
	ScoreAfter  int       `json:"score_after"`
	Spawned     *Spawn    `json:"spawned,omitempty"`
	Status      Status    `json:"status"`
	Timestamp   int64     `json:"timestamp"`
	Success     bool      `json:"success"`
	MoveNumber  int       `json:"move_number"`
}

func newHistoryEntry(outcome MoveOutcome, gameID uuid.UUID, score, moveNumber int) MoveHistoryEntry {
	return MoveHistoryEntry{
		Action:      outcome.Direction,
		GameID:      gameID,
		MoveCount:   outcome.MoveCount,
		ScoreGained: outcome.ScoreGained,
		ScoreAfter:  score,
		Spawned:     outcome.Spawned,
		Status:      outcome.Status,
		Timestamp:   time.Now().Unix(),
		Success:     outcome.Moved(),
		MoveNumber:  moveNumber,
	}
}
