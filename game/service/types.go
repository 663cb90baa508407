package service

import (
	"time"

	"github.com/wricardo/nc2048/game/engine"
)

// Stop reason codes reported by BulkMove
const (
	StopGameOver         = "game_over"
	StopVictory          = "victory"
	StopInvalidDirection = "invalid_direction"
)

// Event types reported in MoveResult and BulkMoveResult
const (
	EventNewGame  = "new_game"
	EventMove     = "move"
	EventNoEffect = "no_effect"
	EventMerge    = "merge"
	EventSpawn    = "spawn"
	EventVictory  = "victory"
	EventGameOver = "game_over"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string             `json:"id"`
	ConfigName     string             `json:"config_name"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	GameState      *engine.GameState  `json:"game_state"`
	GameConfig     *engine.GameConfig `json:"game_config"`
}

// MoveResult contains the result of a move operation
type MoveResult struct {
	Success   bool              `json:"success"`
	GameState *engine.GameState `json:"game_state"`
	Message   string            `json:"message"`
	Events    []GameEvent       `json:"events,omitempty"`
	Step      *StepInfo         `json:"step,omitempty"`
}

// BulkMoveResult contains the result of multiple moves
type BulkMoveResult struct {
	// Summary
	MovesExecuted  int               `json:"moves_executed"`
	RequestedMoves int               `json:"requested_moves"`
	Success        bool              `json:"success"`
	GameState      *engine.GameState `json:"game_state"`
	Events         []GameEvent       `json:"events"`
	StoppedReason  string            `json:"stopped_reason,omitempty"`   // Human-readable reason
	StopReasonCode string            `json:"stop_reason_code,omitempty"` // Machine-friendly code: game_over|victory|invalid_direction
	StoppedOnMove  int               `json:"stopped_on_move,omitempty"`  // 1-based index of the move that caused stop
	Truncated      bool              `json:"truncated,omitempty"`
	Limit          int               `json:"limit,omitempty"`

	// Start/end snapshot
	StartScore int `json:"start_score"`
	EndScore   int `json:"end_score"`
	ScoreDelta int `json:"score_delta"`
	NoOpMoves  int `json:"no_op_moves"`

	// Per-step compact trace (only for this call)
	Steps []StepInfo `json:"steps,omitempty"`

	// Final status aids
	GameOver      bool               `json:"game_over"`
	GameOverCode  string             `json:"game_over_code,omitempty"`
	Message       string             `json:"message,omitempty"`
	PossibleMoves []engine.Direction `json:"possible_moves,omitempty"`
}

// StepInfo is a compact record for each executed move
type StepInfo struct {
	Idx         int              `json:"idx"`
	Dir         engine.Direction `json:"dir"`
	MoveCount   int              `json:"move_count"`
	Merges      []int            `json:"merges,omitempty"`
	ScoreGained int              `json:"score_gained"`
	ScoreAfter  int              `json:"score_after"`
	Spawned     *engine.Spawn    `json:"spawned,omitempty"`
	Success     bool             `json:"success"`
	Victory     bool             `json:"victory,omitempty"`
	Lost        bool             `json:"lost,omitempty"`
}

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string           `json:"type"` // "new_game", "move", "no_effect", "merge", "spawn", "victory", "game_over"
	Message   string           `json:"message"`
	Timestamp time.Time        `json:"timestamp"`
	Position  *engine.Position `json:"position,omitempty"`
	Value     int              `json:"value,omitempty"`
}

// HistoryOptions configures move history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated move history
type HistoryResponse struct {
	Moves       []engine.MoveHistoryEntry `json:"moves"`
	TotalMoves  int                       `json:"total_moves"`
	Page        int                       `json:"page"`
	PageSize    int                       `json:"page_size"`
	TotalPages  int                       `json:"total_pages"`
	HasNext     bool                      `json:"has_next"`
	HasPrevious bool                      `json:"has_previous"`
}

// ConfigInfo provides information about a game configuration
type ConfigInfo struct {
	Filename    string `json:"filename,omitempty"` // Empty for the built-in configuration
	ConfigID    string `json:"config_id"`          // The identifier to use for session creation
	Name        string `json:"name"`               // Display name
	Description string `json:"description"`
	Seed        int64  `json:"seed,omitempty"`
}
