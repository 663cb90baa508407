package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/wricardo/nc2048/game/engine"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "default"
	}
	return configName
}

func (s *gameServiceImpl) sessionInfo(sess *Session, configID string) *SessionInfo {
	if configID == "" {
		configID = s.getConfigID(sess.Config.Name)
	}
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     configID,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		GameState:      sess.Engine.GetState(),
		GameConfig:     sess.Config,
	}
}

// CreateSession creates a new game session
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.GameConfig
	if configName != "" {
		var err error
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			availableConfigs, listErr := s.configs.ListConfigs()
			if listErr == nil && len(availableConfigs) > 0 {
				configIDs := make([]string, 0, len(availableConfigs))
				for _, cfg := range availableConfigs {
					configIDs = append(configIDs, cfg.ConfigID)
				}
				return nil, fmt.Errorf("failed to load config '%s' (available: %v): %w", configName, configIDs, err)
			}
			return nil, fmt.Errorf("failed to load config '%s': %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	// Let session manager generate a proper 4-character ID
	session, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return s.sessionInfo(session, configName), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	return s.sessionInfo(session, ""), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess, ""))
	}

	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(sessionID); err != nil {
		return fmt.Errorf("session not found: %w", err)
	}
	return nil
}

// Move executes a single move for a session. An unknown direction is an
// error; a direction that changes nothing is a successful call with
// Success false.
func (s *gameServiceImpl) Move(ctx context.Context, sessionID, direction string, newGame bool) (*MoveResult, error) {
	dir, err := engine.ParseDirection(direction)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	events := []GameEvent{}
	if newGame {
		sess.Engine.NewGame()
		events = append(events, newGameEvent())
	}

	outcome := sess.Engine.ApplyMove(dir)
	state := sess.Engine.GetState()
	step := newStepInfo(1, outcome, state.Score)

	return &MoveResult{
		Success:   outcome.Moved(),
		GameState: state,
		Message:   state.Message,
		Events:    append(events, outcomeEvents(outcome, state)...),
		Step:      &step,
	}, nil
}

// BulkMove executes multiple moves in sequence. It stops at the first unknown
// direction and as soon as the game ends; moves that change nothing are
// counted and skipped over.
func (s *gameServiceImpl) BulkMove(ctx context.Context, sessionID string, moves []string, newGame bool) (*BulkMoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	result := &BulkMoveResult{
		RequestedMoves: len(moves),
		Events:         make([]GameEvent, 0),
		Success:        true,
	}

	if newGame {
		sess.Engine.NewGame()
		result.Events = append(result.Events, newGameEvent())
	}

	result.StartScore = sess.Engine.GetScore()

	// Limit moves to prevent abuse
	if len(moves) > engine.MaxBulkMoves {
		result.Truncated = true
		result.Limit = engine.MaxBulkMoves
		moves = moves[:engine.MaxBulkMoves]
	}

	for i, move := range moves {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if sess.Engine.IsGameOver() {
			result.StoppedReason = fmt.Sprintf("game already over before move %d", i+1)
			result.StopReasonCode = stopCodeFor(sess.Engine.Status())
			result.StoppedOnMove = i + 1
			break
		}

		dir, err := engine.ParseDirection(move)
		if err != nil {
			result.Success = false
			result.StoppedReason = fmt.Sprintf("move %d: %v", i+1, err)
			result.StopReasonCode = StopInvalidDirection
			result.StoppedOnMove = i + 1
			break
		}

		outcome := sess.Engine.ApplyMove(dir)
		state := sess.Engine.GetState()

		result.MovesExecuted++
		if !outcome.Moved() {
			result.NoOpMoves++
		}
		result.Steps = append(result.Steps, newStepInfo(i+1, outcome, state.Score))
		result.Events = append(result.Events, outcomeEvents(outcome, state)...)

		if outcome.Status != engine.StatusPlaying {
			result.StoppedReason = state.Message
			result.StopReasonCode = stopCodeFor(outcome.Status)
			result.StoppedOnMove = i + 1
			break
		}
	}

	endState := sess.Engine.GetState()
	result.GameState = endState
	result.EndScore = endState.Score
	result.ScoreDelta = endState.Score - result.StartScore
	result.GameOver = endState.GameOver
	result.Message = endState.Message
	if endState.GameOver {
		result.GameOverCode = stopCodeFor(endState.Status)
	}
	result.PossibleMoves = sess.Engine.GetPossibleMoves()

	return result, nil
}

// NewGame starts a new round for a session
func (s *gameServiceImpl) NewGame(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return sess.Engine.NewGame(), nil
}

// GetGameState retrieves the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return sess.Engine.GetState(), nil
}

// GetMoveHistory returns paginated move history
func (s *gameServiceImpl) GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	return paginateHistory(sess.Engine.GetMoveHistory(), opts), nil
}

func paginateHistory(history []engine.MoveHistoryEntry, opts HistoryOptions) *HistoryResponse {
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order != "asc" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	moves := []engine.MoveHistoryEntry{}
	if start < total {
		if opts.Order == "desc" {
			// Most recent first
			for i := total - 1 - start; i >= total-end; i-- {
				moves = append(moves, history[i])
			}
		} else {
			moves = append(moves, history[start:end]...)
		}
	}

	return &HistoryResponse{
		Moves:       moves,
		TotalMoves:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}
}

// ListConfigs returns available game configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific game configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	config, err := s.configs.LoadConfig(configName)
	if err != nil {
		return nil, fmt.Errorf("failed to load config '%s': %w", configName, err)
	}
	return config, nil
}

func newStepInfo(idx int, outcome engine.MoveOutcome, scoreAfter int) StepInfo {
	return StepInfo{
		Idx:         idx,
		Dir:         outcome.Direction,
		MoveCount:   outcome.MoveCount,
		Merges:      outcome.Merges,
		ScoreGained: outcome.ScoreGained,
		ScoreAfter:  scoreAfter,
		Spawned:     outcome.Spawned,
		Success:     outcome.Moved(),
		Victory:     outcome.Status == engine.StatusWon,
		Lost:        outcome.Status == engine.StatusLost,
	}
}

func newGameEvent() GameEvent {
	return GameEvent{
		Type:      EventNewGame,
		Message:   "New game started",
		Timestamp: time.Now(),
	}
}

// outcomeEvents generates events from a move outcome
func outcomeEvents(outcome engine.MoveOutcome, state *engine.GameState) []GameEvent {
	now := time.Now()

	if !outcome.Moved() {
		return []GameEvent{{
			Type:      EventNoEffect,
			Message:   fmt.Sprintf("Moving %s changes nothing", outcome.Direction),
			Timestamp: now,
		}}
	}

	events := []GameEvent{{
		Type:      EventMove,
		Message:   fmt.Sprintf("Moved %s, %d tiles shifted or merged", outcome.Direction, outcome.MoveCount),
		Timestamp: now,
	}}

	for _, value := range outcome.Merges {
		events = append(events, GameEvent{
			Type:      EventMerge,
			Message:   fmt.Sprintf("Merged into %d", value),
			Timestamp: now,
			Value:     value,
		})
	}

	if outcome.Spawned != nil {
		pos := outcome.Spawned.Position
		events = append(events, GameEvent{
			Type:      EventSpawn,
			Message:   fmt.Sprintf("Spawned %d at (%d,%d)", outcome.Spawned.Value, pos.X, pos.Y),
			Timestamp: now,
			Position:  &pos,
			Value:     outcome.Spawned.Value,
		})
	}

	switch outcome.Status {
	case engine.StatusWon:
		events = append(events, GameEvent{
			Type:      EventVictory,
			Message:   state.Message,
			Timestamp: now,
			Value:     state.Score,
		})
	case engine.StatusLost:
		events = append(events, GameEvent{
			Type:      EventGameOver,
			Message:   state.Message,
			Timestamp: now,
			Value:     state.Score,
		})
	}

	return events
}

func stopCodeFor(status engine.Status) string {
	if status == engine.StatusWon {
		return StopVictory
	}
	return StopGameOver
}
