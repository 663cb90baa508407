package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Messages holds the texts shown to the player. Victory and GameOver receive
// the final score, ScoreStatus receives the score and the highest tile.
type Messages struct {
	Welcome     string `json:"welcome"`
	Victory     string `json:"victory"`
	GameOver    string `json:"game_over"`
	CantMove    string `json:"cant_move"`
	ScoreStatus string `json:"score_status"`
}

// GameConfig represents the game configuration from JSON
type GameConfig struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Seed        int64    `json:"seed,omitempty"`
	Messages    Messages `json:"messages"`
}

// DefaultConfig returns the built-in configuration used when no config
// directory is available
func DefaultConfig() *GameConfig {
	return &GameConfig{
		Name:        "classic",
		Description: "Classic 4x4 board, reach 2048 to win",
		Messages: Messages{
			Welcome:     "Join the tiles, get to 2048! Press 'Q' to exit.",
			Victory:     "Congratulations! You reached 2048 with a score of %d.",
			GameOver:    "Oh no... You lost! Final score: %d",
			CantMove:    "Nothing moves that way.",
			ScoreStatus: "Score: %d, highest block: %d",
		},
	}
}

// ValidateGameConfig validates a game configuration for correctness
func ValidateGameConfig(config *GameConfig) error {
	if config == nil {
		return fmt.Errorf("config validation: config is nil")
	}

	// Validate required fields
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}
	if config.Description == "" {
		return fmt.Errorf("config validation: description is required")
	}
	if config.Seed < 0 {
		return fmt.Errorf("config validation: seed must not be negative, got %d", config.Seed)
	}

	// Validate messages
	if config.Messages.Welcome == "" {
		return fmt.Errorf("config validation: messages.welcome is required")
	}
	if config.Messages.Victory == "" {
		return fmt.Errorf("config validation: messages.victory is required")
	}
	if config.Messages.GameOver == "" {
		return fmt.Errorf("config validation: messages.game_over is required")
	}

	// Validate format strings
	if !strings.Contains(config.Messages.Victory, "%d") {
		return fmt.Errorf("config validation: messages.victory must contain %%d for score")
	}
	if !strings.Contains(config.Messages.GameOver, "%d") {
		return fmt.Errorf("config validation: messages.game_over must contain %%d for score")
	}
	if config.Messages.ScoreStatus != "" && strings.Count(config.Messages.ScoreStatus, "%d") != 2 {
		return fmt.Errorf("config validation: messages.score_status must contain %%d twice for score and highest block")
	}

	return nil
}

// LoadGameConfig loads a game configuration from a JSON file
func LoadGameConfig(filename string) (*GameConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var config GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	// Validate the loaded configuration
	if err := ValidateGameConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
