package engine

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func createValidConfig() *GameConfig {
	return &GameConfig{
		Name:        "Test Config",
		Description: "A valid test configuration",
		Messages: Messages{
			Welcome:     "Welcome to test!",
			Victory:     "Victory with %d points!",
			GameOver:    "Lost with %d points",
			CantMove:    "Can't move there!",
			ScoreStatus: "Score: %d, highest: %d",
		},
	}
}

func TestValidateGameConfig_ValidConfig(t *testing.T) {
	if err := ValidateGameConfig(createValidConfig()); err != nil {
		t.Errorf("Expected valid config to pass validation, got: %v", err)
	}
	if err := ValidateGameConfig(DefaultConfig()); err != nil {
		t.Errorf("Expected default config to pass validation, got: %v", err)
	}
}

func TestValidateGameConfig_Nil(t *testing.T) {
	err := ValidateGameConfig(nil)
	if err == nil || !strings.Contains(err.Error(), "config is nil") {
		t.Errorf("Expected nil config error, got: %v", err)
	}
}

func TestValidateGameConfig_Errors(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(c *GameConfig)
		expectedError string
	}{
		{"missing name", func(c *GameConfig) { c.Name = "" }, "name is required"},
		{"missing description", func(c *GameConfig) { c.Description = "" }, "description is required"},
		{"negative seed", func(c *GameConfig) { c.Seed = -1 }, "seed must not be negative"},
		{"missing welcome", func(c *GameConfig) { c.Messages.Welcome = "" }, "messages.welcome is required"},
		{"missing victory", func(c *GameConfig) { c.Messages.Victory = "" }, "messages.victory is required"},
		{"missing game over", func(c *GameConfig) { c.Messages.GameOver = "" }, "messages.game_over is required"},
		{"victory without score", func(c *GameConfig) { c.Messages.Victory = "You won" }, "messages.victory must contain %d"},
		{"game over without score", func(c *GameConfig) { c.Messages.GameOver = "You lost" }, "messages.game_over must contain %d"},
		{"score status with one verb", func(c *GameConfig) { c.Messages.ScoreStatus = "Score: %d" }, "messages.score_status must contain %d twice"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			config := createValidConfig()
			test.mutate(config)
			err := ValidateGameConfig(config)
			if err == nil {
				t.Fatalf("Expected error containing '%s'", test.expectedError)
			}
			if !strings.Contains(err.Error(), test.expectedError) {
				t.Errorf("Expected error containing '%s', got: %v", test.expectedError, err)
			}
		})
	}
}

func TestValidateGameConfig_OptionalScoreStatus(t *testing.T) {
	config := createValidConfig()
	config.Messages.ScoreStatus = ""
	if err := ValidateGameConfig(config); err != nil {
		t.Errorf("Expected empty score_status to be accepted, got: %v", err)
	}
}

func TestLoadGameConfig(t *testing.T) {
	tempFile := filepath.Join(t.TempDir(), "test_config.json")

	configContent := `{
		"name": "Test Config",
		"description": "Test description",
		"seed": 7,
		"messages": {
			"welcome": "Welcome!",
			"victory": "Victory! %d points",
			"game_over": "Game over! %d points",
			"cant_move": "Can't move!",
			"score_status": "Score %d, best %d"
		}
	}`

	if err := os.WriteFile(tempFile, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	config, err := LoadGameConfig(tempFile)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if config.Name != "Test Config" {
		t.Errorf("Expected config name 'Test Config', got '%s'", config.Name)
	}
	if config.Seed != 7 {
		t.Errorf("Expected seed 7, got %d", config.Seed)
	}
	if config.Messages.ScoreStatus != "Score %d, best %d" {
		t.Errorf("Unexpected score status %q", config.Messages.ScoreStatus)
	}

	t.Run("non-existent file", func(t *testing.T) {
		if _, err := LoadGameConfig("nonexistent.json"); err == nil {
			t.Error("Expected error for non-existent file")
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		if err := os.WriteFile(bad, []byte(`{"name": `), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadGameConfig(bad); err == nil {
			t.Error("Expected error for malformed JSON")
		}
	})

	t.Run("fails validation", func(t *testing.T) {
		invalid := filepath.Join(t.TempDir(), "invalid.json")
		if err := os.WriteFile(invalid, []byte(`{"name": "x"}`), 0644); err != nil {
			t.Fatal(err)
		}
		_, err := LoadGameConfig(invalid)
		if err == nil || !strings.Contains(err.Error(), "config validation") {
			t.Errorf("Expected validation error, got: %v", err)
		}
	})
}
