// Command validate checks the game configuration JSON files in a directory
// (default ./configs). For every file it checks:
//   - JSON structure, with unknown keys rejected
//   - Required fields and message format strings
//   - That the name matches the file name, since configs are looked up by file
//   - That a seeded config replays the same opening board
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wricardo/nc2048/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Name   string
	Valid  bool
	Errors []string
}

func (r *ValidationResult) fail(format string, args ...any) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// validateConfig loads and validates a single configuration JSON file
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	var config engine.GameConfig
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&config); err != nil {
		result.fail("Invalid JSON: %v", err)
		return result
	}
	result.Name = config.Name

	for _, problem := range checkFields(&config) {
		result.fail("%s", problem)
	}

	stem := strings.TrimSuffix(result.File, ".json")
	if config.Name != "" && config.Name != stem {
		result.fail("name %q does not match file name %q", config.Name, stem)
	}

	// The engine's own check is authoritative; anything it rejects that the
	// field checks missed is still reported.
	if result.Valid {
		if err := engine.ValidateGameConfig(&config); err != nil {
			result.fail("%v", err)
		}
	}

	if result.Valid && config.Seed != 0 {
		if err := checkReplay(&config); err != nil {
			result.fail("%v", err)
		}
	}

	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", config.Name))
		if config.Seed != 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("✓ Seed: %d (replays)", config.Seed))
		} else {
			result.Errors = append(result.Errors, "✓ Seed: time-based")
		}
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Welcome: %s", config.Messages.Welcome))
	}

	return result
}

// checkFields reports every missing field and malformed format string
func checkFields(config *engine.GameConfig) []string {
	var problems []string

	if config.Name == "" {
		problems = append(problems, "name is required")
	}
	if config.Description == "" {
		problems = append(problems, "description is required")
	}
	if config.Seed < 0 {
		problems = append(problems, fmt.Sprintf("seed must not be negative, got %d", config.Seed))
	}

	required := map[string]string{
		"welcome":   config.Messages.Welcome,
		"victory":   config.Messages.Victory,
		"game_over": config.Messages.GameOver,
	}
	for _, key := range []string{"welcome", "victory", "game_over"} {
		if required[key] == "" {
			problems = append(problems, fmt.Sprintf("Missing required message: %s", key))
		}
	}

	if config.Messages.Victory != "" && strings.Count(config.Messages.Victory, "%d") != 1 {
		problems = append(problems, "messages.victory must contain %d once for the score")
	}
	if config.Messages.GameOver != "" && strings.Count(config.Messages.GameOver, "%d") != 1 {
		problems = append(problems, "messages.game_over must contain %d once for the score")
	}
	if config.Messages.ScoreStatus != "" && strings.Count(config.Messages.ScoreStatus, "%d") != 2 {
		problems = append(problems, "messages.score_status must contain %d twice for score and highest block")
	}

	return problems
}

// checkReplay starts two engines from the same seeded config and compares
// their opening boards and first few spawns
func checkReplay(config *engine.GameConfig) error {
	a, err := engine.NewEngine(config)
	if err != nil {
		return fmt.Errorf("engine rejected config: %w", err)
	}
	b, err := engine.NewEngine(config)
	if err != nil {
		return fmt.Errorf("engine rejected config: %w", err)
	}

	if a.GridSnapshot() != b.GridSnapshot() {
		return fmt.Errorf("seed %d produced different opening boards", config.Seed)
	}
	for _, dir := range engine.Directions {
		a.ApplyMove(dir)
		b.ApplyMove(dir)
		if a.GridSnapshot() != b.GridSnapshot() {
			return fmt.Errorf("seed %d diverged after moving %s", config.Seed, dir)
		}
	}
	return nil
}

// findDuplicateNames returns the names claimed by more than one file
func findDuplicateNames(results []ValidationResult) map[string][]string {
	byName := make(map[string][]string)
	for _, r := range results {
		if r.Name != "" {
			byName[r.Name] = append(byName[r.Name], r.File)
		}
	}
	for name, files := range byName {
		if len(files) < 2 {
			delete(byName, name)
		}
	}
	return byName
}

// main scans the directory given as the first argument (default ./configs)
// for *.json files and validates each one, printing a concise report and
// exiting with non-zero status if any are invalid.
func main() {
	configDir := "configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Printf("No config files found in %s\n", configDir)
		os.Exit(1)
	}

	allValid := true
	results := make([]ValidationResult, 0, len(files))
	for _, file := range files {
		result := validateConfig(file)
		results = append(results, result)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				fmt.Println("  ❌ " + err)
			}
		}
	}

	for name, dupes := range findDuplicateNames(results) {
		allValid = false
		fmt.Printf("\n❌ name %q is used by %s\n", name, strings.Join(dupes, ", "))
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All configurations are valid!")
	} else {
		fmt.Println("❌ Some configurations have errors")
		os.Exit(1)
	}
}
