// Package config provides configuration management for nc2048.
//
// The config package handles:
//   - Loading game configurations from JSON files
//   - Caching parsed configurations
//   - Default configuration management
//   - Configuration discovery and listing
//
// Configuration Format:
//
// Game configurations are stored as JSON files in the configs directory.
// Each configuration defines a display name, a description, an optional
// random seed (zero seeds from the clock) and the messages shown to the
// player. The victory and game_over messages receive the final score, the
// score_status message receives the score and the highest block.
//
// A configuration named "classic" is always available. It comes from
// classic.json when that file exists and is valid, and from
// engine.DefaultConfig otherwise.
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameConfig, err := manager.LoadConfig("seeded")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	configs, err := manager.ListConfigs()
package config
