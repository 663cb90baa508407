// Package service provides the business logic layer for nc2048.
//
// The service package implements:
//   - Multi-session game management
//   - Configuration lookup for new sessions
//   - Move processing with per-move events and step traces
//   - Move history pagination
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager resolves named game configurations.
//
// Architecture:
//
// The service layer sits between the transports (HTTP, WebSocket, MCP) and
// the game engine. Each session owns its own engine.GameEngine, so sessions
// never share a grid, a score or a random stream.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, _ := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr)
//
//	info, err := gameService.CreateSession(ctx, "classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := gameService.Move(ctx, info.ID, "left", false)
//
// Bulk moves:
//
// BulkMove applies up to engine.MaxBulkMoves directions. Directions that
// change nothing are counted in NoOpMoves and do not stop the sequence. An
// unknown direction stops it with StopInvalidDirection, and the end of the
// game stops it with StopVictory or StopGameOver.
package service
