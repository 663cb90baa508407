// Package mcp exposes nc2048 to AI agents over the Model Context Protocol.
//
// Client is a thin proxy: every tool call becomes a request to the REST API
// (see package api), and the JSON answer is turned into readable text with
// the board drawn the same way the terminal draws it.
//
// MCP Tools:
//   - create_session, list_sessions, get_session
//   - game_state: board, score, status and the directions that change the board
//   - move, bulk_move: one or up to 50 slides
//   - new_game: new round in the same session
//   - move_history: paginated history
//   - list_configs, game_instructions
//
// Transport Modes:
//
// The MCP server returned by GetMCPServer can be served over stdio with
// server.ServeStdio, or mounted on POST /mcp next to the REST API.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
