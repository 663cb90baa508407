// Package api provides the HTTP REST surface of nc2048.
//
// Endpoints:
//
// Session Management:
//   - POST   /api/sessions              create a session, body {"config_id": "zen"}
//   - GET    /api/sessions              list sessions (?sort=accessed|created|score&order=asc|desc&limit=N)
//   - GET    /api/sessions/{id}         session info
//   - DELETE /api/sessions/{id}         delete a session
//
// Game Operations:
//   - GET  /api/sessions/{id}/state     current state (?format=text for the board as text)
//   - POST /api/sessions/{id}/move      {"direction": "left", "new_game": false}
//   - POST /api/sessions/{id}/bulk-move {"moves": ["up", "left"], "new_game": false}
//   - POST /api/sessions/{id}/new-game  start a new round in the same session
//   - GET  /api/sessions/{id}/history   paginated history (?page=1&limit=20&order=desc)
//
// Configuration:
//   - GET /api/configs                  list configurations
//   - GET /api/configs/{name}           one configuration
//
// Other:
//   - GET /api/health                   liveness and session count
//   - GET /ws?session={id}              spectator WebSocket stream
//
// Error Handling:
//
// Errors are returned as {"error": "message"}. Unknown directions and
// malformed session IDs are 400, unknown sessions and configurations are 404,
// anything else is 500.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run(ctx)
//	server := api.NewServer(gameService, hub)
//	http.ListenAndServe("localhost:8080", server)
package api
