// Package websocket streams game state to spectators of a session.
//
// A central Hub owns every connection. Clients subscribe to one session with
// GET /ws?session=abc1 and receive a snapshot of the current state followed
// by a state_update message after every move, bulk move or new game made
// through the HTTP API. Spectators cannot send commands; incoming frames are
// read only to keep the connection alive.
//
// Message Protocol:
//
//	{"session_id": "abc1", "event": "state_update", "game_state": {...}}
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run(ctx)
//
//	hub.ServeWS(w, r, sessionID, state)
//	hub.BroadcastToSession(sessionID, state)
//
// Concurrency:
//
// Broadcasts are queued on a buffered channel and fanned out by the Run
// goroutine, so callers never block on a slow client. A client whose send
// buffer is full is disconnected.
package websocket
