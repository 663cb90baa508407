// Package session provides in-memory session management for nc2048.
//
// Manager stores one service.Session per ID. Each session owns its own
// engine.GameEngine, created from the configuration passed to Create.
//
// Session Identifiers:
//
// Generated IDs are 4 lowercase hex characters drawn from crypto/rand and
// retried on collision. Caller-chosen IDs may use letters, digits, '-' and
// '_'. Lookups are case-insensitive.
//
// Usage:
//
//	manager := session.NewManager()
//
//	sess, err := manager.Create("", config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	sess, err = manager.Get(sess.ID)
//
// Cleanup:
//
// Sessions live until they are deleted or until CleanupExpiredSessions finds
// them idle for longer than the given age. Nothing is written to disk.
package session
