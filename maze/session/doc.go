// Package session provides session management for the maze runner.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Short random session IDs drawn from UUIDs
//   - Optional persistence to JSON files or Redis
//   - Cleanup of sessions that have not been accessed recently
//
// Core Types:
//
// Manager keeps sessions in memory and writes through to a Persistence when
// one is configured. A session whose ID is unknown in memory is looked up in
// persistence, so sessions survive restarts.
//
// Storage Format:
//
// Both FilePersistence and RedisPersistence store the same JSON document:
// session metadata plus the maze in its text form, one string per row.
//
// Usage:
//
//	store, err := session.NewFilePersistence("sessions")
//	if err != nil {
//		log.Fatal(err)
//	}
//	manager := session.NewManagerWithPersistence(store, log)
//	manager.LoadPersistedSessions()
//
//	sess, err := manager.Create("", "sample", maze)
package session
