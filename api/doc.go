// Package api provides the HTTP REST API for maze sessions.
//
// Endpoints:
//
// Sessions:
//   - POST /api/sessions - Create a session from a stored maze or inline rows
//   - GET /api/sessions - List sessions (sort, order, limit, maze query parameters)
//   - GET /api/sessions/{id} - Get a session snapshot
//   - DELETE /api/sessions/{id} - Delete a session
//
// Maze operations:
//   - POST /api/sessions/{id}/solve - Run the depth-first solver
//   - POST /api/sessions/{id}/reset - Clear path marks and explored flags
//   - GET /api/sessions/{id}/render - Serialized maze as text/plain
//
// Catalog:
//   - GET /api/mazes - List stored mazes
//   - GET /api/mazes/{name} - Get one stored maze with its rows
//   - PUT /api/mazes/{name} - Store a maze
//
// Other:
//   - GET /health
//   - GET /metrics (when a metrics handler is configured)
//   - GET /ws?session={id} - WebSocket feed of solve, reset and delete events
//
// Create session body, with at most one of the two fields:
//
//	{
//	  "maze_id": "sample",
//	  "rows": ["S O X", "X O E"]
//	}
//
// Errors are returned as JSON:
//
//	{"error": "session not found: abc123"}
//
// Unknown sessions and mazes map to 404, malformed mazes to 400, and a
// maze without a start cell to 422.
package api
