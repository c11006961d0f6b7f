// Package websocket pushes maze session events to browser clients.
//
// A client connects to /ws?session=<id> and receives JSON messages of the form
//
//	{"session_id": "3f2a9c1b", "event": "solve_result", "data": {...}, "timestamp": "..."}
//
// Events are connected (sent once on registration), solve_result (data is
// the service.SolveResult), reset (data is the service.SessionInfo) and
// session_deleted. Incoming client messages are ignored.
//
// The Hub owns all connections. Registration, removal and broadcasts are
// serialized through its Run loop; cancelling the Run context closes every
// connection.
//
// Usage:
//
//	hub := websocket.NewHub(log)
//	go hub.Run(ctx)
//
//	hub.ServeWS(w, r, sessionID)
//	hub.BroadcastEvent(sessionID, websocket.EventSolveResult, result)
package websocket
