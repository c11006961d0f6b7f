// Package mcp exposes the maze REST API as Model Context Protocol tools.
//
// The Client registers one tool per API operation and proxies every call
// over HTTP, so the MCP process holds no maze state of its own:
//   - create_session, list_sessions, get_session, delete_session
//   - solve_maze, reset_maze, render_maze
//   - list_mazes, save_maze
//   - maze_instructions
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
