// Package service provides the business logic layer for the maze runner.
//
// Core Interfaces:
//
// MazeService is the facade used by the HTTP, WebSocket and MCP transports.
// SessionManager stores sessions and Catalog serves the maze files they are
// created from. Observer receives solve events for metrics.
//
// Each session owns its own copy of a maze, so solving one session never
// affects another session started from the same catalog entry.
//
// Usage:
//
//	sessions := session.NewManager(log)
//	mazes, _ := catalog.NewCatalog("mazes")
//	svc := service.NewMazeService(sessions, mazes, service.Options{Logger: log})
//
//	info, err := svc.CreateSession(ctx, "sample")
//	result, err := svc.Solve(ctx, info.ID)
package service
