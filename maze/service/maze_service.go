package service

import (
	"context"
	"errors"
	"time"

	"github.com/wricardo/maze-runner/maze/engine"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrMazeNotFound    = errors.New("maze not found")
	ErrInvalidMaze     = errors.New("invalid maze")
)

// MazeService defines all maze-related operations
type MazeService interface {
	// Session Management
	CreateSession(ctx context.Context, mazeName string) (*SessionInfo, error)
	CreateSessionFromRows(ctx context.Context, rows []string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Maze Operations
	Solve(ctx context.Context, sessionID string) (*SolveResult, error)
	Reset(ctx context.Context, sessionID string) (*SessionInfo, error)
	Render(ctx context.Context, sessionID string) (string, error)

	// Catalog
	ListMazes(ctx context.Context) ([]*MazeInfo, error)
	GetMaze(ctx context.Context, mazeName string) (*MazeInfo, error)
	SaveMaze(ctx context.Context, mazeName string, rows []string) (*MazeInfo, error)
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id, mazeName string, maze *engine.Maze) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Save(id string) error
}

// Catalog gives access to the stored maze files
type Catalog interface {
	Load(name string) (*engine.Maze, error)
	Info(name string) (*MazeInfo, error)
	List() ([]*MazeInfo, error)
	Save(name string, maze *engine.Maze) error
	DefaultName() string
}

// Observer receives solve and session events, typically for metrics
type Observer interface {
	SessionCreated(mazeName string)
	SolveCompleted(found bool, explored int, elapsed time.Duration)
}
