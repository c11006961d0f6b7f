package service

import (
	"time"

	"github.com/wricardo/maze-runner/maze/engine"
)

// SolveStatus records the outcome of the last solve on a session
type SolveStatus string

const (
	StatusUnsolved   SolveStatus = "unsolved"
	StatusSolved     SolveStatus = "solved"
	StatusUnsolvable SolveStatus = "unsolvable"
)

// Session represents an active maze session
type Session struct {
	ID             string
	MazeName       string
	Maze           *engine.Maze
	Status         SolveStatus
	Solution       *engine.Solution
	CreatedAt      time.Time
	LastAccessedAt time.Time
}

// SessionInfo provides information about a maze session
type SessionInfo struct {
	ID             string           `json:"id"`
	MazeName       string           `json:"maze_name"`
	Status         SolveStatus      `json:"status"`
	Cells          int              `json:"cells"`
	Rows           []string         `json:"rows"`
	Solution       *engine.Solution `json:"solution,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	LastAccessedAt time.Time        `json:"last_accessed_at"`
}

// SolveResult contains the result of a solve operation
type SolveResult struct {
	SessionID  string              `json:"session_id"`
	Found      bool                `json:"found"`
	Path       []engine.Coordinate `json:"path"`
	PathLength int                 `json:"path_length"`
	Explored   int                 `json:"explored"`
	DurationMS float64             `json:"duration_ms"`
	Rows       []string            `json:"rows"`
	Message    string              `json:"message"`
}

// MazeInfo provides information about a maze in the catalog
type MazeInfo struct {
	Filename string   `json:"filename"`
	MazeID   string   `json:"maze_id"` // The identifier to use for session creation
	Cells    int      `json:"cells"`
	Height   int      `json:"height"`
	Width    int      `json:"width"`
	Rows     []string `json:"rows,omitempty"`
}

// NewSessionInfo snapshots a session for API responses
func NewSessionInfo(sess *Session) *SessionInfo {
	return &SessionInfo{
		ID:             sess.ID,
		MazeName:       sess.MazeName,
		Status:         sess.Status,
		Cells:          sess.Maze.GetCellCount(),
		Rows:           sess.Maze.Rows(),
		Solution:       sess.Solution,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
	}
}
