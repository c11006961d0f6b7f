package session

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/wricardo/maze-runner/maze/engine"
	"github.com/wricardo/maze-runner/maze/reader"
	"github.com/wricardo/maze-runner/maze/service"
)

// Persistence defines the interface for persisting sessions
type Persistence interface {
	// Save persists a session to storage
	Save(sess *service.Session) error

	// Load retrieves a session from storage by ID
	Load(id string) (*service.Session, error)

	// Delete removes a session from storage
	Delete(id string) error

	// ListAll returns all persisted session IDs
	ListAll() ([]string, error)

	// Exists checks if a session exists in storage
	Exists(id string) bool
}

// PersistedSessionData is the stored form of a session. The maze is kept in
// its text form, so a solved maze is stored with its path markers.
type PersistedSessionData struct {
	ID             string              `json:"id"`
	MazeName       string              `json:"maze_name"`
	Status         service.SolveStatus `json:"status"`
	Rows           []string            `json:"rows"`
	Solution       *engine.Solution    `json:"solution,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	LastAccessedAt time.Time           `json:"last_accessed_at"`
}

// encodeSession marshals a session for storage
func encodeSession(sess *service.Session) ([]byte, error) {
	if sess == nil || sess.Maze == nil {
		return nil, fmt.Errorf("%w: session cannot be nil", ErrInvalidSession)
	}

	data := PersistedSessionData{
		ID:             sess.ID,
		MazeName:       sess.MazeName,
		Status:         sess.Status,
		Rows:           sess.Maze.Rows(),
		Solution:       sess.Solution,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
	}

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session data: %w", err)
	}
	return jsonData, nil
}

// decodeSession rebuilds a session from its stored form
func decodeSession(jsonData []byte) (*service.Session, error) {
	var data PersistedSessionData
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session data: %w", err)
	}

	maze, err := reader.ParseRows(data.Rows)
	if err != nil {
		return nil, fmt.Errorf("failed to restore maze: %w", err)
	}
	if maze == nil {
		return nil, fmt.Errorf("%w: session %s has no maze", ErrInvalidSession, data.ID)
	}

	status := data.Status
	if status == "" {
		status = service.StatusUnsolved
	}

	return &service.Session{
		ID:             data.ID,
		MazeName:       data.MazeName,
		Maze:           maze,
		Status:         status,
		Solution:       data.Solution,
		CreatedAt:      data.CreatedAt,
		LastAccessedAt: data.LastAccessedAt,
	}, nil
}
