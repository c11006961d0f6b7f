package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/wricardo/maze-runner/maze/engine"
	"github.com/wricardo/maze-runner/maze/reader"
)

// CustomMazeName names sessions created from inline rows
const CustomMazeName = "custom"

// Options configures optional collaborators of the maze service
type Options struct {
	Observer Observer
	Logger   logrus.FieldLogger
}

// mazeServiceImpl implements the MazeService interface
type mazeServiceImpl struct {
	sessions SessionManager
	catalog  Catalog
	observer Observer
	log      logrus.FieldLogger
	mu       sync.RWMutex
}

// NewMazeService creates a new maze service instance
func NewMazeService(sessions SessionManager, catalog Catalog, opts Options) MazeService {
	s := &mazeServiceImpl{
		sessions: sessions,
		catalog:  catalog,
		observer: opts.Observer,
		log:      opts.Logger,
	}
	if s.observer == nil {
		s.observer = noopObserver{}
	}
	if s.log == nil {
		s.log = logrus.StandardLogger()
	}
	return s
}

// CreateSession creates a session on a copy of the named catalog maze
func (s *mazeServiceImpl) CreateSession(ctx context.Context, mazeName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if mazeName == "" {
		mazeName = s.catalog.DefaultName()
		if mazeName == "" {
			return nil, fmt.Errorf("%w: catalog has no default maze", ErrMazeNotFound)
		}
	}

	maze, err := s.catalog.Load(mazeName)
	if err != nil {
		if errors.Is(err, ErrMazeNotFound) {
			return nil, s.notFoundHint(mazeName, err)
		}
		return nil, fmt.Errorf("failed to load maze %s: %w", mazeName, err)
	}

	return s.createLocked(mazeName, maze)
}

// CreateSessionFromRows creates a session on a maze given inline
func (s *mazeServiceImpl) CreateSessionFromRows(ctx context.Context, rows []string) (*SessionInfo, error) {
	maze, err := parseRows(rows)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createLocked(CustomMazeName, maze)
}

func (s *mazeServiceImpl) createLocked(mazeName string, maze *engine.Maze) (*SessionInfo, error) {
	sess, err := s.sessions.Create("", mazeName, maze)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	s.observer.SessionCreated(mazeName)

	s.log.WithFields(logrus.Fields{
		"session": sess.ID,
		"maze":    mazeName,
		"cells":   maze.GetCellCount(),
	}).Info("session created")

	return NewSessionInfo(sess), nil
}

// GetSession retrieves session information. Touching the access time is a
// write, so it takes the exclusive lock.
func (s *mazeServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	return NewSessionInfo(sess), nil
}

// ListSessions returns all active sessions
func (s *mazeServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, NewSessionInfo(sess))
	}
	return result, nil
}

// DeleteSession removes a session
func (s *mazeServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(sessionID); err != nil {
		return fmt.Errorf("session %s: %w", sessionID, err)
	}
	return nil
}

// Solve clears any previous attempt and runs the solver on the session maze
func (s *mazeServiceImpl) Solve(ctx context.Context, sessionID string) (*SolveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	sess.Maze.Reset()
	started := time.Now()
	solution, err := sess.Maze.Solve()
	elapsed := time.Since(started)
	if err != nil {
		return nil, fmt.Errorf("solve session %s: %w", sessionID, err)
	}
	s.observer.SolveCompleted(solution.Found, solution.Explored, elapsed)

	result := &SolveResult{
		SessionID:  sess.ID,
		Found:      solution.Found,
		Path:       solution.Path,
		PathLength: len(solution.Path),
		Explored:   solution.Explored,
		DurationMS: float64(elapsed.Microseconds()) / 1000.0,
		Rows:       sess.Maze.Rows(),
	}
	if solution.Found {
		sess.Status = StatusSolved
		sess.Solution = solution
		result.Message = fmt.Sprintf("Path found: %d cells, %d explored", len(solution.Path), solution.Explored)
	} else {
		sess.Status = StatusUnsolvable
		sess.Solution = nil
		result.Message = fmt.Sprintf("No path from start to end, %d cells explored", solution.Explored)
	}

	s.log.WithFields(logrus.Fields{
		"session":  sess.ID,
		"found":    solution.Found,
		"explored": solution.Explored,
		"elapsed":  elapsed,
	}).Debug("maze solved")

	s.persist(sessionID)
	return result, nil
}

// Reset returns the session maze to its unsolved state
func (s *mazeServiceImpl) Reset(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	sess.Maze.Reset()
	sess.Status = StatusUnsolved
	sess.Solution = nil

	s.persist(sessionID)
	return NewSessionInfo(sess), nil
}

// Render returns the serialized session maze
func (s *mazeServiceImpl) Render(ctx context.Context, sessionID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return "", fmt.Errorf("session %s: %w", sessionID, err)
	}
	return sess.Maze.String(), nil
}

// ListMazes returns the catalog contents
func (s *mazeServiceImpl) ListMazes(ctx context.Context) ([]*MazeInfo, error) {
	return s.catalog.List()
}

// GetMaze returns a catalog maze including its rows
func (s *mazeServiceImpl) GetMaze(ctx context.Context, mazeName string) (*MazeInfo, error) {
	info, err := s.catalog.Info(mazeName)
	if err != nil {
		return nil, fmt.Errorf("maze %s: %w", mazeName, err)
	}
	return info, nil
}

// SaveMaze validates rows and stores them in the catalog under mazeName
func (s *mazeServiceImpl) SaveMaze(ctx context.Context, mazeName string, rows []string) (*MazeInfo, error) {
	if mazeName == "" {
		return nil, fmt.Errorf("%w: maze name is required", engine.ErrInvalidArgument)
	}
	maze, err := parseRows(rows)
	if err != nil {
		return nil, err
	}
	if err := s.catalog.Save(mazeName, maze); err != nil {
		return nil, fmt.Errorf("save maze %s: %w", mazeName, err)
	}
	return s.catalog.Info(mazeName)
}

// persist saves a session and logs, rather than returns, failures
func (s *mazeServiceImpl) persist(sessionID string) {
	if err := s.sessions.Save(sessionID); err != nil {
		s.log.WithError(err).WithField("session", sessionID).Warn("failed to persist session")
	}
}

// notFoundHint lists the available mazes alongside a not-found error
func (s *mazeServiceImpl) notFoundHint(mazeName string, err error) error {
	mazes, listErr := s.catalog.List()
	if listErr != nil || len(mazes) == 0 {
		return fmt.Errorf("maze '%s': %w. Use /api/mazes to list available mazes", mazeName, err)
	}
	ids := make([]string, 0, len(mazes))
	for _, m := range mazes {
		ids = append(ids, m.MazeID)
	}
	return fmt.Errorf("maze '%s': %w. Available mazes: %v", mazeName, err, ids)
}

// parseRows builds and validates a maze from inline rows
func parseRows(rows []string) (*engine.Maze, error) {
	maze, err := reader.ParseRows(rows)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMaze, err)
	}
	if err := engine.Validate(maze); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMaze, err)
	}
	return maze, nil
}

type noopObserver struct{}

func (noopObserver) SessionCreated(string) {}
func (noopObserver) SolveCompleted(bool, int, time.Duration) {}
