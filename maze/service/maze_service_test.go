package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/maze-runner/maze/engine"
	"github.com/wricardo/maze-runner/maze/reader"
	"github.com/wricardo/maze-runner/maze/service"
)

// MockSessionManager implements service.SessionManager for testing
type MockSessionManager struct {
	sessions map[string]*service.Session
	saved    map[string]int
}

func NewMockSessionManager() *MockSessionManager {
	return &MockSessionManager{
		sessions: make(map[string]*service.Session),
		saved:    make(map[string]int),
	}
}

func (m *MockSessionManager) Create(id, mazeName string, maze *engine.Maze) (*service.Session, error) {
	if id == "" {
		id = fmt.Sprintf("test_%d", len(m.sessions)+1)
	}
	sess := &service.Session{
		ID:             id,
		MazeName:       mazeName,
		Maze:           maze,
		Status:         service.StatusUnsolved,
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
	}
	m.sessions[id] = sess
	return sess, nil
}

func (m *MockSessionManager) Get(id string) (*service.Session, error) {
	sess, ok := m.sessions[id]
	if !ok {
		return nil, service.ErrSessionNotFound
	}
	return sess, nil
}

func (m *MockSessionManager) List() []*service.Session {
	result := make([]*service.Session, 0, len(m.sessions))
	for _, sess := range m.sessions {
		result = append(result, sess)
	}
	return result
}

func (m *MockSessionManager) Delete(id string) error {
	if _, ok := m.sessions[id]; !ok {
		return service.ErrSessionNotFound
	}
	delete(m.sessions, id)
	return nil
}

func (m *MockSessionManager) UpdateLastAccessed(id string) error {
	sess, ok := m.sessions[id]
	if !ok {
		return service.ErrSessionNotFound
	}
	sess.LastAccessedAt = time.Now()
	return nil
}

func (m *MockSessionManager) Save(id string) error {
	m.saved[id]++
	return nil
}

// MockCatalog implements service.Catalog over in-memory rows
type MockCatalog struct {
	mazes map[string][]string
	def   string
}

func NewMockCatalog() *MockCatalog {
	return &MockCatalog{
		mazes: map[string][]string{
			"line":    {"S O E"},
			"blocked": {"S X E"},
		},
		def: "line",
	}
}

func (c *MockCatalog) Load(name string) (*engine.Maze, error) {
	rows, ok := c.mazes[name]
	if !ok {
		return nil, service.ErrMazeNotFound
	}
	return reader.ParseRows(rows)
}

func (c *MockCatalog) Info(name string) (*service.MazeInfo, error) {
	rows, ok := c.mazes[name]
	if !ok {
		return nil, service.ErrMazeNotFound
	}
	return &service.MazeInfo{MazeID: name, Filename: name + ".txt", Rows: rows}, nil
}

func (c *MockCatalog) List() ([]*service.MazeInfo, error) {
	var result []*service.MazeInfo
	for name := range c.mazes {
		info, _ := c.Info(name)
		result = append(result, info)
	}
	return result, nil
}

func (c *MockCatalog) Save(name string, maze *engine.Maze) error {
	c.mazes[name] = maze.Rows()
	return nil
}

func (c *MockCatalog) DefaultName() string {
	return c.def
}

// recordingObserver counts observer callbacks
type recordingObserver struct {
	created []string
	solves  []bool
}

func (o *recordingObserver) SessionCreated(mazeName string) {
	o.created = append(o.created, mazeName)
}

func (o *recordingObserver) SolveCompleted(found bool, explored int, elapsed time.Duration) {
	o.solves = append(o.solves, found)
}

func newTestService(t *testing.T) (service.MazeService, *MockSessionManager, *MockCatalog, *recordingObserver) {
	t.Helper()
	logger, _ := test.NewNullLogger()
	sessions := NewMockSessionManager()
	catalog := NewMockCatalog()
	observer := &recordingObserver{}
	svc := service.NewMazeService(sessions, catalog, service.Options{Observer: observer, Logger: logger})
	return svc, sessions, catalog, observer
}

func TestCreateSession(t *testing.T) {
	svc, _, _, observer := newTestService(t)
	ctx := context.Background()

	info, err := svc.CreateSession(ctx, "blocked")
	require.NoError(t, err)
	assert.Equal(t, "blocked", info.MazeName)
	assert.Equal(t, service.StatusUnsolved, info.Status)
	assert.Equal(t, 2, info.Cells)
	assert.Equal(t, []string{"S X E"}, info.Rows)

	def, err := svc.CreateSession(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "line", def.MazeName)

	assert.Equal(t, []string{"blocked", "line"}, observer.created)
}

func TestCreateSessionUnknownMaze(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.CreateSession(context.Background(), "nope")
	require.ErrorIs(t, err, service.ErrMazeNotFound)
	assert.Contains(t, err.Error(), "Available mazes")
}

func TestCreateSessionFromRows(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	info, err := svc.CreateSessionFromRows(ctx, []string{"S O", "X E"})
	require.NoError(t, err)
	assert.Equal(t, service.CustomMazeName, info.MazeName)

	_, err = svc.CreateSessionFromRows(ctx, []string{"S O O"})
	assert.ErrorIs(t, err, service.ErrInvalidMaze, "no end cell")

	_, err = svc.CreateSessionFromRows(ctx, []string{"S Q E"})
	assert.ErrorIs(t, err, service.ErrInvalidMaze, "bad token")

	_, err = svc.CreateSessionFromRows(ctx, nil)
	assert.ErrorIs(t, err, service.ErrInvalidMaze, "empty maze")
}

func TestSolve(t *testing.T) {
	svc, sessions, _, observer := newTestService(t)
	ctx := context.Background()

	info, err := svc.CreateSession(ctx, "line")
	require.NoError(t, err)

	result, err := svc.Solve(ctx, info.ID)
	require.NoError(t, err)
	assert.True(t, result.Found)
	assert.Equal(t, []engine.Coordinate{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}}, result.Path)
	assert.Equal(t, 3, result.PathLength)
	assert.Equal(t, []string{"S P E"}, result.Rows)
	assert.Contains(t, result.Message, "Path found")

	got, err := svc.GetSession(ctx, info.ID)
	require.NoError(t, err)
	assert.Equal(t, service.StatusSolved, got.Status)
	require.NotNil(t, got.Solution)

	assert.Equal(t, []bool{true}, observer.solves)
	assert.Equal(t, 1, sessions.saved[info.ID])
}

func TestSolveIsRepeatable(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	info, err := svc.CreateSession(ctx, "line")
	require.NoError(t, err)

	first, err := svc.Solve(ctx, info.ID)
	require.NoError(t, err)
	second, err := svc.Solve(ctx, info.ID)
	require.NoError(t, err)

	assert.Equal(t, first.Path, second.Path)
	assert.Equal(t, first.Rows, second.Rows)
}

func TestSolveUnsolvable(t *testing.T) {
	svc, _, _, observer := newTestService(t)
	ctx := context.Background()

	info, err := svc.CreateSession(ctx, "blocked")
	require.NoError(t, err)

	result, err := svc.Solve(ctx, info.ID)
	require.NoError(t, err)
	assert.False(t, result.Found)
	assert.Empty(t, result.Path)
	assert.Equal(t, []string{"S X E"}, result.Rows)

	got, err := svc.GetSession(ctx, info.ID)
	require.NoError(t, err)
	assert.Equal(t, service.StatusUnsolvable, got.Status)
	assert.Nil(t, got.Solution)
	assert.Equal(t, []bool{false}, observer.solves)
}

func TestResetAndRender(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	info, err := svc.CreateSession(ctx, "line")
	require.NoError(t, err)
	_, err = svc.Solve(ctx, info.ID)
	require.NoError(t, err)

	text, err := svc.Render(ctx, info.ID)
	require.NoError(t, err)
	assert.Equal(t, "S P E\n", text)

	reset, err := svc.Reset(ctx, info.ID)
	require.NoError(t, err)
	assert.Equal(t, service.StatusUnsolved, reset.Status)
	assert.Equal(t, []string{"S O E"}, reset.Rows)
	assert.Nil(t, reset.Solution)
}

func TestSessionNotFound(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.GetSession(ctx, "missing")
	assert.ErrorIs(t, err, service.ErrSessionNotFound)
	_, err = svc.Solve(ctx, "missing")
	assert.ErrorIs(t, err, service.ErrSessionNotFound)
	_, err = svc.Reset(ctx, "missing")
	assert.ErrorIs(t, err, service.ErrSessionNotFound)
	_, err = svc.Render(ctx, "missing")
	assert.ErrorIs(t, err, service.ErrSessionNotFound)
	assert.ErrorIs(t, svc.DeleteSession(ctx, "missing"), service.ErrSessionNotFound)
}

func TestListAndDeleteSessions(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	a, err := svc.CreateSession(ctx, "line")
	require.NoError(t, err)
	_, err = svc.CreateSession(ctx, "blocked")
	require.NoError(t, err)

	list, err := svc.ListSessions(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	require.NoError(t, svc.DeleteSession(ctx, a.ID))
	list, err = svc.ListSessions(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestSessionsAreIsolated(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	a, err := svc.CreateSession(ctx, "line")
	require.NoError(t, err)
	b, err := svc.CreateSession(ctx, "line")
	require.NoError(t, err)

	_, err = svc.Solve(ctx, a.ID)
	require.NoError(t, err)

	other, err := svc.Render(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "S O E\n", other)
}

func TestCatalogOperations(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	mazes, err := svc.ListMazes(ctx)
	require.NoError(t, err)
	assert.Len(t, mazes, 2)

	info, err := svc.GetMaze(ctx, "line")
	require.NoError(t, err)
	assert.Equal(t, []string{"S O E"}, info.Rows)

	_, err = svc.GetMaze(ctx, "nope")
	assert.ErrorIs(t, err, service.ErrMazeNotFound)

	saved, err := svc.SaveMaze(ctx, "corner", []string{"S O", "X E"})
	require.NoError(t, err)
	assert.Equal(t, "corner", saved.MazeID)

	_, err = svc.SaveMaze(ctx, "broken", []string{"S O"})
	assert.ErrorIs(t, err, service.ErrInvalidMaze)

	_, err = svc.SaveMaze(ctx, "", []string{"S E"})
	assert.ErrorIs(t, err, engine.ErrInvalidArgument)
}

func TestSolveLogsAtDebug(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	svc := service.NewMazeService(NewMockSessionManager(), NewMockCatalog(), service.Options{Logger: logger})
	ctx := context.Background()

	info, err := svc.CreateSession(ctx, "line")
	require.NoError(t, err)
	_, err = svc.Solve(ctx, info.ID)
	require.NoError(t, err)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "maze solved", entry.Message)
	assert.Equal(t, true, entry.Data["found"])
}
