package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/wricardo/maze-runner/maze/engine"
	"github.com/wricardo/maze-runner/maze/reader"
	"github.com/wricardo/maze-runner/maze/service"
)

var (
	ErrMazeNotFound = service.ErrMazeNotFound
	ErrInvalidMaze  = service.ErrInvalidMaze
	ErrInvalidName  = fmt.Errorf("%w: invalid maze name", engine.ErrInvalidArgument)
)

// DefaultMazeName is preferred as the default when present
const DefaultMazeName = "sample"

const mazeExt = ".txt"

var validName = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// entry is a cached maze file. Rows are kept rather than a Maze so every
// Load hands out an independent copy.
type entry struct {
	rows []string
	info *service.MazeInfo
}

// Catalog handles maze file loading and caching
type Catalog struct {
	dir         string
	defaultName string
	entries     map[string]*entry
	mu          sync.RWMutex
}

// NewCatalog creates a catalog over the maze files in dir
func NewCatalog(dir string) (*Catalog, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, fmt.Errorf("maze directory does not exist: %s", dir)
	}

	c := &Catalog{
		dir:     dir,
		entries: make(map[string]*entry),
	}
	c.loadDefault()
	return c, nil
}

// Load returns a fresh copy of the named maze
func (c *Catalog) Load(name string) (*engine.Maze, error) {
	e, err := c.get(name)
	if err != nil {
		return nil, err
	}
	return reader.ParseRows(e.rows)
}

// Info returns the details of the named maze, rows included
func (c *Catalog) Info(name string) (*service.MazeInfo, error) {
	e, err := c.get(name)
	if err != nil {
		return nil, err
	}
	info := *e.info
	info.Rows = append([]string(nil), e.rows...)
	return &info, nil
}

// List returns information about every valid maze in the directory, by name.
// Invalid files are skipped.
func (c *Catalog) List() ([]*service.MazeInfo, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read maze directory: %w", err)
	}

	mazes := []*service.MazeInfo{}
	for _, dirEntry := range entries {
		if dirEntry.IsDir() || !strings.HasSuffix(dirEntry.Name(), mazeExt) {
			continue
		}

		e, err := c.get(strings.TrimSuffix(dirEntry.Name(), mazeExt))
		if err != nil {
			continue
		}
		info := *e.info
		mazes = append(mazes, &info)
	}

	sort.Slice(mazes, func(i, j int) bool { return mazes[i].MazeID < mazes[j].MazeID })
	return mazes, nil
}

// DefaultName returns the name new sessions use when none is given
func (c *Catalog) DefaultName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.defaultName
}

// SetDefault sets the default maze by name
func (c *Catalog) SetDefault(name string) error {
	if _, err := c.get(name); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.defaultName = name
	return nil
}

// Save validates a maze and writes it to the directory under name
func (c *Catalog) Save(name string, maze *engine.Maze) error {
	if !validName.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if err := engine.Validate(maze); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMaze, err)
	}

	path := filepath.Join(c.dir, name+mazeExt)
	if err := maze.Serialize(path); err != nil {
		return fmt.Errorf("failed to write maze file: %w", err)
	}

	c.mu.Lock()
	c.entries[name] = newEntry(name, maze)
	c.mu.Unlock()
	return nil
}

// RefreshCache drops cached mazes so they are read from disk again
func (c *Catalog) RefreshCache() {
	c.mu.Lock()
	c.entries = make(map[string]*entry)
	c.mu.Unlock()

	c.loadDefault()
}

// get returns the cached entry for name, reading the file on a miss
func (c *Catalog) get(name string) (*entry, error) {
	name = strings.TrimSuffix(name, mazeExt)
	if !validName.MatchString(name) {
		return nil, fmt.Errorf("%w: %q", ErrMazeNotFound, name)
	}

	c.mu.RLock()
	if e, ok := c.entries[name]; ok {
		c.mu.RUnlock()
		return e, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check after acquiring write lock
	if e, ok := c.entries[name]; ok {
		return e, nil
	}

	maze, err := reader.Load(filepath.Join(c.dir, name+mazeExt))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrMazeNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidMaze, err)
	}
	if err := engine.Validate(maze); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMaze, err)
	}

	e := newEntry(name, maze)
	c.entries[name] = e
	return e, nil
}

// loadDefault picks DefaultMazeName, falling back to the first valid maze
func (c *Catalog) loadDefault() {
	name := ""
	if _, err := c.get(DefaultMazeName); err == nil {
		name = DefaultMazeName
	} else if mazes, err := c.List(); err == nil && len(mazes) > 0 {
		name = mazes[0].MazeID
	}

	c.mu.Lock()
	c.defaultName = name
	c.mu.Unlock()
}

func newEntry(name string, maze *engine.Maze) *entry {
	rows := maze.Rows()
	width := 0
	if len(rows) > 0 {
		width = len(strings.Fields(rows[0]))
	}
	return &entry{
		rows: rows,
		info: &service.MazeInfo{
			Filename: name + mazeExt,
			MazeID:   name,
			Cells:    maze.GetCellCount(),
			Height:   len(rows),
			Width:    width,
		},
	}
}
