package reader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/wricardo/maze-runner/maze/engine"
)

// ErrInvalidToken indicates a maze source contained a token other than S, E, O, P or X
var ErrInvalidToken = errors.New("reader: invalid token")

// maxLineSize bounds a single row of a maze source
const maxLineSize = 4 * 1024 * 1024

// token is one non-absent cell read from a source
type token struct {
	coords engine.Coordinate
	status engine.CellStatus
}

// Load reads the maze file at path.
// An empty file yields a nil maze and a nil error.
func Load(path string) (*engine.Maze, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	maze, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return maze, nil
}

// Parse reads a maze from r. Rows are lines, cells are whitespace separated
// status markers, and X marks a coordinate with no cell. The maze capacity is
// the number of non-X markers. A source with no markers yields nil, nil.
func Parse(r io.Reader) (*engine.Maze, error) {
	tokens, seen, err := scan(r)
	if err != nil {
		return nil, err
	}
	if !seen {
		return nil, nil
	}

	maze, err := engine.NewMaze(len(tokens))
	if err != nil {
		return nil, err
	}
	for _, t := range tokens {
		cell, err := engine.NewCell(t.coords, t.status)
		if err != nil {
			return nil, err
		}
		if _, err := maze.InsertCell(cell); err != nil {
			return nil, err
		}
	}
	return maze, nil
}

// ParseString parses an in-memory maze source
func ParseString(s string) (*engine.Maze, error) {
	return Parse(strings.NewReader(s))
}

// ParseRows parses a maze given as one string per row
func ParseRows(rows []string) (*engine.Maze, error) {
	return ParseString(strings.Join(rows, "\n"))
}

// CountCells returns the number of non-X markers in the maze file at path,
// which is the capacity Load gives the maze. An empty file counts zero.
func CountCells(path string) (int, error) {
	f, err := open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	tokens, _, err := scan(f)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", path, err)
	}
	return len(tokens), nil
}

func open(path string) (*os.File, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: path cannot be absent", engine.ErrInvalidArgument)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", engine.ErrIOFailure, err)
	}
	return f, nil
}

// scan tokenizes r. seen reports whether any marker, X included, was present.
func scan(r io.Reader) (tokens []token, seen bool, err error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	row := 0
	for scanner.Scan() {
		for col, field := range strings.Fields(scanner.Text()) {
			seen = true
			status, ok := engine.ParseCellStatus(field)
			if !ok {
				return nil, false, fmt.Errorf("%w %q at line %d, column %d", ErrInvalidToken, field, row+1, col+1)
			}
			if status == engine.Absent {
				continue
			}
			tokens = append(tokens, token{
				coords: engine.NewCoordinate(row, col),
				status: status,
			})
		}
		row++
	}
	if err := scanner.Err(); err != nil {
		return nil, false, fmt.Errorf("%w: %v", engine.ErrIOFailure, err)
	}
	return tokens, seen, nil
}
