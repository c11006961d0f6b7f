package engine

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// lineBreak terminates every serialized row
const lineBreak = "\n"

// WriteTo writes the grid as text: one line per row from 0 to the largest
// row, one status marker per column from 0 to the largest column, markers
// separated by a single space. Coordinates without a cell are written as X.
func (m *Maze) WriteTo(w io.Writer) (int64, error) {
	if m.grid.GetCellCount() == 0 {
		return 0, nil
	}

	bw := bufio.NewWriter(w)
	var written int64
	maxRow, maxCol := m.grid.bounds()

	for row := 0; row <= maxRow; row++ {
		tokens := make([]string, 0, maxCol+1)
		for col := 0; col <= maxCol; col++ {
			status := Absent
			if cell := m.grid.GetCell(Coordinate{Row: row, Col: col}); cell != nil {
				status = cell.status
			}
			tokens = append(tokens, status.String())
		}
		n, err := bw.WriteString(strings.Join(tokens, " ") + lineBreak)
		written += int64(n)
		if err != nil {
			return written, fmt.Errorf("%w: %v", ErrIOFailure, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return written, fmt.Errorf("%w: %v", ErrIOFailure, err)
	}
	return written, nil
}

// String returns the serialized grid
func (m *Maze) String() string {
	var b strings.Builder
	m.WriteTo(&b)
	return b.String()
}

// Rows returns the serialized grid split into lines, without line breaks
func (m *Maze) Rows() []string {
	text := strings.TrimSuffix(m.String(), lineBreak)
	if text == "" {
		return []string{}
	}
	return strings.Split(text, lineBreak)
}

// Serialize writes the grid to the file at path, replacing any existing content
func (m *Maze) Serialize(path string) error {
	if path == "" {
		return fmt.Errorf("%w: path cannot be empty", ErrInvalidArgument)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIOFailure, err)
	}

	if _, err := m.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrIOFailure, err)
	}
	return nil
}
