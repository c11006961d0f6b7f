package engine

import "fmt"

// Grid is a capacity-bounded collection of cells kept in insertion order
type Grid struct {
	capacity int
	cells    []*Cell
	index    map[Coordinate]int
}

// NewGrid creates an empty grid holding at most capacity cells
func NewGrid(capacity int) (*Grid, error) {
	if capacity < 0 {
		return nil, fmt.Errorf("%w: capacity must be >= 0, got %d", ErrInvalidArgument, capacity)
	}
	return &Grid{
		capacity: capacity,
		cells:    make([]*Cell, 0, capacity),
		index:    make(map[Coordinate]int, capacity),
	}, nil
}

// InsertCell appends cell to the grid.
// It returns false without error when the grid is full, and
// ErrDuplicateCell when a cell already occupies the coordinate.
func (g *Grid) InsertCell(cell *Cell) (bool, error) {
	if cell == nil {
		return false, fmt.Errorf("%w: cell cannot be nil", ErrInvalidArgument)
	}
	if len(g.cells) == g.capacity {
		return false, nil
	}
	if _, exists := g.index[cell.coords]; exists {
		return false, fmt.Errorf("%w: %s", ErrDuplicateCell, cell.coords)
	}

	g.index[cell.coords] = len(g.cells)
	g.cells = append(g.cells, cell)
	return true, nil
}

// GetCell returns the cell at coords, or nil
func (g *Grid) GetCell(coords Coordinate) *Cell {
	i, ok := g.index[coords]
	if !ok {
		return nil
	}
	return g.cells[i]
}

// GetAllCells returns the cells in insertion order
func (g *Grid) GetAllCells() []*Cell {
	cells := make([]*Cell, len(g.cells))
	copy(cells, g.cells)
	return cells
}

// GetCellCount returns the number of inserted cells
func (g *Grid) GetCellCount() int {
	return len(g.cells)
}

// Capacity returns the maximum number of cells
func (g *Grid) Capacity() int {
	return g.capacity
}

// bounds returns the largest row and column among inserted cells
func (g *Grid) bounds() (maxRow, maxCol int) {
	for _, cell := range g.cells {
		if cell.coords.Row > maxRow {
			maxRow = cell.coords.Row
		}
		if cell.coords.Col > maxCol {
			maxCol = cell.coords.Col
		}
	}
	return maxRow, maxCol
}
