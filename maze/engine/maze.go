package engine

import "fmt"

// Maze wraps a Grid with neighbor discovery, role lookup, solving and serialization
type Maze struct {
	grid *Grid
	size int
}

// NewMaze creates a maze that can hold maxCells cells
func NewMaze(maxCells int) (*Maze, error) {
	grid, err := NewGrid(maxCells)
	if err != nil {
		return nil, err
	}
	return &Maze{
		grid: grid,
		size: maxCells,
	}, nil
}

// Size returns the configured capacity, not the current occupancy
func (m *Maze) Size() int {
	return m.size
}

// InsertCell adds a cell to the underlying grid. See Grid.InsertCell.
func (m *Maze) InsertCell(cell *Cell) (bool, error) {
	if cell == nil {
		return false, fmt.Errorf("%w: cell cannot be nil", ErrInvalidArgument)
	}
	return m.grid.InsertCell(cell)
}

// GetCell returns the cell at coords, or nil
func (m *Maze) GetCell(coords Coordinate) *Cell {
	return m.grid.GetCell(coords)
}

// GetAllCells returns all cells in insertion order
func (m *Maze) GetAllCells() []*Cell {
	return m.grid.GetAllCells()
}

// GetCellCount returns the number of inserted cells
func (m *Maze) GetCellCount() int {
	return m.grid.GetCellCount()
}

// NeighborsOf returns, for each direction in Directions order, the coordinate
// of the adjacent grid cell or nil when none exists. It reads the grid only.
func (m *Maze) NeighborsOf(coords Coordinate) [4]*Coordinate {
	var neighbors [4]*Coordinate
	for _, d := range Directions {
		candidate := coords.Neighbor(d)
		if m.grid.GetCell(candidate) != nil {
			neighbors[d] = &candidate
		}
	}
	return neighbors
}

// SetUpNeighbors recomputes the neighbor slots of cell from the current grid
func (m *Maze) SetUpNeighbors(cell *Cell) error {
	if cell == nil {
		return fmt.Errorf("%w: cell cannot be nil", ErrInvalidArgument)
	}
	cell.neighbors = m.NeighborsOf(cell.coords)
	return nil
}

// GetFirstCellWithStatus returns the earliest inserted cell with the given status, or nil
func (m *Maze) GetFirstCellWithStatus(status CellStatus) (*Cell, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: status %q", ErrInvalidArgument, status)
	}
	for _, cell := range m.grid.cells {
		if cell.status == status {
			return cell, nil
		}
	}
	return nil, nil
}

// GetStart returns the maze entrance, or nil
func (m *Maze) GetStart() *Cell {
	cell, _ := m.GetFirstCellWithStatus(Start)
	return cell
}

// GetEnd returns the maze exit, or nil
func (m *Maze) GetEnd() *Cell {
	cell, _ := m.GetFirstCellWithStatus(End)
	return cell
}

// CountStatus counts the cells carrying status
func (m *Maze) CountStatus(status CellStatus) int {
	count := 0
	for _, cell := range m.grid.cells {
		if cell.status == status {
			count++
		}
	}
	return count
}

// Reset clears exploration state so the maze can be solved again.
// Path cells return to Open; Start and End are untouched.
func (m *Maze) Reset() {
	for _, cell := range m.grid.cells {
		cell.explored = false
		if cell.status == Path {
			cell.status = Open
		}
	}
}
