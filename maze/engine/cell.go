package engine

import "fmt"

// Cell is a single maze node. Its identity is its coordinate.
type Cell struct {
	coords    Coordinate
	status    CellStatus
	explored  bool
	neighbors [4]*Coordinate // indexed by Direction
}

// NewCell creates a cell with the given coordinate and status
func NewCell(coords Coordinate, status CellStatus) (*Cell, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: cell status %q", ErrInvalidArgument, status)
	}
	return &Cell{
		coords: coords,
		status: status,
	}, nil
}

// Coords returns the cell coordinate
func (c *Cell) Coords() Coordinate {
	return c.coords
}

// Status returns the cell status
func (c *Cell) Status() CellStatus {
	return c.status
}

// SetStatus updates the status. Start/End invariants are the caller's concern.
func (c *Cell) SetStatus(status CellStatus) {
	c.status = status
}

// IsExplored reports whether the solver has visited the cell
func (c *Cell) IsExplored() bool {
	return c.explored
}

// SetExplored sets the explored flag
func (c *Cell) SetExplored(explored bool) {
	c.explored = explored
}

// Neighbors returns the live neighbor slots in East, West, South, North order.
// A nil slot means no grid cell in that direction.
func (c *Cell) Neighbors() *[4]*Coordinate {
	return &c.neighbors
}

// Neighbor returns the neighbor slot for direction d
func (c *Cell) Neighbor(d Direction) *Coordinate {
	if d < East || d > North {
		return nil
	}
	return c.neighbors[d]
}

func (c *Cell) String() string {
	return fmt.Sprintf("%s%s", c.status, c.coords)
}
