package engine

import "fmt"

// CellStatus represents the role of a cell in the maze
type CellStatus string

const (
	Start  CellStatus = "S" // maze entrance
	End    CellStatus = "E" // maze exit
	Open   CellStatus = "O" // traversable, unmarked
	Path   CellStatus = "P" // part of the attempted solution path
	Absent CellStatus = "X" // no cell at this coordinate, serialization only
)

// ParseCellStatus maps a serialized token to its status
func ParseCellStatus(token string) (CellStatus, bool) {
	switch s := CellStatus(token); s {
	case Start, End, Open, Path, Absent:
		return s, true
	}
	return "", false
}

// IsValid reports whether s can be stored on a Cell
func (s CellStatus) IsValid() bool {
	switch s {
	case Start, End, Open, Path:
		return true
	}
	return false
}

// String returns the single-character marker
func (s CellStatus) String() string {
	return string(s)
}

// Name returns a human-readable name for the status
func (s CellStatus) Name() string {
	switch s {
	case Start:
		return "start"
	case End:
		return "end"
	case Open:
		return "open"
	case Path:
		return "path"
	case Absent:
		return "absent"
	}
	return "unknown"
}

// Direction is one of the four cardinal neighbor directions
type Direction int

const (
	East Direction = iota
	West
	South
	North
)

// Directions is the order in which neighbors are stored and searched.
// Pathfinding results depend on it.
var Directions = [4]Direction{East, West, South, North}

// Offset returns the (row, col) delta for the direction
func (d Direction) Offset() (dRow, dCol int) {
	switch d {
	case East:
		return 0, 1
	case West:
		return 0, -1
	case South:
		return 1, 0
	case North:
		return -1, 0
	}
	return 0, 0
}

func (d Direction) String() string {
	switch d {
	case East:
		return "east"
	case West:
		return "west"
	case South:
		return "south"
	case North:
		return "north"
	}
	return fmt.Sprintf("direction(%d)", int(d))
}

// Coordinate represents a row, column position
type Coordinate struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// NewCoordinate creates a coordinate
func NewCoordinate(row, col int) Coordinate {
	return Coordinate{Row: row, Col: col}
}

// Equals reports whether other is non-nil and has the same row and column
func (c Coordinate) Equals(other *Coordinate) bool {
	return other != nil && c == *other
}

// Neighbor returns the coordinate one step away in direction d
func (c Coordinate) Neighbor(d Direction) Coordinate {
	dr, dc := d.Offset()
	return Coordinate{Row: c.Row + dr, Col: c.Col + dc}
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Solution describes the outcome of a solve run
type Solution struct {
	Found    bool         `json:"found"`
	Path     []Coordinate `json:"path,omitempty"` // Start through End inclusive
	Explored int          `json:"explored"`
}
