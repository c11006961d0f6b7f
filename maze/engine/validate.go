package engine

import "fmt"

// Validate checks that a maze is fit to be solved: it must exist, hold at
// least one cell, and carry exactly one Start and one End.
func Validate(m *Maze) error {
	if m == nil {
		return fmt.Errorf("maze validation: maze is empty")
	}
	if m.GetCellCount() == 0 {
		return fmt.Errorf("maze validation: maze has no cells")
	}

	if n := m.CountStatus(Start); n != 1 {
		return fmt.Errorf("maze validation: must have exactly one start (S) cell, got %d", n)
	}
	if n := m.CountStatus(End); n != 1 {
		return fmt.Errorf("maze validation: must have exactly one end (E) cell, got %d", n)
	}
	return nil
}

// Reachable reports whether End can be reached from Start without touching
// any cell state. It returns ErrNoStartCell when the maze has no Start.
func (m *Maze) Reachable() (bool, error) {
	start := m.GetStart()
	if start == nil {
		return false, ErrNoStartCell
	}

	visited := map[Coordinate]bool{start.coords: true}
	queue := []Coordinate{start.coords}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if m.grid.GetCell(current).status == End {
			return true, nil
		}
		for _, next := range m.NeighborsOf(current) {
			if next == nil || visited[*next] {
				continue
			}
			visited[*next] = true
			queue = append(queue, *next)
		}
	}
	return false, nil
}
