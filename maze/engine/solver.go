package engine

// frame is one level of the explicit DFS stack
type frame struct {
	cell *Cell
	next int // index into Directions of the next slot to try
}

// SolveMaze runs the depth-first solver from the Start cell and reports
// whether an End cell was reached. It returns ErrNoStartCell when the maze
// has no Start.
func (m *Maze) SolveMaze() (bool, error) {
	solution, err := m.Solve()
	if err != nil {
		return false, err
	}
	return solution.Found, nil
}

// Solve runs the solver and returns the path it marked.
//
// Cells are visited depth-first in Directions order. A visited cell is
// marked explored and, unless it is Start, tentatively set to Path. When all
// of a cell's unexplored neighbors fail, the cell is reverted to Open. The
// first End reached stops the search.
func (m *Maze) Solve() (*Solution, error) {
	start := m.GetStart()
	if start == nil {
		return nil, ErrNoStartCell
	}

	solution := &Solution{}
	stack := make([]frame, 0, m.grid.GetCellCount())

	// visit marks c and reports whether it is the goal
	visit := func(c *Cell) bool {
		c.explored = true
		solution.Explored++
		if c.status == End {
			return true
		}
		if c.status != Start {
			c.status = Path
		}
		m.SetUpNeighbors(c)
		stack = append(stack, frame{cell: c})
		return false
	}

	if visit(start) {
		solution.Found = true
		solution.Path = []Coordinate{start.coords}
		return solution, nil
	}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]

		var next *Cell
		for top.next < len(Directions) {
			slot := top.cell.neighbors[Directions[top.next]]
			top.next++
			if slot == nil {
				continue
			}
			candidate := m.grid.GetCell(*slot)
			if candidate == nil || candidate.explored {
				continue
			}
			next = candidate
			break
		}

		if next == nil {
			// dead end
			if top.cell.status != Start && top.cell.status != End {
				top.cell.status = Open
			}
			stack = stack[:len(stack)-1]
			continue
		}

		if visit(next) {
			solution.Found = true
			solution.Path = make([]Coordinate, 0, len(stack)+1)
			for _, f := range stack {
				solution.Path = append(solution.Path, f.cell.coords)
			}
			solution.Path = append(solution.Path, next.coords)
			return solution, nil
		}
	}

	return solution, nil
}
