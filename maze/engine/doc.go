// Package engine provides the core maze model and solver for the maze runner.
//
// The engine package implements:
//   - Coordinates, cell statuses and the fixed East/West/South/North direction order
//   - A capacity-bounded, insertion-ordered grid of cells
//   - Neighbor discovery against the cells actually present in the grid
//   - A depth-first solver with backtracking that marks the found path in place
//   - A flat text serialization of the grid
//
// Core Types:
//
// Maze owns a Grid of Cells. Cells carry a Coordinate, a CellStatus, an
// explored flag and a neighbor cache filled by Maze.SetUpNeighbors.
//
// Usage:
//
//	m, err := engine.NewMaze(2)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	start, _ := engine.NewCell(engine.NewCoordinate(0, 0), engine.Start)
//	end, _ := engine.NewCell(engine.NewCoordinate(0, 1), engine.End)
//	m.InsertCell(start)
//	m.InsertCell(end)
//
//	found, err := m.SolveMaze()
//	fmt.Print(m.String())
//
// Solving:
//
// The solver walks neighbors in the order East, West, South, North and stops
// at the first End it reaches, so the path it marks is a path, not the
// shortest one. Cells on the final path carry the Path status; cells it
// backtracked out of are returned to Open. Explored flags are left set until
// Reset is called.
//
// Engine types are not safe for concurrent use.
package engine
