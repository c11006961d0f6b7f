package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/wricardo/maze-runner/maze/engine"
	"github.com/wricardo/maze-runner/maze/reader"
)

// Analysis summarizes one maze file
type Analysis struct {
	File       string
	Height     int
	Width      int
	Cells      int
	Open       int
	DeadEnds   int
	Reachable  bool
	PathLength int
	Explored   int
}

func analyzeDir(out io.Writer, dir string) error {
	files, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no maze files in %s", dir)
	}

	for _, file := range files {
		fmt.Fprintf(out, "\n=== Analyzing %s ===\n", filepath.Base(file))

		a, err := analyzeMaze(file)
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			continue
		}
		printAnalysis(out, a)
	}
	return nil
}

func analyzeMaze(path string) (*Analysis, error) {
	maze, err := reader.Load(path)
	if err != nil {
		return nil, err
	}
	if err := engine.Validate(maze); err != nil {
		return nil, err
	}

	rows := maze.Rows()
	a := &Analysis{
		File:   filepath.Base(path),
		Height: len(rows),
		Cells:  maze.GetCellCount(),
		Open:   maze.CountStatus(engine.Open),
	}
	for _, cell := range maze.GetAllCells() {
		if cell.Status() == engine.Open && countNeighbors(maze, cell) == 1 {
			a.DeadEnds++
		}
		if w := cell.Coords().Col + 1; w > a.Width {
			a.Width = w
		}
	}

	solution, err := maze.Solve()
	if err != nil {
		return nil, err
	}
	a.Reachable = solution.Found
	a.PathLength = len(solution.Path)
	a.Explored = solution.Explored
	return a, nil
}

func countNeighbors(maze *engine.Maze, cell *engine.Cell) int {
	n := 0
	for _, c := range maze.NeighborsOf(cell.Coords()) {
		if c != nil {
			n++
		}
	}
	return n
}

func printAnalysis(out io.Writer, a *Analysis) {
	fmt.Fprintf(out, "Size: %d x %d\n", a.Height, a.Width)
	fmt.Fprintf(out, "Cells: %d (%d open)\n", a.Cells, a.Open)
	fmt.Fprintf(out, "Dead ends: %d\n", a.DeadEnds)
	if a.Reachable {
		fmt.Fprintf(out, "✅ Solvable: path of %d cells, %d explored\n", a.PathLength, a.Explored)
	} else {
		fmt.Fprintf(out, "⚠️  Unsolvable: %d cells explored\n", a.Explored)
	}
}
