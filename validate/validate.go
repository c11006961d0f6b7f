// Command validate checks the maze files in a directory (../mazes by
// default). For each *.txt file it checks:
//   - every token is one of S, E, O, X
//   - the maze has exactly one start (S) and one end (E)
//   - whether E can be reached from S
//
// Unreachable ends are reported as informational unless -strict is given.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/wricardo/maze-runner/maze/engine"
	"github.com/wricardo/maze-runner/maze/reader"
)

// ValidationResult captures the outcome of validating a single file.
// Messages holds informational lines prefixed with ✓ or ⚠ alongside errors.
type ValidationResult struct {
	File     string
	Valid    bool
	Messages []string
}

func (r *ValidationResult) fail(format string, args ...interface{}) {
	r.Valid = false
	r.Messages = append(r.Messages, fmt.Sprintf(format, args...))
}

func (r *ValidationResult) info(format string, args ...interface{}) {
	r.Messages = append(r.Messages, fmt.Sprintf(format, args...))
}

// validateMaze loads and validates a single maze file
func validateMaze(path string, strict bool) ValidationResult {
	result := ValidationResult{
		File:     filepath.Base(path),
		Valid:    true,
		Messages: []string{},
	}

	maze, err := reader.Load(path)
	if err != nil {
		result.fail("Failed to read maze: %v", err)
		return result
	}
	if err := engine.Validate(maze); err != nil {
		result.fail("%v", err)
		return result
	}

	rows := maze.Rows()
	result.info("✓ Size: %d rows, %d cells", len(rows), maze.GetCellCount())

	reachable, err := maze.Reachable()
	if err != nil {
		result.fail("Reachability check failed: %v", err)
		return result
	}

	switch {
	case reachable:
		result.info("✓ Connectivity: end reachable from start")
	case strict:
		result.fail("Connectivity failure: end unreachable from start")
	default:
		result.info("⚠ Connectivity: end unreachable from start")
	}

	return result
}

// run validates every maze in dir, writes a report to w and returns
// whether all of them passed
func run(dir string, strict bool, w io.Writer) (bool, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	if err != nil {
		return false, fmt.Errorf("finding maze files: %w", err)
	}
	if len(files) == 0 {
		return false, fmt.Errorf("no maze files in %s", dir)
	}

	allValid := true
	for _, file := range files {
		result := validateMaze(file, strict)

		fmt.Fprintf(w, "\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Fprintln(w, "✅ VALID")
			for _, msg := range result.Messages {
				fmt.Fprintln(w, "  "+msg)
			}
			continue
		}

		fmt.Fprintln(w, "❌ INVALID")
		allValid = false
		for _, msg := range result.Messages {
			if !strings.HasPrefix(msg, "✓") {
				fmt.Fprintln(w, "  ❌ "+msg)
			}
		}
	}

	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Fprintln(w, "✅ All mazes are valid!")
	} else {
		fmt.Fprintln(w, "❌ Some mazes have errors")
	}
	return allValid, nil
}

func main() {
	dir := flag.String("dir", "../mazes", "Directory containing maze files")
	strict := flag.Bool("strict", false, "Treat unreachable ends as errors")
	flag.Parse()

	ok, err := run(*dir, *strict, os.Stdout)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if !ok {
		os.Exit(1)
	}
}
