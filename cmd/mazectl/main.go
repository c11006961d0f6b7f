// Command mazectl works with maze files from the command line: it solves a
// maze and writes the marked result, renders a maze in normalized form, and
// summarizes every maze in a directory.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/maze-runner/maze/engine"
	"github.com/wricardo/maze-runner/maze/reader"
)

const Version = "1.0.0"

func main() {
	if err := newApp(os.Stdout).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "mazectl: %v\n", err)
		os.Exit(1)
	}
}

func newApp(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:    "mazectl",
		Usage:   "solve, render and analyze maze files",
		Version: Version,
		Writer:  out,
		Commands: []*cli.Command{
			{
				Name:      "solve",
				Usage:     "solve a maze and print it with the path marked",
				ArgsUsage: "<file>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Usage:   "also write the solved maze to `FILE`",
					},
					&cli.BoolFlag{
						Name:  "path",
						Usage: "print the coordinates of the path",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return solve(out, cmd.Args().First(), cmd.String("out"), cmd.Bool("path"))
				},
			},
			{
				Name:      "render",
				Usage:     "print a maze in normalized form",
				ArgsUsage: "<file>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Usage:   "write to `FILE` instead of stdout",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return render(out, cmd.Args().First(), cmd.String("out"))
				},
			},
			{
				Name:      "analyze",
				Usage:     "summarize every maze in a directory",
				ArgsUsage: "<dir>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					dir := cmd.Args().First()
					if dir == "" {
						dir = "mazes"
					}
					return analyzeDir(out, dir)
				},
			},
		},
	}
}

// loadMaze reads and validates the maze at path
func loadMaze(path string) (*engine.Maze, error) {
	if path == "" {
		return nil, errors.New("a maze file is required")
	}
	maze, err := reader.Load(path)
	if err != nil {
		return nil, err
	}
	if err := engine.Validate(maze); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return maze, nil
}

func solve(out io.Writer, path, outPath string, showPath bool) error {
	maze, err := loadMaze(path)
	if err != nil {
		return err
	}

	solution, err := maze.Solve()
	if err != nil {
		return err
	}

	if _, err := maze.WriteTo(out); err != nil {
		return err
	}
	if solution.Found {
		fmt.Fprintf(out, "\n✅ Path found: %d cells, %d explored\n", len(solution.Path), solution.Explored)
		if showPath {
			for _, c := range solution.Path {
				fmt.Fprintf(out, "   %s\n", c)
			}
		}
	} else {
		fmt.Fprintf(out, "\n❌ No path from start to end, %d cells explored\n", solution.Explored)
	}

	if outPath != "" {
		if err := maze.Serialize(outPath); err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote %s\n", outPath)
	}
	return nil
}

func render(out io.Writer, path, outPath string) error {
	maze, err := reader.Load(path)
	if err != nil {
		return err
	}
	if maze == nil {
		return fmt.Errorf("%s: maze is empty", path)
	}

	if outPath != "" {
		return maze.Serialize(outPath)
	}
	_, err = maze.WriteTo(out)
	return err
}
