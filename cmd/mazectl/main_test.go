package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := newApp(&out).Run(context.Background(), append([]string{"mazectl"}, args...))
	return out.String(), err
}

func writeMaze(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "maze.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSolveCommand(t *testing.T) {
	path := writeMaze(t, "S O X\nX O E\n")

	out, err := runApp(t, "solve", path)
	require.NoError(t, err)

	assert.Contains(t, out, "S P X\nX P E\n")
	assert.Contains(t, out, "Path found: 4 cells")
}

func TestSolveCommandWritesFile(t *testing.T) {
	path := writeMaze(t, "S O E\n")
	outPath := filepath.Join(t.TempDir(), "solved.txt")

	out, err := runApp(t, "solve", "--path", "-o", outPath, path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+outPath)
	assert.Contains(t, out, "(0,1)")

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "S P E\n", string(data))
}

func TestSolveCommandUnsolvable(t *testing.T) {
	path := writeMaze(t, "S X E\n")

	out, err := runApp(t, "solve", path)
	require.NoError(t, err)
	assert.Contains(t, out, "No path from start to end, 1 cells explored")
	assert.Contains(t, out, "S X E\n")
}

func TestSolveCommandErrors(t *testing.T) {
	_, err := runApp(t, "solve")
	assert.ErrorContains(t, err, "a maze file is required")

	_, err = runApp(t, "solve", writeMaze(t, "O O E\n"))
	assert.ErrorContains(t, err, "exactly one start")

	_, err = runApp(t, "solve", filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestRenderCommand(t *testing.T) {
	path := writeMaze(t, "S   O\nX  E\n")

	out, err := runApp(t, "render", path)
	require.NoError(t, err)
	assert.Equal(t, "S O\nX E\n", out)

	_, err = runApp(t, "render", writeMaze(t, ""))
	assert.ErrorContains(t, err, "maze is empty")
}

func TestAnalyzeCommand(t *testing.T) {
	out, err := runApp(t, "analyze", "../../mazes")
	require.NoError(t, err)

	assert.Contains(t, out, "=== Analyzing sample.txt ===")
	assert.Contains(t, out, "Solvable: path of 8 cells")
	assert.Contains(t, out, "=== Analyzing dead_end.txt ===")
	assert.Contains(t, out, "Unsolvable")
}

func TestAnalyzeMaze(t *testing.T) {
	// S O O
	// X O X
	// E O X
	a, err := analyzeMaze(writeMaze(t, "S O O\nX O X\nE O X\n"))
	require.NoError(t, err)

	assert.Equal(t, 3, a.Height)
	assert.Equal(t, 3, a.Width)
	assert.Equal(t, 6, a.Cells)
	assert.Equal(t, 4, a.Open)
	assert.Equal(t, 1, a.DeadEnds, "(0,2) is the only open dead end")
	assert.True(t, a.Reachable)
	assert.Equal(t, 5, a.PathLength)
}

func TestAnalyzeDirEmpty(t *testing.T) {
	_, err := runApp(t, "analyze", t.TempDir())
	assert.ErrorContains(t, err, "no maze files")
}
