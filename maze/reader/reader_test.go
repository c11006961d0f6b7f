package reader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/maze-runner/maze/engine"
)

func writeMaze(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "maze.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeMaze(t, "S O X\nX O E\n")

	maze, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, maze)

	assert.Equal(t, 4, maze.Size())
	assert.Equal(t, 4, maze.GetCellCount())
	assert.Equal(t, engine.NewCoordinate(0, 0), maze.GetStart().Coords())
	assert.Equal(t, engine.NewCoordinate(1, 2), maze.GetEnd().Coords())
	assert.Nil(t, maze.GetCell(engine.NewCoordinate(0, 2)))
}

func TestLoadRoundTrip(t *testing.T) {
	source := "S O O X\nX X O X\nE O O X\nX X X O\n"
	maze, err := ParseString(source)
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, maze.Serialize(out))

	reloaded, err := Load(out)
	require.NoError(t, err)
	assert.Equal(t, source, reloaded.String())
	assert.Equal(t, maze.Size(), reloaded.Size())
}

func TestLoadSolvesSampleShape(t *testing.T) {
	maze, err := ParseRows([]string{
		"S O X",
		"X O X",
		"X O E",
	})
	require.NoError(t, err)

	found, err := maze.SolveMaze()
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"S P X", "X P X", "X P E"}, maze.Rows())
}

func TestLoadErrors(t *testing.T) {
	_, err := Load("")
	assert.ErrorIs(t, err, engine.ErrInvalidArgument)
	assert.Contains(t, err.Error(), "path cannot be absent")

	_, err = Load(filepath.Join(t.TempDir(), "nope.txt"))
	assert.ErrorIs(t, err, engine.ErrIOFailure)

	_, err = Load(writeMaze(t, "S O\nO Q E\n"))
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Contains(t, err.Error(), "line 2, column 2")
}

func TestLoadEmptyFile(t *testing.T) {
	for _, content := range []string{"", "\n\n", "   \n\t\n"} {
		maze, err := Load(writeMaze(t, content))
		assert.NoError(t, err)
		assert.Nil(t, maze, "content %q", content)
	}
}

func TestParseOnlyAbsent(t *testing.T) {
	maze, err := ParseString("X X\nX X\n")
	require.NoError(t, err)
	require.NotNil(t, maze)
	assert.Equal(t, 0, maze.Size())
	assert.Equal(t, "", maze.String())
}

func TestParseToleratesSpacing(t *testing.T) {
	maze, err := ParseString("  S\tO   E  \r\n")
	require.NoError(t, err)
	assert.Equal(t, "S O E\n", maze.String())
}

func TestCountCells(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected int
	}{
		{"four cells", "S O X\nX O E\n", 4},
		{"empty", "", 0},
		{"only absent", "X X X\n", 0},
		{"path markers count", "S P P E\n", 4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			count, err := CountCells(writeMaze(t, tc.content))
			require.NoError(t, err)
			assert.Equal(t, tc.expected, count)
		})
	}

	_, err := CountCells("")
	assert.ErrorIs(t, err, engine.ErrInvalidArgument)

	_, err = CountCells(writeMaze(t, "S Z\n"))
	assert.ErrorIs(t, err, ErrInvalidToken)
}
