package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	empty, err := NewMaze(2)
	require.NoError(t, err)

	tests := []struct {
		name    string
		maze    *Maze
		wantErr string
	}{
		{name: "nil", maze: nil, wantErr: "maze is empty"},
		{name: "no cells", maze: empty, wantErr: "no cells"},
		{
			name:    "no start",
			maze:    newTestMaze(t, cellSpec{0, 0, Open}, cellSpec{0, 1, End}),
			wantErr: "exactly one start",
		},
		{
			name:    "two ends",
			maze:    newTestMaze(t, cellSpec{0, 0, Start}, cellSpec{0, 1, End}, cellSpec{0, 2, End}),
			wantErr: "exactly one end",
		},
		{
			name: "valid",
			maze: newTestMaze(t, cellSpec{0, 0, Start}, cellSpec{0, 1, End}),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.maze)
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestReachable(t *testing.T) {
	connected := newTestMaze(t,
		cellSpec{0, 0, Start},
		cellSpec{1, 0, Open},
		cellSpec{1, 1, Open},
		cellSpec{1, 2, End},
	)
	ok, err := connected.Reachable()
	require.NoError(t, err)
	assert.True(t, ok)
	for _, cell := range connected.GetAllCells() {
		assert.False(t, cell.IsExplored(), "state untouched for %s", cell)
	}
	assert.Equal(t, 0, connected.CountStatus(Path))

	split := newTestMaze(t,
		cellSpec{0, 0, Start},
		cellSpec{0, 1, Open},
		cellSpec{2, 1, End},
	)
	ok, err = split.Reachable()
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = newTestMaze(t, cellSpec{0, 0, End}).Reachable()
	assert.ErrorIs(t, err, ErrNoStartCell)
}
