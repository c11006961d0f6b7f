package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveAdjacentEnd(t *testing.T) {
	m := newTestMaze(t,
		cellSpec{0, 0, Start},
		cellSpec{0, 1, End},
	)

	found, err := m.SolveMaze()
	require.NoError(t, err)
	assert.True(t, found)

	assert.Equal(t, 0, m.CountStatus(Path))
	assert.Equal(t, Start, m.GetCell(NewCoordinate(0, 0)).Status())
	assert.Equal(t, End, m.GetCell(NewCoordinate(0, 1)).Status())
}

func TestSolveUnreachable(t *testing.T) {
	m := newTestMaze(t,
		cellSpec{0, 0, Start},
		cellSpec{0, 1, Open},
	)

	found, err := m.SolveMaze()
	require.NoError(t, err)
	assert.False(t, found)

	open := m.GetCell(NewCoordinate(0, 1))
	assert.Equal(t, Open, open.Status(), "dead ends revert to Open")
	assert.True(t, open.IsExplored())
	assert.True(t, m.GetStart().IsExplored())
}

func TestSolveMarksOnlyThePath(t *testing.T) {
	m := newTestMaze(t,
		cellSpec{0, 0, Start},
		cellSpec{0, 1, Open},
		cellSpec{0, 2, Open},
		cellSpec{0, 3, End},
		cellSpec{2, 0, Open},
	)

	found, err := m.SolveMaze()
	require.NoError(t, err)
	assert.True(t, found)

	assert.Equal(t, Path, m.GetCell(NewCoordinate(0, 1)).Status())
	assert.Equal(t, Path, m.GetCell(NewCoordinate(0, 2)).Status())
	assert.Equal(t, Start, m.GetCell(NewCoordinate(0, 0)).Status())
	assert.Equal(t, End, m.GetCell(NewCoordinate(0, 3)).Status())

	island := m.GetCell(NewCoordinate(2, 0))
	assert.Equal(t, Open, island.Status())
	assert.False(t, island.IsExplored(), "disconnected cells are never reached")
}

func TestSolveNoStart(t *testing.T) {
	m := newTestMaze(t,
		cellSpec{0, 0, Open},
		cellSpec{0, 1, End},
	)

	found, err := m.SolveMaze()
	assert.ErrorIs(t, err, ErrNoStartCell)
	assert.False(t, found)

	_, err = m.Solve()
	assert.ErrorIs(t, err, ErrNoStartCell)
}

func TestSolveTriesEastFirst(t *testing.T) {
	// S O O
	// O X O
	// X X E
	// East is tried first, so the top row leads to E and (1,0) is never reached.
	m := newTestMaze(t,
		cellSpec{0, 0, Start},
		cellSpec{1, 0, Open},
		cellSpec{0, 1, Open},
		cellSpec{0, 2, Open},
		cellSpec{1, 2, Open},
		cellSpec{2, 2, End},
	)

	solution, err := m.Solve()
	require.NoError(t, err)
	require.True(t, solution.Found)

	assert.Equal(t, []Coordinate{{0, 0}, {0, 1}, {0, 2}, {1, 2}, {2, 2}}, solution.Path)
	assert.Equal(t, Open, m.GetCell(NewCoordinate(1, 0)).Status())
	assert.False(t, m.GetCell(NewCoordinate(1, 0)).IsExplored())
	assert.Equal(t, 3, m.CountStatus(Path))
}

func TestSolveStopsAtFirstEnd(t *testing.T) {
	// S O X
	// X O E
	// O O X
	m := newTestMaze(t,
		cellSpec{0, 0, Start},
		cellSpec{0, 1, Open},
		cellSpec{1, 1, Open},
		cellSpec{2, 1, Open},
		cellSpec{2, 0, Open},
		cellSpec{1, 2, End},
	)

	found, err := m.SolveMaze()
	require.NoError(t, err)
	require.True(t, found)

	// East of (1,1) is End, so South is never tried
	assert.Equal(t, Path, m.GetCell(NewCoordinate(0, 1)).Status())
	assert.Equal(t, Path, m.GetCell(NewCoordinate(1, 1)).Status())
	assert.Equal(t, Open, m.GetCell(NewCoordinate(2, 1)).Status())
	assert.False(t, m.GetCell(NewCoordinate(2, 1)).IsExplored())
}

func TestSolveDeadEndBranchExplored(t *testing.T) {
	// X O X X
	// S O O O
	// X X O X
	// E O O X
	m := newTestMaze(t,
		cellSpec{1, 0, Start},
		cellSpec{1, 1, Open},
		cellSpec{0, 1, Open}, // spur, North of (1,1), tried last
		cellSpec{1, 2, Open},
		cellSpec{2, 2, Open},
		cellSpec{3, 2, Open},
		cellSpec{3, 1, Open},
		cellSpec{3, 0, End},
		cellSpec{1, 3, Open}, // spur, East of (1,2), tried first
	)

	solution, err := m.Solve()
	require.NoError(t, err)
	require.True(t, solution.Found)

	spur := m.GetCell(NewCoordinate(1, 3))
	assert.True(t, spur.IsExplored())
	assert.Equal(t, Open, spur.Status(), "explored dead end reverts to Open")

	assert.Equal(t, []Coordinate{{1, 0}, {1, 1}, {1, 2}, {2, 2}, {3, 2}, {3, 1}, {3, 0}}, solution.Path)
	for _, c := range solution.Path[1 : len(solution.Path)-1] {
		assert.Equal(t, Path, m.GetCell(c).Status(), "path cell %s", c)
	}
	assert.Equal(t, 5, m.CountStatus(Path))
	assert.False(t, m.GetCell(NewCoordinate(0, 1)).IsExplored())
}

func TestSolvePathIsContiguous(t *testing.T) {
	m := newTestMaze(t,
		cellSpec{0, 0, Start},
		cellSpec{1, 0, Open},
		cellSpec{2, 0, Open},
		cellSpec{2, 1, Open},
		cellSpec{2, 2, Open},
		cellSpec{1, 2, Open},
		cellSpec{0, 2, End},
	)

	solution, err := m.Solve()
	require.NoError(t, err)
	require.True(t, solution.Found)

	require.NotEmpty(t, solution.Path)
	assert.Equal(t, NewCoordinate(0, 0), solution.Path[0])
	assert.Equal(t, NewCoordinate(0, 2), solution.Path[len(solution.Path)-1])
	for i := 1; i < len(solution.Path); i++ {
		prev, cur := solution.Path[i-1], solution.Path[i]
		dr, dc := cur.Row-prev.Row, cur.Col-prev.Col
		assert.Equal(t, 1, dr*dr+dc*dc, "step %s -> %s", prev, cur)
	}
	assert.Equal(t, len(solution.Path)-2, m.CountStatus(Path))
	assert.Equal(t, len(solution.Path), solution.Explored)
}

func TestSolveNoEnd(t *testing.T) {
	m := newTestMaze(t,
		cellSpec{0, 0, Start},
		cellSpec{0, 1, Open},
		cellSpec{1, 1, Open},
		cellSpec{1, 0, Open},
	)

	solution, err := m.Solve()
	require.NoError(t, err)
	assert.False(t, solution.Found)
	assert.Empty(t, solution.Path)
	assert.Equal(t, 4, solution.Explored)

	// status invariant: no Path cells left behind on failure
	assert.Equal(t, 0, m.CountStatus(Path))
	assert.Equal(t, 3, m.CountStatus(Open))
	for _, cell := range m.GetAllCells() {
		assert.True(t, cell.IsExplored(), "%s explored", cell)
	}
}

func TestSolveLongCorridor(t *testing.T) {
	const length = 20000

	m, err := NewMaze(length)
	require.NoError(t, err)
	for col := 0; col < length; col++ {
		status := Open
		switch col {
		case 0:
			status = Start
		case length - 1:
			status = End
		}
		_, err := m.InsertCell(mustCell(t, 0, col, status))
		require.NoError(t, err)
	}

	solution, err := m.Solve()
	require.NoError(t, err)
	assert.True(t, solution.Found)
	assert.Len(t, solution.Path, length)
	assert.Equal(t, length-2, m.CountStatus(Path))
}

func TestResetAllowsResolve(t *testing.T) {
	m := newTestMaze(t,
		cellSpec{0, 0, Start},
		cellSpec{0, 1, Open},
		cellSpec{0, 2, End},
	)

	found, err := m.SolveMaze()
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, 1, m.CountStatus(Path))

	m.Reset()
	assert.Equal(t, 0, m.CountStatus(Path))
	for _, cell := range m.GetAllCells() {
		assert.False(t, cell.IsExplored())
	}

	found, err = m.SolveMaze()
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 1, m.CountStatus(Path))
}
