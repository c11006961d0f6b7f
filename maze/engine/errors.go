package engine

import "errors"

var (
	// ErrInvalidArgument indicates a required argument was absent or unknown.
	ErrInvalidArgument = errors.New("engine: invalid argument")
	// ErrDuplicateCell indicates a cell with the same coordinate is already in the grid.
	ErrDuplicateCell = errors.New("engine: duplicate cell coordinate")
	// ErrNoStartCell indicates a solve was attempted on a maze without a Start cell.
	ErrNoStartCell = errors.New("engine: maze has no start cell")
	// ErrIOFailure indicates reading or writing a maze failed at the I/O layer.
	ErrIOFailure = errors.New("engine: i/o failure")
)
