// Package catalog serves the maze files of a directory by name.
//
// A maze named "spiral" lives in spiral.txt. Files are parsed once and
// cached as rows; every Load returns a new Maze so sessions never share
// solver state. Files that fail to parse or lack exactly one start and one
// end are reported as ErrInvalidMaze and left out of List.
//
// Usage:
//
//	mazes, err := catalog.NewCatalog("mazes")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	m, err := mazes.Load("spiral")
//	infos, err := mazes.List()
package catalog
