// Package reader loads mazes from their text form.
//
// A maze source has one row per line. Each row holds whitespace separated
// status markers: S (start), E (end), O (open), P (path) and X for a
// coordinate with no cell. This is the same format Maze.WriteTo produces, so
// a serialized maze can be read back.
package reader
