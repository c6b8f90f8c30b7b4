// Package tui implements the interactive terminal front end started with
// --tui. It is a bubbletea program: the user types a position, a value or a
// count, picks a mode and a numeric backend, and the computation runs through
// the same orchestration as the command line.
package tui
