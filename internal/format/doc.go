// Package format renders durations, progress, byte sizes and long numbers for
// terminal output.
package format
