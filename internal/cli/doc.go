// Package cli renders computations on the terminal: the execution header,
// the spinner, the result line, the comparison table, file output and shell
// completion scripts.
//
// Display* functions write to an io.Writer, Format* functions return strings
// without I/O, and Write* functions write files.
package cli
