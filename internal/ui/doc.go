// Package ui holds the colour themes shared by the CLI presenters, the usage
// text and the TUI, and decides when colours are switched off.
package ui
