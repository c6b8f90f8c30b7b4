//go:build !fixedwidth

package engine

// DefaultNumeric is the backend used when --numeric is not given.
const DefaultNumeric = "big"
