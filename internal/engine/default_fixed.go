//go:build fixedwidth

package engine

// DefaultNumeric is the backend used when --numeric is not given. Built with
// the fixedwidth tag, the default trades range for speed.
const DefaultNumeric = "int64"
