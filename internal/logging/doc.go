// Package logging provides the structured logging interface used by fiblike's
// outer layers, with a zerolog backend and a standard library log backend.
//
// Computation-level events go straight through the global zerolog logger
// (github.com/rs/zerolog/log); Setup configures its level and output once at
// start-up.
package logging
