// Package apperrors defines the error types shared by the outer layers of
// fiblike and the mapping from errors to process exit codes.
//
// Errors are wrapped with fmt.Errorf and %w; every type that carries a cause
// implements Unwrap so errors.Is and errors.As see through it. Only the app
// package turns an error into an exit code.
package apperrors
