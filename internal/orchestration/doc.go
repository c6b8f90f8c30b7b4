// Package orchestration runs one computation on one or several numeric
// backends concurrently and reconciles their answers. Presentation is kept
// behind the ProgressReporter and ResultPresenter interfaces.
package orchestration
