// Package storage defines the report storage abstraction used by the batch
// runner and CLI.
package storage

import "github.com/arma-type-things/reforger-types-sub001/internal/report"

// Backend is the interface all report storage implementations must satisfy.
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// SaveRun persists a validation run and assigns its ID.
	SaveRun(run *report.ValidationRun) error

	// ListRuns returns the most recent runs, newest first. limit <= 0
	// returns all runs.
	ListRuns(limit int) ([]report.ValidationRun, error)

	// GetRun fetches a single run by ID.
	GetRun(id uint) (*report.ValidationRun, error)
}
