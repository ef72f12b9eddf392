// Package memory keeps validation runs in process memory. This is the
// default backend for one-shot CLI use where nothing needs to survive exit.
package memory

import (
	"fmt"
	"sync"
	"time"

	"github.com/arma-type-things/reforger-types-sub001/internal/report"
)

// Backend stores validation runs in memory.
type Backend struct {
	runs      []report.ValidationRun
	idCounter uint
	mu        sync.RWMutex
}

// New creates a new memory backend.
func New() *Backend {
	return &Backend{}
}

// Init initializes the backend.
func (b *Backend) Init() error {
	return nil
}

// Close cleans up resources.
func (b *Backend) Close() error {
	return nil
}

// SaveRun stores a copy of the run and assigns its ID.
func (b *Backend) SaveRun(run *report.ValidationRun) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.idCounter++
	run.ID = b.idCounter
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	b.runs = append(b.runs, *run)
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (b *Backend) ListRuns(limit int) ([]report.ValidationRun, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	n := len(b.runs)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]report.ValidationRun, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, b.runs[i])
	}
	return out, nil
}

// GetRun fetches a single run by ID.
func (b *Backend) GetRun(id uint) (*report.ValidationRun, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for i := range b.runs {
		if b.runs[i].ID == id {
			run := b.runs[i]
			return &run, nil
		}
	}
	return nil, fmt.Errorf("run %d not found", id)
}
