// Package batch validates a directory of server configuration documents.
// Each document is parsed and validated independently; a bad file is
// recorded and skipped, never aborting the rest of the run.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/arma-type-things/reforger-types-sub001/internal/influx"
	"github.com/arma-type-things/reforger-types-sub001/internal/logging"
	"github.com/arma-type-things/reforger-types-sub001/internal/parser"
	"github.com/arma-type-things/reforger-types-sub001/internal/report"
	"github.com/arma-type-things/reforger-types-sub001/internal/storage"
)

// Summary is the outcome of a batch run.
type Summary struct {
	Total   int           `json:"total"`
	Passed  int           `json:"passed"`
	Failed  int           `json:"failed"`
	Elapsed time.Duration `json:"elapsed"`
}

// Dependencies wires the runner to its collaborators.
type Dependencies struct {
	Backend storage.Backend
	Influx  *influx.Manager // optional, nil disables metrics shipping
	Logger  *slog.Logger
	Run     *logging.RunContext // optional, stamps the current document onto log records
}

// Runner walks a directory and validates every JSON document in it.
type Runner struct {
	deps Dependencies

	// OTEL metrics
	processed metric.Int64Counter
	findings  metric.Int64Counter
}

// NewRunner creates a batch runner.
// Uses the global OTel meter for metrics (no-op if not configured).
func NewRunner(deps Dependencies) (*Runner, error) {
	if deps.Backend == nil {
		return nil, fmt.Errorf("batch runner requires a storage backend")
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	r := &Runner{deps: deps}

	m := meter()

	var err error
	r.processed, err = m.Int64Counter(
		"batch.documents.processed",
		metric.WithDescription("Total documents processed"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating processed counter: %w", err)
	}

	r.findings, err = m.Int64Counter(
		"batch.findings",
		metric.WithDescription("Total findings across processed documents"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating findings counter: %w", err)
	}

	return r, nil
}

// Run validates every *.json file in dir. Files are processed in directory
// order; per-file failures are recorded in the summary and the run continues.
func (r *Runner) Run(ctx context.Context, dir string) (Summary, error) {
	start := time.Now()
	var sum Summary

	entries, err := os.ReadDir(dir)
	if err != nil {
		return sum, fmt.Errorf("error reading batch directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		path := filepath.Join(dir, entry.Name())
		res := r.validateFile(ctx, path)

		sum.Total++
		if res {
			sum.Passed++
		} else {
			sum.Failed++
		}
	}

	sum.Elapsed = time.Since(start)

	if r.deps.Influx != nil {
		point := influx.BatchPoint(dir, sum.Total, sum.Passed, sum.Failed, sum.Elapsed)
		if err := r.deps.Influx.WritePoint(ctx, influx.BatchBucket, point); err != nil {
			r.deps.Logger.Warn("Failed to write batch metrics", "error", err)
		}
	}

	r.deps.Logger.Info("Batch run complete",
		"dir", dir,
		"total", sum.Total,
		"passed", sum.Passed,
		"failed", sum.Failed,
		"elapsed", sum.Elapsed,
	)
	return sum, nil
}

// validateFile parses, validates, and persists a single document. Returns
// whether the document passed.
func (r *Runner) validateFile(ctx context.Context, path string) bool {
	if r.deps.Run != nil {
		r.deps.Run.SetDocument(path)
		defer r.deps.Run.SetDocument("")
	}

	log := r.deps.Logger.With("file", path)

	data, err := os.ReadFile(path)
	if err != nil {
		log.Error("Failed to read file", "error", err)
		r.record(ctx, path, nil, parser.Result{})
		return false
	}

	res := parser.ParseJSON(data)
	if res.Success {
		log.Info("Document passed validation", "warnings", len(res.Warnings))
	} else {
		log.Warn("Document failed validation", "errors", len(res.Errors), "warnings", len(res.Warnings))
	}

	r.record(ctx, path, data, res)
	return res.Success
}

func (r *Runner) record(ctx context.Context, path string, raw []byte, res parser.Result) {
	status := "failed"
	if res.Success {
		status = "passed"
	}
	r.processed.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
	r.findings.Add(ctx, int64(len(res.Errors)),
		metric.WithAttributes(attribute.String("severity", "error")))
	r.findings.Add(ctx, int64(len(res.Warnings)),
		metric.WithAttributes(attribute.String("severity", "warning")))

	run, err := report.NewRun(path, raw, res)
	if err != nil {
		r.deps.Logger.Error("Failed to build run record", "file", path, "error", err)
		return
	}
	if err := r.deps.Backend.SaveRun(run); err != nil {
		r.deps.Logger.Error("Failed to persist run", "file", path, "error", err)
		return
	}

	if r.deps.Influx != nil {
		point := influx.ValidationPoint(path, res.Success, len(res.Errors), len(res.Warnings))
		if err := r.deps.Influx.WritePoint(ctx, influx.ValidationBucket, point); err != nil {
			r.deps.Logger.Warn("Failed to write validation metrics", "file", path, "error", err)
		}
	}
}
