package batch

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arma-type-things/reforger-types-sub001/internal/logging"
	"github.com/arma-type-things/reforger-types-sub001/internal/storage/memory"
)

const validDoc = `{
	"game": {
		"name": "Batch Server",
		"passwordAdmin": "hunter2",
		"scenarioId": "{ECC61978EDCC2B5A}Missions/23_Campaign.conf"
	}
}`

const invalidDoc = `{
	"game": {
		"name": "Broken Server",
		"passwordAdmin": "hunter2",
		"scenarioId": "{ECC61978EDCC2B5A}Missions/23_Campaign.conf",
		"maxPlayers": 500
	}
}`

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

func newTestRunner(t *testing.T) (*Runner, *memory.Backend) {
	t.Helper()
	backend := memory.New()
	r, err := NewRunner(Dependencies{
		Backend: backend,
		Logger:  slog.New(slog.DiscardHandler),
	})
	require.NoError(t, err)
	return r, backend
}

func TestRunMixedDirectory(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"good.json":   validDoc,
		"bad.json":    invalidDoc,
		"broken.json": `{not json`,
		"notes.txt":   "ignored",
	})

	r, backend := newTestRunner(t)
	sum, err := r.Run(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, 3, sum.Total)
	assert.Equal(t, 1, sum.Passed)
	assert.Equal(t, 2, sum.Failed)

	runs, err := backend.ListRuns(0)
	require.NoError(t, err)
	require.Len(t, runs, 3)
}

func TestRunContinuesPastFailures(t *testing.T) {
	// Files are processed in name order, so the broken document comes first
	// and must not stop the valid one from being validated.
	dir := writeFiles(t, map[string]string{
		"a_broken.json": `{not json`,
		"z_good.json":   validDoc,
	})

	r, backend := newTestRunner(t)
	sum, err := r.Run(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, 2, sum.Total)
	assert.Equal(t, 1, sum.Passed)

	runs, err := backend.ListRuns(1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.True(t, runs[0].Success)
	assert.Equal(t, "Batch Server", runs[0].ServerName)
}

func TestRunRecordsFindingCounts(t *testing.T) {
	dir := writeFiles(t, map[string]string{"bad.json": invalidDoc})

	r, backend := newTestRunner(t)
	sum, err := r.Run(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Failed)

	runs, err := backend.ListRuns(0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.False(t, runs[0].Success)
	assert.Equal(t, 1, runs[0].ErrorCount)
	assert.JSONEq(t, invalidDoc, string(runs[0].Document))
}

func TestRunEmptyDirectory(t *testing.T) {
	r, _ := newTestRunner(t)
	sum, err := r.Run(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Summary{Elapsed: sum.Elapsed}, sum)
}

func TestRunMissingDirectory(t *testing.T) {
	r, _ := newTestRunner(t)
	_, err := r.Run(context.Background(), "/nonexistent/batch/dir")
	require.Error(t, err)
}

func TestRunCancelledContext(t *testing.T) {
	dir := writeFiles(t, map[string]string{"good.json": validDoc})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r, _ := newTestRunner(t)
	_, err := r.Run(ctx, dir)
	require.ErrorIs(t, err, context.Canceled)
}

func TestRunStampsDocumentOnLogs(t *testing.T) {
	dir := writeFiles(t, map[string]string{"good.json": validDoc})

	var buf bytes.Buffer
	runCtx := logging.NewRunContext()
	handler := logging.WithRunContext(
		slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}), runCtx)

	r, err := NewRunner(Dependencies{
		Backend: memory.New(),
		Logger:  slog.New(handler),
		Run:     runCtx,
	})
	require.NoError(t, err)

	_, err = r.Run(context.Background(), dir)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "document="+filepath.Join(dir, "good.json"))

	// The summary is logged after the last document is cleared.
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.NotContains(t, lines[len(lines)-1], "document=")
}

func TestNewRunnerRequiresBackend(t *testing.T) {
	_, err := NewRunner(Dependencies{})
	require.Error(t, err)
}
