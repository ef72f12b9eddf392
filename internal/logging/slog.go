package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/Graylog2/go-gelf/gelf"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	sdklog "go.opentelemetry.io/otel/sdk/log"
)

// osStdout is swapped out in tests to capture console output.
var osStdout io.Writer = os.Stdout

// SlogManager manages slog-based logging with optional OTel and Graylog
// integration.
type SlogManager struct {
	logger *slog.Logger

	// OTel provider for flushing
	logProvider *sdklog.LoggerProvider

	gelfWriter *gelf.Writer

	// Run supplies run-scoped attributes stamped onto every record, such as
	// the active storage backend or the document currently being validated.
	Run *RunContext
}

// NewSlogManager creates a new slog-based logging manager.
func NewSlogManager() *SlogManager {
	return &SlogManager{Run: NewRunContext()}
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Setup initializes the logging system with file and optional OTel output.
// If provider is nil, OTel logging is disabled.
func (m *SlogManager) Setup(file io.Writer, level string, provider *sdklog.LoggerProvider) {
	lvl := parseLevel(level)
	m.logProvider = provider

	// Common handler options with RFC3339 time formatting
	handlerOpts := &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.UTC().Format(time.RFC3339))
				}
			}
			return a
		},
	}

	// Build list of handlers
	var handlers []slog.Handler

	// Console handler. When a file is provided the console stays quiet so
	// CLI output is not interleaved with log records.
	if file == nil {
		handlers = append(handlers, slog.NewTextHandler(osStdout, handlerOpts))
	}

	// File handler
	if file != nil {
		handlers = append(handlers, slog.NewTextHandler(file, handlerOpts))
	}

	// OTel handler (if provider is available)
	if provider != nil {
		otelHandler := otelslog.NewHandler("reforger-validator", otelslog.WithLoggerProvider(provider))
		handlers = append(handlers, otelHandler)
	}

	// Graylog handler (if connected via ConnectGraylog)
	if m.gelfWriter != nil {
		handlers = append(handlers, slog.NewJSONHandler(m.gelfWriter, handlerOpts))
	}

	// Combine all handlers
	var handler slog.Handler = NewMultiHandler(handlers...)
	if m.Run != nil {
		handler = WithRunContext(handler, m.Run)
	}

	m.logger = slog.New(handler)
	m.logger.Info("Logging initialized", "level", level)
}

// ConnectGraylog dials a GELF endpoint. Records are shipped as JSON over
// GELF in addition to the other handlers. Call before Setup.
func (m *SlogManager) ConnectGraylog(address string) error {
	w, err := gelf.NewWriter(address)
	if err != nil {
		return err
	}
	m.gelfWriter = w
	return nil
}

// Logger returns the configured slog.Logger.
func (m *SlogManager) Logger() *slog.Logger {
	if m.logger == nil {
		// Return a default logger if Setup hasn't been called
		return slog.Default()
	}
	return m.logger
}

// Flush forces a flush of OTel logs if available.
func (m *SlogManager) Flush(ctx context.Context) error {
	if m.logProvider != nil {
		return m.logProvider.ForceFlush(ctx)
	}
	return nil
}
