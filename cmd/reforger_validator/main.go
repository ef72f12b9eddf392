package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/viper"
	sdklog "go.opentelemetry.io/otel/sdk/log"

	"github.com/arma-type-things/reforger-types-sub001/internal/config"
	"github.com/arma-type-things/reforger-types-sub001/internal/logging"
	intOtel "github.com/arma-type-things/reforger-types-sub001/internal/otel"
)

// Version can be set at build time via ldflags.
var (
	Version  = "0.0.1"
	ToolName = "reforger_validator"
)

var (
	// SlogManager handles all slog-based logging
	SlogManager *logging.SlogManager

	// Logger is the slog logger (convenience reference)
	Logger *slog.Logger

	// OTelProvider handles OpenTelemetry
	OTelProvider *intOtel.Provider

	SessionStartTime = time.Now()

	logFile *os.File
)

// setupLogging loads the tool config and wires the logging stack: console
// or file text handlers, the otelslog bridge, and optionally a GELF writer.
func setupLogging(configDir string) {
	SlogManager = logging.NewSlogManager()
	SlogManager.Setup(nil, viper.GetString("logLevel"), nil)
	Logger = SlogManager.Logger()

	if err := config.Load(configDir); err != nil {
		// Defaults are enough for one-shot validation runs.
		Logger.Debug("No tool config found, using defaults", "error", err)
		return
	}

	logsDir := viper.GetString("logsDir")
	if _, err := os.Stat(logsDir); os.IsNotExist(err) {
		os.Mkdir(logsDir, 0755)
	}

	logFilePath := logging.LogFilePath(logsDir, ToolName, SessionStartTime)
	var err error
	logFile, err = os.OpenFile(logFilePath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		Logger.Error("Failed to create/open log file", "error", err, "path", logFilePath)
		return
	}

	otelCfg := config.GetOTelConfig()
	if otelCfg.Enabled {
		OTelProvider, err = intOtel.New(intOtel.Config{
			Enabled:        otelCfg.Enabled,
			ServiceName:    otelCfg.ServiceName,
			ServiceVersion: Version,
			BatchTimeout:   otelCfg.BatchTimeout,
			LogWriter:      logFile,
			Endpoint:       otelCfg.Endpoint,
			Insecure:       otelCfg.Insecure,
		})
		if err != nil {
			Logger.Error("Failed to initialize OTel provider", "error", err)
		}
	}

	if viper.GetBool("graylog.enabled") {
		if err := SlogManager.ConnectGraylog(viper.GetString("graylog.address")); err != nil {
			Logger.Warn("Failed to connect to Graylog", "error", err)
		}
	}

	var otelLogProvider *sdklog.LoggerProvider
	if OTelProvider != nil {
		otelLogProvider = OTelProvider.LoggerProvider()
	}
	SlogManager.Setup(logFile, viper.GetString("logLevel"), otelLogProvider)
	Logger = SlogManager.Logger()
	Logger.Info("Logging to file", "path", logFilePath, "version", Version)
}

func main() {
	code := run(os.Args[1:])
	if logFile != nil {
		logFile.Close()
	}
	os.Exit(code)
}

func fatal(format string, args ...any) int {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	return 2
}
