package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/arma-type-things/reforger-types-sub001/internal/batch"
	"github.com/arma-type-things/reforger-types-sub001/internal/config"
	"github.com/arma-type-things/reforger-types-sub001/internal/influx"
	"github.com/arma-type-things/reforger-types-sub001/internal/parser"
	"github.com/arma-type-things/reforger-types-sub001/internal/report"
	"github.com/arma-type-things/reforger-types-sub001/internal/storage"
	"github.com/arma-type-things/reforger-types-sub001/pkg/serverconf"
)

const usageText = `Usage: reforger_validator <command> [flags]

Commands:
  validate <file>   Parse and validate a single server.json ("-" for stdin)
  batch <dir>       Validate every *.json document in a directory
  init              Generate a server.json with documented defaults
  runs              List stored validation runs
  version           Print the tool version

Global flags are read from reforger_validator.cfg.json in the current
directory (storage backend, logging, metrics).`

func run(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, usageText)
		return 2
	}

	setupLogging(".")

	cmd, rest := args[0], args[1:]
	SlogManager.Run.SetCommand(cmd)
	switch cmd {
	case "validate":
		return cmdValidate(rest)
	case "batch":
		return cmdBatch(rest)
	case "init":
		return cmdInit(rest)
	case "runs":
		return cmdRuns(rest)
	case "version":
		fmt.Println(Version)
		return 0
	default:
		fmt.Fprintln(os.Stderr, usageText)
		return fatal("\nunknown command: %s", cmd)
	}
}

func zlog() zerolog.Logger {
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}

func newBackend() (storage.Backend, error) {
	cfg := config.GetStorageConfig()
	SlogManager.Run.SetBackend(cfg.Type)

	backend, err := storage.NewBackend(cfg, zlog())
	if err != nil {
		return nil, err
	}
	if err := backend.Init(); err != nil {
		return nil, err
	}
	return backend, nil
}

// cmdValidate parses one document and prints the discriminated result as
// JSON. Exit code 0 means the document passed, 1 means findings blocked it.
func cmdValidate(args []string) int {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	parseOnly := fs.Bool("parse-only", false, "skip business rules, only check structure")
	save := fs.Bool("save", false, "persist the run to the configured storage backend")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		return fatal("validate requires exactly one file argument")
	}

	path := fs.Arg(0)
	var data []byte
	var err error
	if path == "-" {
		path = "stdin"
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fatal("error reading document: %v", err)
	}

	var opts []parser.Option
	if *parseOnly {
		opts = append(opts, parser.WithoutValidation())
	}
	res := parser.ParseJSON(data, opts...)

	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fatal("error encoding result: %v", err)
	}
	fmt.Println(string(out))

	if *save {
		backend, err := newBackend()
		if err != nil {
			return fatal("error opening storage backend: %v", err)
		}
		defer backend.Close()

		run, err := report.NewRun(path, data, res)
		if err != nil {
			return fatal("error building run record: %v", err)
		}
		if err := backend.SaveRun(run); err != nil {
			return fatal("error saving run: %v", err)
		}
		Logger.Info("Validation run saved", "id", run.ID, "source", path)
	}

	if !res.Success {
		return 1
	}
	return 0
}

// cmdBatch validates a directory of documents, persisting each run and
// shipping metrics when InfluxDB is configured.
func cmdBatch(args []string) int {
	fs := flag.NewFlagSet("batch", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		return fatal("batch requires exactly one directory argument")
	}
	dir := fs.Arg(0)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := newBackend()
	if err != nil {
		return fatal("error opening storage backend: %v", err)
	}
	defer backend.Close()

	var influxManager *influx.Manager
	if config.GetInfluxConfig().Enabled {
		backupPath := filepath.Join(viper.GetString("logsDir"), "influx_backup.gz")
		influxManager = influx.NewManager(zlog(), backupPath)
		if err := influxManager.Connect(); err != nil {
			Logger.Warn("InfluxDB unavailable, metrics disabled", "error", err)
			influxManager = nil
		}
	}

	runner, err := batch.NewRunner(batch.Dependencies{
		Backend: backend,
		Influx:  influxManager,
		Logger:  Logger,
		Run:     SlogManager.Run,
	})
	if err != nil {
		return fatal("error creating batch runner: %v", err)
	}

	sum, err := runner.Run(ctx, dir)
	if err != nil {
		return fatal("batch run failed: %v", err)
	}

	if OTelProvider != nil {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := OTelProvider.Flush(flushCtx); err != nil {
			Logger.Warn("Failed to flush OTel data", "error", err)
		}
	}

	out, _ := json.MarshalIndent(sum, "", "  ")
	fmt.Println(string(out))

	if sum.Failed > 0 {
		return 1
	}
	return 0
}

// cmdInit writes a server.json built from the documented defaults.
func cmdInit(args []string) int {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	name := fs.String("name", "Reforger Server", "server name")
	scenario := fs.String("scenario", "{ECC61978EDCC2B5A}Missions/23_Campaign.conf", "scenario resource reference")
	bindPort := fs.Int("bind-port", serverconf.DefaultBindPort, "game port; A2S and RCON ports are derived")
	maxPlayers := fs.Int("max-players", serverconf.DefaultMaxPlayers, "player slots")
	crossPlatform := fs.Bool("cross-platform", false, "enable cross-platform play")
	out := fs.String("out", "", "output file (default stdout)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	b := serverconf.NewBuilder(*name, *scenario).
		BindPort(*bindPort).
		MaxPlayers(*maxPlayers).
		CrossPlatform(*crossPlatform)
	if *crossPlatform {
		b.Platforms(serverconf.SupportedPlatforms...)
	}

	data, err := b.BuildJSON()
	if err != nil {
		return fatal("error encoding config: %v", err)
	}

	if *out == "" {
		fmt.Println(string(data))
		return 0
	}
	if err := os.WriteFile(*out, append(data, '\n'), 0644); err != nil {
		return fatal("error writing %s: %v", *out, err)
	}
	Logger.Info("Wrote server config", "path", *out)
	return 0
}

// cmdRuns lists stored validation runs from the configured backend.
func cmdRuns(args []string) int {
	fs := flag.NewFlagSet("runs", flag.ContinueOnError)
	limit := fs.Int("limit", 20, "maximum runs to list, 0 for all")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	backend, err := newBackend()
	if err != nil {
		return fatal("error opening storage backend: %v", err)
	}
	defer backend.Close()

	runs, err := backend.ListRuns(*limit)
	if err != nil {
		return fatal("error listing runs: %v", err)
	}

	out, err := json.MarshalIndent(runs, "", "  ")
	if err != nil {
		return fatal("error encoding runs: %v", err)
	}
	fmt.Println(string(out))
	return 0
}
