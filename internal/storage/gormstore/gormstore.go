// Package gormstore persists validation runs through GORM, against Postgres
// or a local SQLite database. SQLite runs in memory for write speed and is
// vacuumed to a dump file so saved runs survive the process.
package gormstore

import (
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/arma-type-things/reforger-types-sub001/internal/config"
	"github.com/arma-type-things/reforger-types-sub001/internal/database"
	"github.com/arma-type-things/reforger-types-sub001/internal/report"
)

// Backend persists runs via a database.Manager connection.
type Backend struct {
	manager    *database.Manager
	sqliteOnly bool
	sqlite     config.SQLiteConfig

	dumpStop chan struct{}
	dumpDone chan struct{}
}

// NewPostgres creates a backend that connects to Postgres, falling back to
// local SQLite per sqliteCfg when Postgres is unreachable.
func NewPostgres(sqliteCfg config.SQLiteConfig, log zerolog.Logger) *Backend {
	m := database.NewManager(log)
	m.SqliteFilePath = sqliteCfg.Path
	return &Backend{manager: m, sqlite: sqliteCfg}
}

// NewSQLite creates a SQLite-only backend. An empty Path runs the database
// in memory; runs are then dumped to DumpPath every DumpInterval and on
// Close.
func NewSQLite(sqliteCfg config.SQLiteConfig, log zerolog.Logger) *Backend {
	m := database.NewManager(log)
	m.SqliteFilePath = sqliteCfg.Path
	return &Backend{manager: m, sqliteOnly: true, sqlite: sqliteCfg}
}

// Init connects, migrates the schema, and starts the periodic dump when the
// database is memory-backed.
func (b *Backend) Init() error {
	if b.sqliteOnly {
		db, err := b.manager.GetSqliteDB(b.sqlite.Path)
		if err != nil {
			return err
		}
		b.manager.DB = db
		b.manager.ShouldSaveLocal = true
		b.manager.IsValid = true
	} else {
		if err := b.manager.Connect(); err != nil {
			return err
		}
	}
	if err := b.manager.Setup(); err != nil {
		return err
	}
	b.startDumpLoop()
	return nil
}

// memoryBacked reports whether saved runs live only in process memory and
// need the dump to survive exit.
func (b *Backend) memoryBacked() bool {
	return b.manager.ShouldSaveLocal && b.sqlite.Path == ""
}

// startDumpLoop periodically vacuums the in-memory database to the dump
// file so long batch runs are not lost on a crash.
func (b *Backend) startDumpLoop() {
	if !b.memoryBacked() || b.sqlite.DumpPath == "" || b.sqlite.DumpInterval <= 0 {
		return
	}
	b.dumpStop = make(chan struct{})
	b.dumpDone = make(chan struct{})

	go func() {
		defer close(b.dumpDone)
		ticker := time.NewTicker(b.sqlite.DumpInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := b.manager.DumpMemoryToDisk(b.sqlite.DumpPath); err != nil {
					b.manager.Logger.Error().Err(err).Msg("Periodic DB dump failed")
				}
			case <-b.dumpStop:
				return
			}
		}
	}()
}

// Close stops the dump loop, writes a final dump for memory-backed
// databases, and closes the connection.
func (b *Backend) Close() error {
	if b.dumpStop != nil {
		close(b.dumpStop)
		<-b.dumpDone
		b.dumpStop = nil
	}

	if b.memoryBacked() && b.sqlite.DumpPath != "" {
		if err := b.manager.DumpMemoryToDisk(b.sqlite.DumpPath); err != nil {
			b.manager.Logger.Error().Err(err).Msg("Final DB dump failed")
		} else {
			b.manager.Logger.Info().Str("path", b.sqlite.DumpPath).Msg("Saved runs dumped to disk")
		}
	}

	if b.manager.SqlDB != nil {
		return b.manager.SqlDB.Close()
	}
	if b.manager.DB != nil {
		if sqlDB, err := b.manager.DB.DB(); err == nil {
			return sqlDB.Close()
		}
	}
	return nil
}

// DB exposes the underlying GORM handle for ad-hoc queries.
func (b *Backend) DB() *gorm.DB {
	return b.manager.DB
}

// SaveRun persists a validation run and assigns its ID.
func (b *Backend) SaveRun(run *report.ValidationRun) error {
	return b.manager.DB.Create(run).Error
}

// ListRuns returns the most recent runs, newest first.
func (b *Backend) ListRuns(limit int) ([]report.ValidationRun, error) {
	var runs []report.ValidationRun
	q := b.manager.DB.Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&runs).Error
	return runs, err
}

// GetRun fetches a single run by ID.
func (b *Backend) GetRun(id uint) (*report.ValidationRun, error) {
	var run report.ValidationRun
	if err := b.manager.DB.First(&run, id).Error; err != nil {
		return nil, err
	}
	return &run, nil
}
