package sqlite

import (
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// goose keeps its base FS, dialect and logger in package state.
var migrateMu sync.Mutex

// gooseLogger routes goose output into slog at debug level.
type gooseLogger struct {
	log *slog.Logger
}

func (l gooseLogger) Printf(format string, v ...any) {
	l.log.Debug(strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "goose")
}

// gooseFatal is the panic value raised by gooseLogger.Fatalf.
type gooseFatal string

// Fatalf logs and panics; migrate recovers the panic into an error.
func (l gooseLogger) Fatalf(format string, v ...any) {
	msg := strings.TrimSpace(fmt.Sprintf(format, v...))
	l.log.Error(msg, "component", "goose")
	panic(gooseFatal(msg))
}

// recoverFatal turns a gooseFatal panic into *err. Other panics propagate.
func recoverFatal(err *error) {
	r := recover()
	if r == nil {
		return
	}
	fatal, ok := r.(gooseFatal)
	if !ok {
		panic(r)
	}
	*err = fmt.Errorf("running migrations: %s", fatal)
}

// migrate brings the schema up to the latest embedded migration and returns
// the applied version.
func migrate(db *sql.DB, log *slog.Logger) (version int64, err error) {
	migrateMu.Lock()
	defer migrateMu.Unlock()
	defer recoverFatal(&err)

	goose.SetBaseFS(migrations)
	goose.SetLogger(gooseLogger{log: log})

	if err := goose.SetDialect("sqlite"); err != nil {
		return 0, fmt.Errorf("setting goose dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return 0, fmt.Errorf("running migrations: %w", err)
	}
	version, err = goose.GetDBVersion(db)
	if err != nil {
		return 0, fmt.Errorf("reading schema version: %w", err)
	}
	return version, nil
}
