// Package db provides the SQLite handle, query tracing and transaction
// plumbing used by the store.
package db

import (
	"context"
	"database/sql/driver"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jmoiron/sqlx"
	"golang.org/x/text/cases"
	"modernc.org/sqlite"
)

// DriverName is the database/sql driver registered by modernc.org/sqlite.
const DriverName = "sqlite"

// DB is a sqlx database that traces queries to an optional logger.
type DB struct {
	*sqlx.DB
	logger *log.Logger
}

// Options configures Open.
type Options struct {
	// BusyTimeout is passed to SQLite as busy_timeout.
	BusyTimeout time.Duration

	// Logger receives query traces at debug level. Nil disables tracing.
	Logger *log.Logger
}

// Open opens (or creates) the SQLite database at path with WAL journaling,
// foreign keys, a busy timeout and immediate write transactions.
func Open(ctx context.Context, path string, opts Options) (*DB, error) {
	if err := registerFunctions(); err != nil {
		return nil, fmt.Errorf("registering sqlite functions: %w", err)
	}

	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("creating database directory %s: %w", dir, err)
			}
		}
	}

	dbx, err := sqlx.ConnectContext(ctx, DriverName, dataSource(path, opts.BusyTimeout))
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db %s: %w", path, err)
	}

	d := &DB{DB: dbx}
	if opts.Logger != nil {
		d.logger = opts.Logger.WithPrefix("db")
	}

	return d, nil
}

// dataSource builds the modernc DSN. Pragmas are applied per connection so
// every pooled connection sees the same settings.
func dataSource(path string, busyTimeout time.Duration) string {
	if busyTimeout <= 0 {
		busyTimeout = 5 * time.Second
	}

	q := url.Values{}
	q.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", busyTimeout.Milliseconds()))
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", "journal_mode(WAL)")
	q.Add("_pragma", "synchronous(NORMAL)")
	q.Set("_txlock", "immediate")
	q.Set("_time_format", "sqlite")

	return path + "?" + q.Encode()
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.DB.Close()
}

// Fold returns the Unicode case folding of s. It backs the fold() SQL
// function used for case-insensitive containment.
func Fold(s string) string {
	return cases.Fold().String(s)
}

var (
	registerOnce sync.Once
	registerErr  error
)

func registerFunctions() error {
	registerOnce.Do(func() {
		registerErr = sqlite.RegisterDeterministicScalarFunction("fold", 1, foldFunc)
	})
	return registerErr
}

func foldFunc(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return Fold(v), nil
	case []byte:
		return Fold(string(v)), nil
	default:
		return v, nil
	}
}
