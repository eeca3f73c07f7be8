package store

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/semaphore"

	"github.com/vullk4n/gestao-de-emails/internal/db"
	"github.com/vullk4n/gestao-de-emails/internal/model"
)

// SQLiteStore implements the Store interface using a local SQLite database.
type SQLiteStore struct {
	db          *db.DB
	logger      *log.Logger
	writer      *semaphore.Weighted
	busyTimeout time.Duration
	now         func() time.Time
}

var _ Store = (*SQLiteStore)(nil)

// Option configures a SQLiteStore.
type Option func(*SQLiteStore)

// WithLogger sets the logger used for store events and query traces.
func WithLogger(l *log.Logger) Option {
	return func(s *SQLiteStore) {
		s.logger = l
	}
}

// WithBusyTimeout bounds how long a writer waits for the writer slot.
func WithBusyTimeout(d time.Duration) Option {
	return func(s *SQLiteStore) {
		if d > 0 {
			s.busyTimeout = d
		}
	}
}

// WithClock overrides the clock used for default timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *SQLiteStore) {
		s.now = now
	}
}

// Open opens (or creates) the SQLite database at dbPath. It does not touch
// the schema; call Initialize afterwards.
func Open(ctx context.Context, dbPath string, opts ...Option) (*SQLiteStore, error) {
	s := &SQLiteStore{
		writer:      semaphore.NewWeighted(1),
		busyTimeout: model.DefaultBusyTimeout,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.FromContext(ctx)
	}
	s.logger = s.logger.WithPrefix("store")

	dbx, err := db.Open(ctx, dbPath, db.Options{
		BusyTimeout: s.busyTimeout,
		Logger:      s.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	s.db = dbx

	return s, nil
}

// NewSQLiteStore opens the database at dbPath and initializes its schema
// and default categories.
func NewSQLiteStore(ctx context.Context, dbPath string, opts ...Option) (*SQLiteStore, error) {
	s, err := Open(ctx, dbPath, opts...)
	if err != nil {
		return nil, err
	}
	if err := s.Initialize(ctx); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// RunAtomic executes fn as one all-or-nothing unit. Store calls made with
// the context handed to fn join the unit's transaction. If fn fails, every
// write made inside it is rolled back and fn's error is returned as is.
// Calling RunAtomic from within a unit joins the outer unit.
func (s *SQLiteStore) RunAtomic(ctx context.Context, fn func(ctx context.Context) error) error {
	if db.TxFromContext(ctx) != nil {
		return fn(ctx)
	}

	release, err := s.acquireWriter(ctx)
	if err != nil {
		return err
	}
	defer release()

	return s.db.TransactionContext(ctx, func(ctx context.Context, _ *db.Tx) error {
		return fn(ctx)
	})
}

// acquireWriter takes the single writer slot, waiting at most busyTimeout.
func (s *SQLiteStore) acquireWriter(ctx context.Context) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	wctx, cancel := context.WithTimeout(ctx, s.busyTimeout)
	defer cancel()

	if err := s.writer.Acquire(wctx, 1); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: no writer slot after %s", ErrBusy, s.busyTimeout)
	}

	return func() { s.writer.Release(1) }, nil
}

// handler returns the transaction carried by ctx or the database itself.
func (s *SQLiteStore) handler(ctx context.Context) db.Handler {
	return s.db.Handler(ctx)
}

// timestamp returns the current time normalized for storage.
func (s *SQLiteStore) timestamp() time.Time {
	return s.now().UTC()
}

// exists reports whether table has a row with the given id. table must be
// one of the schema's table names.
func exists(ctx context.Context, h db.Handler, table string, id int64) (bool, error) {
	var n int
	if err := h.GetContext(ctx, &n, "SELECT COUNT(1) FROM "+table+" WHERE id = ?", id); err != nil {
		return false, fmt.Errorf("checking %s %d: %w", table, id, db.WrapError(err))
	}
	return n > 0, nil
}

// boolToInt converts a boolean to 0 or 1 for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
