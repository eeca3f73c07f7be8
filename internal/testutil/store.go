// Package testutil provides helpers shared by package tests.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/vullk4n/gestao-de-emails/internal/logging"
	"github.com/vullk4n/gestao-de-emails/internal/store"
)

// NewTestStore creates an initialized SQLiteStore backed by a file in a
// temporary directory. It automatically closes the store when the test
// completes.
func NewTestStore(t *testing.T, opts ...store.Option) *store.SQLiteStore {
	t.Helper()

	s, _ := NewTestStoreAt(t, opts...)
	return s
}

// NewTestStoreAt is NewTestStore that also returns the database path.
func NewTestStoreAt(t *testing.T, opts ...store.Option) (*store.SQLiteStore, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "emails.db")
	opts = append([]store.Option{store.WithLogger(logging.Discard())}, opts...)

	s, err := store.NewSQLiteStore(context.Background(), path, opts...)
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s, path
}
