package store

import (
	"context"
	"fmt"

	"github.com/vullk4n/gestao-de-emails/internal/db"
)

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
//
// SQLite enforces the foreign keys. The store still checks references
// before writing so they fail as ErrUnknownCategory or ErrUnknownEmail.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS users (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	name       TEXT NOT NULL,
	email      TEXT NOT NULL UNIQUE,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS categories (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	name        TEXT NOT NULL UNIQUE,
	description TEXT NOT NULL DEFAULT '',
	color       TEXT NOT NULL DEFAULT '#007bff',
	created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS emails (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	sender      TEXT NOT NULL,
	recipient   TEXT NOT NULL,
	subject     TEXT NOT NULL CHECK(length(trim(subject)) > 0),
	body        TEXT NOT NULL DEFAULT '',
	category_id INTEGER REFERENCES categories(id),
	sent_at     DATETIME NOT NULL,
	received_at DATETIME,
	read        INTEGER NOT NULL DEFAULT 0 CHECK(read IN (0, 1)),
	important   INTEGER NOT NULL DEFAULT 0 CHECK(important IN (0, 1)),
	archived    INTEGER NOT NULL DEFAULT 0 CHECK(archived IN (0, 1)),
	created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS attachments (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	email_id   INTEGER NOT NULL REFERENCES emails(id) ON DELETE CASCADE,
	file_name  TEXT NOT NULL,
	file_path  TEXT NOT NULL,
	size       INTEGER CHECK(size IS NULL OR size >= 0),
	mime_type  TEXT,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_emails_sender ON emails(sender);
CREATE INDEX IF NOT EXISTS idx_emails_recipient ON emails(recipient);
CREATE INDEX IF NOT EXISTS idx_emails_sent_at ON emails(sent_at);
CREATE INDEX IF NOT EXISTS idx_emails_category_id ON emails(category_id);
CREATE INDEX IF NOT EXISTS idx_emails_read ON emails(read);
CREATE INDEX IF NOT EXISTS idx_attachments_email_id ON attachments(email_id);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
}

// Initialize creates all tables and indices that are missing and seeds the
// default categories. It is safe to call on every process start.
func (s *SQLiteStore) Initialize(ctx context.Context) error {
	if err := s.runMigrations(ctx); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	n, err := s.EnsureSeeded(ctx, DefaultCategories)
	if err != nil {
		return fmt.Errorf("seeding default categories: %w", err)
	}
	if n > 0 {
		s.logger.Info("seeded default categories", "count", n)
	}

	return nil
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order, all inside one transaction.
func (s *SQLiteStore) runMigrations(ctx context.Context) error {
	return s.RunAtomic(ctx, func(ctx context.Context) error {
		h := s.handler(ctx)
		currentVersion := 0

		// Check if schema_version table exists.
		var tableCount int
		err := h.GetContext(ctx, &tableCount,
			"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
		)
		if err != nil {
			return fmt.Errorf("checking schema_version table: %w", db.WrapError(err))
		}

		if tableCount > 0 {
			err = h.GetContext(ctx, &currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
			if err != nil {
				return fmt.Errorf("reading schema version: %w", db.WrapError(err))
			}
		}

		for _, m := range migrations {
			if m.version <= currentVersion {
				continue
			}
			s.logger.Info("applying migration", "version", m.version)
			if _, err := h.ExecContext(ctx, m.sql); err != nil {
				return fmt.Errorf("applying migration v%d: %w", m.version, db.WrapError(err))
			}
		}

		return nil
	})
}
