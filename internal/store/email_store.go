package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/vullk4n/gestao-de-emails/internal/db"
	"github.com/vullk4n/gestao-de-emails/internal/model"
)

// emailSelect reads emails with their category joined in the same
// statement.
const emailSelect = `
	SELECT
		e.id, e.sender, e.recipient, e.subject, e.body, e.category_id,
		e.sent_at, e.received_at, e.read, e.important, e.archived, e.created_at,
		c.id AS c_id, c.name AS c_name, c.description AS c_description,
		c.color AS c_color, c.created_at AS c_created_at
	FROM emails e
	LEFT JOIN categories c ON c.id = e.category_id`

// emailRow is an email joined with its (possibly absent) category.
type emailRow struct {
	model.Email
	CatID          sql.NullInt64  `db:"c_id"`
	CatName        sql.NullString `db:"c_name"`
	CatDescription sql.NullString `db:"c_description"`
	CatColor       sql.NullString `db:"c_color"`
	CatCreatedAt   sql.NullTime   `db:"c_created_at"`
}

func (r emailRow) toModel() model.Email {
	e := r.Email
	if r.CatID.Valid {
		e.Category = &model.Category{
			ID:          r.CatID.Int64,
			Name:        r.CatName.String,
			Description: r.CatDescription.String,
			Color:       r.CatColor.String,
			CreatedAt:   r.CatCreatedAt.Time,
		}
	}
	return e
}

// CreateEmail inserts a new email with all flags cleared. SentAt defaults
// to the current time.
func (s *SQLiteStore) CreateEmail(ctx context.Context, in model.NewEmail) (*model.Email, error) {
	if err := validateInput(in); err != nil {
		return nil, fmt.Errorf("creating email: %w", err)
	}

	now := s.timestamp()
	sentAt := now
	if in.SentAt != nil {
		sentAt = in.SentAt.UTC()
	}

	var created *model.Email
	err := s.RunAtomic(ctx, func(ctx context.Context) error {
		h := s.handler(ctx)

		if in.CategoryID != nil {
			if err := requireCategory(ctx, h, *in.CategoryID); err != nil {
				return err
			}
		}

		result, err := h.ExecContext(ctx, `
			INSERT INTO emails (
				sender, recipient, subject, body, category_id,
				sent_at, read, important, archived, created_at
			) VALUES (?, ?, ?, ?, ?, ?, 0, 0, 0, ?)`,
			in.Sender, in.Recipient, in.Subject, in.Body, in.CategoryID,
			sentAt, now,
		)
		if err != nil {
			return db.WrapError(err)
		}

		id, err := result.LastInsertId()
		if err != nil {
			return err
		}
		created, err = getEmail(ctx, h, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("creating email: %w", err)
	}

	return created, nil
}

// GetEmail retrieves a single email by ID, including its category.
func (s *SQLiteStore) GetEmail(ctx context.Context, id int64) (*model.Email, error) {
	e, err := getEmail(ctx, s.handler(ctx), id)
	if err != nil {
		return nil, fmt.Errorf("getting email %d: %w", id, err)
	}
	return e, nil
}

// MarkRead sets the read flag.
func (s *SQLiteStore) MarkRead(ctx context.Context, id int64, value bool) error {
	return s.setFlag(ctx, id, "read", value)
}

// MarkImportant sets the important flag.
func (s *SQLiteStore) MarkImportant(ctx context.Context, id int64, value bool) error {
	return s.setFlag(ctx, id, "important", value)
}

// MarkArchived sets the archived flag.
func (s *SQLiteStore) MarkArchived(ctx context.Context, id int64, value bool) error {
	return s.setFlag(ctx, id, "archived", value)
}

// setFlag updates one boolean column. column must be a flag column name.
func (s *SQLiteStore) setFlag(ctx context.Context, id int64, column string, value bool) error {
	err := s.RunAtomic(ctx, func(ctx context.Context) error {
		return updateEmail(ctx, s.handler(ctx), id,
			"UPDATE emails SET "+column+" = ? WHERE id = ?", boolToInt(value), id)
	})
	if err != nil {
		return fmt.Errorf("setting %s on email %d: %w", column, id, err)
	}
	return nil
}

// SetCategory assigns the email to categoryID, or clears its category when
// categoryID is nil. A dangling categoryID leaves the email unchanged.
func (s *SQLiteStore) SetCategory(ctx context.Context, id int64, categoryID *int64) error {
	err := s.RunAtomic(ctx, func(ctx context.Context) error {
		h := s.handler(ctx)

		ok, err := exists(ctx, h, "emails", id)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotFound
		}

		if categoryID != nil {
			if err := requireCategory(ctx, h, *categoryID); err != nil {
				return err
			}
		}

		return updateEmail(ctx, h, id,
			"UPDATE emails SET category_id = ? WHERE id = ?", categoryID, id)
	})
	if err != nil {
		return fmt.Errorf("setting category on email %d: %w", id, err)
	}
	return nil
}

// Receive records when the email was received. It is not checked against
// SentAt.
func (s *SQLiteStore) Receive(ctx context.Context, id int64, receivedAt time.Time) error {
	err := s.RunAtomic(ctx, func(ctx context.Context) error {
		return updateEmail(ctx, s.handler(ctx), id,
			"UPDATE emails SET received_at = ? WHERE id = ?", receivedAt.UTC(), id)
	})
	if err != nil {
		return fmt.Errorf("recording receipt of email %d: %w", id, err)
	}
	return nil
}

// DeleteEmail removes an email and its attachments in one unit. The
// attachments are deleted explicitly rather than left to ON DELETE CASCADE.
func (s *SQLiteStore) DeleteEmail(ctx context.Context, id int64) error {
	err := s.RunAtomic(ctx, func(ctx context.Context) error {
		h := s.handler(ctx)

		ok, err := exists(ctx, h, "emails", id)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotFound
		}

		if _, err := h.ExecContext(ctx, "DELETE FROM attachments WHERE email_id = ?", id); err != nil {
			return fmt.Errorf("deleting attachments: %w", db.WrapError(err))
		}
		if _, err := h.ExecContext(ctx, "DELETE FROM emails WHERE id = ?", id); err != nil {
			return db.WrapError(err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("deleting email %d: %w", id, err)
	}
	return nil
}

func getEmail(ctx context.Context, h db.Handler, id int64) (*model.Email, error) {
	var row emailRow
	if err := h.GetContext(ctx, &row, emailSelect+" WHERE e.id = ?", id); err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, db.WrapError(err)
	}
	e := row.toModel()
	return &e, nil
}

// updateEmail runs a single-row UPDATE and reports ErrNotFound when no row
// matched.
func updateEmail(ctx context.Context, h db.Handler, id int64, query string, args ...interface{}) error {
	result, err := h.ExecContext(ctx, query, args...)
	if err != nil {
		return db.WrapError(err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("email %d: %w", id, ErrNotFound)
	}
	return nil
}
