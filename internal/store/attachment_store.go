package store

import (
	"context"
	"fmt"

	"github.com/vullk4n/gestao-de-emails/internal/db"
	"github.com/vullk4n/gestao-de-emails/internal/model"
)

const attachmentColumns = "id, email_id, file_name, file_path, size, mime_type, created_at"

// AddAttachment records file metadata for an existing email.
func (s *SQLiteStore) AddAttachment(ctx context.Context, in model.NewAttachment) (*model.Attachment, error) {
	if err := validateInput(in); err != nil {
		return nil, fmt.Errorf("adding attachment: %w", err)
	}

	var created *model.Attachment
	err := s.RunAtomic(ctx, func(ctx context.Context) error {
		h := s.handler(ctx)

		ok, err := exists(ctx, h, "emails", in.EmailID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: %d", ErrUnknownEmail, in.EmailID)
		}

		result, err := h.ExecContext(ctx, `
			INSERT INTO attachments (email_id, file_name, file_path, size, mime_type, created_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			in.EmailID, in.FileName, in.FilePath, in.Size, in.MIMEType, s.timestamp(),
		)
		if err != nil {
			return db.WrapError(err)
		}

		id, err := result.LastInsertId()
		if err != nil {
			return err
		}

		var a model.Attachment
		if err := h.GetContext(ctx, &a,
			"SELECT "+attachmentColumns+" FROM attachments WHERE id = ?", id); err != nil {
			return db.WrapError(err)
		}
		created = &a
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("adding attachment to email %d: %w", in.EmailID, err)
	}

	return created, nil
}

// ListAttachments retrieves the attachments of an email ordered by ID. An
// email without attachments, or an unknown email, yields an empty slice.
func (s *SQLiteStore) ListAttachments(ctx context.Context, emailID int64) ([]model.Attachment, error) {
	attachments := []model.Attachment{}
	err := s.handler(ctx).SelectContext(ctx, &attachments,
		"SELECT "+attachmentColumns+" FROM attachments WHERE email_id = ? ORDER BY id", emailID)
	if err != nil {
		return nil, fmt.Errorf("querying attachments for email %d: %w", emailID, db.WrapError(err))
	}
	return attachments, nil
}

// DeleteAttachment removes a single attachment.
func (s *SQLiteStore) DeleteAttachment(ctx context.Context, id int64) error {
	err := s.RunAtomic(ctx, func(ctx context.Context) error {
		result, err := s.handler(ctx).ExecContext(ctx, "DELETE FROM attachments WHERE id = ?", id)
		if err != nil {
			return db.WrapError(err)
		}
		rows, _ := result.RowsAffected()
		if rows == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("deleting attachment %d: %w", id, err)
	}
	return nil
}
