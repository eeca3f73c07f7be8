package store

import (
	"context"
	"fmt"
	"time"

	"github.com/vullk4n/gestao-de-emails/internal/db"
	"github.com/vullk4n/gestao-de-emails/internal/model"
)

// Stats summarizes flag and category counts across all emails. Every
// category is listed, including empty ones, busiest first.
func (s *SQLiteStore) Stats(ctx context.Context) (*model.Stats, error) {
	h := s.handler(ctx)

	var st model.Stats
	err := h.GetContext(ctx, &st, `
		SELECT
			COUNT(1) AS total,
			COALESCE(SUM(CASE WHEN read = 0 THEN 1 ELSE 0 END), 0) AS unread,
			COALESCE(SUM(important), 0) AS important,
			COALESCE(SUM(archived), 0) AS archived,
			COALESCE(SUM(CASE WHEN category_id IS NULL THEN 1 ELSE 0 END), 0) AS uncategorized
		FROM emails`)
	if err != nil {
		return nil, fmt.Errorf("counting emails: %w", db.WrapError(err))
	}

	st.ByCategory = []model.CategoryCount{}
	err = h.SelectContext(ctx, &st.ByCategory, `
		SELECT c.id, c.name, c.color, COUNT(e.id) AS total
		FROM categories c
		LEFT JOIN emails e ON e.category_id = c.id
		GROUP BY c.id
		ORDER BY total DESC, c.name ASC`)
	if err != nil {
		return nil, fmt.Errorf("counting emails per category: %w", db.WrapError(err))
	}

	return &st, nil
}

// PurgeOlderThan deletes every email sent strictly before cutoff, with its
// attachments, and returns how many emails were removed.
func (s *SQLiteStore) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	cutoff = cutoff.UTC()

	var purged int64
	err := s.RunAtomic(ctx, func(ctx context.Context) error {
		h := s.handler(ctx)

		if _, err := h.ExecContext(ctx, `
			DELETE FROM attachments
			WHERE email_id IN (SELECT id FROM emails WHERE sent_at < ?)`, cutoff); err != nil {
			return fmt.Errorf("deleting attachments: %w", db.WrapError(err))
		}

		result, err := h.ExecContext(ctx, "DELETE FROM emails WHERE sent_at < ?", cutoff)
		if err != nil {
			return db.WrapError(err)
		}
		purged, _ = result.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("purging emails before %s: %w", cutoff.Format(time.RFC3339), err)
	}

	if purged > 0 {
		s.logger.Info("purged emails", "count", purged, "before", cutoff)
	}
	return purged, nil
}
