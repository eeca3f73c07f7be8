package store

import (
	"context"
	"fmt"

	"github.com/vullk4n/gestao-de-emails/internal/db"
	"github.com/vullk4n/gestao-de-emails/internal/model"
)

// DefaultCategories are seeded by Initialize.
var DefaultCategories = []model.NewCategory{
	{Name: "Work", Description: "Work-related correspondence", Color: "#007bff"},
	{Name: "Personal", Description: "Friends and family", Color: "#28a745"},
	{Name: "Spam", Description: "Unwanted messages", Color: "#dc3545"},
	{Name: "Important", Description: "Needs attention", Color: "#ffc107"},
	{Name: "Promotions", Description: "Offers and marketing", Color: "#fd7e14"},
	{Name: "Newsletter", Description: "Subscriptions and digests", Color: "#6f42c1"},
}

// EnsureSeeded inserts every entry whose name is not yet taken and leaves
// existing rows with the same name untouched. It returns how many rows were
// inserted.
func (s *SQLiteStore) EnsureSeeded(ctx context.Context, entries []model.NewCategory) (int, error) {
	for _, e := range entries {
		if err := validateInput(e); err != nil {
			return 0, fmt.Errorf("seeding category %q: %w", e.Name, err)
		}
	}

	inserted := 0
	err := s.RunAtomic(ctx, func(ctx context.Context) error {
		h := s.handler(ctx)
		now := s.timestamp()
		for _, e := range entries {
			color := e.Color
			if color == "" {
				color = model.DefaultCategoryColor
			}
			result, err := h.ExecContext(ctx, `
				INSERT INTO categories (name, description, color, created_at)
				VALUES (?, ?, ?, ?)
				ON CONFLICT(name) DO NOTHING`,
				e.Name, e.Description, color, now,
			)
			if err != nil {
				return fmt.Errorf("seeding category %q: %w", e.Name, db.WrapError(err))
			}
			n, _ := result.RowsAffected()
			inserted += int(n)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return inserted, nil
}
