package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/vullk4n/gestao-de-emails/internal/db"
	"github.com/vullk4n/gestao-de-emails/internal/model"
)

const categoryColumns = "id, name, description, color, created_at"

// CreateCategory inserts a new category.
func (s *SQLiteStore) CreateCategory(ctx context.Context, in model.NewCategory) (*model.Category, error) {
	if err := validateInput(in); err != nil {
		return nil, fmt.Errorf("creating category: %w", err)
	}
	if in.Color == "" {
		in.Color = model.DefaultCategoryColor
	}

	var created *model.Category
	err := s.RunAtomic(ctx, func(ctx context.Context) error {
		h := s.handler(ctx)
		result, err := h.ExecContext(ctx,
			"INSERT INTO categories (name, description, color, created_at) VALUES (?, ?, ?, ?)",
			in.Name, in.Description, in.Color, s.timestamp(),
		)
		if err != nil {
			err = db.WrapError(err)
			if errors.Is(err, db.ErrDuplicateKey) {
				return fmt.Errorf("%w: %q", ErrDuplicateName, in.Name)
			}
			return err
		}

		id, err := result.LastInsertId()
		if err != nil {
			return err
		}
		created, err = getCategory(ctx, h, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("creating category: %w", err)
	}

	return created, nil
}

// GetCategory retrieves a single category by ID.
func (s *SQLiteStore) GetCategory(ctx context.Context, id int64) (*model.Category, error) {
	c, err := getCategory(ctx, s.handler(ctx), id)
	if err != nil {
		return nil, fmt.Errorf("getting category %d: %w", id, err)
	}
	return c, nil
}

// GetCategoryByName retrieves a single category by its unique name.
func (s *SQLiteStore) GetCategoryByName(ctx context.Context, name string) (*model.Category, error) {
	var c model.Category
	err := s.handler(ctx).GetContext(ctx, &c,
		"SELECT "+categoryColumns+" FROM categories WHERE name = ?", name)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("getting category %q: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("getting category %q: %w", name, db.WrapError(err))
	}
	return &c, nil
}

// ListCategories retrieves all categories ordered by name.
func (s *SQLiteStore) ListCategories(ctx context.Context) ([]model.Category, error) {
	categories := []model.Category{}
	err := s.handler(ctx).SelectContext(ctx, &categories,
		"SELECT "+categoryColumns+" FROM categories ORDER BY name, id")
	if err != nil {
		return nil, fmt.Errorf("querying categories: %w", db.WrapError(err))
	}
	return categories, nil
}

// DeleteCategory removes a category. It fails with ErrCategoryInUse while
// emails reference it, unless force is set, in which case those emails
// become uncategorized in the same unit.
func (s *SQLiteStore) DeleteCategory(ctx context.Context, id int64, force bool) error {
	err := s.RunAtomic(ctx, func(ctx context.Context) error {
		h := s.handler(ctx)

		ok, err := exists(ctx, h, "categories", id)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotFound
		}

		var refs int
		if err := h.GetContext(ctx, &refs,
			"SELECT COUNT(1) FROM emails WHERE category_id = ?", id); err != nil {
			return db.WrapError(err)
		}

		if refs > 0 {
			if !force {
				return fmt.Errorf("%w: %d emails reference it", ErrCategoryInUse, refs)
			}
			if _, err := h.ExecContext(ctx,
				"UPDATE emails SET category_id = NULL WHERE category_id = ?", id); err != nil {
				return fmt.Errorf("clearing category from emails: %w", db.WrapError(err))
			}
			s.logger.Info("uncategorized emails before category delete", "category", id, "emails", refs)
		}

		if _, err := h.ExecContext(ctx, "DELETE FROM categories WHERE id = ?", id); err != nil {
			return db.WrapError(err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("deleting category %d: %w", id, err)
	}
	return nil
}

func getCategory(ctx context.Context, h db.Handler, id int64) (*model.Category, error) {
	var c model.Category
	err := h.GetContext(ctx, &c, "SELECT "+categoryColumns+" FROM categories WHERE id = ?", id)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, db.WrapError(err)
	}
	return &c, nil
}

// requireCategory fails with ErrUnknownCategory when id does not exist.
func requireCategory(ctx context.Context, h db.Handler, id int64) error {
	ok, err := exists(ctx, h, "categories", id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownCategory, id)
	}
	return nil
}
