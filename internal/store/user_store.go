package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vullk4n/gestao-de-emails/internal/db"
	"github.com/vullk4n/gestao-de-emails/internal/model"
)

const userColumns = "id, name, email, created_at"

// CreateUser registers a new user. Addresses are unique.
func (s *SQLiteStore) CreateUser(ctx context.Context, in model.NewUser) (*model.User, error) {
	if err := validateInput(in); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	var created *model.User
	err := s.RunAtomic(ctx, func(ctx context.Context) error {
		h := s.handler(ctx)
		result, err := h.ExecContext(ctx,
			"INSERT INTO users (name, email, created_at) VALUES (?, ?, ?)",
			in.Name, in.Email, s.timestamp(),
		)
		if err != nil {
			err = db.WrapError(err)
			if errors.Is(err, db.ErrDuplicateKey) {
				return fmt.Errorf("%w: %s", ErrDuplicateAddress, in.Email)
			}
			return err
		}

		id, err := result.LastInsertId()
		if err != nil {
			return err
		}
		created, err = getUser(ctx, h, "id", id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return created, nil
}

// GetUser retrieves a user by ID.
func (s *SQLiteStore) GetUser(ctx context.Context, id int64) (*model.User, error) {
	u, err := getUser(ctx, s.handler(ctx), "id", id)
	if err != nil {
		return nil, fmt.Errorf("getting user %d: %w", id, err)
	}
	return u, nil
}

// GetUserByEmail retrieves a user by address.
func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	u, err := getUser(ctx, s.handler(ctx), "email", email)
	if err != nil {
		return nil, fmt.Errorf("getting user %s: %w", email, err)
	}
	return u, nil
}

// ListUsers retrieves all users ordered by ID.
func (s *SQLiteStore) ListUsers(ctx context.Context) ([]model.User, error) {
	users := []model.User{}
	if err := s.handler(ctx).SelectContext(ctx, &users,
		"SELECT "+userColumns+" FROM users ORDER BY id"); err != nil {
		return nil, fmt.Errorf("querying users: %w", db.WrapError(err))
	}
	return users, nil
}

// RenameUser changes a user's display name, the only mutable field.
func (s *SQLiteStore) RenameUser(ctx context.Context, id int64, name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("renaming user %d: %w: name must not be empty", id, ErrInvalidInput)
	}

	err := s.RunAtomic(ctx, func(ctx context.Context) error {
		result, err := s.handler(ctx).ExecContext(ctx,
			"UPDATE users SET name = ? WHERE id = ?", name, id)
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
		return fmt.Errorf("renaming user %d: %w", id, err)
	}
	return nil
}

// getUser looks a user up by a unique column, "id" or "email".
func getUser(ctx context.Context, h db.Handler, column string, value interface{}) (*model.User, error) {
	var u model.User
	err := h.GetContext(ctx, &u, "SELECT "+userColumns+" FROM users WHERE "+column+" = ?", value)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, db.WrapError(err)
	}
	return &u, nil
}
