package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vullk4n/gestao-de-emails/internal/model"
	"github.com/vullk4n/gestao-de-emails/internal/store"
	"github.com/vullk4n/gestao-de-emails/internal/testutil"
)

func TestCreateCategory(t *testing.T) {
	s := testutil.NewTestStore(t)

	c, err := s.CreateCategory(ctx, model.NewCategory{Name: "Receipts", Description: "Purchases"})
	require.NoError(t, err)
	assert.NotZero(t, c.ID)
	assert.Equal(t, "Receipts", c.Name)
	assert.Equal(t, "Purchases", c.Description)
	assert.Equal(t, model.DefaultCategoryColor, c.Color)
	assert.False(t, c.CreatedAt.IsZero())

	got, err := s.GetCategory(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.Name, got.Name)
	assert.Equal(t, c.Color, got.Color)
}

func TestCreateCategoryErrors(t *testing.T) {
	s := testutil.NewTestStore(t)

	tests := []struct {
		name string
		in   model.NewCategory
		want error
	}{
		{"blank name", model.NewCategory{Name: "  "}, store.ErrInvalidInput},
		{"bad color", model.NewCategory{Name: "Bills", Color: "blue"}, store.ErrInvalidInput},
		{"duplicate", model.NewCategory{Name: "Work"}, store.ErrDuplicateName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.CreateCategory(ctx, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	categories, err := s.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 6)
}

func TestGetCategoryNotFound(t *testing.T) {
	s := testutil.NewTestStore(t)

	_, err := s.GetCategory(ctx, 9999)
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.GetCategoryByName(ctx, "Nope")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteCategory(t *testing.T) {
	s := testutil.NewTestStore(t)

	c, err := s.CreateCategory(ctx, model.NewCategory{Name: "Temp"})
	require.NoError(t, err)

	require.NoError(t, s.DeleteCategory(ctx, c.ID, false))

	_, err = s.GetCategory(ctx, c.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	assert.ErrorIs(t, s.DeleteCategory(ctx, c.ID, false), store.ErrNotFound)
}

func TestDeleteCategoryInUse(t *testing.T) {
	s := testutil.NewTestStore(t)
	work := categoryID(t, s, "Work")
	e := createEmail(t, s, withCategory(work))

	err := s.DeleteCategory(ctx, work, false)
	assert.ErrorIs(t, err, store.ErrCategoryInUse)

	got, err := s.GetEmail(ctx, e.ID)
	require.NoError(t, err)
	require.NotNil(t, got.CategoryID)
	assert.Equal(t, work, *got.CategoryID)

	require.NoError(t, s.DeleteCategory(ctx, work, true))

	got, err = s.GetEmail(ctx, e.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CategoryID)
	assert.Nil(t, got.Category)

	_, err = s.GetCategory(ctx, work)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
