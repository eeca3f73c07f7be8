package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vullk4n/gestao-de-emails/internal/store"
	"github.com/vullk4n/gestao-de-emails/internal/testutil"
)

func TestParseID(t *testing.T) {
	id, err := parseID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, bad := range []string{"", "0", "-3", "abc", "1.5"} {
		_, err := parseID(bad)
		assert.Error(t, err, "parseID(%q)", bad)
	}
}

func TestParseTime(t *testing.T) {
	got, err := parseTime("2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local), got)

	got, err = parseTime("2024-03-01 14:30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 14, 30, 0, 0, time.Local), got)

	got, err = parseTime("2024-03-01T14:30:00Z")
	require.NoError(t, err)
	assert.True(t, time.Date(2024, 3, 1, 14, 30, 0, 0, time.UTC).Equal(got))

	_, err = parseTime("yesterday")
	assert.Error(t, err)
}

func TestResolveCategory(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := t.Context()

	id, err := resolveCategory(ctx, s, "none")
	require.NoError(t, err)
	assert.Nil(t, id)

	id, err = resolveCategory(ctx, s, "Work")
	require.NoError(t, err)
	require.NotNil(t, id)
	work, err := s.GetCategory(ctx, *id)
	require.NoError(t, err)
	assert.Equal(t, "Work", work.Name)

	id, err = resolveCategory(ctx, s, "17")
	require.NoError(t, err)
	assert.Equal(t, int64(17), *id)

	_, err = resolveCategory(ctx, s, "Missing")
	assert.ErrorIs(t, err, store.ErrUnknownCategory)
}
