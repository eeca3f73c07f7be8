package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vullk4n/gestao-de-emails/internal/model"
	"github.com/vullk4n/gestao-de-emails/internal/store"
	"github.com/vullk4n/gestao-de-emails/internal/testutil"
)

func TestStatsEmptyStore(t *testing.T) {
	s := testutil.NewTestStore(t)

	st, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, st.Total)
	assert.Zero(t, st.Unread)
	assert.Len(t, st.ByCategory, 6)
	for _, c := range st.ByCategory {
		assert.Zero(t, c.Count)
	}
	// Equal counts fall back to name order.
	assert.Equal(t, "Important", st.ByCategory[0].Name)
}

func TestStats(t *testing.T) {
	s := testutil.NewTestStore(t)
	work := categoryID(t, s, "Work")
	spam := categoryID(t, s, "Spam")

	a := createEmail(t, s, withCategory(work))
	createEmail(t, s, withCategory(work))
	b := createEmail(t, s, withCategory(spam))
	c := createEmail(t, s)

	require.NoError(t, s.MarkRead(ctx, a.ID, true))
	require.NoError(t, s.MarkImportant(ctx, b.ID, true))
	require.NoError(t, s.MarkArchived(ctx, c.ID, true))

	st, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, st.Total)
	assert.Equal(t, 3, st.Unread)
	assert.Equal(t, 1, st.Important)
	assert.Equal(t, 1, st.Archived)
	assert.Equal(t, 1, st.Uncategorized)

	require.Len(t, st.ByCategory, 6)
	assert.Equal(t, model.CategoryCount{CategoryID: work, Name: "Work", Color: "#007bff", Count: 2}, st.ByCategory[0])
	assert.Equal(t, "Spam", st.ByCategory[1].Name)
	assert.Equal(t, 1, st.ByCategory[1].Count)
}

func TestPurgeOlderThan(t *testing.T) {
	s := testutil.NewTestStore(t)

	old := createEmail(t, s, sentDaysAfterBase(-10))
	edge := createEmail(t, s, sentDaysAfterBase(0))
	recent := createEmail(t, s, sentDaysAfterBase(3))
	_, err := s.AddAttachment(ctx, model.NewAttachment{EmailID: old.ID, FileName: "old.zip", FilePath: "/old.zip"})
	require.NoError(t, err)

	n, err := s.PurgeOlderThan(ctx, baseTime)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = s.GetEmail(ctx, old.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	list, err := s.ListAttachments(ctx, old.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	left, err := s.SearchEmails(ctx, store.EmailFilter{})
	require.NoError(t, err)
	assert.Equal(t, []int64{edge.ID, recent.ID}, ids(left))

	n, err = s.PurgeOlderThan(ctx, baseTime)
	require.NoError(t, err)
	assert.Zero(t, n)
}
