package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vullk4n/gestao-de-emails/internal/model"
	"github.com/vullk4n/gestao-de-emails/internal/store"
	"github.com/vullk4n/gestao-de-emails/internal/testutil"
)

func TestAddAndListAttachments(t *testing.T) {
	s := testutil.NewTestStore(t)
	e := createEmail(t, s)

	first, err := s.AddAttachment(ctx, model.NewAttachment{
		EmailID:  e.ID,
		FileName: "report.pdf",
		FilePath: "/data/report.pdf",
		Size:     ptr(int64(2048)),
		MIMEType: ptr("application/pdf"),
	})
	require.NoError(t, err)
	assert.NotZero(t, first.ID)
	assert.Equal(t, e.ID, first.EmailID)
	require.NotNil(t, first.Size)
	assert.Equal(t, int64(2048), *first.Size)
	require.NotNil(t, first.MIMEType)
	assert.Equal(t, "application/pdf", *first.MIMEType)

	second, err := s.AddAttachment(ctx, model.NewAttachment{
		EmailID:  e.ID,
		FileName: "notes.txt",
		FilePath: "/data/notes.txt",
	})
	require.NoError(t, err)
	assert.Nil(t, second.Size)
	assert.Nil(t, second.MIMEType)

	list, err := s.ListAttachments(ctx, e.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)
}

func TestListAttachmentsEmpty(t *testing.T) {
	s := testutil.NewTestStore(t)
	e := createEmail(t, s)

	list, err := s.ListAttachments(ctx, e.ID)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestAddAttachmentErrors(t *testing.T) {
	s := testutil.NewTestStore(t)
	e := createEmail(t, s)

	tests := []struct {
		name string
		in   model.NewAttachment
		want error
	}{
		{"unknown email", model.NewAttachment{EmailID: 999, FileName: "a", FilePath: "/a"}, store.ErrUnknownEmail},
		{"blank file name", model.NewAttachment{EmailID: e.ID, FileName: " ", FilePath: "/a"}, store.ErrInvalidInput},
		{"blank path", model.NewAttachment{EmailID: e.ID, FileName: "a", FilePath: ""}, store.ErrInvalidInput},
		{"negative size", model.NewAttachment{EmailID: e.ID, FileName: "a", FilePath: "/a", Size: ptr(int64(-1))}, store.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.AddAttachment(ctx, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	list, err := s.ListAttachments(ctx, e.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDeleteAttachment(t *testing.T) {
	s := testutil.NewTestStore(t)
	e := createEmail(t, s)

	a, err := s.AddAttachment(ctx, model.NewAttachment{EmailID: e.ID, FileName: "a", FilePath: "/a"})
	require.NoError(t, err)

	require.NoError(t, s.DeleteAttachment(ctx, a.ID))
	assert.ErrorIs(t, s.DeleteAttachment(ctx, a.ID), store.ErrNotFound)

	// The email itself is untouched.
	_, err = s.GetEmail(ctx, e.ID)
	assert.NoError(t, err)
}
