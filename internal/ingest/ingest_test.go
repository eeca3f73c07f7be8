package ingest_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vullk4n/gestao-de-emails/internal/ingest"
	"github.com/vullk4n/gestao-de-emails/internal/model"
	"github.com/vullk4n/gestao-de-emails/internal/store"
	"github.com/vullk4n/gestao-de-emails/internal/testutil"
)

const withAttachments = "From: Alice <alice@example.com>\r\n" +
	"To: bob@example.com\r\n" +
	"Subject: Photos\r\n" +
	"Date: Fri, 01 Mar 2024 09:00:00 +0000\r\n" +
	"MIME-Version: 1.0\r\n" +
	"Content-Type: multipart/mixed; boundary=B\r\n" +
	"\r\n" +
	"--B\r\n" +
	"Content-Type: text/plain\r\n" +
	"\r\n" +
	"Two files.\r\n" +
	"--B\r\n" +
	"Content-Type: application/octet-stream\r\n" +
	"Content-Disposition: attachment; filename=\"../../notes.txt\"\r\n" +
	"\r\n" +
	"hello there\r\n" +
	"--B\r\n" +
	"Content-Type: application/pdf\r\n" +
	"Content-Disposition: attachment; filename=\"scan.pdf\"\r\n" +
	"\r\n" +
	"%PDF-1.4 fake\r\n" +
	"--B--\r\n"

func TestIngest(t *testing.T) {
	s := testutil.NewTestStore(t)
	dir := t.TempDir()
	received := time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC)

	work, err := s.GetCategoryByName(context.Background(), "Work")
	require.NoError(t, err)

	res, err := ingest.Ingest(context.Background(), s, strings.NewReader(withAttachments), ingest.Options{
		AttachmentDir: dir,
		CategoryID:    &work.ID,
		ReceivedAt:    received,
	})
	require.NoError(t, err)

	got, err := s.GetEmail(context.Background(), res.Email.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", got.Sender)
	assert.Equal(t, "bob@example.com", got.Recipient)
	assert.Equal(t, "Photos", got.Subject)
	assert.Equal(t, "Two files.", strings.TrimSpace(got.Body))
	assert.True(t, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC).Equal(got.SentAt))
	require.NotNil(t, got.ReceivedAt)
	assert.True(t, received.Equal(*got.ReceivedAt))
	assert.Equal(t, "Work", got.Category.Name)

	attachments, err := s.ListAttachments(context.Background(), got.ID)
	require.NoError(t, err)
	require.Len(t, attachments, 2)

	notes := attachments[0]
	assert.Equal(t, "notes.txt", notes.FileName)
	assert.Equal(t, dir, filepath.Dir(notes.FilePath), "file names must not escape the attachment dir")
	require.NotNil(t, notes.MIMEType)
	assert.True(t, strings.HasPrefix(*notes.MIMEType, "text/plain"), "sniffed %q", *notes.MIMEType)
	require.NotNil(t, notes.Size)
	assert.Equal(t, int64(len("hello there")), *notes.Size)

	content, err := os.ReadFile(notes.FilePath)
	require.NoError(t, err)
	assert.Equal(t, "hello there", string(content))

	scan := attachments[1]
	require.NotNil(t, scan.MIMEType)
	assert.Equal(t, "application/pdf", *scan.MIMEType)
	assert.True(t, strings.HasSuffix(scan.FilePath, "-scan.pdf"))
}

func TestIngestUsesFallbackRecipient(t *testing.T) {
	s := testutil.NewTestStore(t)
	raw := "From: a@x.com\r\nSubject: No To\r\n\r\nbody\r\n"

	res, err := ingest.Ingest(context.Background(), s, strings.NewReader(raw), ingest.Options{Recipient: "me@x.com"})
	require.NoError(t, err)
	assert.Equal(t, "me@x.com", res.Email.Recipient)
	assert.Empty(t, res.Attachments)

	_, err = ingest.Ingest(context.Background(), s, strings.NewReader(raw), ingest.Options{})
	assert.ErrorIs(t, err, ingest.ErrMalformedMessage)
}

func TestIngestUnknownCategoryStoresNothing(t *testing.T) {
	s := testutil.NewTestStore(t)
	dir := t.TempDir()

	_, err := ingest.Ingest(context.Background(), s, strings.NewReader(withAttachments), ingest.Options{
		AttachmentDir: dir,
		CategoryID:    ptr(int64(12345)),
	})
	assert.ErrorIs(t, err, store.ErrUnknownCategory)

	n, err := s.CountEmails(context.Background(), store.EmailFilter{})
	require.NoError(t, err)
	assert.Zero(t, n)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "attachment files must be removed on failure")
}

// failingTarget fails the second attachment so the unit rolls back late.
type failingTarget struct {
	*store.SQLiteStore
	added int
}

var errDiskFull = errors.New("disk full")

func (f *failingTarget) AddAttachment(ctx context.Context, in model.NewAttachment) (*model.Attachment, error) {
	f.added++
	if f.added == 2 {
		return nil, errDiskFull
	}
	return f.SQLiteStore.AddAttachment(ctx, in)
}

func TestIngestRollsBackOnAttachmentFailure(t *testing.T) {
	s := testutil.NewTestStore(t)
	dir := t.TempDir()

	_, err := ingest.Ingest(context.Background(), &failingTarget{SQLiteStore: s}, strings.NewReader(withAttachments),
		ingest.Options{AttachmentDir: dir})
	assert.ErrorIs(t, err, errDiskFull)

	n, err := s.CountEmails(context.Background(), store.EmailFilter{})
	require.NoError(t, err)
	assert.Zero(t, n)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestIngestRequiresAttachmentDir(t *testing.T) {
	s := testutil.NewTestStore(t)

	_, err := ingest.Ingest(context.Background(), s, strings.NewReader(withAttachments), ingest.Options{})
	assert.Error(t, err)

	n, err := s.CountEmails(context.Background(), store.EmailFilter{})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func ptr[T any](v T) *T { return &v }
