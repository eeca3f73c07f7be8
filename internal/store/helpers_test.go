package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vullk4n/gestao-de-emails/internal/model"
	"github.com/vullk4n/gestao-de-emails/internal/store"
)

var ctx = context.Background()

func ptr[T any](v T) *T { return &v }

// baseTime is a fixed instant used wherever ordering by sent date matters.
var baseTime = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

// emailOpt adjusts the input of createEmail.
type emailOpt func(*model.NewEmail)

func withSubject(s string) emailOpt { return func(in *model.NewEmail) { in.Subject = s } }
func withBody(s string) emailOpt { return func(in *model.NewEmail) { in.Body = s } }
func withSender(s string) emailOpt { return func(in *model.NewEmail) { in.Sender = s } }
func withRecipient(s string) emailOpt { return func(in *model.NewEmail) { in.Recipient = s } }
func withCategory(id int64) emailOpt { return func(in *model.NewEmail) { in.CategoryID = &id } }
func withSentAt(t time.Time) emailOpt { return func(in *model.NewEmail) { in.SentAt = &t } }
func sentDaysAfterBase(d int) emailOpt { return withSentAt(baseTime.AddDate(0, 0, d)) }

func createEmail(t *testing.T, s store.Store, opts ...emailOpt) *model.Email {
	t.Helper()

	in := model.NewEmail{
		Sender:    "alice@example.com",
		Recipient: "bob@example.com",
		Subject:   "Hello",
		Body:      "Just checking in",
	}
	for _, opt := range opts {
		opt(&in)
	}

	e, err := s.CreateEmail(ctx, in)
	require.NoError(t, err)
	return e
}

func categoryID(t *testing.T, s store.Store, name string) int64 {
	t.Helper()

	c, err := s.GetCategoryByName(ctx, name)
	require.NoError(t, err)
	return c.ID
}

func ids(emails []model.Email) []int64 {
	out := make([]int64, 0, len(emails))
	for _, e := range emails {
		out = append(out, e.ID)
	}
	return out
}
