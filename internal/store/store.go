package store

import (
	"context"
	"time"

	"github.com/vullk4n/gestao-de-emails/internal/model"
)

// EmailOrder names a column emails can be sorted by.
type EmailOrder string

// Sortable email columns. Ties are always broken by id ascending.
const (
	OrderBySentAt     EmailOrder = "sent_at"
	OrderByReceivedAt EmailOrder = "received_at"
	OrderBySubject    EmailOrder = "subject"
)

// EmailFilter controls filtering, sorting, and pagination for email queries.
// Nil fields are not filtered on; all set fields must match.
type EmailFilter struct {
	Text          *string    // case-insensitive containment in subject or body
	CategoryID    *int64     // exact category
	Uncategorized bool       // only emails without a category
	Read          *bool
	Important     *bool
	Archived      *bool
	Sender        *string    // exact sender address
	Recipient     *string    // exact recipient address
	SentAfter     *time.Time // inclusive
	SentBefore    *time.Time // inclusive
	OrderBy       EmailOrder // defaults to OrderBySentAt
	SortDesc      bool
	Limit         int // 0 means unbounded
	Offset        int
}

// Store defines the persistence interface for users, categories, emails
// and attachments. It is the only boundary outer layers use.
type Store interface {
	// === Schema ===

	Initialize(ctx context.Context) error
	EnsureSeeded(ctx context.Context, entries []model.NewCategory) (int, error)

	// === Transactions ===

	RunAtomic(ctx context.Context, fn func(ctx context.Context) error) error

	// === Categories ===

	CreateCategory(ctx context.Context, in model.NewCategory) (*model.Category, error)
	GetCategory(ctx context.Context, id int64) (*model.Category, error)
	GetCategoryByName(ctx context.Context, name string) (*model.Category, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
	DeleteCategory(ctx context.Context, id int64, force bool) error

	// === Users ===

	CreateUser(ctx context.Context, in model.NewUser) (*model.User, error)
	GetUser(ctx context.Context, id int64) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	RenameUser(ctx context.Context, id int64, name string) error

	// === Emails ===

	CreateEmail(ctx context.Context, in model.NewEmail) (*model.Email, error)
	GetEmail(ctx context.Context, id int64) (*model.Email, error)
	MarkRead(ctx context.Context, id int64, value bool) error
	MarkImportant(ctx context.Context, id int64, value bool) error
	MarkArchived(ctx context.Context, id int64, value bool) error
	SetCategory(ctx context.Context, id int64, categoryID *int64) error
	Receive(ctx context.Context, id int64, receivedAt time.Time) error
	DeleteEmail(ctx context.Context, id int64) error

	// === Attachments ===

	AddAttachment(ctx context.Context, in model.NewAttachment) (*model.Attachment, error)
	ListAttachments(ctx context.Context, emailID int64) ([]model.Attachment, error)
	DeleteAttachment(ctx context.Context, id int64) error

	// === Queries ===

	SearchEmails(ctx context.Context, filter EmailFilter) ([]model.Email, error)
	CountEmails(ctx context.Context, filter EmailFilter) (int, error)

	// === Statistics & maintenance ===

	Stats(ctx context.Context) (*model.Stats, error)
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)

	Close() error
}
