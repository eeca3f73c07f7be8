package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/vullk4n/gestao-de-emails/internal/model"
)

// Target is the part of the store ingest writes through.
type Target interface {
	RunAtomic(ctx context.Context, fn func(ctx context.Context) error) error
	CreateEmail(ctx context.Context, in model.NewEmail) (*model.Email, error)
	Receive(ctx context.Context, id int64, receivedAt time.Time) error
	AddAttachment(ctx context.Context, in model.NewAttachment) (*model.Attachment, error)
}

// Options controls how a message is stored.
type Options struct {
	// AttachmentDir receives attachment files. Required when the message
	// has attachments.
	AttachmentDir string

	// CategoryID files the email under a category when set.
	CategoryID *int64

	// Recipient is used when the message has no To header.
	Recipient string

	// ReceivedAt is the receipt time recorded. Defaults to now.
	ReceivedAt time.Time

	Logger *log.Logger
}

// Result is what one Ingest call stored.
type Result struct {
	Email       *model.Email       `json:"email"`
	Attachments []model.Attachment `json:"attachments"`
}

// Ingest parses the message read from r and stores it, with its receipt
// time and attachments, as one atomic unit. Attachment files are written
// before the unit runs and removed again if it fails.
func Ingest(ctx context.Context, target Target, r io.Reader, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.FromContext(ctx)
	}

	msg, err := ParseMessage(r)
	if err != nil {
		return nil, err
	}

	recipient := msg.To
	if recipient == "" {
		recipient = opts.Recipient
	}
	if msg.From == "" || recipient == "" {
		return nil, fmt.Errorf("%w: sender and recipient are required", ErrMalformedMessage)
	}

	receivedAt := opts.ReceivedAt
	if receivedAt.IsZero() {
		receivedAt = time.Now()
	}

	files, err := writeAttachments(opts.AttachmentDir, msg.Attachments)
	if err != nil {
		removeFiles(logger, files)
		return nil, err
	}

	in := model.NewEmail{
		Sender:     msg.From,
		Recipient:  recipient,
		Subject:    msg.Subject,
		Body:       msg.Body(),
		CategoryID: opts.CategoryID,
	}
	if !msg.Date.IsZero() {
		in.SentAt = &msg.Date
	}

	res := &Result{}
	err = target.RunAtomic(ctx, func(ctx context.Context) error {
		email, err := target.CreateEmail(ctx, in)
		if err != nil {
			return err
		}
		if err := target.Receive(ctx, email.ID, receivedAt); err != nil {
			return err
		}

		res.Attachments = make([]model.Attachment, 0, len(files))
		for _, f := range files {
			a, err := target.AddAttachment(ctx, model.NewAttachment{
				EmailID:  email.ID,
				FileName: f.name,
				FilePath: f.path,
				Size:     &f.size,
				MIMEType: &f.mimeType,
			})
			if err != nil {
				return err
			}
			res.Attachments = append(res.Attachments, *a)
		}

		email.ReceivedAt = &receivedAt
		res.Email = email
		return nil
	})
	if err != nil {
		removeFiles(logger, files)
		return nil, fmt.Errorf("ingesting message from %s: %w", msg.From, err)
	}

	logger.Info("ingested message", "email", res.Email.ID, "attachments", len(res.Attachments))
	return res, nil
}

type storedFile struct {
	name     string
	path     string
	size     int64
	mimeType string
}

// unsafeNameChars matches characters kept out of stored file names.
var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// writeAttachments stores each part as <dir>/<uuid>-<name>. On error the
// files written so far are returned for cleanup.
func writeAttachments(dir string, parts []Part) ([]storedFile, error) {
	if len(parts) == 0 {
		return nil, nil
	}
	if dir == "" {
		return nil, errors.New("no attachment directory configured")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating attachment directory %s: %w", dir, err)
	}

	files := make([]storedFile, 0, len(parts))
	for _, p := range parts {
		name := filepath.Base(p.FileName)
		if name == "." || name == string(filepath.Separator) || name == "" {
			name = "attachment"
		}

		path := filepath.Join(dir, uuid.NewString()+"-"+unsafeNameChars.ReplaceAllString(name, "_"))
		if err := os.WriteFile(path, p.Content, 0o644); err != nil {
			return files, fmt.Errorf("writing attachment %q: %w", name, err)
		}

		files = append(files, storedFile{
			name:     name,
			path:     path,
			size:     int64(len(p.Content)),
			mimeType: detectType(p),
		})
	}
	return files, nil
}

// detectType keeps a declared content type and sniffs the content when it
// is missing or opaque.
func detectType(p Part) string {
	if p.MIMEType != "" && p.MIMEType != "application/octet-stream" {
		return p.MIMEType
	}
	return mimetype.Detect(p.Content).String()
}

func removeFiles(logger *log.Logger, files []storedFile) {
	for _, f := range files {
		if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
			logger.Warn("failed to remove attachment file", "path", f.path, "err", err)
		}
	}
}
