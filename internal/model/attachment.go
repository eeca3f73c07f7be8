package model

import "time"

// Attachment is file metadata bound to exactly one email. It is removed
// together with its email.
type Attachment struct {
	ID        int64     `json:"id" db:"id"`
	EmailID   int64     `json:"email_id" db:"email_id"`
	FileName  string    `json:"file_name" db:"file_name"`
	FilePath  string    `json:"file_path" db:"file_path"`
	Size      *int64    `json:"size,omitempty" db:"size"`
	MIMEType  *string   `json:"mime_type,omitempty" db:"mime_type"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// NewAttachment holds the fields needed to attach a file to an email.
type NewAttachment struct {
	EmailID  int64   `json:"email_id"`
	FileName string  `json:"file_name" validate:"notblank"`
	FilePath string  `json:"file_path" validate:"notblank"`
	Size     *int64  `json:"size,omitempty" validate:"omitempty,gte=0"`
	MIMEType *string `json:"mime_type,omitempty"`
}
