package model

import "time"

// Email is a stored message record. Flags are independent of each other.
type Email struct {
	ID         int64      `json:"id" db:"id"`
	Sender     string     `json:"sender" db:"sender"`
	Recipient  string     `json:"recipient" db:"recipient"`
	Subject    string     `json:"subject" db:"subject"`
	Body       string     `json:"body" db:"body"`
	CategoryID *int64     `json:"category_id,omitempty" db:"category_id"`
	SentAt     time.Time  `json:"sent_at" db:"sent_at"`
	ReceivedAt *time.Time `json:"received_at,omitempty" db:"received_at"`
	Read       bool       `json:"read" db:"read"`
	Important  bool       `json:"important" db:"important"`
	Archived   bool       `json:"archived" db:"archived"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`

	// Category is resolved in the same query on every read path.
	Category *Category `json:"category,omitempty" db:"-"`
}

// NewEmail holds the fields needed to create an email. SentAt defaults to
// the creation time when nil.
type NewEmail struct {
	Sender     string     `json:"sender" validate:"notblank"`
	Recipient  string     `json:"recipient" validate:"notblank"`
	Subject    string     `json:"subject" validate:"notblank"`
	Body       string     `json:"body"`
	CategoryID *int64     `json:"category_id,omitempty"`
	SentAt     *time.Time `json:"sent_at,omitempty"`
}
