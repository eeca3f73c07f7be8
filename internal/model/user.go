package model

import "time"

// User is a registered identity. Emails reference parties by raw address,
// not by user, so addresses outside this table are valid senders and
// recipients.
type User struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// NewUser holds the fields needed to register a user.
type NewUser struct {
	Name  string `json:"name" validate:"notblank"`
	Email string `json:"email" validate:"required,email"`
}
