package entity

import (
	"time"

	"avenqor/internal/domain/value"
)

type User struct {
	ID           string       `json:"id"`
	Email        string       `json:"email"`
	PasswordHash []byte       `json:"-"`
	Locale       value.Locale `json:"locale"`
	Balance      int64        `json:"balance"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// WalletEntry is one row of the token ledger. Tokens is positive for
// credits and negative for debits; the running balance lives on the user.
type WalletEntry struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	Tokens    int64     `json:"tokens"`
	Reference string    `json:"reference"`
	CreatedAt time.Time `json:"created_at"`
}
