package entity

import "time"

// Course is a ready-made catalog course unlocked by spending tokens.
type Course struct {
	Slug       string    `json:"slug"`
	Title      string    `json:"title"`
	Level      string    `json:"level"`
	TokenPrice int64     `json:"token_price"`
	Published  bool      `json:"published"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
