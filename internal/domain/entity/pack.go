package entity

import "time"

// TokenPack is a predefined token bundle sold at a fixed token-equivalent
// price. Crediting a pack grants Tokens + BonusTokens.
// PriceTokens is what the pack quotes at in the token→currency rate table;
// display prices per currency derive from it.
type TokenPack struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Tokens      int64     `json:"tokens"`
	BonusTokens int64     `json:"bonus_tokens"`
	PriceTokens int64     `json:"price_tokens"`
	Active      bool      `json:"active"`
	UpdatedAt   time.Time `json:"updated_at"`
}
