package persistence

import (
	"time"

	"avenqor/internal/domain/entity"
	"avenqor/internal/domain/value"
)

// courseSchema maps a row of the courses table.
type courseSchema struct {
	Slug       string    `db:"slug"`
	Title      string    `db:"title"`
	Level      string    `db:"level"`
	TokenPrice int64     `db:"token_price"`
	Published  bool      `db:"published"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

func (s *courseSchema) toDomain() entity.Course {
	return entity.Course{
		Slug:       s.Slug,
		Title:      s.Title,
		Level:      s.Level,
		TokenPrice: s.TokenPrice,
		Published:  s.Published,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

// tokenPackSchema maps a row of the token_packs table.
type tokenPackSchema struct {
	ID          string    `db:"id"`
	Name        string    `db:"name"`
	Tokens      int64     `db:"tokens"`
	BonusTokens int64     `db:"bonus_tokens"`
	PriceTokens int64     `db:"price_tokens"`
	Active      bool      `db:"active"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (s *tokenPackSchema) toDomain() entity.TokenPack {
	return entity.TokenPack{
		ID:          s.ID,
		Name:        s.Name,
		Tokens:      s.Tokens,
		BonusTokens: s.BonusTokens,
		PriceTokens: s.PriceTokens,
		Active:      s.Active,
		UpdatedAt:   s.UpdatedAt,
	}
}

// userSchema maps a row of the users table.
type userSchema struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	PasswordHash []byte    `db:"password_hash"`
	Locale       string    `db:"locale"`
	Balance      int64     `db:"balance"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (s *userSchema) toDomain() entity.User {
	return entity.User{
		ID:           s.ID,
		Email:        s.Email,
		PasswordHash: s.PasswordHash,
		Locale:       value.LocaleOrDefault(s.Locale),
		Balance:      s.Balance,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

// walletEntrySchema maps a row of the wallet_entries ledger.
type walletEntrySchema struct {
	ID        int64     `db:"id"`
	UserID    string    `db:"user_id"`
	Tokens    int64     `db:"tokens"`
	Reference string    `db:"reference"`
	CreatedAt time.Time `db:"created_at"`
}

func (s *walletEntrySchema) toDomain() entity.WalletEntry {
	return entity.WalletEntry{
		ID:        s.ID,
		UserID:    s.UserID,
		Tokens:    s.Tokens,
		Reference: s.Reference,
		CreatedAt: s.CreatedAt,
	}
}

// requestSchema maps a row of the requests table. The selection is stored as
// jsonb and decoded according to kind.
type requestSchema struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Kind      string    `db:"kind"`
	Status    string    `db:"status"`
	Tokens    int64     `db:"tokens"`
	Notes     string    `db:"notes"`
	Selection []byte    `db:"selection"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// contactMessageSchema maps a row of the contact_messages table.
type contactMessageSchema struct {
	ID        string    `db:"id"`
	FullName  string    `db:"full_name"`
	Email     string    `db:"email"`
	Phone     string    `db:"phone"`
	Subject   string    `db:"subject"`
	Message   string    `db:"message"`
	CreatedAt time.Time `db:"created_at"`
}

func (s *contactMessageSchema) toDomain() entity.ContactMessage {
	return entity.ContactMessage{
		ID:        s.ID,
		FullName:  s.FullName,
		Email:     s.Email,
		Phone:     s.Phone,
		Subject:   s.Subject,
		Message:   s.Message,
		CreatedAt: s.CreatedAt,
	}
}
