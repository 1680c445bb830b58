// Package rest holds the wire types of the storefront API. In a later
// iteration this file should be generated from the openapi spec as
// types.gen.go.
package rest

// Error is the error envelope every non-2xx response carries.
type Error struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	SupportID string `json:"supportId"`
}

type OK struct {
	Success bool `json:"success"`
}

// --- Contact ---

type ContactRequest struct {
	FullName string `json:"fullName" validate:"required,max=128"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"omitempty,max=32"`
	Subject  string `json:"subject" validate:"omitempty,max=256"`
	Message  string `json:"message" validate:"required,max=4000"`
}

// --- Auth ---

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Locale   string `json:"locale" validate:"omitempty,oneof=en ar"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	ResetToken string `json:"resetToken" validate:"required"`
	Password   string `json:"password" validate:"required,min=8,max=72"`
}

type SessionResponse struct {
	SessionToken string `json:"sessionToken"`
	User         User   `json:"user"`
}

type User struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Locale  string `json:"locale"`
	Balance int64  `json:"balance"`
}

// --- Pricing selections ---

// CourseSelection mirrors the custom-course form. Every field is optional;
// an absent field prices as "not chosen".
type CourseSelection struct {
	Experience string   `json:"experience" validate:"omitempty,oneof=beginner intermediate advanced"`
	Deposit    string   `json:"deposit" validate:"omitempty,oneof=low medium high veryHigh"`
	Risk       string   `json:"risk" validate:"omitempty,oneof=low medium high"`
	Markets    []string `json:"markets" validate:"omitempty,unique,dive,oneof=forex crypto binary"`
	Style      string   `json:"style" validate:"omitempty,oneof=scalping dayTrading swing position"`
	Weekdays   []string `json:"weekdays" validate:"omitempty,max=7,unique,dive,oneof=mon tue wed thu fri sat sun"`
	Platforms  []string `json:"platforms" validate:"omitempty,unique,dive,max=64"`
	Languages  int      `json:"languages" validate:"omitempty,min=1,max=2"`
}

// StrategySelection mirrors the AI-strategy form.
type StrategySelection struct {
	Experience     string   `json:"experience" validate:"omitempty,oneof=beginner intermediate advanced"`
	Deposit        string   `json:"deposit" validate:"omitempty,oneof=low medium high veryHigh"`
	Risk           string   `json:"risk" validate:"omitempty,oneof=low medium high"`
	Markets        []string `json:"markets" validate:"omitempty,unique,dive,oneof=forex crypto binary"`
	Style          string   `json:"style" validate:"omitempty,oneof=scalping dayTrading swing position"`
	TimeCommitment string   `json:"timeCommitment" validate:"omitempty,oneof=casual regular intensive"`
	Platforms      []string `json:"platforms" validate:"omitempty,unique,dive,max=64"`
	Languages      int      `json:"languages" validate:"omitempty,min=1,max=2"`
}

type CustomCourseRequest struct {
	Selection CourseSelection `json:"selection"`
	Notes     string          `json:"notes" validate:"omitempty,max=2000"`
}

type AIStrategyRequest struct {
	Selection StrategySelection `json:"selection"`
	Notes     string            `json:"notes" validate:"omitempty,max=2000"`
}

type QuoteResponse struct {
	Tokens         int64  `json:"tokens"`
	Currency       string `json:"currency"`
	Amount         string `json:"amount"`
	FormattedPrice string `json:"formattedPrice"`
}

type SubmittedRequest struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	Status    string `json:"status"`
	Tokens    int64  `json:"tokens"`
	Balance   int64  `json:"balance,omitempty"`
	CreatedAt string `json:"createdAt"`
}

// --- Catalog ---

type Course struct {
	Slug           string `json:"slug"`
	Title          string `json:"title"`
	Level          string `json:"level"`
	Tokens         int64  `json:"tokens"`
	Currency       string `json:"currency"`
	FormattedPrice string `json:"formattedPrice"`
}

type TokenPack struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Tokens         int64  `json:"tokens"`
	BonusTokens    int64  `json:"bonusTokens"`
	Currency       string `json:"currency"`
	FormattedPrice string `json:"formattedPrice"`
}

// --- Cart ---

type AddCartItemRequest struct {
	Slug string `json:"slug" validate:"required,max=128"`
}

type CartLine struct {
	Slug   string `json:"slug"`
	Title  string `json:"title"`
	Tokens int64  `json:"tokens"`
}

type Cart struct {
	Lines          []CartLine `json:"lines"`
	TotalTokens    int64      `json:"totalTokens"`
	Currency       string     `json:"currency"`
	TotalAmount    string     `json:"totalAmount"`
	FormattedTotal string     `json:"formattedTotal"`
}

type CheckoutResponse struct {
	SpentTokens int64 `json:"spentTokens"`
	Balance     int64 `json:"balance"`
}

// --- Wallet ---

type TopUpRequest struct {
	PackID string `json:"packId" validate:"required"`
}

type Wallet struct {
	Balance int64         `json:"balance"`
	Entries []WalletEntry `json:"entries"`
}

type WalletEntry struct {
	Tokens    int64  `json:"tokens"`
	Reference string `json:"reference"`
	CreatedAt string `json:"createdAt"`
}

// --- Preferences ---

type PreferencesRequest struct {
	Locale   string `json:"locale" validate:"omitempty,oneof=en ar"`
	Currency string `json:"currency" validate:"omitempty,len=3,alpha"`
}
