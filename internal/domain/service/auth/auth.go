package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/xid"
	"golang.org/x/crypto/bcrypt"

	"avenqor/internal/domain"
	"avenqor/internal/domain/entity"
	"avenqor/internal/domain/value"
	"avenqor/pkg/errcodes"
)

const (
	minPasswordLength = 8
	maxPasswordLength = 72 // bcrypt input limit

	welcomeTokens = 500
)

type UserRepository interface {
	CreateUser(ctx context.Context, user entity.User) error
	GetUserByEmail(ctx context.Context, email string) (entity.User, error)
	GetUserByID(ctx context.Context, id string) (entity.User, error)
	UpdatePasswordHash(ctx context.Context, userID string, hash []byte) error
	UpdateLocale(ctx context.Context, userID string, locale value.Locale) error
}

// SessionStore keeps opaque session tokens and one-shot reset tokens.
type SessionStore interface {
	CreateSession(ctx context.Context, token, userID string, ttl time.Duration) error
	GetSession(ctx context.Context, token string) (string, error)
	DeleteSession(ctx context.Context, token string) error
	SetResetToken(ctx context.Context, token, userID string, ttl time.Duration) error
	ConsumeResetToken(ctx context.Context, token string) (string, error)
}

type MailEnqueuer interface {
	EnqueuePasswordResetMail(ctx context.Context, email, token string) error
}

type Wallet interface {
	Credit(ctx context.Context, userID string, tokens int64, reference string) (int64, error)
}

type Config struct {
	SessionTTL    time.Duration
	ResetTokenTTL time.Duration
}

type Service struct {
	users    UserRepository
	sessions SessionStore
	mail     MailEnqueuer
	wallet   Wallet
	cfg      Config
}

func NewService(
	users UserRepository,
	sessions SessionStore,
	mail MailEnqueuer,
	wallet Wallet,
	cfg Config,
) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		mail:     mail,
		wallet:   wallet,
		cfg:      cfg,
	}
}

// Register creates an account and opens a session. New accounts get a small
// welcome credit so the first quote is not a dead end.
func (s *Service) Register(
	ctx context.Context, email, password string, locale value.Locale,
) (entity.User, string, error) {
	email = normalizeEmail(email)

	if err := checkPassword(password); err != nil {
		return entity.User{}, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return entity.User{}, "", fmt.Errorf("bcrypt.GenerateFromPassword: %w", err)
	}

	now := time.Now()
	user := entity.User{
		ID:           xid.New().String(),
		Email:        email,
		PasswordHash: hash,
		Locale:       value.LocaleOrDefault(locale.String()),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		return entity.User{}, "", fmt.Errorf("users.CreateUser: %w", err)
	}

	if balance, err := s.wallet.Credit(ctx, user.ID, welcomeTokens, "welcome"); err != nil {
		logger(ctx).Error("welcome credit failed", "user_id", user.ID, "error", err)
	} else {
		user.Balance = balance
	}

	token, err := s.openSession(ctx, user.ID)
	if err != nil {
		return entity.User{}, "", err
	}

	logger(ctx).Info("user registered", "user_id", user.ID)

	return user, token, nil
}

// Login verifies credentials and opens a session. A missing account and a
// wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (entity.User, string, error) {
	user, err := s.users.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if domain.HasCode(err, errcodes.NotFound) {
			return entity.User{}, "", domain.NewError(errcodes.CredentialsMismatch, "invalid email or password")
		}

		return entity.User{}, "", fmt.Errorf("users.GetUserByEmail: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return entity.User{}, "", domain.NewError(errcodes.CredentialsMismatch, "invalid email or password")
		}

		return entity.User{}, "", fmt.Errorf("bcrypt.CompareHashAndPassword: %w", err)
	}

	token, err := s.openSession(ctx, user.ID)
	if err != nil {
		return entity.User{}, "", err
	}

	return user, token, nil
}

// Authenticate resolves a session token to its user.
func (s *Service) Authenticate(ctx context.Context, token string) (entity.User, error) {
	userID, err := s.sessions.GetSession(ctx, token)
	if err != nil {
		return entity.User{}, fmt.Errorf("sessions.GetSession: %w", err)
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return entity.User{}, fmt.Errorf("users.GetUserByID: %w", err)
	}

	return user, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	if err := s.sessions.DeleteSession(ctx, token); err != nil {
		return fmt.Errorf("sessions.DeleteSession: %w", err)
	}

	return nil
}

// ForgotPassword issues a reset token and mails it. It succeeds for unknown
// emails too, so the endpoint cannot be used to probe for accounts.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if domain.HasCode(err, errcodes.NotFound) {
			logger(ctx).Info("password reset requested for unknown email")
			return nil
		}

		return fmt.Errorf("users.GetUserByEmail: %w", err)
	}

	token := xid.New().String() + xid.New().String()

	if err := s.sessions.SetResetToken(ctx, token, user.ID, s.cfg.ResetTokenTTL); err != nil {
		return fmt.Errorf("sessions.SetResetToken: %w", err)
	}

	if err := s.mail.EnqueuePasswordResetMail(ctx, user.Email, token); err != nil {
		return fmt.Errorf("mail.EnqueuePasswordResetMail: %w", err)
	}

	logger(ctx).Info("password reset issued", "user_id", user.ID)

	return nil
}

// ResetPassword consumes a one-shot reset token and sets the new password.
func (s *Service) ResetPassword(ctx context.Context, token, password string) error {
	if err := checkPassword(password); err != nil {
		return err
	}

	userID, err := s.sessions.ConsumeResetToken(ctx, token)
	if err != nil {
		return fmt.Errorf("sessions.ConsumeResetToken: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("bcrypt.GenerateFromPassword: %w", err)
	}

	if err := s.users.UpdatePasswordHash(ctx, userID, hash); err != nil {
		return fmt.Errorf("users.UpdatePasswordHash: %w", err)
	}

	logger(ctx).Info("password reset completed", "user_id", userID)

	return nil
}

// UpdateLocale persists the account-level locale preference.
func (s *Service) UpdateLocale(ctx context.Context, userID string, locale value.Locale) error {
	if err := s.users.UpdateLocale(ctx, userID, locale); err != nil {
		return fmt.Errorf("users.UpdateLocale: %w", err)
	}

	return nil
}

func (s *Service) openSession(ctx context.Context, userID string) (string, error) {
	token := xid.New().String() + xid.New().String()

	if err := s.sessions.CreateSession(ctx, token, userID, s.cfg.SessionTTL); err != nil {
		return "", fmt.Errorf("sessions.CreateSession: %w", err)
	}

	return token, nil
}

func checkPassword(password string) error {
	if len(password) < minPasswordLength || len(password) > maxPasswordLength {
		return domain.NewError(errcodes.InvalidPassword,
			fmt.Sprintf("password must be between %d and %d characters", minPasswordLength, maxPasswordLength))
	}

	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
