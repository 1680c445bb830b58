package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"avenqor/internal/domain"
	"avenqor/internal/domain/entity"
	"avenqor/internal/domain/service/auth"
	"avenqor/internal/domain/value"
	"avenqor/pkg/errcodes"
)

type fakeUsers struct {
	byEmail map[string]entity.User
	byID    map[string]entity.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{
		byEmail: make(map[string]entity.User),
		byID:    make(map[string]entity.User),
	}
}

func (f *fakeUsers) CreateUser(_ context.Context, user entity.User) error {
	if _, ok := f.byEmail[user.Email]; ok {
		return domain.NewError(errcodes.EmailAlreadyInUse, "email already in use")
	}

	f.byEmail[user.Email] = user
	f.byID[user.ID] = user
	return nil
}

func (f *fakeUsers) GetUserByEmail(_ context.Context, email string) (entity.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return entity.User{}, domain.NewError(errcodes.NotFound, "user not found")
	}

	return user, nil
}

func (f *fakeUsers) GetUserByID(_ context.Context, id string) (entity.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return entity.User{}, domain.NewError(errcodes.NotFound, "user not found")
	}

	return user, nil
}

func (f *fakeUsers) UpdatePasswordHash(_ context.Context, userID string, hash []byte) error {
	user := f.byID[userID]
	user.PasswordHash = hash
	f.byID[userID] = user
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUsers) UpdateLocale(_ context.Context, userID string, locale value.Locale) error {
	user := f.byID[userID]
	user.Locale = locale
	f.byID[userID] = user
	f.byEmail[user.Email] = user
	return nil
}

type fakeSessions struct {
	sessions map[string]string
	resets   map[string]string
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{
		sessions: make(map[string]string),
		resets:   make(map[string]string),
	}
}

func (f *fakeSessions) CreateSession(_ context.Context, token, userID string, _ time.Duration) error {
	f.sessions[token] = userID
	return nil
}

func (f *fakeSessions) GetSession(_ context.Context, token string) (string, error) {
	userID, ok := f.sessions[token]
	if !ok {
		return "", domain.NewError(errcodes.SessionExpired, "session expired")
	}

	return userID, nil
}

func (f *fakeSessions) DeleteSession(_ context.Context, token string) error {
	delete(f.sessions, token)
	return nil
}

func (f *fakeSessions) SetResetToken(_ context.Context, token, userID string, _ time.Duration) error {
	f.resets[token] = userID
	return nil
}

func (f *fakeSessions) ConsumeResetToken(_ context.Context, token string) (string, error) {
	userID, ok := f.resets[token]
	if !ok {
		return "", domain.NewError(errcodes.ResetTokenInvalid, "reset token is invalid or expired")
	}

	delete(f.resets, token)
	return userID, nil
}

type fakeMail struct {
	sent []string
}

func (f *fakeMail) EnqueuePasswordResetMail(_ context.Context, _, token string) error {
	f.sent = append(f.sent, token)
	return nil
}

type fakeWallet struct{}

func (fakeWallet) Credit(_ context.Context, _ string, tokens int64, _ string) (int64, error) {
	return tokens, nil
}

func newService() (*auth.Service, *fakeUsers, *fakeSessions, *fakeMail) {
	users := newFakeUsers()
	sessions := newFakeSessions()
	mail := &fakeMail{}
	svc := auth.NewService(users, sessions, mail, fakeWallet{}, auth.Config{
		SessionTTL:    time.Hour,
		ResetTokenTTL: 15 * time.Minute,
	})

	return svc, users, sessions, mail
}

func TestRegisterAndLogin(t *testing.T) {
	rq := require.New(t)

	svc, _, _, _ := newService()
	ctx := context.Background()

	user, token, err := svc.Register(ctx, "  Trader@Example.COM ", "hunter2hunter2", value.LocaleAR)
	rq.NoError(err)
	rq.Equal("trader@example.com", user.Email)
	rq.Equal(value.LocaleAR, user.Locale)
	rq.EqualValues(500, user.Balance)
	rq.NotEmpty(token)

	authed, err := svc.Authenticate(ctx, token)
	rq.NoError(err)
	rq.Equal(user.ID, authed.ID)

	_, loginToken, err := svc.Login(ctx, "trader@example.com", "hunter2hunter2")
	rq.NoError(err)
	rq.NotEmpty(loginToken)
	rq.NotEqual(token, loginToken)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	rq := require.New(t)

	svc, _, _, _ := newService()
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "trader@example.com", "hunter2hunter2", value.LocaleEN)
	rq.NoError(err)

	_, _, err = svc.Register(ctx, "trader@example.com", "hunter2hunter2", value.LocaleEN)
	rq.True(domain.HasCode(err, errcodes.EmailAlreadyInUse))
}

func TestRegisterShortPassword(t *testing.T) {
	rq := require.New(t)

	svc, _, _, _ := newService()

	_, _, err := svc.Register(context.Background(), "trader@example.com", "short", value.LocaleEN)
	rq.True(domain.HasCode(err, errcodes.InvalidPassword))
}

func TestLoginWrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	rq := require.New(t)

	svc, _, _, _ := newService()
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "trader@example.com", "hunter2hunter2", value.LocaleEN)
	rq.NoError(err)

	_, _, wrongPass := svc.Login(ctx, "trader@example.com", "not-the-password")
	_, _, noAccount := svc.Login(ctx, "ghost@example.com", "hunter2hunter2")

	rq.True(domain.HasCode(wrongPass, errcodes.CredentialsMismatch))
	rq.True(domain.HasCode(noAccount, errcodes.CredentialsMismatch))
}

func TestLogout(t *testing.T) {
	rq := require.New(t)

	svc, _, _, _ := newService()
	ctx := context.Background()

	_, token, err := svc.Register(ctx, "trader@example.com", "hunter2hunter2", value.LocaleEN)
	rq.NoError(err)

	rq.NoError(svc.Logout(ctx, token))

	_, err = svc.Authenticate(ctx, token)
	rq.True(domain.HasCode(err, errcodes.SessionExpired))
}

func TestPasswordResetFlow(t *testing.T) {
	rq := require.New(t)

	svc, _, _, mail := newService()
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "trader@example.com", "hunter2hunter2", value.LocaleEN)
	rq.NoError(err)

	rq.NoError(svc.ForgotPassword(ctx, "trader@example.com"))
	rq.Len(mail.sent, 1)

	token := mail.sent[0]
	rq.NoError(svc.ResetPassword(ctx, token, "newpassword99"))

	// The token is one-shot.
	err = svc.ResetPassword(ctx, token, "anotherpass99")
	rq.True(domain.HasCode(err, errcodes.ResetTokenInvalid))

	_, _, err = svc.Login(ctx, "trader@example.com", "newpassword99")
	rq.NoError(err)
	_, _, err = svc.Login(ctx, "trader@example.com", "hunter2hunter2")
	rq.True(domain.HasCode(err, errcodes.CredentialsMismatch))
}

func TestForgotPasswordUnknownEmailSucceeds(t *testing.T) {
	rq := require.New(t)

	svc, _, _, mail := newService()

	rq.NoError(svc.ForgotPassword(context.Background(), "ghost@example.com"))
	rq.Empty(mail.sent)
}
