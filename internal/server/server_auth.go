package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"avenqor/internal/domain"
	"avenqor/internal/domain/entity"
	"avenqor/internal/domain/value"
	"avenqor/pkg/contextx"
	"avenqor/pkg/errcodes"
	"avenqor/pkg/httpx/reply"
	"avenqor/pkg/httpx/req"
	"avenqor/pkg/rest"
)

type authService interface {
	Register(ctx context.Context, email, password string, locale value.Locale) (entity.User, string, error)
	Login(ctx context.Context, email, password string) (entity.User, string, error)
	Authenticate(ctx context.Context, token string) (entity.User, error)
	Logout(ctx context.Context, token string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error
}

type AuthServer struct {
	authService authService
	sessionTTL  time.Duration
}

func NewAuthServer(authService authService, sessionTTL time.Duration) AuthServer {
	return AuthServer{
		authService: authService,
		sessionTTL:  sessionTTL,
	}
}

// RequireSession resolves the session cookie to a user and stores the user
// ID in the context. No cookie or a stale one means 401.
func (s AuthServer) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		cookie, err := r.Cookie(cookieSession)
		if err != nil || cookie.Value == "" {
			reply.Error(ctx, w, translateError(
				domain.NewError(errcodes.Unauthorized, "authentication required")))
			return
		}

		user, err := s.authService.Authenticate(ctx, cookie.Value)
		if err != nil {
			reply.Error(ctx, w, translateError(err))
			return
		}

		ctx = contextx.WithUserID(ctx, contextx.UserID(user.ID))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s AuthServer) postRegister(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.RegisterRequest
	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	locale := value.LocaleOrDefault(request.Locale)
	if request.Locale == "" {
		locale = localeFromRequest(r)
	}

	user, token, err := s.authService.Register(ctx, request.Email, request.Password, locale)
	if err != nil {
		return fmt.Errorf("authService.Register: %w", err)
	}

	setSessionCookie(w, token, s.sessionTTL)
	setPreferenceCookie(w, cookieLocale, user.Locale.String())

	reply.JSON(ctx, w, http.StatusCreated, rest.SessionResponse{
		SessionToken: token,
		User:         newRESTUser(user),
	})

	return nil
}

func (s AuthServer) postLogin(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.LoginRequest
	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	user, token, err := s.authService.Login(ctx, request.Email, request.Password)
	if err != nil {
		return fmt.Errorf("authService.Login: %w", err)
	}

	setSessionCookie(w, token, s.sessionTTL)
	setPreferenceCookie(w, cookieLocale, user.Locale.String())

	reply.JSON(ctx, w, http.StatusOK, rest.SessionResponse{
		SessionToken: token,
		User:         newRESTUser(user),
	})

	return nil
}

func (s AuthServer) postLogout(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	if cookie, err := r.Cookie(cookieSession); err == nil && cookie.Value != "" {
		if err := s.authService.Logout(ctx, cookie.Value); err != nil {
			return fmt.Errorf("authService.Logout: %w", err)
		}
	}

	clearSessionCookie(w)
	reply.JSON(ctx, w, http.StatusOK, rest.OK{Success: true})

	return nil
}

// postForgotPassword answers 200 no matter what; the response must not leak
// whether the email has an account.
func (s AuthServer) postForgotPassword(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.ForgotPasswordRequest
	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	if err := s.authService.ForgotPassword(ctx, request.Email); err != nil {
		return fmt.Errorf("authService.ForgotPassword: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, rest.OK{Success: true})

	return nil
}

func (s AuthServer) postResetPassword(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.ResetPasswordRequest
	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	if err := s.authService.ResetPassword(ctx, request.ResetToken, request.Password); err != nil {
		return fmt.Errorf("authService.ResetPassword: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, rest.OK{Success: true})

	return nil
}

func (s AuthServer) getMe(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	cookie, err := r.Cookie(cookieSession)
	if err != nil {
		return domain.NewError(errcodes.Unauthorized, "authentication required")
	}

	user, err := s.authService.Authenticate(ctx, cookie.Value)
	if err != nil {
		return fmt.Errorf("authService.Authenticate: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTUser(user))

	return nil
}
