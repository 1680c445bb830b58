package server

import (
	"context"
	"fmt"
	"net/http"

	"avenqor/internal/domain"
	"avenqor/internal/domain/entity"
	"avenqor/internal/domain/value"
	"avenqor/internal/i18n"
	"avenqor/pkg/errcodes"
	"avenqor/pkg/httpx/reply"
	"avenqor/pkg/httpx/req"
	"avenqor/pkg/logx"
	"avenqor/pkg/rest"
)

type accountService interface {
	Authenticate(ctx context.Context, token string) (entity.User, error)
	UpdateLocale(ctx context.Context, userID string, locale value.Locale) error
}

type PreferencesServer struct {
	translations *i18n.Catalog
	supported    map[value.Currency]struct{}
	accounts     accountService
}

func NewPreferencesServer(
	translations *i18n.Catalog,
	supportedCurrencies []value.Currency,
	accounts accountService,
) PreferencesServer {
	supported := make(map[value.Currency]struct{}, len(supportedCurrencies))
	for _, c := range supportedCurrencies {
		supported[c] = struct{}{}
	}

	return PreferencesServer{
		translations: translations,
		supported:    supported,
		accounts:     accounts,
	}
}

// putPreferences validates and persists locale/currency choices as cookies.
// Unlike the lenient read path, an explicit bad preference is rejected.
func (s PreferencesServer) putPreferences(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.PreferencesRequest
	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	if request.Locale != "" {
		locale, err := value.ParseLocale(request.Locale)
		if err != nil {
			return domain.WrapError(err, errcodes.UnknownLocale, "unsupported locale")
		}

		setPreferenceCookie(w, cookieLocale, locale.String())
		s.persistLocale(r, locale)
	}

	if request.Currency != "" {
		currency, err := value.ParseCurrency(request.Currency)
		if err != nil {
			return domain.WrapError(err, errcodes.UnknownCurrency, "unsupported currency")
		}

		if _, ok := s.supported[currency]; !ok {
			return domain.NewError(errcodes.UnknownCurrency, "unsupported currency")
		}

		setPreferenceCookie(w, cookieCurrency, currency.String())
	}

	reply.JSON(ctx, w, http.StatusOK, rest.OK{Success: true})

	return nil
}

// persistLocale copies the locale choice onto the account when the visitor is
// signed in. A stale session only loses the account copy; the cookie wins.
func (s PreferencesServer) persistLocale(r *http.Request, locale value.Locale) {
	cookie, err := r.Cookie(cookieSession)
	if err != nil || cookie.Value == "" {
		return
	}

	ctx := r.Context()

	user, err := s.accounts.Authenticate(ctx, cookie.Value)
	if err != nil {
		return
	}

	if err := s.accounts.UpdateLocale(ctx, user.ID, locale); err != nil {
		logger(ctx).Error("persist locale", logx.FieldUserID, user.ID, logx.Error(err))
	}
}

// getI18n serves the translation bundle. Unknown locales fall back to the
// default bundle rather than 404ing the storefront chrome.
func (s PreferencesServer) getI18n(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	locale := value.LocaleOrDefault(r.PathValue("locale"))

	reply.JSON(ctx, w, http.StatusOK, s.translations.Bundle(locale))

	return nil
}
