package server

import (
	"net/http"
	"time"

	"avenqor/internal/domain/value"
)

const (
	cookieSession  = "avenqor_session"
	cookieCart     = "avenqor_cart"
	cookieLocale   = "user_locale"
	cookieCurrency = "avenqor_currency"
)

const (
	cartCookieTTL       = 30 * 24 * time.Hour
	preferenceCookieTTL = 365 * 24 * time.Hour
)

func setSessionCookie(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieSession,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieSession,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func setCartCookie(w http.ResponseWriter, cartID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieCart,
		Value:    cartID,
		Path:     "/",
		MaxAge:   int(cartCookieTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// setPreferenceCookie writes locale/currency cookies. These are read by the
// frontend too, so they stay script-visible.
func setPreferenceCookie(w http.ResponseWriter, name, val string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    val,
		Path:     "/",
		MaxAge:   int(preferenceCookieTTL.Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}

// currencyFromRequest reads the preference cookie; broken or absent values
// come back empty and resolve to the default downstream.
func currencyFromRequest(r *http.Request) value.Currency {
	cookie, err := r.Cookie(cookieCurrency)
	if err != nil {
		return ""
	}

	currency, err := value.ParseCurrency(cookie.Value)
	if err != nil {
		return ""
	}

	return currency
}

func localeFromRequest(r *http.Request) value.Locale {
	cookie, err := r.Cookie(cookieLocale)
	if err != nil {
		return value.DefaultLocale
	}

	return value.LocaleOrDefault(cookie.Value)
}
