package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"avenqor/internal/domain"
	"avenqor/internal/domain/entity"
	"avenqor/internal/domain/pricing"
	"avenqor/internal/domain/service/auth"
	"avenqor/internal/domain/service/cart"
	"avenqor/internal/domain/service/catalog"
	"avenqor/internal/domain/service/request"
	"avenqor/internal/domain/service/wallet"
	"avenqor/internal/domain/value"
	"avenqor/internal/i18n"
	"avenqor/internal/server"
	"avenqor/pkg/errcodes"
)

// --- in-memory backends ---

type memCatalogRepo struct {
	courses []entity.Course
	packs   []entity.TokenPack
}

func (m *memCatalogRepo) ListCourses(context.Context) ([]entity.Course, error) {
	return m.courses, nil
}

func (m *memCatalogRepo) GetCourse(_ context.Context, slug string) (entity.Course, error) {
	for _, c := range m.courses {
		if c.Slug == slug {
			return c, nil
		}
	}

	return entity.Course{}, domain.NewError(errcodes.CourseNotFound, "course not found")
}

func (m *memCatalogRepo) ListTokenPacks(context.Context) ([]entity.TokenPack, error) {
	return m.packs, nil
}

func (m *memCatalogRepo) GetTokenPack(_ context.Context, id string) (entity.TokenPack, error) {
	for _, p := range m.packs {
		if p.ID == id {
			return p, nil
		}
	}

	return entity.TokenPack{}, domain.NewError(errcodes.PackNotFound, "token pack not found")
}

// memWalletRepo keeps the balance on the shared user record, the way the
// schema does: wallet adjustments must be visible through the user store.
type memWalletRepo struct {
	users  *memUsers
	ledger []entity.WalletEntry
}

func (m *memWalletRepo) Adjust(_ context.Context, userID string, delta int64, reference string) (int64, error) {
	user, ok := m.users.byID[userID]
	if !ok {
		return 0, domain.NewError(errcodes.WalletNotFound, "wallet not found")
	}

	if user.Balance+delta < 0 {
		return 0, domain.NewError(errcodes.InsufficientTokenBalance, "insufficient token balance")
	}

	user.Balance += delta
	m.users.byID[userID] = user
	m.users.byEmail[user.Email] = user
	m.ledger = append(m.ledger, entity.WalletEntry{UserID: userID, Tokens: delta, Reference: reference})

	return user.Balance, nil
}

func (m *memWalletRepo) Balance(_ context.Context, userID string) (int64, error) {
	return m.users.byID[userID].Balance, nil
}

func (m *memWalletRepo) Entries(_ context.Context, userID string, _ int) ([]entity.WalletEntry, error) {
	var out []entity.WalletEntry
	for _, e := range m.ledger {
		if e.UserID == userID {
			out = append(out, e)
		}
	}

	return out, nil
}

type memCartStore struct {
	carts map[string]entity.Cart
}

func (m *memCartStore) Get(_ context.Context, cartID string) (entity.Cart, error) {
	c, ok := m.carts[cartID]
	if !ok {
		return entity.Cart{}, domain.NewError(errcodes.CartNotFound, "cart not found")
	}

	return c, nil
}

func (m *memCartStore) Save(_ context.Context, c entity.Cart) error {
	m.carts[c.ID] = c
	return nil
}

func (m *memCartStore) Delete(_ context.Context, cartID string) error {
	delete(m.carts, cartID)
	return nil
}

type memUsers struct {
	byEmail map[string]entity.User
	byID    map[string]entity.User
}

func (m *memUsers) CreateUser(_ context.Context, user entity.User) error {
	if _, ok := m.byEmail[user.Email]; ok {
		return domain.NewError(errcodes.EmailAlreadyInUse, "email already in use")
	}

	m.byEmail[user.Email] = user
	m.byID[user.ID] = user
	return nil
}

func (m *memUsers) GetUserByEmail(_ context.Context, email string) (entity.User, error) {
	user, ok := m.byEmail[email]
	if !ok {
		return entity.User{}, domain.NewError(errcodes.NotFound, "user not found")
	}

	return user, nil
}

func (m *memUsers) GetUserByID(_ context.Context, id string) (entity.User, error) {
	user, ok := m.byID[id]
	if !ok {
		return entity.User{}, domain.NewError(errcodes.NotFound, "user not found")
	}

	return user, nil
}

func (m *memUsers) UpdatePasswordHash(_ context.Context, userID string, hash []byte) error {
	user := m.byID[userID]
	user.PasswordHash = hash
	m.byID[userID] = user
	m.byEmail[user.Email] = user
	return nil
}

func (m *memUsers) UpdateLocale(_ context.Context, userID string, locale value.Locale) error {
	user := m.byID[userID]
	user.Locale = locale
	m.byID[userID] = user
	m.byEmail[user.Email] = user
	return nil
}

type memSessions struct {
	sessions map[string]string
	resets   map[string]string
}

func (m *memSessions) CreateSession(_ context.Context, token, userID string, _ time.Duration) error {
	m.sessions[token] = userID
	return nil
}

func (m *memSessions) GetSession(_ context.Context, token string) (string, error) {
	userID, ok := m.sessions[token]
	if !ok {
		return "", domain.NewError(errcodes.SessionExpired, "session expired")
	}

	return userID, nil
}

func (m *memSessions) DeleteSession(_ context.Context, token string) error {
	delete(m.sessions, token)
	return nil
}

func (m *memSessions) SetResetToken(_ context.Context, token, userID string, _ time.Duration) error {
	m.resets[token] = userID
	return nil
}

func (m *memSessions) ConsumeResetToken(_ context.Context, token string) (string, error) {
	userID, ok := m.resets[token]
	if !ok {
		return "", domain.NewError(errcodes.ResetTokenInvalid, "reset token is invalid or expired")
	}

	delete(m.resets, token)
	return userID, nil
}

type memRequestRepo struct {
	requests map[string]entity.ServiceRequest
	messages map[string]entity.ContactMessage
}

func (m *memRequestRepo) CreateRequest(_ context.Context, req entity.ServiceRequest) error {
	m.requests[req.ID] = req
	return nil
}

func (m *memRequestRepo) GetRequest(_ context.Context, id string) (entity.ServiceRequest, error) {
	req, ok := m.requests[id]
	if !ok {
		return entity.ServiceRequest{}, domain.NewError(errcodes.RequestNotFound, "request not found")
	}

	return req, nil
}

func (m *memRequestRepo) ListRequests(_ context.Context, userID string) ([]entity.ServiceRequest, error) {
	var out []entity.ServiceRequest
	for _, req := range m.requests {
		if req.UserID == userID {
			out = append(out, req)
		}
	}

	return out, nil
}

func (m *memRequestRepo) UpdateRequestStatus(_ context.Context, id string, status entity.RequestStatus) error {
	req := m.requests[id]
	req.Status = status
	m.requests[id] = req
	return nil
}

func (m *memRequestRepo) CreateContactMessage(_ context.Context, msg entity.ContactMessage) error {
	m.messages[msg.ID] = msg
	return nil
}

type nopEnqueuer struct{}

func (nopEnqueuer) EnqueueRequestFulfill(context.Context, string) error { return nil }
func (nopEnqueuer) EnqueueContactNotify(context.Context, string) error { return nil }

type nopMail struct{}

func (nopMail) EnqueuePasswordResetMail(context.Context, string, string) error { return nil }

// --- harness ---

type testEnv struct {
	router     chi.Router
	walletRepo *memWalletRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := pricing.DefaultConfig()
	quoter := pricing.NewQuoter(cfg)

	catalogRepo := &memCatalogRepo{
		courses: []entity.Course{
			{Slug: "forex-foundations", Title: "Forex Foundations", TokenPrice: 2000, Published: true},
			{Slug: "crypto-momentum", Title: "Crypto Momentum", TokenPrice: 3500, Published: true},
		},
		packs: []entity.TokenPack{
			{ID: "starter", Name: "Starter", Tokens: 5000, BonusTokens: 500, PriceTokens: 5000, Active: true},
		},
	}
	users := &memUsers{byEmail: map[string]entity.User{}, byID: map[string]entity.User{}}
	walletRepo := &memWalletRepo{users: users}

	catalogSvc := catalog.NewService(catalogRepo)
	walletSvc := wallet.NewService(walletRepo, catalogSvc)
	cartSvc := cart.NewService(
		&memCartStore{carts: map[string]entity.Cart{}}, catalogSvc, walletSvc, quoter)
	requestSvc := request.NewService(
		&memRequestRepo{
			requests: map[string]entity.ServiceRequest{},
			messages: map[string]entity.ContactMessage{},
		},
		walletSvc, nopEnqueuer{}, cfg)
	translations, err := i18n.LoadCatalog("../../config/i18n")
	require.NoError(t, err)

	authSvc := auth.NewService(
		users,
		&memSessions{sessions: map[string]string{}, resets: map[string]string{}},
		nopMail{}, walletSvc,
		auth.Config{SessionTTL: time.Hour, ResetTokenTTL: 15 * time.Minute},
	)

	srv := server.NewServer(
		server.NewCatalogServer(catalogSvc, quoter),
		server.NewCartServer(cartSvc),
		server.NewRequestServer(requestSvc),
		server.NewAuthServer(authSvc, time.Hour),
		server.NewWalletServer(walletSvc),
		server.NewPreferencesServer(translations, quoter.Supported(), authSvc),
	)

	router := chi.NewRouter()
	srv.RegisterRoutes(router)

	return &testEnv{router: router, walletRepo: walletRepo}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))

	return out
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}

	return nil
}

// --- tests ---

func TestQuoteCustomCourseEmptySelection(t *testing.T) {
	rq := require.New(t)
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/custom-course/quote", map[string]any{
		"selection": map[string]any{},
	})

	rq.Equal(http.StatusOK, rec.Code)

	quote := decode[struct {
		Tokens         int64  `json:"tokens"`
		Currency       string `json:"currency"`
		FormattedPrice string `json:"formattedPrice"`
	}](t, rec)

	rq.EqualValues(1000, quote.Tokens)
	rq.Equal("USD", quote.Currency)
	rq.Equal("$10.00", quote.FormattedPrice)
}

func TestQuoteHonorsCurrencyCookie(t *testing.T) {
	rq := require.New(t)
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/custom-course/quote", map[string]any{
		"selection": map[string]any{},
	}, &http.Cookie{Name: "avenqor_currency", Value: "GBP"})

	rq.Equal(http.StatusOK, rec.Code)

	quote := decode[struct {
		Currency       string `json:"currency"`
		FormattedPrice string `json:"formattedPrice"`
	}](t, rec)

	rq.Equal("GBP", quote.Currency)
	rq.Equal("£7.90", quote.FormattedPrice)
}

func TestQuoteRejectsUnknownSelectionValue(t *testing.T) {
	rq := require.New(t)
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/ai-strategy/quote", map[string]any{
		"selection": map[string]any{"experience": "grandmaster"},
	})

	rq.Equal(http.StatusBadRequest, rec.Code)
}

func TestContactFormValidation(t *testing.T) {
	rq := require.New(t)
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/contact", map[string]any{
		"fullName": "Dana Idris",
		"email":    "dana@example.com",
		"message":  "Do bonus tokens expire?",
	})
	rq.Equal(http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/contact", map[string]any{
		"fullName": "Dana Idris",
		"email":    "not-an-email",
		"message":  "hello",
	})
	rq.Equal(http.StatusBadRequest, rec.Code)
}

func TestCoursesListPricedInCookieCurrency(t *testing.T) {
	rq := require.New(t)
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/courses", nil,
		&http.Cookie{Name: "avenqor_currency", Value: "EUR"})

	rq.Equal(http.StatusOK, rec.Code)

	courses := decode[[]struct {
		Slug           string `json:"slug"`
		Currency       string `json:"currency"`
		FormattedPrice string `json:"formattedPrice"`
	}](t, rec)

	rq.Len(courses, 2)
	rq.Equal("EUR", courses[0].Currency)
	rq.Equal("€18.60", courses[0].FormattedPrice) // 2000 * 0.0093
}

func TestCartFlowTwoLinesMatchSingleTotal(t *testing.T) {
	rq := require.New(t)
	env := newTestEnv(t)

	gbp := &http.Cookie{Name: "avenqor_currency", Value: "GBP"}

	rec := env.do(t, http.MethodPost, "/api/cart/items", map[string]any{"slug": "forex-foundations"}, gbp)
	rq.Equal(http.StatusOK, rec.Code)

	cartCookie := findCookie(rec, "avenqor_cart")
	rq.NotNil(cartCookie)

	rec = env.do(t, http.MethodPost, "/api/cart/items", map[string]any{"slug": "crypto-momentum"}, gbp, cartCookie)
	rq.Equal(http.StatusOK, rec.Code)

	got := decode[struct {
		TotalTokens    int64  `json:"totalTokens"`
		FormattedTotal string `json:"formattedTotal"`
	}](t, rec)

	rq.EqualValues(5500, got.TotalTokens)
	rq.Equal("£43.45", got.FormattedTotal)

	rec = env.do(t, http.MethodDelete, "/api/cart/items/forex-foundations", nil, gbp, cartCookie)
	rq.Equal(http.StatusOK, rec.Code)

	got = decode[struct {
		TotalTokens    int64  `json:"totalTokens"`
		FormattedTotal string `json:"formattedTotal"`
	}](t, rec)
	rq.EqualValues(3500, got.TotalTokens)
}

func TestCheckoutRequiresSession(t *testing.T) {
	rq := require.New(t)
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/cart/checkout", nil)
	rq.Equal(http.StatusUnauthorized, rec.Code)
}

func TestRegisterCheckoutFlow(t *testing.T) {
	rq := require.New(t)
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/auth/register", map[string]any{
		"email":    "trader@example.com",
		"password": "hunter2hunter2",
	})
	rq.Equal(http.StatusCreated, rec.Code)

	session := findCookie(rec, "avenqor_session")
	rq.NotNil(session)

	me := env.do(t, http.MethodGet, "/api/me", nil, session)
	rq.Equal(http.StatusOK, me.Code)

	user := decode[struct {
		ID      string `json:"id"`
		Balance int64  `json:"balance"`
	}](t, me)
	rq.EqualValues(500, user.Balance) // welcome credit

	// Top up so checkout can succeed.
	topup := env.do(t, http.MethodPost, "/api/wallet/topup", map[string]any{"packId": "starter"}, session)
	rq.Equal(http.StatusOK, topup.Code)

	add := env.do(t, http.MethodPost, "/api/cart/items", map[string]any{"slug": "forex-foundations"})
	cartCookie := findCookie(add, "avenqor_cart")
	rq.NotNil(cartCookie)

	checkout := env.do(t, http.MethodPost, "/api/cart/checkout", nil, session, cartCookie)
	rq.Equal(http.StatusOK, checkout.Code)

	result := decode[struct {
		SpentTokens int64 `json:"spentTokens"`
		Balance     int64 `json:"balance"`
	}](t, checkout)

	rq.EqualValues(2000, result.SpentTokens)
	rq.EqualValues(500+5500-2000, result.Balance)

	// Cart is gone after checkout.
	empty := env.do(t, http.MethodGet, "/api/cart", nil, cartCookie)
	got := decode[struct {
		TotalTokens int64 `json:"totalTokens"`
	}](t, empty)
	rq.Zero(got.TotalTokens)

	// The account view reflects the debit.
	me = env.do(t, http.MethodGet, "/api/me", nil, session)
	rq.Equal(http.StatusOK, me.Code)

	user = decode[struct {
		ID      string `json:"id"`
		Balance int64  `json:"balance"`
	}](t, me)
	rq.Equal(result.Balance, user.Balance)
}

func TestCheckoutEmptyCartRejected(t *testing.T) {
	rq := require.New(t)
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/auth/register", map[string]any{
		"email":    "trader@example.com",
		"password": "hunter2hunter2",
	})
	session := findCookie(rec, "avenqor_session")
	rq.NotNil(session)

	checkout := env.do(t, http.MethodPost, "/api/cart/checkout", nil, session)
	rq.Equal(http.StatusUnprocessableEntity, checkout.Code)
}

func TestSubmitCustomCourseInsufficientBalance(t *testing.T) {
	rq := require.New(t)
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/auth/register", map[string]any{
		"email":    "trader@example.com",
		"password": "hunter2hunter2",
	})
	session := findCookie(rec, "avenqor_session")
	rq.NotNil(session)

	// Welcome credit is 500, base custom-course price is 1000.
	submit := env.do(t, http.MethodPost, "/api/custom-course", map[string]any{
		"selection": map[string]any{},
	}, session)

	rq.Equal(http.StatusUnprocessableEntity, submit.Code)

	body := decode[struct {
		Code string `json:"code"`
	}](t, submit)
	rq.Equal("InsufficientTokenBalance", body.Code)
}

func TestSubmitAIStrategyAfterTopUp(t *testing.T) {
	rq := require.New(t)
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/auth/register", map[string]any{
		"email":    "trader@example.com",
		"password": "hunter2hunter2",
	})
	session := findCookie(rec, "avenqor_session")
	rq.NotNil(session)

	topup := env.do(t, http.MethodPost, "/api/wallet/topup", map[string]any{"packId": "starter"}, session)
	rq.Equal(http.StatusOK, topup.Code)

	submit := env.do(t, http.MethodPost, "/api/ai-strategy", map[string]any{
		"selection": map[string]any{"experience": "advanced", "timeCommitment": "intensive"},
	}, session)
	rq.Equal(http.StatusCreated, submit.Code)

	got := decode[struct {
		Kind   string `json:"kind"`
		Status string `json:"status"`
		Tokens int64  `json:"tokens"`
	}](t, submit)

	rq.Equal("ai_strategy", got.Kind)
	rq.Equal("pending", got.Status)
	rq.Positive(got.Tokens)

	list := env.do(t, http.MethodGet, "/api/requests", nil, session)
	rq.Equal(http.StatusOK, list.Code)

	requests := decode[[]struct {
		Kind string `json:"kind"`
	}](t, list)
	rq.Len(requests, 1)
}

func TestPreferencesPersistLocaleForSignedInUser(t *testing.T) {
	rq := require.New(t)
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/auth/register", map[string]any{
		"email":    "trader@example.com",
		"password": "hunter2hunter2",
	})
	rq.Equal(http.StatusCreated, rec.Code)

	session := findCookie(rec, "avenqor_session")
	rq.NotNil(session)

	rec = env.do(t, http.MethodPut, "/api/preferences", map[string]any{"locale": "ar"}, session)
	rq.Equal(http.StatusOK, rec.Code)

	me := env.do(t, http.MethodGet, "/api/me", nil, session)
	rq.Equal(http.StatusOK, me.Code)

	user := decode[struct {
		Locale string `json:"locale"`
	}](t, me)
	rq.Equal("ar", user.Locale)
}

func TestI18nFallsBackToDefaultLocale(t *testing.T) {
	rq := require.New(t)
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/i18n/ar", nil)
	rq.Equal(http.StatusOK, rec.Code)

	bundle := decode[struct {
		Locale string `json:"locale"`
	}](t, rec)
	rq.Equal("ar", bundle.Locale)

	rec = env.do(t, http.MethodGet, "/api/i18n/fr", nil)
	rq.Equal(http.StatusOK, rec.Code)

	bundle = decode[struct {
		Locale string `json:"locale"`
	}](t, rec)
	rq.Equal("en", bundle.Locale)
}

func TestPreferencesRejectUnknownCurrency(t *testing.T) {
	rq := require.New(t)
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPut, "/api/preferences", map[string]any{"currency": "JPY"})
	rq.Equal(http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPut, "/api/preferences", map[string]any{"locale": "ar", "currency": "AED"})
	rq.Equal(http.StatusOK, rec.Code)

	locale := findCookie(rec, "user_locale")
	rq.NotNil(locale)
	rq.Equal("ar", locale.Value)

	currency := findCookie(rec, "avenqor_currency")
	rq.NotNil(currency)
	rq.Equal("AED", currency.Value)
}
