package server_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"avenqor/pkg/rest"
	"avenqor/pkg/tests"
)

// Drives the API over a real HTTP listener with the shared test client, the
// way the deployed frontend does: cookies carried by a jar, wire types from
// pkg/rest.
func TestAPIClientTopUpAndSubmitFlow(t *testing.T) {
	rq := require.New(t)
	env := newTestEnv(t)

	srv := httptest.NewServer(env.router)
	defer srv.Close()

	jar, err := cookiejar.New(nil)
	rq.NoError(err)

	client := tests.NewAPIClient(srv.URL, &http.Client{Jar: jar})
	random := tests.NewRandomizer()

	ctx := context.Background()
	email := fmt.Sprintf("trader%d@example.com", random.IntN(1_000_000))

	var session rest.SessionResponse
	var apiErr rest.Error

	resp, err := client.Post(ctx, "/api/auth/register", http.Header{}, rest.RegisterRequest{
		Email:    email,
		Password: "hunter2hunter2",
	}, &session, &apiErr)
	rq.NoError(err)
	rq.Equal(http.StatusCreated, resp.StatusCode)
	rq.Equal(email, session.User.Email)
	rq.EqualValues(500, session.User.Balance)

	var quote rest.QuoteResponse

	resp, err = client.Post(ctx, "/api/ai-strategy/quote", http.Header{}, rest.AIStrategyRequest{
		Selection: rest.StrategySelection{Experience: "advanced"},
	}, &quote, &apiErr)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.EqualValues(880, quote.Tokens)

	var walletState rest.Wallet

	resp, err = client.Post(ctx, "/api/wallet/topup", http.Header{},
		rest.TopUpRequest{PackID: "starter"}, &walletState, &apiErr)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.EqualValues(500+5500, walletState.Balance)

	var submitted rest.SubmittedRequest

	resp, err = client.Post(ctx, "/api/ai-strategy", http.Header{}, rest.AIStrategyRequest{
		Selection: rest.StrategySelection{Experience: "advanced"},
	}, &submitted, &apiErr)
	rq.NoError(err)
	rq.Equal(http.StatusCreated, resp.StatusCode)
	rq.Equal("ai_strategy", submitted.Kind)
	rq.EqualValues(quote.Tokens, submitted.Tokens)
	rq.EqualValues(6000-quote.Tokens, submitted.Balance)

	var walletAfter rest.Wallet

	resp, err = client.Get(ctx, "/api/wallet", http.Header{}, &walletAfter, &apiErr)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.EqualValues(6000-quote.Tokens, walletAfter.Balance)
}
