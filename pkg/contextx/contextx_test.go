package contextx_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"avenqor/pkg/contextx"
)

func TestLogger(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	logger, err := contextx.LoggerFromContext(ctx)
	rq.Nil(logger)
	rq.ErrorIs(err, contextx.ErrNoValue)
	rq.ErrorContains(err, "logger: no value in context")

	testLogger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	ctx = contextx.WithLogger(ctx, testLogger)

	logger, err = contextx.LoggerFromContext(ctx)
	rq.NoError(err)
	rq.Equal(testLogger, logger)

	rq.Equal(testLogger, contextx.LoggerFromContextOrDefault(ctx))
	rq.Equal(slog.Default(), contextx.LoggerFromContextOrDefault(context.Background()))
}

func TestTraceID(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	_, err := contextx.TraceIDFromContext(ctx)
	rq.ErrorIs(err, contextx.ErrNoValue)

	ctx = contextx.WithTraceID(ctx, contextx.TraceID("trace-1"))

	traceID, err := contextx.TraceIDFromContext(ctx)
	rq.NoError(err)
	rq.Equal("trace-1", traceID.String())
}

func TestUserID(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	_, err := contextx.UserIDFromContext(ctx)
	rq.ErrorIs(err, contextx.ErrNoValue)

	ctx = contextx.WithUserID(ctx, contextx.UserID("user-1"))

	userID, err := contextx.UserIDFromContext(ctx)
	rq.NoError(err)
	rq.Equal("user-1", userID.String())
}

func TestCartID(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	_, err := contextx.CartIDFromContext(ctx)
	rq.ErrorIs(err, contextx.ErrNoValue)

	ctx = contextx.WithCartID(ctx, contextx.CartID("cart-1"))

	cartID, err := contextx.CartIDFromContext(ctx)
	rq.NoError(err)
	rq.Equal("cart-1", cartID.String())
}
