package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"
	"github.com/lmittmann/tint"
	"golang.org/x/sync/errgroup"

	"avenqor/internal/config"
	"avenqor/internal/domain/pricing"
	"avenqor/internal/domain/service/auth"
	"avenqor/internal/domain/service/cart"
	"avenqor/internal/domain/service/catalog"
	"avenqor/internal/domain/service/request"
	"avenqor/internal/domain/service/wallet"
	"avenqor/internal/i18n"
	"avenqor/internal/infrastructure/cartstore"
	"avenqor/internal/infrastructure/mailer"
	"avenqor/internal/infrastructure/notifier"
	"avenqor/internal/infrastructure/persistence"
	"avenqor/internal/infrastructure/sessionstore"
	"avenqor/internal/server"
	"avenqor/internal/worker"
	"avenqor/pkg/application/connectors"
	"avenqor/pkg/application/modules"
	"avenqor/pkg/contextx"
	"avenqor/pkg/logx"
	"avenqor/pkg/metrics"
	"avenqor/pkg/middlewarex"
)

const logFieldMaxLen = 4096

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config.Load", logx.Error(err))
		os.Exit(1)
	}

	log := slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(log)

	ctx = contextx.WithLogger(ctx, log)

	if err := run(ctx, cfg); err != nil {
		log.Error("application failed", logx.Error(err))
		os.Exit(1)
	}

	log.Info("application stopped")
}

func run(ctx context.Context, cfg config.Config) error { //nolint:funlen
	pricingCfg, err := pricing.Load(cfg.Pricing.ConfigPath)
	if err != nil {
		return fmt.Errorf("pricing.Load: %w", err)
	}

	translations, err := i18n.LoadCatalog(cfg.App.I18nDir)
	if err != nil {
		return fmt.Errorf("i18n.LoadCatalog: %w", err)
	}

	pg := &connectors.Postgres{
		DSN:             cfg.Postgres.DSN,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
	}
	db := pg.Client(ctx)
	defer pg.Close(ctx)

	rds := &connectors.Redis{
		Address:        cfg.Redis.Address,
		Username:       cfg.Redis.Username,
		Password:       cfg.Redis.Password,
		DatabaseNumber: cfg.Redis.DB,
	}
	redisClient := rds.Client(ctx)
	defer rds.Close(ctx)

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Address,
		Username: cfg.Redis.Username,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer asynqClient.Close()

	// Repositories and stores.
	catalogRepo := persistence.NewCatalogRepository(db)
	userRepo := persistence.NewUserRepository(db)
	walletRepo := persistence.NewWalletRepository(db)
	requestRepo := persistence.NewRequestRepository(db)
	carts := cartstore.NewRedisStore(redisClient, cfg.Redis.CartTTL)
	sessions := sessionstore.NewRedisStore(redisClient)

	// External providers.
	bot, err := notifier.NewTelegramBot(cfg.Bot.Token, cfg.Bot.ChatID)
	if err != nil {
		return fmt.Errorf("notifier.NewTelegramBot: %w", err)
	}

	masker := logx.NewSensitiveDataMasker()
	mail := mailer.NewClient(mailer.Config{
		BaseURL:      cfg.Mail.BaseURL,
		APIToken:     cfg.Mail.APIToken,
		FromName:     cfg.Mail.FromName,
		FromEmail:    cfg.Mail.FromEmail,
		ResetURLBase: cfg.Mail.ResetURLBase,
	}, masker)

	enqueuer := worker.NewEnqueuer(asynqClient)

	// Domain services.
	quoter := pricing.NewQuoter(pricingCfg)
	catalogSvc := catalog.NewService(catalogRepo)
	walletSvc := wallet.NewService(walletRepo, catalogSvc)
	cartSvc := cart.NewService(carts, catalogSvc, walletSvc, quoter)
	requestSvc := request.NewService(requestRepo, walletSvc, enqueuer, pricingCfg)
	authSvc := auth.NewService(userRepo, sessions, enqueuer, walletSvc, auth.Config{
		SessionTTL:    cfg.Session.TTL,
		ResetTokenTTL: cfg.Session.ResetTokenTTL,
	})

	srv := server.NewServer(
		server.NewCatalogServer(catalogSvc, quoter),
		server.NewCartServer(cartSvc),
		server.NewRequestServer(requestSvc),
		server.NewAuthServer(authSvc, cfg.Session.TTL),
		server.NewWalletServer(walletSvc),
		server.NewPreferencesServer(translations, quoter.Supported(), authSvc),
	)

	httpMetrics := metrics.NewHTTPMetrics("avenqor")

	router := chi.NewRouter()
	router.Use(
		middlewarex.TraceID,
		middlewarex.Logger,
		middlewarex.Recovery,
		httpMetrics.Middleware,
		middlewarex.RequestLogging(masker, logFieldMaxLen),
		middlewarex.ResponseLogging(masker, logFieldMaxLen),
	)
	srv.RegisterRoutes(router)

	g, ctx := errgroup.WithContext(ctx)

	modules.HTTPServer{
		ShutdownTimeout: cfg.HTTP.ShutdownTimeout,
	}.Run(ctx, g, &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           router,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	})

	modules.ProbeServer{
		Name:          cfg.App.Name,
		Version:       cfg.App.Version,
		ListenAddress: cfg.HTTP.ProbeAddress,
	}.Run(ctx, g)

	modules.MetricServer{
		ListenAddress: cfg.HTTP.MetricAddress,
	}.Run(ctx, g)

	handlers := worker.NewHandlers(requestRepo, bot, mail)
	modules.AsynqServer{
		RedisAddress:  cfg.Redis.Address,
		RedisUsername: cfg.Redis.Username,
		RedisPassword: cfg.Redis.Password,
		RedisDB:       cfg.Redis.DB,
	}.Run(ctx, g, worker.Queues(), handlers.All()...)

	if err := g.Wait(); err != nil {
		return fmt.Errorf("g.Wait: %w", err)
	}

	return nil
}
