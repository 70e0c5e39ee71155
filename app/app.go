package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/lmittmann/tint"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bookrackshop/bookrack/internal/cache"
	"github.com/bookrackshop/bookrack/internal/catalog"
	"github.com/bookrackshop/bookrack/internal/config"
	"github.com/bookrackshop/bookrack/internal/db"
	"github.com/bookrackshop/bookrack/internal/handlers"
	"github.com/bookrackshop/bookrack/internal/logging"
	"github.com/bookrackshop/bookrack/internal/session"
	"github.com/bookrackshop/bookrack/internal/stripe"
)

type App struct {
	Config         *config.Config
	Logger         *slog.Logger
	DB             *pgxpool.Pool
	CacheProvider  cache.Provider
	SessionManager *session.Manager
	Handlers       *handlers.Handlers

	logFile   *os.File
	useSentry bool
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger, logFile, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}

	useSentry := strings.TrimSpace(cfg.SentryDSN) != ""
	if useSentry {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.1,
		}); err != nil {
			closeLogFile(logger, logFile)
			return nil, fmt.Errorf("failed to initialize sentry: %w", err)
		}
	}

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	database, err := db.Connect(startupCtx, cfg.DatabaseURL)
	if err != nil {
		closeLogFile(logger, logFile)
		return nil, err
	}

	cacheProvider, err := cache.NewProvider(cache.Config{
		Provider:      cfg.CacheProvider,
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		RedisDB:       cfg.RedisDB,
	})
	if err != nil {
		database.Close()
		closeLogFile(logger, logFile)
		return nil, fmt.Errorf("failed to initialize cache provider: %w", err)
	}

	sessionStore, err := session.NewStore(startupCtx, session.Config{
		Provider:      cfg.SessionStoreProvider,
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		RedisDB:       cfg.RedisDB,
	})
	if err != nil {
		closeCacheProvider(logger, cacheProvider)
		database.Close()
		closeLogFile(logger, logFile)
		return nil, fmt.Errorf("failed to initialize session store: %w", err)
	}
	sessionManager := session.NewManager(sessionStore, handlers.SecureCookiesFromConfig(cfg))

	teardown := func() {
		closeSessionManager(logger, sessionManager)
		closeCacheProvider(logger, cacheProvider)
		database.Close()
		closeLogFile(logger, logFile)
	}

	bookStore, err := db.NewBookStore(database, cfg.CatalogTable)
	if err != nil {
		teardown()
		return nil, fmt.Errorf("failed to initialize book store: %w", err)
	}

	pricer, err := catalog.NewPricer(catalog.PricePolicy{
		BandMin:       cfg.PriceBandMin,
		BandMax:       cfg.PriceBandMax,
		SummaryCap:    cfg.PriceSummaryCap,
		ContentSpread: cfg.PriceContentSpread,
	})
	if err != nil {
		teardown()
		return nil, fmt.Errorf("failed to initialize pricer: %w", err)
	}

	resolver, err := catalog.NewResolver(bookStore, cfg.CatalogLanguage)
	if err != nil {
		teardown()
		return nil, fmt.Errorf("failed to initialize resolver: %w", err)
	}

	var checkout *stripe.Client
	if strings.TrimSpace(cfg.StripeSecretKey) != "" {
		checkout = stripe.NewClient(cfg.StripeSecretKey)
	} else {
		logger.Info("no stripe secret key configured, checkout is disabled")
	}

	h, err := handlers.New(handlers.Dependencies{
		Config:         cfg,
		DB:             database,
		BookStore:      bookStore,
		CacheProvider:  cacheProvider,
		Resolver:       resolver,
		Pricer:         pricer,
		PriceFormatter: catalog.NewPriceFormatter(cfg.PriceLocale, cfg.PriceSymbol),
		SessionManager: sessionManager,
		Checkout:       checkout,
		Logger:         logger,
	})
	if err != nil {
		teardown()
		return nil, fmt.Errorf("failed to initialize handlers: %w", err)
	}

	return &App{
		Config:         cfg,
		Logger:         logger,
		DB:             database,
		CacheProvider:  cacheProvider,
		SessionManager: sessionManager,
		Handlers:       h,
		logFile:        logFile,
		useSentry:      useSentry,
	}, nil
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.SessionManager != nil {
		closeSessionManager(a.Logger, a.SessionManager)
	}
	if a.CacheProvider != nil {
		closeCacheProvider(a.Logger, a.CacheProvider)
	}
	if a.DB != nil {
		a.DB.Close()
	}
	if a.useSentry {
		sentry.Flush(2 * time.Second)
	}
	closeLogFile(a.Logger, a.logFile)
}

// newLogger builds the process logger. With LOG_FILE set, records go to the
// console handler and as JSON lines to the file.
func newLogger(cfg *config.Config) (*slog.Logger, *os.File, error) {
	console := consoleHandler(cfg)

	logPath := strings.TrimSpace(cfg.LogFile)
	if logPath == "" {
		return slog.New(console), nil, nil
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file %s: %w", logPath, err)
	}

	fileHandler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: cfg.LogLevel})
	return slog.New(logging.Fanout(console, fileHandler)), file, nil
}

func consoleHandler(cfg *config.Config) slog.Handler {
	format := strings.ToLower(strings.TrimSpace(cfg.LogFormat))
	if format == "json" {
		return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})
	}
	return tint.NewHandler(os.Stdout, &tint.Options{Level: cfg.LogLevel})
}

func closeSessionManager(logger *slog.Logger, manager *session.Manager) {
	if manager == nil {
		return
	}
	if err := manager.Close(); err != nil && logger != nil {
		logger.Warn("failed to close session manager", "error", err)
	}
}

func closeCacheProvider(logger *slog.Logger, provider cache.Provider) {
	if provider == nil {
		return
	}
	if err := provider.Close(); err != nil && logger != nil {
		logger.Warn("failed to close cache provider", "error", err)
	}
}

func closeLogFile(logger *slog.Logger, file *os.File) {
	if file == nil {
		return
	}
	if err := file.Close(); err != nil && logger != nil {
		logger.Warn("failed to close log file", "error", err)
	}
}
