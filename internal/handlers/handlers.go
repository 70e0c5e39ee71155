package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bookrackshop/bookrack/internal/cache"
	"github.com/bookrackshop/bookrack/internal/catalog"
	"github.com/bookrackshop/bookrack/internal/config"
	"github.com/bookrackshop/bookrack/internal/logging"
	"github.com/bookrackshop/bookrack/internal/models"
	"github.com/bookrackshop/bookrack/internal/session"
	"github.com/bookrackshop/bookrack/internal/stripe"
)

// bookLister is the slice of the book store the listing page needs.
type bookLister interface {
	List(ctx context.Context, language string, limit, offset int) ([]models.Book, error)
}

// Handlers provides HTTP request handlers for the Bookrack storefront.
type Handlers struct {
	config         *config.Config
	db             *pgxpool.Pool
	bookStore      bookLister
	cacheProvider  cache.Provider
	resolver       *catalog.Resolver
	pricer         *catalog.Pricer
	priceFormatter *catalog.PriceFormatter
	sessionManager *session.Manager
	checkout       *stripe.Client
	logger         *slog.Logger
}

type Dependencies struct {
	Config         *config.Config
	DB             *pgxpool.Pool
	BookStore      bookLister
	CacheProvider  cache.Provider
	Resolver       *catalog.Resolver
	Pricer         *catalog.Pricer
	PriceFormatter *catalog.PriceFormatter
	SessionManager *session.Manager
	// Checkout may be nil; the cart then renders without a checkout button.
	Checkout *stripe.Client
	Logger   *slog.Logger
}

func New(deps Dependencies) (*Handlers, error) {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if deps.Config == nil {
		return nil, fmt.Errorf("handlers dependencies: config is required")
	}
	if deps.DB == nil {
		return nil, fmt.Errorf("handlers dependencies: db is required")
	}
	if deps.BookStore == nil {
		return nil, fmt.Errorf("handlers dependencies: bookStore is required")
	}
	if deps.CacheProvider == nil {
		return nil, fmt.Errorf("handlers dependencies: cacheProvider is required")
	}
	if deps.Resolver == nil {
		return nil, fmt.Errorf("handlers dependencies: resolver is required")
	}
	if deps.Pricer == nil {
		return nil, fmt.Errorf("handlers dependencies: pricer is required")
	}
	if deps.PriceFormatter == nil {
		return nil, fmt.Errorf("handlers dependencies: priceFormatter is required")
	}
	if deps.SessionManager == nil {
		return nil, fmt.Errorf("handlers dependencies: sessionManager is required")
	}

	return &Handlers{
		config:         deps.Config,
		db:             deps.DB,
		bookStore:      deps.BookStore,
		cacheProvider:  deps.CacheProvider,
		resolver:       deps.Resolver,
		pricer:         deps.Pricer,
		priceFormatter: deps.PriceFormatter,
		sessionManager: deps.SessionManager,
		checkout:       deps.Checkout,
		logger:         logger.With("component", "handlers"),
	}, nil
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.loggerFromContext(ctx)

	// Test database connection
	if err := h.db.Ping(ctx); err != nil {
		logger.Error("database health check failed", "error", err)
		http.Error(w, "Database unhealthy", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{
		"status": "healthy",
	}); err != nil {
		logger.Error("failed to encode health response", "error", err)
	}
}

// SessionMiddleware adds session data to the request context
func (h *Handlers) SessionMiddleware(next http.Handler) http.Handler {
	return h.sessionManager.Middleware(next)
}

func (h *Handlers) loggerFromContext(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx, h.logger)
}

func (h *Handlers) sessionFromRequest(ctx context.Context, r *http.Request) *session.Data {
	if ctx == nil {
		ctx = context.Background()
	}
	if sess := session.FromContext(ctx); sess != nil {
		return sess
	}
	if h == nil || h.sessionManager == nil || r == nil {
		return nil
	}
	sess, err := h.sessionManager.GetSession(ctx, r)
	if err != nil {
		return nil
	}
	return sess
}

func SecureCookiesFromConfig(cfg *config.Config) bool {
	if cfg == nil {
		return false
	}

	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL != "" {
		if parsed, err := url.Parse(baseURL); err == nil {
			return strings.EqualFold(parsed.Scheme, "https")
		}
	}

	return cfg.Port == "443" || cfg.Port == "8443"
}
