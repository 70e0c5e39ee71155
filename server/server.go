package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/bookrackshop/bookrack/internal/config"
	"github.com/bookrackshop/bookrack/internal/handlers"
	uiassets "github.com/bookrackshop/bookrack/ui/assets"
	"github.com/bookrackshop/bookrack/ui/views"
)

type Server struct {
	cfg        *config.Config
	logger     *slog.Logger
	handlers   *handlers.Handlers
	httpServer *http.Server
}

func New(cfg *config.Config, logger *slog.Logger, h *handlers.Handlers) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if h == nil {
		return nil, fmt.Errorf("handlers are required")
	}

	s := &Server{
		cfg:      cfg,
		logger:   logger,
		handlers: h,
	}

	s.httpServer = &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           s.buildRouter(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	return s, nil
}

func (s *Server) Run() error {
	s.logger.Info("server starting", "port", s.cfg.Port)

	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Close(ctx context.Context) error {
	if s == nil || s.httpServer == nil {
		return nil
	}

	s.logger.Info("server shutting down")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) buildRouter() *mux.Router {
	h := s.handlers

	r := mux.NewRouter()
	r.Use(h.RequestLogger)
	r.Use(h.MetricsContext)
	r.Use(h.SecurityHeaders)

	r.HandleFunc("/", h.Catalog).Methods("GET").Name("catalog")
	r.HandleFunc("/health", h.Health).Methods("GET").Name("health")
	r.HandleFunc("/books/{slug}", h.BookDetail).Methods("GET").Name("books.detail")

	// 404 handler - must be last
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		if err := views.NotFoundPage().Render(r.Context(), w); err != nil {
			http.Error(w, "Not Found", http.StatusNotFound)
		}
	})

	// Static assets - must be before the cart router
	r.PathPrefix("/assets/").Handler(http.StripPrefix("/assets/", http.FileServer(http.FS(uiassets.FS)))).Name("assets")

	// Cart routes carry the visitor session and only accept same-origin form posts
	cartRouter := r.PathPrefix("/cart").Subrouter()
	cartRouter.Use(h.SessionMiddleware)
	cartRouter.Use(h.RequireSameOrigin)
	cartRouter.HandleFunc("", h.CartView).Methods("GET").Name("cart")
	cartRouter.HandleFunc("", h.CartAdd).Methods("POST").Name("cart.add")
	cartRouter.HandleFunc("/remove", h.CartRemove).Methods("POST").Name("cart.remove")
	cartRouter.HandleFunc("/checkout", h.Checkout).Methods("POST").Name("cart.checkout")
	cartRouter.HandleFunc("/checkout/complete", h.CheckoutComplete).Methods("GET").Name("cart.checkout.complete")

	return r
}
