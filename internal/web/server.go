package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/five82/marquee/internal/state"
)

// ShutdownTimeout bounds how long in-flight requests may finish after the
// context is cancelled.
const ShutdownTimeout = 5 * time.Second

// Options configures the web server.
type Options struct {
	Addr   string
	Store  *state.Store
	Logger *zap.Logger
}

// Handler serves the browser page and the JSON endpoint from store snapshots.
type Handler struct {
	store  *state.Store
	logger *zap.Logger
}

// NewHandler builds the router.
func NewHandler(store *state.Store, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if store == nil {
		store = &state.Store{}
	}
	h := &Handler{store: store, logger: logger.Named("web")}

	r := chi.NewRouter()
	r.Use(requestLogger(h.logger))
	r.Use(recoverer(h.logger))

	r.Get("/", h.page)
	r.Get("/grid", h.grid)
	r.Get("/api/movies", h.movies)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	return r
}

// Serve listens on opts.Addr until ctx is cancelled, then shuts down
// gracefully.
func Serve(ctx context.Context, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	ln, err := net.Listen("tcp", opts.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", opts.Addr, err)
	}

	srv := &http.Server{
		Handler:           NewHandler(opts.Store, logger),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	logger.Info("web server listening", zap.String("addr", ln.Addr().String()))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("web server shutdown incomplete", zap.Error(err))
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("web server stopped")
	return nil
}
