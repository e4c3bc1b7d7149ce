// Package web hosts the localized marketing site and dashboard.
package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/frontpage/internal/platform/apiclient"
	"github.com/louisbranch/frontpage/internal/platform/i18n"
	"github.com/louisbranch/frontpage/internal/platform/markdown"
	"github.com/louisbranch/frontpage/internal/platform/timeouts"
	"github.com/louisbranch/frontpage/internal/services/web/apihooks"
	"github.com/louisbranch/frontpage/internal/services/web/composition"
	"github.com/louisbranch/frontpage/internal/services/web/modules"
	"github.com/louisbranch/frontpage/internal/services/web/platform/httpx"
	"github.com/louisbranch/frontpage/internal/services/web/platform/observability"
	"github.com/louisbranch/frontpage/internal/services/web/platform/pagerender"
	"github.com/louisbranch/frontpage/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/frontpage/internal/services/web/platform/toast"
	"github.com/louisbranch/frontpage/internal/services/web/routepath"
	webstatic "github.com/louisbranch/frontpage/internal/services/web/static"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Config defines startup inputs for the web service.
type Config struct {
	HTTPAddr            string
	Locales             i18n.LocaleConfig
	RequestSchemePolicy requestmeta.SchemePolicy
	// API is the backend client. Nil serves fallback content only.
	API *apiclient.Client
	// Queries is the process-wide query cache. Nil gets an in-memory one.
	Queries  *apiclient.QueryClient
	Markdown markdown.Renderer
	Logger   *slog.Logger
}

// Server hosts the web HTTP surface and lifecycle.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	logger     *slog.Logger
}

// NewHandler builds the root handler from the default module registry.
func NewHandler(cfg Config) (http.Handler, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	locales := cfg.Locales.Normalize()
	if err := locales.Validate(); err != nil {
		return nil, fmt.Errorf("locale config: %w", err)
	}
	md := cfg.Markdown
	if md == nil {
		md = markdown.New()
	}
	deps := modules.Dependencies{
		Locales: locales,
		Renderer: pagerender.Renderer{
			Locales: locales,
			Policy:  cfg.RequestSchemePolicy,
			Now:     time.Now,
		},
		Hooks:    apihooks.New(cfg.Queries, apihooks.WithLogger(logger)),
		API:      cfg.API,
		Markdown: md,
		Logger:   logger,
	}
	h, err := composition.ComposeAppHandler(composition.ComposeInput{
		Dependencies:        deps,
		RequestSchemePolicy: cfg.RequestSchemePolicy,
	})
	if err != nil {
		return nil, err
	}

	rootMux := http.NewServeMux()
	rootMux.Handle(routepath.StaticPrefix, http.StripPrefix(routepath.StaticPrefix, http.FileServer(http.FS(webstatic.FS))))
	rootMux.HandleFunc(http.MethodGet+" "+routepath.Health, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	rootMux.Handle(routepath.Root, h)

	handler := httpx.Chain(rootMux,
		httpx.RecoverPanic(logger),
		httpx.RequestID(),
		observability.RequestLogger(logger),
		toast.Middleware(),
	)
	return otelhttp.NewHandler(handler, "frontpage.http"), nil
}

// NewServer validates config and constructs a web server.
func NewServer(cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	handler, err := NewHandler(cfg)
	if err != nil {
		return nil, fmt.Errorf("compose web handler: %w", err)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		httpAddr: httpAddr,
		logger:   logger,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
			ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
		},
	}, nil
}

// ListenAndServe serves HTTP traffic until context cancellation or server stop.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	s.logger.Info("web listening", "addr", s.httpAddr)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// Close closes open server resources.
func (s *Server) Close() {
	if s == nil || s.httpServer == nil {
		return
	}
	_ = s.httpServer.Close()
}
