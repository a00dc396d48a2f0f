// Package devserver serves the storefront bundle during development. Paths
// the route table knows get the index page so deep links and reloads work;
// /api/ can be proxied to the backend to keep cookies same-origin.
package devserver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"
	"path"
	"strings"
	"time"

	"storefront-go/core/router"
)

// Config holds dev server configuration.
type Config struct {
	Addr string
	// Static holds the compiled bundle and wasm_exec.js.
	Static fs.FS
	// Shell holds index.html. Files in Static take precedence.
	Shell fs.FS
	// Routes decide which unknown paths fall back to index.html.
	Routes []router.RouteSpec
	// APIURL is the proxy target for /api/. Empty disables the proxy.
	APIURL string
	Logger *slog.Logger
}

// Server is the development HTTP server.
type Server struct {
	config   *Config
	logger   *slog.Logger
	matchers []*router.PathMatcher
	proxy    http.Handler
	handler  http.Handler
}

// New validates cfg and builds the handler.
func New(cfg *Config) (*Server, error) {
	if cfg.Shell == nil {
		return nil, errors.New("devserver: shell filesystem is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		config: cfg,
		logger: logger.With("component", "devserver"),
	}
	for _, spec := range cfg.Routes {
		m, err := router.Compile(spec.Pattern)
		if err != nil {
			return nil, err
		}
		s.matchers = append(s.matchers, m)
	}

	if cfg.APIURL != "" {
		target, err := url.Parse(cfg.APIURL)
		if err != nil || target.Scheme == "" || target.Host == "" {
			return nil, fmt.Errorf("invalid api url %q", cfg.APIURL)
		}
		proxy := httputil.NewSingleHostReverseProxy(target)
		proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
			s.logger.Warn("api proxy failed", "path", r.URL.Path, "error", err)
			w.WriteHeader(http.StatusBadGateway)
		}
		s.proxy = proxy
	}

	mux := http.NewServeMux()
	if s.proxy != nil {
		mux.Handle("/api/", s.proxy)
	}
	mux.HandleFunc("/", s.serve)
	s.handler = s.logRequests(mux)
	return s, nil
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("dev server listening", "addr", s.config.Addr, "proxy", s.config.APIURL)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down dev server: %w", err)
		}
		return nil
	}
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	name := strings.TrimPrefix(path.Clean(r.URL.Path), "/")
	if name != "" && name != "index.html" {
		for _, fsys := range []fs.FS{s.config.Static, s.config.Shell} {
			if isFile(fsys, name) {
				http.ServeFileFS(w, r, fsys, name)
				return
			}
		}
	}

	if !s.Known(r.URL.Path) {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Cache-Control", "no-cache")
	http.ServeFileFS(w, r, s.config.Shell, "index.html")
}

// Known reports whether a route of the table matches p.
func (s *Server) Known(p string) bool {
	for _, m := range s.matchers {
		if _, ok := m.Match(p); ok {
			return true
		}
	}
	return false
}

func isFile(fsys fs.FS, name string) bool {
	if fsys == nil {
		return false
	}
	info, err := fs.Stat(fsys, name)
	return err == nil && !info.IsDir()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
