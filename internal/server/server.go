// Package server provides the VettEdge web dashboard and its JSON API.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/vettedge/internal/activity"
	"github.com/jonathan/vettedge/internal/config"
	"github.com/jonathan/vettedge/internal/dashboard"
	"github.com/jonathan/vettedge/internal/provider"
	"github.com/jonathan/vettedge/internal/server/middleware"
	"github.com/jonathan/vettedge/internal/server/ratelimit"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	handler     http.Handler
	provider    provider.Provider
	activities  activity.Store
	dashboard   *dashboard.Service
	jwtService  *JWTService
	password    *config.PasswordConfig
	auth        config.AuthConfig
	language    language.Tag
	rateLimiter *ratelimit.Limiter
	pages       map[string]*template.Template
	validate    *validator.Validate
	log         zerolog.Logger
	now         func() time.Time
}

// Config holds server configuration
type Config struct {
	Port       int
	Provider   provider.Provider
	Activities activity.Store // defaults to an empty in-memory feed
	JWT        *config.JWTConfig
	Password   *config.PasswordConfig // defaults to bcrypt cost 12 without pepper
	Auth       config.AuthConfig
	Language   language.Tag
	RateLimit  *ratelimit.Config // nil loads RATE_LIMIT_* from the environment
	Logger     zerolog.Logger
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.Provider == nil {
		return nil, fmt.Errorf("server requires a candidate provider")
	}
	if cfg.JWT == nil {
		return nil, fmt.Errorf("server requires a JWT config")
	}

	pages, err := parsePages()
	if err != nil {
		return nil, err
	}

	s := &Server{
		provider:   cfg.Provider,
		activities: cfg.Activities,
		jwtService: NewJWTService(cfg.JWT),
		password:   cfg.Password,
		auth:       cfg.Auth,
		language:   cfg.Language,
		pages:      pages,
		validate:   validator.New(),
		log:        cfg.Logger,
		now:        time.Now,
	}
	if s.activities == nil {
		s.activities = activity.NewFeed()
	}
	if s.password == nil {
		s.password = &config.PasswordConfig{BcryptCost: 12}
	}
	if s.language == language.Und {
		s.language = language.English
	}
	s.dashboard = dashboard.NewService(s.provider, s.activities)

	rl := cfg.RateLimit
	if rl == nil {
		rl = ratelimit.LoadConfig()
	}
	s.rateLimiter = ratelimit.NewLimiter(rl)

	tokens := s.jwtService.AsTokenValidator()
	requirePage := middleware.AuthMiddleware(tokens, config.SessionCookie, s.redirectToLogin)
	requireAPI := middleware.AuthMiddleware(tokens, config.SessionCookie, s.apiUnauthorized)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /login", s.handleLoginPage)
	mux.HandleFunc("POST /login", s.handleLogin)
	mux.HandleFunc("POST /logout", s.handleLogout)
	mux.HandleFunc("GET /upload/sample.csv", s.handleSampleCSV)

	pagesMux := http.NewServeMux()
	pagesMux.HandleFunc("GET /{$}", s.handleIndex)
	pagesMux.HandleFunc("GET /dashboard", s.handleDashboard)
	pagesMux.HandleFunc("GET /upload", s.handleUploadPage)
	pagesMux.HandleFunc("POST /upload", s.handleUpload)
	pagesMux.HandleFunc("GET /analysis", s.handleAnalysis)
	pagesMux.HandleFunc("GET /analysis/export.xlsx", s.handleExport)
	mux.Handle("/", requirePage(pagesMux))

	mux.Handle("GET /api/roles", requireAPI(http.HandlerFunc(s.handleListRoles)))
	mux.Handle("GET /api/roles/{id}/candidates", requireAPI(http.HandlerFunc(s.handleListRoleCandidates)))
	mux.Handle("GET /api/candidates/{id}", requireAPI(http.HandlerFunc(s.handleGetCandidate)))

	s.handler = s.withRateLimit(s.withLogging(s.withCORS(mux)))
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start serves until SIGINT or SIGTERM, then shuts down gracefully.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.httpServer.Addr).Msg("server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-stop:
	case err := <-errCh:
		s.rateLimiter.Stop()
		return fmt.Errorf("server error: %w", err)
	}
	s.log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.Close()
	s.log.Info().Msg("server stopped")
	return nil
}

// Close releases background resources.
func (s *Server) Close() {
	s.rateLimiter.Stop()
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withLogging logs each request with its status and duration.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		logger := s.log.With().Str("method", r.Method).Str("path", r.URL.Path).Logger()

		next.ServeHTTP(rec, r.WithContext(logger.WithContext(r.Context())))

		logger.Info().
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Str("remote", r.RemoteAddr).
			Msg("request")
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("failed to encode JSON response")
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID uses the remote IP; forwarded headers are not trusted.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Seconds())
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}

	s.log.Warn().Int("limit", info.Limit).Time("reset_at", info.ResetTime).Msg("rate limit exceeded")
	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
