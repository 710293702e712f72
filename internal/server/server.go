package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/retshidi-radebe/bzfitness/internal/config"
	"github.com/retshidi-radebe/bzfitness/internal/handler"
	"github.com/retshidi-radebe/bzfitness/internal/openapi"
	"github.com/retshidi-radebe/bzfitness/internal/server/middleware"
	"github.com/retshidi-radebe/bzfitness/internal/service"
	"github.com/retshidi-radebe/bzfitness/internal/store"
	"github.com/retshidi-radebe/bzfitness/internal/ui"
)

// Config holds the HTTP server configuration.
type Config struct {
	Host            string
	Port            int
	ShutdownTimeout time.Duration
	CORSOrigins     []string
	TLSCertFile     string
	TLSKeyFile      string
	SecureCookies   bool
	Version         string
}

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() Config {
	return Config{
		Host:            "0.0.0.0",
		Port:            3000,
		ShutdownTimeout: 10 * time.Second,
		Version:         "dev",
	}
}

// ConfigFrom builds a Config from resolved settings.
func ConfigFrom(s config.Settings, version string) Config {
	return Config{
		Host:            s.Server.Host,
		Port:            s.Server.Port,
		ShutdownTimeout: s.Server.ShutdownTimeout,
		CORSOrigins:     s.Server.CORS.Origins,
		TLSCertFile:     s.Server.TLS.CertFile,
		TLSKeyFile:      s.Server.TLS.KeyFile,
		SecureCookies:   s.Auth.SecureCookies,
		Version:         version,
	}
}

// Server is the BZ Fitness HTTP server. It owns the Chi router and the
// handlers for the public site, the admin API and the dashboard pages.
type Server struct {
	cfg        Config
	router     chi.Router
	store      *store.Store
	authSvc    *service.AuthService
	gym        *handler.GymHandler
	httpServer *http.Server
	logger     *slog.Logger
}

// New creates a Server with every route and middleware wired. Call
// ListenAndServe to start accepting connections.
func New(cfg Config, st *store.Store, authSvc *service.AuthService, gym *handler.GymHandler, logger *slog.Logger) (*Server, error) {
	s := &Server{
		cfg:     cfg,
		store:   st,
		authSvc: authSvc,
		gym:     gym,
		logger:  logger,
	}
	if err := s.setupRouter(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Server) setupRouter() error {
	docs, err := handler.NewOpenAPIHandler(s.cfg.Version)
	if err != nil {
		return fmt.Errorf("build openapi document: %w", err)
	}
	authH := handler.NewAuthHandler(s.authSvc, middleware.Cookies{Secure: s.cfg.SecureCookies}, openapi.NewValidator(), s.logger)
	gym := s.gym

	r := chi.NewRouter()

	// --- Global middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	if len(s.cfg.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.cfg.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID", "X-Requested-With"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}
	r.Use(chimw.Compress(5))

	// --- Health checks and API description (no auth required) ---
	r.Get("/healthz", s.handleHealthz)
	r.Get("/readyz", s.handleReadyz)
	r.Get("/openapi.json", docs.ServeSpec)

	// --- Public site API ---
	r.Get("/api/schedule", gym.PublicSchedule)
	r.Get("/api/packages", gym.ListPackages)
	r.With(middleware.RateLimit(middleware.ContactRequestsPerMinute)).Post("/api/contact", gym.SubmitContact)

	// --- Admin API ---
	r.Route("/api/admin", func(r chi.Router) {
		r.With(middleware.RateLimit(middleware.LoginRequestsPerMinute)).Post("/login", authH.Login)
		r.Post("/logout", authH.Logout)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(s.authSvc))
			r.Get("/me", authH.Me)

			// Admin accounts
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireSuperadmin)
				r.Get("/users", authH.ListUsers)
				r.Post("/users", authH.CreateUser)
				r.Delete("/users/{id}", authH.DeleteUser)
			})

			// Members and progress
			r.Get("/members", gym.ListMembers)
			r.Post("/members", gym.CreateMember)
			r.Get("/members/{id}", gym.GetMember)
			r.Put("/members/{id}", gym.UpdateMember)
			r.Delete("/members/{id}", gym.DeleteMember)
			r.Get("/members/{id}/progress", gym.GetProgress)
			r.Put("/members/{id}/goal", gym.SetGoal)
			r.Post("/members/{id}/weight", gym.AddWeight)
			r.Delete("/members/{id}/weight/{entryId}", gym.DeleteWeight)
			r.Post("/members/{id}/records", gym.AddRecord)
			r.Delete("/members/{id}/records/{recordId}", gym.DeleteRecord)

			// Attendance
			r.Get("/attendance", gym.ListAttendance)
			r.Post("/attendance", gym.CreateAttendance)
			r.Delete("/attendance/{id}", gym.DeleteAttendance)

			// Payments
			r.Get("/payments", gym.ListPayments)
			r.Post("/payments", gym.CreatePayment)
			r.Put("/payments/{id}", gym.UpdatePayment)
			r.Delete("/payments/{id}", gym.DeletePayment)

			// Schedule
			r.Get("/schedule", gym.ListSchedule)
			r.Post("/schedule", gym.CreateScheduleEntry)
			r.Put("/schedule/{id}", gym.UpdateScheduleEntry)
			r.Delete("/schedule/{id}", gym.DeleteScheduleEntry)

			// Contact submissions
			r.Get("/contact", gym.ListContacts)
			r.Patch("/contact/{id}", gym.UpdateContactStatus)
			r.Delete("/contact/{id}", gym.DeleteContact)
			r.Post("/contact/{id}/convert", gym.ConvertContact)

			// Statistics
			r.Get("/stats/weekly", gym.WeeklyStats)
			r.Get("/stats/dashboard", gym.DashboardStats)
		})
	})

	// --- Dashboard pages ---
	r.Get(middleware.LoginPath, ui.LoginPage)
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequirePage(s.authSvc))
		r.Get("/admin", ui.AdminShell)
		r.Get("/admin/*", ui.AdminShell)
	})
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/admin", http.StatusFound)
	})

	s.router = r
	return nil
}

// handleHealthz is a liveness probe. Returns 200 if the process is running.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// handleReadyz is a readiness probe. Returns 200 when the database answers
// a ping, 503 otherwise.
func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	httpStatus := http.StatusOK
	checks := map[string]string{"database": "ok"}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if err := s.store.Ping(ctx); err != nil {
		s.logger.Warn("readiness check failed", "error", err)
		checks["database"] = "error: " + err.Error()
		status = "unavailable"
		httpStatus = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status": status,
		"checks": checks,
	})
}

// ListenAndServe starts the HTTP server and blocks until a SIGINT or SIGTERM
// is received. It then drains in-flight requests and waits for pending
// notification emails before returning.
func (s *Server) ListenAndServe() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return s.Run(ctx)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		var err error
		if s.cfg.TLSCertFile != "" && s.cfg.TLSKeyFile != "" {
			s.logger.Info("server starting", "addr", addr, "tls", true)
			err = s.httpServer.ListenAndServeTLS(s.cfg.TLSCertFile, s.cfg.TLSKeyFile)
		} else {
			s.logger.Info("server starting", "addr", addr)
			err = s.httpServer.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server listen: %w", err)
	case <-ctx.Done():
		s.logger.Info("shutdown signal received, draining connections...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	if err := s.gym.Wait(shutdownCtx); err != nil {
		s.logger.Warn("notification emails still pending at shutdown", "error", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// Router returns the underlying Chi router, useful for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// ServeHTTP implements http.Handler, delegating to the router.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
