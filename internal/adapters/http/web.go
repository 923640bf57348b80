package web

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"frontdesk/internal/adapters/apiclient"
	"frontdesk/internal/adapters/email"
	"frontdesk/internal/adapters/http/middleware"
	"frontdesk/internal/adapters/http/perf"
	"frontdesk/internal/domain/summary"
)

// Backend is the slice of the backend API the front end drives.
// *apiclient.Client satisfies it.
type Backend interface {
	RegisterAdmin(ctx context.Context, creds apiclient.Credentials) (apiclient.Admin, error)
	LoginEmployee(ctx context.Context, creds apiclient.Credentials) (apiclient.LoginResponse, error)
	LoginAdmin(ctx context.Context, creds apiclient.Credentials) (apiclient.LoginResponse, error)
	ListEmployees(ctx context.Context) ([]apiclient.Employee, error)
	CreateEmployee(ctx context.Context, in apiclient.NewEmployee) (apiclient.Employee, error)
	CreateMember(ctx context.Context, in apiclient.NewMember) (apiclient.Member, error)
	ListMembers(ctx context.Context, opts apiclient.ListOptions) ([]apiclient.Member, error)
	CheckIn(ctx context.Context, name string) (apiclient.AttendanceRecord, error)
	CheckOut(ctx context.Context, name string) (apiclient.AttendanceRecord, error)
	ListAttendance(ctx context.Context, opts apiclient.ListOptions) ([]apiclient.AttendanceRecord, error)
	AttendanceSummary(ctx context.Context) (summary.Summary, error)
	CreateReservation(ctx context.Context, in apiclient.NewReservation) (apiclient.Reservation, error)
	ListReservations(ctx context.Context, opts apiclient.ListOptions) ([]apiclient.Reservation, error)
	SyncReservations(ctx context.Context) (apiclient.SyncResult, error)
	CreateSale(ctx context.Context, in apiclient.NewSale) (apiclient.Sale, error)
	ListSales(ctx context.Context, opts apiclient.ListOptions) ([]apiclient.Sale, error)
	SalesTotal(ctx context.Context) (float64, error)
}

// Config is the front-end server configuration.
type Config struct {
	Addr         string
	APIBaseURL   string
	APITimeout   time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Env          string
	CSRFKeyHex   string
	ResendKey    string
	EmailFrom    string
}

// Production reports whether the server runs with production settings.
func (c Config) Production() bool {
	return c.Env == "production"
}

// DefaultConfigFromEnv reads FRONTDESK_* variables.
func DefaultConfigFromEnv() Config {
	return Config{
		Addr:         envOrDefault("FRONTDESK_ADDR", ":8080"),
		APIBaseURL:   envOrDefault("FRONTDESK_API_BASE_URL", "http://localhost:8000"),
		APITimeout:   time.Duration(envIntOrDefault("FRONTDESK_API_TIMEOUT_MS", 8000)) * time.Millisecond,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		Env:          envOrDefault("FRONTDESK_ENV", "development"),
		CSRFKeyHex:   os.Getenv("FRONTDESK_CSRF_KEY"),
		ResendKey:    os.Getenv("FRONTDESK_RESEND_KEY"),
		EmailFrom:    envOrDefault("FRONTDESK_EMAIL_FROM", "Front Desk <noreply@example.com>"),
	}
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envIntOrDefault(key string, fallback int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil && n > 0 {
		return n
	}
	return fallback
}

// loadCSRFKey decodes the CSRF secret (hex-encoded, 32 bytes).
// In production the key MUST be set. In development a random key is generated per startup.
func loadCSRFKey(cfg Config) ([]byte, error) {
	if cfg.CSRFKeyHex != "" {
		key, err := hex.DecodeString(cfg.CSRFKeyHex)
		if err != nil || len(key) != 32 {
			return nil, errors.New("FRONTDESK_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key, nil
	}
	if cfg.Production() {
		return nil, errors.New("FRONTDESK_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate CSRF key: %w", err)
	}
	log.Println("WARNING: using random CSRF key (forms won't survive restart). Set FRONTDESK_CSRF_KEY for production.")
	return key, nil
}

// maxFormBytes bounds every request body other than the member import upload.
const maxFormBytes = 1 << 20

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 20

// Deps holds the server's collaborators.
type Deps struct {
	Backend   Backend
	Sender    email.Sender
	EmailFrom string
	Collector *perf.Collector
	Now       func() time.Time
}

// NewHandler wires the routes and the middleware stack.
func NewHandler(deps Deps, csrfKey []byte, trustedOrigins []string) http.Handler {
	s := newServer(deps)
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Applied outermost first: SecurityHeaders -> RateLimit -> MaxBodyBytes -> CSRF -> Tabs -> Timing -> mux
	return middleware.Chain(s.routes(),
		middleware.Timing(deps.Collector),
		middleware.Tabs(s.tabs),
		middleware.CSRF(csrfKey, trustedOrigins),
		middleware.MaxBodyBytes(maxFormBytes, map[string]int64{"/members/import": maxUploadBytes}),
		middleware.RateLimit(limiter),
		middleware.SecurityHeaders,
	)
}

// Run serves the front end until ctx is cancelled.
func Run(ctx context.Context, cfg Config) error {
	csrfKey, err := loadCSRFKey(cfg)
	if err != nil {
		return err
	}
	middleware.SecureCookies = cfg.Production()

	collector := perf.NewCollector(perf.DefaultRingSize)
	backend := apiclient.New(cfg.APIBaseURL, &http.Client{Timeout: cfg.APITimeout}, collector)

	var sender email.Sender
	if cfg.ResendKey != "" {
		sender = email.NewResendSender(cfg.ResendKey, cfg.EmailFrom)
		log.Println("Email sender configured (Resend)")
	} else {
		sender = email.NewNoopSender()
		log.Println("Email sender configured (noop, set FRONTDESK_RESEND_KEY for real delivery)")
	}

	handler := NewHandler(Deps{
		Backend:   backend,
		Sender:    sender,
		EmailFrom: cfg.EmailFrom,
		Collector: collector,
		Now:       time.Now,
	}, csrfKey, nil)

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("frontdesk listening on %s (backend %s, env=%s)", cfg.Addr, backend.BaseURL(), cfg.Env)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
