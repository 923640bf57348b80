// Package api is the reference backend: the JSON contract the front end
// calls, served from SQLite.
package api

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/cors"
	_ "modernc.org/sqlite"

	"frontdesk/internal/adapters/http/middleware"
	"frontdesk/internal/adapters/http/perf"
	"frontdesk/internal/adapters/storage"
	attendanceStore "frontdesk/internal/adapters/storage/attendance"
	employeeStore "frontdesk/internal/adapters/storage/employee"
	memberStore "frontdesk/internal/adapters/storage/member"
	reservationStore "frontdesk/internal/adapters/storage/reservation"
	saleStore "frontdesk/internal/adapters/storage/sale"
	"frontdesk/internal/application/orchestrators"
)

// Config is the backend configuration.
type Config struct {
	Addr           string
	DBPath         string
	Env            string
	AllowedOrigins []string
}

// Production reports whether the backend runs with production settings.
func (c Config) Production() bool {
	return c.Env == "production"
}

// DefaultConfigFromEnv reads FRONTDESK_* variables.
func DefaultConfigFromEnv() Config {
	return Config{
		Addr:           envOrDefault("FRONTDESK_BACKEND_ADDR", ":8000"),
		DBPath:         envOrDefault("FRONTDESK_DB_PATH", "frontdesk.db"),
		Env:            envOrDefault("FRONTDESK_ENV", "development"),
		AllowedOrigins: splitList(envOrDefault("FRONTDESK_CORS_ORIGINS", "*")),
	}
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Stores holds the backend's persistence.
type Stores struct {
	Employees    *employeeStore.SQLiteStore
	Admins       *employeeStore.AdminSQLiteStore
	Members      *memberStore.SQLiteStore
	Attendance   *attendanceStore.SQLiteStore
	Reservations *reservationStore.SQLiteStore
	Sales        *saleStore.SQLiteStore
}

// NewStores builds every store on db.
func NewStores(db storage.SQLDB) Stores {
	return Stores{
		Employees:    employeeStore.NewSQLiteStore(db),
		Admins:       employeeStore.NewAdminSQLiteStore(db),
		Members:      memberStore.NewSQLiteStore(db),
		Attendance:   attendanceStore.NewSQLiteStore(db),
		Reservations: reservationStore.NewSQLiteStore(db),
		Sales:        saleStore.NewSQLiteStore(db),
	}
}

// Deps holds the handler's collaborators.
type Deps struct {
	Stores    Stores
	Source    orchestrators.ReservationSource
	Collector *perf.Collector
	Now       func() time.Time
	DebugPerf bool // serve GET /debug/perf
}

// OpenDB opens the SQLite file at path and creates the schema.
func OpenDB(path string) (*sql.DB, error) {
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}
	if err := storage.InitDB(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// NewHandler wires the routes and the middleware stack.
func NewHandler(deps Deps, allowedOrigins []string) http.Handler {
	s := newServer(deps)
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut},
		AllowedHeaders: []string{"Content-Type", "Accept"},
	})

	// Applied outermost first: SecurityHeaders -> CORS -> Timing -> mux
	return middleware.Chain(s.routes(),
		middleware.Timing(deps.Collector),
		c.Handler,
		middleware.SecurityHeaders,
	)
}

// Run serves the backend until ctx is cancelled.
func Run(ctx context.Context, cfg Config) error {
	db, err := OpenDB(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()
	log.Printf("Database initialized (%s)", cfg.DBPath)

	collector := perf.NewCollector(perf.DefaultRingSize)
	stores := NewStores(storage.NewTimedDB(db, collector))

	if !cfg.Production() {
		seed := orchestrators.DevAccountSeedDeps{Admins: stores.Admins, Employees: stores.Employees}
		if err := orchestrators.ExecuteSeedDevAccounts(ctx, seed); err != nil {
			return fmt.Errorf("seed dev accounts: %w", err)
		}
	}

	handler := NewHandler(Deps{
		Stores:    stores,
		Source:    orchestrators.SampleReservationSource{},
		Collector: collector,
		Now:       time.Now,
		DebugPerf: !cfg.Production(),
	}, cfg.AllowedOrigins)

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("frontdesk backend listening on %s (env=%s)", cfg.Addr, cfg.Env)
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
