// Package admin parses admin dashboard flags and launches the service.
package admin

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"strings"
	"time"

	entrypoint "github.com/dronesimulator/admin/internal/platform/cmd"
	"github.com/dronesimulator/admin/internal/services/admin"
	"github.com/dronesimulator/admin/internal/services/admin/integration/backend"
)

// Config holds the admin command configuration.
type Config struct {
	HTTPAddr     string `env:"DRONESIM_ADMIN_HTTP_ADDR" envDefault:":8082"`
	LoginURL     string `env:"DRONESIM_ADMIN_LOGIN_URL"`
	DownloadsURL string `env:"DRONESIM_ADMIN_DOWNLOADS_URL"`
	DeleteURL    string `env:"DRONESIM_ADMIN_DELETE_URL"`
	// VerifyURL has no production default; verification links fail until set.
	VerifyURL      string        `env:"DRONESIM_ADMIN_VERIFY_URL"`
	AppLoginURL    string        `env:"DRONESIM_ADMIN_APP_LOGIN_URL"`
	BackendTimeout time.Duration `env:"DRONESIM_ADMIN_BACKEND_TIMEOUT" envDefault:"10s"`

	SessionStore  string        `env:"DRONESIM_ADMIN_SESSION_STORE" envDefault:"memory"`
	SessionIdle   time.Duration `env:"DRONESIM_ADMIN_SESSION_IDLE" envDefault:"12h"`
	RedisAddr     string        `env:"DRONESIM_ADMIN_REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string        `env:"DRONESIM_ADMIN_REDIS_PASSWORD"`
	RedisDB       int           `env:"DRONESIM_ADMIN_REDIS_DB" envDefault:"0"`
	DBPath        string        `env:"DRONESIM_ADMIN_DB_PATH" envDefault:"data/admin.db"`

	SessionSecret       string `env:"DRONESIM_ADMIN_SESSION_SECRET"`
	TrustForwardedProto bool   `env:"DRONESIM_ADMIN_TRUST_FORWARDED_PROTO" envDefault:"false"`
	TimeZone            string `env:"DRONESIM_ADMIN_TIME_ZONE" envDefault:"Asia/Kolkata"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	return parseConfig(fs, args, nil)
}

func parseConfig(fs *flag.FlagSet, args []string, environ map[string]string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfigFrom(&cfg, environ); err != nil {
		return Config{}, err
	}
	cfg.LoginURL = orDefault(cfg.LoginURL, backend.DefaultLoginURL)
	cfg.DownloadsURL = orDefault(cfg.DownloadsURL, backend.DefaultDownloadsURL)
	cfg.DeleteURL = orDefault(cfg.DeleteURL, backend.DefaultDeleteURL)
	cfg.AppLoginURL = orDefault(cfg.AppLoginURL, admin.DefaultAppLoginURL)

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.LoginURL, "login-url", cfg.LoginURL, "admin login endpoint")
	fs.StringVar(&cfg.DownloadsURL, "downloads-url", cfg.DownloadsURL, "downloads listing endpoint")
	fs.StringVar(&cfg.DeleteURL, "delete-url", cfg.DeleteURL, "download record delete endpoint")
	fs.StringVar(&cfg.VerifyURL, "verify-url", cfg.VerifyURL, "email verification endpoint")
	fs.StringVar(&cfg.AppLoginURL, "app-login-url", cfg.AppLoginURL, "product login linked after verification")
	fs.DurationVar(&cfg.BackendTimeout, "backend-timeout", cfg.BackendTimeout, "timeout for one backend call")
	fs.StringVar(&cfg.SessionStore, "session-store", cfg.SessionStore, "session store: memory or redis")
	fs.StringVar(&cfg.RedisAddr, "redis-addr", cfg.RedisAddr, "redis address for the redis session store")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "sqlite path for remembered devices; empty disables")
	fs.StringVar(&cfg.TimeZone, "time-zone", cfg.TimeZone, "IANA zone used to display and filter dates")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if strings.TrimSpace(cfg.SessionSecret) == "" {
		return Config{}, errors.New("DRONESIM_ADMIN_SESSION_SECRET is required")
	}
	return cfg, nil
}

// Run starts the admin dashboard.
func Run(ctx context.Context, cfg Config) error {
	location, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return fmt.Errorf("load time zone %q: %w", cfg.TimeZone, err)
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceAdmin, func(ctx context.Context) error {
		server, err := admin.NewServer(ctx, admin.Config{
			HTTPAddr: cfg.HTTPAddr,
			Backend: backend.Config{
				LoginURL:     cfg.LoginURL,
				DownloadsURL: cfg.DownloadsURL,
				DeleteURL:    cfg.DeleteURL,
				VerifyURL:    cfg.VerifyURL,
				HTTPClient:   &http.Client{Timeout: cfg.BackendTimeout},
			},
			AppLoginURL:         cfg.AppLoginURL,
			SessionStore:        cfg.SessionStore,
			RedisAddr:           cfg.RedisAddr,
			RedisPassword:       cfg.RedisPassword,
			RedisDB:             cfg.RedisDB,
			SessionIdle:         cfg.SessionIdle,
			DBPath:              cfg.DBPath,
			SessionSecret:       cfg.SessionSecret,
			TrustForwardedProto: cfg.TrustForwardedProto,
			Location:            location,
		})
		if err != nil {
			return fmt.Errorf("init admin server: %w", err)
		}
		defer server.Close()

		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve admin: %w", err)
		}
		return nil
	})
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
