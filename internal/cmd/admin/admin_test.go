package admin

import (
	"flag"
	"testing"
	"time"

	"github.com/dronesimulator/admin/internal/services/admin/integration/backend"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("admin", flag.ContinueOnError)
	cfg, err := parseConfig(fs, nil, map[string]string{"DRONESIM_ADMIN_SESSION_SECRET": "0123456789abcdef"})
	if err != nil {
		t.Fatalf("parseConfig() error = %v", err)
	}
	if cfg.HTTPAddr != ":8082" {
		t.Fatalf("HTTPAddr = %q, want %q", cfg.HTTPAddr, ":8082")
	}
	if cfg.LoginURL != backend.DefaultLoginURL {
		t.Fatalf("LoginURL = %q", cfg.LoginURL)
	}
	if cfg.VerifyURL != "" {
		t.Fatalf("VerifyURL = %q, want empty", cfg.VerifyURL)
	}
	if cfg.SessionStore != "memory" {
		t.Fatalf("SessionStore = %q", cfg.SessionStore)
	}
	if cfg.SessionIdle != 12*time.Hour {
		t.Fatalf("SessionIdle = %v", cfg.SessionIdle)
	}
	if cfg.BackendTimeout != 10*time.Second {
		t.Fatalf("BackendTimeout = %v", cfg.BackendTimeout)
	}
	if cfg.TimeZone != "Asia/Kolkata" {
		t.Fatalf("TimeZone = %q", cfg.TimeZone)
	}
}

func TestParseConfigEnvAndFlags(t *testing.T) {
	fs := flag.NewFlagSet("admin", flag.ContinueOnError)
	environ := map[string]string{
		"DRONESIM_ADMIN_SESSION_SECRET": "0123456789abcdef",
		"DRONESIM_ADMIN_VERIFY_URL":     "https://api.example.com/verify",
		"DRONESIM_ADMIN_SESSION_STORE":  "redis",
		"DRONESIM_ADMIN_HTTP_ADDR":      "env:1",
	}
	cfg, err := parseConfig(fs, []string{"-http-addr", "flag:2", "-db-path", ""}, environ)
	if err != nil {
		t.Fatalf("parseConfig() error = %v", err)
	}
	if cfg.HTTPAddr != "flag:2" {
		t.Fatalf("HTTPAddr = %q, want flag value", cfg.HTTPAddr)
	}
	if cfg.VerifyURL != "https://api.example.com/verify" {
		t.Fatalf("VerifyURL = %q", cfg.VerifyURL)
	}
	if cfg.SessionStore != "redis" {
		t.Fatalf("SessionStore = %q", cfg.SessionStore)
	}
	if cfg.DBPath != "" {
		t.Fatalf("DBPath = %q, want empty", cfg.DBPath)
	}
}

func TestParseConfigRequiresSecret(t *testing.T) {
	fs := flag.NewFlagSet("admin", flag.ContinueOnError)
	if _, err := parseConfig(fs, nil, map[string]string{}); err == nil {
		t.Fatal("expected missing secret error")
	}
}

func TestParseConfigRejectsBadDuration(t *testing.T) {
	fs := flag.NewFlagSet("admin", flag.ContinueOnError)
	environ := map[string]string{
		"DRONESIM_ADMIN_SESSION_SECRET":  "0123456789abcdef",
		"DRONESIM_ADMIN_BACKEND_TIMEOUT": "soon",
	}
	if _, err := parseConfig(fs, nil, environ); err == nil {
		t.Fatal("expected parse error")
	}
}
