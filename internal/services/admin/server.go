package admin

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dronesimulator/admin/internal/platform/timeouts"
	"github.com/dronesimulator/admin/internal/services/admin/downloads"
	"github.com/dronesimulator/admin/internal/services/admin/integration/backend"
	"github.com/dronesimulator/admin/internal/services/admin/platform/requestmeta"
	"github.com/dronesimulator/admin/internal/services/admin/platform/sessioncookie"
	"github.com/dronesimulator/admin/internal/services/admin/storage"
	"github.com/dronesimulator/admin/internal/services/admin/storage/memory"
	adminredis "github.com/dronesimulator/admin/internal/services/admin/storage/redis"
	adminsqlite "github.com/dronesimulator/admin/internal/services/admin/storage/sqlite"
)

// Session store kinds.
const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

// Config defines the inputs for the admin process.
type Config struct {
	HTTPAddr    string
	Backend     backend.Config
	AppLoginURL string

	// SessionStore selects the session scope backend: memory or redis.
	SessionStore  string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	// SessionIdle expires untouched sessions and held record sets.
	SessionIdle time.Duration

	// DBPath locates the remember-this-device store. Empty disables it.
	DBPath string

	SessionSecret       string
	TrustForwardedProto bool
	Location            *time.Location
}

// Server hosts the admin dashboard and owns its storage.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	sessions   storage.Store
	devices    storage.Store
}

// NewServer opens storage and builds the HTTP server.
func NewServer(ctx context.Context, config Config) (*Server, error) {
	httpAddr := strings.TrimSpace(config.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	if config.SessionIdle <= 0 {
		config.SessionIdle = timeouts.SessionIdle
	}
	policy := requestmeta.SchemePolicy{TrustForwardedProto: config.TrustForwardedProto}
	cookies, err := sessioncookie.NewCodec(config.SessionSecret, policy)
	if err != nil {
		return nil, err
	}

	sessions, err := openSessionStore(ctx, config)
	if err != nil {
		return nil, err
	}
	var devices storage.Store
	if path := strings.TrimSpace(config.DBPath); path != "" {
		deviceStore, err := openDeviceStore(path)
		if err != nil {
			_ = sessions.Close()
			return nil, err
		}
		devices = deviceStore
	}

	client := backend.NewClient(config.Backend)
	handler, err := NewHandler(Dependencies{
		Authenticator: client,
		Verifier:      client,
		Downloads:     downloads.NewService(client, config.SessionIdle),
		SessionStore:  sessions,
		DeviceStore:   devices,
		Cookies:       cookies,
		SchemePolicy:  policy,
		AppLoginURL:   config.AppLoginURL,
		Location:      config.Location,
	})
	if err != nil {
		closeStores(sessions, devices)
		return nil, err
	}

	httpServer := &http.Server{
		Addr:              httpAddr,
		Handler:           handler,
		ReadHeaderTimeout: timeouts.ReadHeader,
	}
	return &Server{
		httpAddr:   httpAddr,
		httpServer: httpServer,
		sessions:   sessions,
		devices:    devices,
	}, nil
}

// ListenAndServe runs the HTTP server until the context ends.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("admin server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	serveErr := make(chan error, 1)
	log.Printf("admin listening on %s", s.httpAddr)
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

// Close releases storage.
func (s *Server) Close() {
	if s == nil {
		return
	}
	closeStores(s.sessions, s.devices)
}

func closeStores(stores ...storage.Store) {
	for _, store := range stores {
		if store == nil {
			continue
		}
		if err := store.Close(); err != nil {
			log.Printf("close admin store: %v", err)
		}
	}
}

func openSessionStore(ctx context.Context, config Config) (storage.Store, error) {
	switch kind := strings.ToLower(strings.TrimSpace(config.SessionStore)); kind {
	case "", SessionStoreMemory:
		return memory.New(config.SessionIdle), nil
	case SessionStoreRedis:
		store, err := adminredis.Open(ctx, adminredis.Config{
			Addr:     config.RedisAddr,
			Password: config.RedisPassword,
			DB:       config.RedisDB,
			TTL:      config.SessionIdle,
		})
		if err != nil {
			return nil, fmt.Errorf("open session store: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown session store %q", kind)
	}
}

func openDeviceStore(path string) (*adminsqlite.Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}

	store, err := adminsqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open device sqlite store: %w", err)
	}
	return store, nil
}
