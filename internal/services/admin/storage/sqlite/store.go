package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	sqlitemigrate "github.com/dronesimulator/admin/internal/platform/storage/sqlitemigrate"
	"github.com/dronesimulator/admin/internal/services/admin/storage"
	"github.com/dronesimulator/admin/internal/services/admin/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

const timeFormat = time.RFC3339Nano

// Store is a SQLite-backed storage.Store.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// Open opens a SQLite store at the provided path and applies migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{sqlDB: sqlDB, now: time.Now}
	if err := sqlitemigrate.Apply(context.Background(), sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return store, nil
}

// Close closes the underlying SQLite database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// GetItem returns the value stored under key for owner.
func (s *Store) GetItem(ctx context.Context, owner, key string) (string, bool, error) {
	if err := s.ready(ctx); err != nil {
		return "", false, err
	}
	owner, err := storage.ValidateOwner(owner)
	if err != nil {
		return "", false, err
	}

	var value string
	err = s.sqlDB.QueryRowContext(ctx,
		"SELECT item_value FROM storage_items WHERE owner = ? AND item_key = ?",
		owner, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get item %s: %w", key, err)
	}
	return value, true, nil
}

// SetItem upserts the value under key for owner.
func (s *Store) SetItem(ctx context.Context, owner, key, value string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	owner, err := storage.ValidateOwner(owner)
	if err != nil {
		return err
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("item key is required")
	}

	_, err = s.sqlDB.ExecContext(ctx, `INSERT INTO storage_items (owner, item_key, item_value, updated_at)
VALUES (?, ?, ?, ?)
ON CONFLICT(owner, item_key) DO UPDATE SET item_value = excluded.item_value, updated_at = excluded.updated_at`,
		owner, key, value, s.now().UTC().Format(timeFormat),
	)
	if err != nil {
		return fmt.Errorf("set item %s: %w", key, err)
	}
	return nil
}

// RemoveItems deletes keys for owner in one transaction.
func (s *Store) RemoveItems(ctx context.Context, owner string, keys ...string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	owner, err := storage.ValidateOwner(owner)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin remove: %w", err)
	}
	for _, key := range keys {
		if _, err := tx.ExecContext(ctx, "DELETE FROM storage_items WHERE owner = ? AND item_key = ?", owner, key); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("remove item %s: %w", key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit remove: %w", err)
	}
	return nil
}

func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return errors.New("storage is not configured")
	}
	return nil
}

var _ storage.Store = (*Store)(nil)
