package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/dronesimulator/admin/internal/services/admin/storage"
)

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestSetItemStoresValueAndTimestamp(t *testing.T) {
	store := openTempStore(t)
	updatedAt := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return updatedAt }

	if err := store.SetItem(context.Background(), "device-1", storage.KeyToken, "tok-1"); err != nil {
		t.Fatalf("SetItem() error = %v", err)
	}

	var storedValue, storedAt string
	row := store.sqlDB.QueryRow("SELECT item_value, updated_at FROM storage_items WHERE owner = ? AND item_key = ?", "device-1", storage.KeyToken)
	if err := row.Scan(&storedValue, &storedAt); err != nil {
		t.Fatalf("scan storage item: %v", err)
	}
	if storedValue != "tok-1" {
		t.Fatalf("stored value = %q, want tok-1", storedValue)
	}
	if storedAt != updatedAt.Format(timeFormat) {
		t.Fatalf("updated_at = %s, want %s", storedAt, updatedAt.Format(timeFormat))
	}
}

func TestSetItemOverwrites(t *testing.T) {
	store := openTempStore(t)
	ctx := context.Background()

	_ = store.SetItem(ctx, "device-1", storage.KeyEmail, "old@example.com")
	if err := store.SetItem(ctx, "device-1", storage.KeyEmail, "new@example.com"); err != nil {
		t.Fatalf("SetItem() error = %v", err)
	}
	value, ok, err := store.GetItem(ctx, "device-1", storage.KeyEmail)
	if err != nil || !ok || value != "new@example.com" {
		t.Fatalf("GetItem() = %q, %v, %v", value, ok, err)
	}
}

func TestGetItemMissing(t *testing.T) {
	store := openTempStore(t)
	value, ok, err := store.GetItem(context.Background(), "device-1", storage.KeyUser)
	if err != nil {
		t.Fatalf("GetItem() error = %v", err)
	}
	if ok || value != "" {
		t.Fatalf("GetItem() = %q, %v; want miss", value, ok)
	}
}

func TestRemoveItemsOnlyTouchesOwner(t *testing.T) {
	store := openTempStore(t)
	ctx := context.Background()

	_ = store.SetItem(ctx, "device-1", storage.KeyToken, "a")
	_ = store.SetItem(ctx, "device-1", storage.KeyUser, "{}")
	_ = store.SetItem(ctx, "device-2", storage.KeyToken, "b")

	if err := store.RemoveItems(ctx, "device-1", storage.KeyToken, storage.KeyUser); err != nil {
		t.Fatalf("RemoveItems() error = %v", err)
	}
	if _, ok, _ := store.GetItem(ctx, "device-1", storage.KeyToken); ok {
		t.Fatal("expected device-1 token removed")
	}
	if value, ok, _ := store.GetItem(ctx, "device-2", storage.KeyToken); !ok || value != "b" {
		t.Fatal("expected device-2 token kept")
	}
}

func TestValuesSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "admin.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := store.SetItem(context.Background(), "device-1", storage.KeyRole, "admin"); err != nil {
		t.Fatalf("SetItem() error = %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	t.Cleanup(func() { _ = reopened.Close() })
	if value, ok, _ := reopened.GetItem(context.Background(), "device-1", storage.KeyRole); !ok || value != "admin" {
		t.Fatalf("GetItem() after reopen = %q, %v", value, ok)
	}
}

func TestValidation(t *testing.T) {
	store := openTempStore(t)
	ctx := context.Background()

	if err := store.SetItem(ctx, "", storage.KeyRole, "x"); err == nil {
		t.Fatal("expected error for empty owner")
	}
	if err := store.SetItem(ctx, "device-1", " ", "x"); err == nil {
		t.Fatal("expected error for empty key")
	}
	canceled, cancel := context.WithCancel(ctx)
	cancel()
	if _, _, err := store.GetItem(canceled, "device-1", storage.KeyRole); err == nil {
		t.Fatal("expected error for canceled context")
	}
}

func openTempStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "admin.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}
