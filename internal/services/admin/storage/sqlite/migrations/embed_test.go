package migrations

import (
	"io/fs"
	"strings"
	"testing"
)

func TestStorageItemsMigration(t *testing.T) {
	names, err := fs.Glob(FS, "*.sql")
	if err != nil {
		t.Fatalf("fs.Glob() error = %v", err)
	}
	if len(names) == 0 || names[0] != "001_storage_items.sql" {
		t.Fatalf("migrations = %v, want 001_storage_items.sql first", names)
	}
	data, err := fs.ReadFile(FS, names[0])
	if err != nil {
		t.Fatalf("fs.ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), "storage_items") {
		t.Fatal("expected storage_items table in first migration")
	}
}
