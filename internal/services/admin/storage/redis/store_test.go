package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/dronesimulator/admin/internal/services/admin/storage"
)

type fakeClient struct {
	hashes  map[string]map[string]string
	expires map[string]time.Duration
	failSet error
	closed  bool
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		hashes:  map[string]map[string]string{},
		expires: map[string]time.Duration{},
	}
}

func (f *fakeClient) HGet(_ context.Context, key, field string) *goredis.StringCmd {
	value, ok := f.hashes[key][field]
	if !ok {
		return goredis.NewStringResult("", goredis.Nil)
	}
	return goredis.NewStringResult(value, nil)
}

func (f *fakeClient) HSet(_ context.Context, key string, values ...interface{}) *goredis.IntCmd {
	if f.failSet != nil {
		return goredis.NewIntResult(0, f.failSet)
	}
	hash, ok := f.hashes[key]
	if !ok {
		hash = map[string]string{}
		f.hashes[key] = hash
	}
	for i := 0; i+1 < len(values); i += 2 {
		hash[values[i].(string)] = values[i+1].(string)
	}
	return goredis.NewIntResult(int64(len(values)/2), nil)
}

func (f *fakeClient) HDel(_ context.Context, key string, fields ...string) *goredis.IntCmd {
	var removed int64
	for _, field := range fields {
		if _, ok := f.hashes[key][field]; ok {
			delete(f.hashes[key], field)
			removed++
		}
	}
	return goredis.NewIntResult(removed, nil)
}

func (f *fakeClient) Expire(_ context.Context, key string, expiration time.Duration) *goredis.BoolCmd {
	f.expires[key] = expiration
	return goredis.NewBoolResult(true, nil)
}

func (f *fakeClient) Close() error {
	f.closed = true
	return nil
}

func TestSetItemWritesHashAndExpiry(t *testing.T) {
	fake := newFakeClient()
	store := newStore(fake, 30*time.Minute)

	if err := store.SetItem(context.Background(), "owner-1", storage.KeyToken, "tok"); err != nil {
		t.Fatalf("SetItem() error = %v", err)
	}
	if got := fake.hashes["dronesim:admin:session:owner-1"][storage.KeyToken]; got != "tok" {
		t.Fatalf("stored value = %q, want tok", got)
	}
	if got := fake.expires["dronesim:admin:session:owner-1"]; got != 30*time.Minute {
		t.Fatalf("expiry = %v, want 30m", got)
	}
}

func TestGetItemRefreshesExpiry(t *testing.T) {
	fake := newFakeClient()
	store := newStore(fake, 30*time.Minute)
	ctx := context.Background()

	_ = store.SetItem(ctx, "owner-1", storage.KeyToken, "tok")
	delete(fake.expires, "dronesim:admin:session:owner-1")

	if _, ok, err := store.GetItem(ctx, "owner-1", storage.KeyToken); err != nil || !ok {
		t.Fatalf("GetItem() = %v, %v", ok, err)
	}
	if got := fake.expires["dronesim:admin:session:owner-1"]; got != 30*time.Minute {
		t.Fatalf("expiry after read = %v, want 30m", got)
	}

	delete(fake.expires, "dronesim:admin:session:owner-2")
	_, _, _ = store.GetItem(ctx, "owner-2", storage.KeyToken)
	if _, ok := fake.expires["dronesim:admin:session:owner-2"]; ok {
		t.Fatal("expected a miss not to set an expiry")
	}
}

func TestGetItemMissingIsNotError(t *testing.T) {
	store := newStore(newFakeClient(), 0)

	value, ok, err := store.GetItem(context.Background(), "owner-1", storage.KeyEmail)
	if err != nil {
		t.Fatalf("GetItem() error = %v", err)
	}
	if ok || value != "" {
		t.Fatalf("GetItem() = %q, %v; want miss", value, ok)
	}
}

func TestRoundTripAndRemove(t *testing.T) {
	store := newStore(newFakeClient(), time.Hour)
	ctx := context.Background()

	_ = store.SetItem(ctx, "owner-1", storage.KeyEmail, "a@example.com")
	_ = store.SetItem(ctx, "owner-1", storage.KeyUser, `{"email":"a@example.com"}`)

	if value, ok, _ := store.GetItem(ctx, "owner-1", storage.KeyEmail); !ok || value != "a@example.com" {
		t.Fatalf("GetItem() = %q, %v", value, ok)
	}
	if err := store.RemoveItems(ctx, "owner-1", storage.KeyUser); err != nil {
		t.Fatalf("RemoveItems() error = %v", err)
	}
	if _, ok, _ := store.GetItem(ctx, "owner-1", storage.KeyUser); ok {
		t.Fatal("expected user key removed")
	}
	if _, ok, _ := store.GetItem(ctx, "owner-1", storage.KeyEmail); !ok {
		t.Fatal("expected email key kept")
	}
}

func TestSetItemPropagatesError(t *testing.T) {
	fake := newFakeClient()
	fake.failSet = errors.New("connection refused")
	store := newStore(fake, 0)

	if err := store.SetItem(context.Background(), "owner-1", storage.KeyEmail, "x"); err == nil {
		t.Fatal("expected error")
	}
}

func TestBlankOwnerRejected(t *testing.T) {
	store := newStore(newFakeClient(), 0)
	if _, _, err := store.GetItem(context.Background(), "", storage.KeyEmail); !errors.Is(err, storage.ErrOwnerRequired) {
		t.Fatalf("GetItem() error = %v, want ErrOwnerRequired", err)
	}
}

func TestOpenRequiresAddr(t *testing.T) {
	if _, err := Open(context.Background(), Config{}); err == nil {
		t.Fatal("expected error for empty addr")
	}
}

func TestCloseClosesClient(t *testing.T) {
	fake := newFakeClient()
	if err := newStore(fake, 0).Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !fake.closed {
		t.Fatal("expected client closed")
	}
}
