package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Keys shared by the auth provider and the downloads view.
const (
	KeyEmail     = "admin_email"
	KeyName      = "admin_name"
	KeyRole      = "admin_role"
	KeyStatus    = "admin_status"
	KeyJoinDate  = "admin_joinDate"
	KeyLastLogin = "admin_lastLogin"
	KeyToken     = "drone_auth_token"
	KeyUser      = "drone_auth_user"
)

// AuthKeys lists every key a login writes.
var AuthKeys = []string{KeyEmail, KeyName, KeyRole, KeyStatus, KeyJoinDate, KeyLastLogin, KeyToken, KeyUser}

// ErrOwnerRequired is returned when a call names no owner.
var ErrOwnerRequired = errors.New("storage owner is required")

// Store persists string values keyed by owner and key.
type Store interface {
	GetItem(ctx context.Context, owner, key string) (string, bool, error)
	SetItem(ctx context.Context, owner, key, value string) error
	RemoveItems(ctx context.Context, owner string, keys ...string) error
	Close() error
}

// Scope is a Store bound to one owner.
type Scope interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, keys ...string) error
}

// Bind returns the Scope of owner inside store.
func Bind(store Store, owner string) Scope {
	return boundScope{store: store, owner: strings.TrimSpace(owner)}
}

type boundScope struct {
	store Store
	owner string
}

func (s boundScope) Get(ctx context.Context, key string) (string, bool, error) {
	if s.store == nil {
		return "", false, nil
	}
	return s.store.GetItem(ctx, s.owner, key)
}

func (s boundScope) Set(ctx context.Context, key, value string) error {
	if s.store == nil {
		return errors.New("storage is not configured")
	}
	return s.store.SetItem(ctx, s.owner, key, value)
}

func (s boundScope) Remove(ctx context.Context, keys ...string) error {
	if s.store == nil || len(keys) == 0 {
		return nil
	}
	return s.store.RemoveItems(ctx, s.owner, keys...)
}

// Move hands keys from owner from to owner to inside store. Keys from lacks
// are cleared on to; every moved key is removed from from.
func Move(ctx context.Context, store Store, from, to string, keys ...string) error {
	if store == nil {
		return errors.New("storage is not configured")
	}
	for _, key := range keys {
		value, ok, err := store.GetItem(ctx, from, key)
		if err != nil {
			return fmt.Errorf("read %s: %w", key, err)
		}
		if !ok {
			if err := store.RemoveItems(ctx, to, key); err != nil {
				return fmt.Errorf("clear %s: %w", key, err)
			}
			continue
		}
		if err := store.SetItem(ctx, to, key, value); err != nil {
			return fmt.Errorf("store %s: %w", key, err)
		}
	}
	if err := store.RemoveItems(ctx, from, keys...); err != nil {
		return fmt.Errorf("remove moved keys: %w", err)
	}
	return nil
}

// ValidateOwner trims owner and rejects blanks.
func ValidateOwner(owner string) (string, error) {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return "", ErrOwnerRequired
	}
	return owner, nil
}
