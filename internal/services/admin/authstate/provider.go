package authstate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/dronesimulator/admin/internal/platform/telemetry/metrics"
	"github.com/dronesimulator/admin/internal/services/admin/integration/backend"
	"github.com/dronesimulator/admin/internal/services/admin/storage"
)

// LoginSuccessMessage is the message the login endpoint returns on success.
const LoginSuccessMessage = "Login successful"

// AvatarURL is the placeholder avatar every admin user gets.
const AvatarURL = "https://images.pexels.com/photos/1040881/pexels-photo-1040881.jpeg?auto=compress&cs=tinysrgb&w=100&h=100&dpr=2"

// sessionFields maps login response user fields to their storage keys.
var sessionFields = []struct {
	field string
	key   string
}{
	{field: "email", key: storage.KeyEmail},
	{field: "name", key: storage.KeyName},
	{field: "role", key: storage.KeyRole},
	{field: "status", key: storage.KeyStatus},
	{field: "joinDate", key: storage.KeyJoinDate},
	{field: "lastLogin", key: storage.KeyLastLogin},
	{field: "token", key: storage.KeyToken},
}

// User is the locally synthesized admin identity.
type User struct {
	ID     string
	Name   string
	Email  string
	Role   string
	Avatar string
}

// Authenticator performs the admin login call.
type Authenticator interface {
	AdminLogin(ctx context.Context, email, password string) (backend.LoginResponse, error)
}

// LoginOption adjusts one Login call.
type LoginOption func(*loginOptions)

type loginOptions struct {
	rememberDevice bool
}

// RememberDevice mirrors the stored session into the persistent scope.
func RememberDevice(remember bool) LoginOption {
	return func(o *loginOptions) {
		o.rememberDevice = remember
	}
}

// Provider tracks whether the current session holds an authenticated admin.
// It is not safe for concurrent use.
type Provider struct {
	auth       Authenticator
	session    storage.Scope
	persistent storage.Scope
	user       *User
}

// NewProvider builds an unauthenticated provider. Call Hydrate to restore a
// stored login. persistent may be nil.
func NewProvider(auth Authenticator, session, persistent storage.Scope) *Provider {
	return &Provider{auth: auth, session: session, persistent: persistent}
}

// User returns a copy of the authenticated user, or nil.
func (p *Provider) User() *User {
	if p == nil || p.user == nil {
		return nil
	}
	user := *p.user
	return &user
}

// IsAuthenticated reports whether a user is present.
func (p *Provider) IsAuthenticated() bool {
	return p != nil && p.user != nil
}

// Session returns the session scope the provider reads and writes.
func (p *Provider) Session() storage.Scope {
	return p.session
}

// Login authenticates against the backend and stores the session on success.
// Every failure is logged and reported as false; nothing is written then.
func (p *Provider) Login(ctx context.Context, email, password, role string, opts ...LoginOption) bool {
	ok := p.login(ctx, email, password, role, opts...)
	metrics.ObserveLogin(ok)
	return ok
}

func (p *Provider) login(ctx context.Context, email, password, role string, opts ...LoginOption) bool {
	var options loginOptions
	for _, opt := range opts {
		opt(&options)
	}

	resp, err := p.auth.AdminLogin(ctx, email, password)
	if err != nil {
		var statusErr *backend.StatusError
		if errors.As(err, &statusErr) {
			log.Printf("admin login failed status=%d", statusErr.StatusCode)
		} else {
			log.Printf("admin login error: %v", err)
		}
		return false
	}
	if resp.Message != LoginSuccessMessage {
		log.Printf("admin login rejected message=%q", resp.Message)
		return false
	}
	fields, err := decodeObject(resp.User)
	if err != nil {
		log.Printf("admin login rejected: user object: %v", err)
		return false
	}
	if !truthy(fields["token"]) {
		log.Printf("admin login rejected: missing token")
		return false
	}

	if err := writeSession(ctx, p.session, fields, resp.User); err != nil {
		log.Printf("admin login store session: %v", err)
		return false
	}
	if options.rememberDevice && p.persistent != nil {
		if err := writeSession(ctx, p.persistent, fields, resp.User); err != nil {
			log.Printf("admin login remember device: %v", err)
		}
	}

	p.user = &User{
		ID:     role + "-1",
		Name:   literal(fields["name"]),
		Email:  literal(fields["email"]),
		Role:   role,
		Avatar: AvatarURL,
	}
	return true
}

// Logout clears the user and removes the token and user object from the
// session scope. The persistent scope loses every key a remembered login
// mirrored into it. It makes no network call.
func (p *Provider) Logout(ctx context.Context) {
	p.user = nil
	if p.persistent != nil {
		if err := p.persistent.Remove(ctx, storage.AuthKeys...); err != nil {
			log.Printf("admin logout clear device: %v", err)
		}
	}
	if p.session != nil {
		if err := p.session.Remove(ctx, storage.KeyUser, storage.KeyToken); err != nil {
			log.Printf("admin logout clear session: %v", err)
		}
	}
	metrics.ObserveLogout()
}

// Hydrate restores the user from the session scope, falling back to the
// persistent scope. A stored value that does not parse is purged from both
// scopes and leaves the provider unauthenticated.
func (p *Provider) Hydrate(ctx context.Context) {
	raw, fromPersistent := p.storedUser(ctx)
	if raw == "" {
		return
	}
	fields, err := decodeObject(json.RawMessage(raw))
	if err != nil {
		log.Printf("admin auth purge stored user: %v", err)
		for _, scope := range []storage.Scope{p.persistent, p.session} {
			if scope == nil {
				continue
			}
			if err := scope.Remove(ctx, storage.KeyUser); err != nil {
				log.Printf("admin auth purge stored user: %v", err)
			}
		}
		return
	}

	if fromPersistent {
		if err := writeSession(ctx, p.session, fields, json.RawMessage(raw)); err != nil {
			log.Printf("admin auth restore session from device: %v", err)
		}
	}

	role := literal(fields["role"])
	p.user = &User{
		ID:     role + "-1",
		Name:   literal(fields["name"]),
		Email:  literal(fields["email"]),
		Role:   role,
		Avatar: AvatarURL,
	}
}

func (p *Provider) storedUser(ctx context.Context) (string, bool) {
	if p.session != nil {
		value, ok, err := p.session.Get(ctx, storage.KeyUser)
		if err != nil {
			log.Printf("admin auth read session user: %v", err)
		}
		if ok && value != "" {
			return value, false
		}
	}
	if p.persistent != nil {
		value, ok, err := p.persistent.Get(ctx, storage.KeyUser)
		if err != nil {
			log.Printf("admin auth read device user: %v", err)
		}
		if ok && value != "" {
			return value, true
		}
	}
	return "", false
}

func writeSession(ctx context.Context, scope storage.Scope, fields map[string]json.RawMessage, raw json.RawMessage) error {
	if scope == nil {
		return errors.New("session scope is not configured")
	}
	var written []string
	fail := func(err error) error {
		if rerr := scope.Remove(ctx, written...); rerr != nil {
			log.Printf("admin auth roll back partial session: %v", rerr)
		}
		return err
	}
	for _, f := range sessionFields {
		value, ok := fields[f.field]
		if !ok {
			if err := scope.Remove(ctx, f.key); err != nil {
				return fail(fmt.Errorf("clear %s: %w", f.key, err))
			}
			continue
		}
		if err := scope.Set(ctx, f.key, literal(value)); err != nil {
			return fail(fmt.Errorf("store %s: %w", f.key, err))
		}
		written = append(written, f.key)
	}
	if err := scope.Set(ctx, storage.KeyUser, string(raw)); err != nil {
		return fail(fmt.Errorf("store %s: %w", storage.KeyUser, err))
	}
	return nil
}

func decodeObject(raw json.RawMessage) (map[string]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, errors.New("not a JSON object")
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// literal renders a JSON value the way it is stored: strings unquoted, any
// other value as its JSON text.
func literal(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return ""
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return s
		}
	}
	return string(trimmed)
}

func truthy(raw json.RawMessage) bool {
	switch value := strings.TrimSpace(string(raw)); value {
	case "", "null", "false", "0", `""`:
		return false
	default:
		return true
	}
}
