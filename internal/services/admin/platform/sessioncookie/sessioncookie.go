// Package sessioncookie issues and reads the signed cookies that carry the
// session and device owner IDs.
//
// The session cookie lives for the browser session and addresses the session
// scope. The device cookie lasts a year and addresses the persistent scope.
// Both hold an HS256 JWT whose subject is a random owner ID; a value that
// fails verification is treated as absent and replaced.
package sessioncookie

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dronesimulator/admin/internal/services/admin/platform/requestmeta"
)

const (
	// SessionName is the browser-session cookie.
	SessionName = "drone_session"
	// DeviceName is the long-lived device cookie.
	DeviceName = "drone_device"

	// DeviceLifetime bounds the device cookie and its token.
	DeviceLifetime = 365 * 24 * time.Hour

	issuer = "dronesim-admin"
)

// Codec signs and verifies owner cookies.
type Codec struct {
	secret []byte
	policy requestmeta.SchemePolicy
	now    func() time.Time
}

// NewCodec returns a Codec signing with secret.
func NewCodec(secret string, policy requestmeta.SchemePolicy) (*Codec, error) {
	secret = strings.TrimSpace(secret)
	if len(secret) < 16 {
		return nil, errors.New("session secret must be at least 16 characters")
	}
	return &Codec{secret: []byte(secret), policy: policy, now: time.Now}, nil
}

// Session returns the session owner ID, minting and writing a new cookie
// when the request has none or an invalid one.
func (c *Codec) Session(w http.ResponseWriter, r *http.Request) (string, error) {
	return c.ensure(w, r, SessionName, 0)
}

// Device returns the device owner ID, minting and writing a new cookie when
// needed.
func (c *Codec) Device(w http.ResponseWriter, r *http.Request) (string, error) {
	return c.ensure(w, r, DeviceName, DeviceLifetime)
}

// Rotate always mints a new session owner ID and writes its cookie,
// replacing whatever session the request carried.
func (c *Codec) Rotate(w http.ResponseWriter, r *http.Request) (string, error) {
	return c.mint(w, r, SessionName, 0)
}

// Read returns the verified owner ID carried by cookie name.
func (c *Codec) Read(r *http.Request, name string) (string, bool) {
	if r == nil {
		return "", false
	}
	cookie, err := r.Cookie(name)
	if err != nil {
		return "", false
	}
	owner, err := c.Verify(cookie.Value, name)
	if err != nil {
		return "", false
	}
	return owner, true
}

// Issue signs a token for owner scoped to the cookie name.
func (c *Codec) Issue(owner, name string, lifetime time.Duration) (string, error) {
	now := c.now()
	claims := jwt.RegisteredClaims{
		Issuer:   issuer,
		Subject:  owner,
		Audience: jwt.ClaimStrings{name},
		IssuedAt: jwt.NewNumericDate(now),
	}
	if lifetime > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(lifetime))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Verify checks a token and returns its subject.
func (c *Codec) Verify(token, name string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", errors.New("token is required")
	}
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithAudience(name),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return "", err
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return "", errors.New("token subject is not an owner id")
	}
	return claims.Subject, nil
}

// Clear expires cookie name.
func (c *Codec) Clear(w http.ResponseWriter, r *http.Request, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   requestmeta.IsHTTPS(r, c.policy),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

func (c *Codec) ensure(w http.ResponseWriter, r *http.Request, name string, lifetime time.Duration) (string, error) {
	if owner, ok := c.Read(r, name); ok {
		return owner, nil
	}
	return c.mint(w, r, name, lifetime)
}

func (c *Codec) mint(w http.ResponseWriter, r *http.Request, name string, lifetime time.Duration) (string, error) {
	owner := uuid.NewString()
	token, err := c.Issue(owner, name, lifetime)
	if err != nil {
		return "", err
	}
	cookie := &http.Cookie{
		Name:     name,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   requestmeta.IsHTTPS(r, c.policy),
		SameSite: http.SameSiteLaxMode,
	}
	if lifetime > 0 {
		cookie.MaxAge = int(lifetime.Seconds())
	}
	http.SetCookie(w, cookie)
	return owner, nil
}
