// Package session keeps the logged-in username in a signed cookie and
// carries one-shot flash messages between redirects.
package session

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"time"

	"physcalc/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

const flashMaxAge = 60 // seconds

// Manager issues and verifies session cookies. It is safe for concurrent use.
type Manager struct {
	secret     []byte
	cookieName string
	ttl        time.Duration
	secure     bool
	sameSite   http.SameSite
	now        func() time.Time
}

// NewManager builds a Manager from validated configuration.
func NewManager(cfg *config.Config) *Manager {
	return &Manager{
		secret:     []byte(cfg.Session.Secret),
		cookieName: cfg.Session.CookieName,
		ttl:        cfg.Session.TTL,
		secure:     cfg.SecureCookies(),
		sameSite:   cfg.SameSiteMode(),
		now:        time.Now,
	}
}

// Issue signs a token for username and sets it as the session cookie.
func (m *Manager) Issue(w http.ResponseWriter, username string) error {
	now := m.now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return fmt.Errorf("sign session token: %w", err)
	}

	http.SetCookie(w, m.cookie(m.cookieName, token, int(m.ttl.Seconds())))
	return nil
}

// Username returns the subject of a valid session cookie on r.
func (m *Manager) Username(r *http.Request) (string, bool) {
	c, err := r.Cookie(m.cookieName)
	if err != nil || c.Value == "" {
		return "", false
	}

	username, err := m.parse(c.Value)
	if err != nil {
		return "", false
	}
	return username, true
}

func (m *Manager) parse(token string) (string, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (interface{}, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", errors.New("session token without subject")
	}
	return claims.Subject, nil
}

// Clear expires the session cookie.
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, m.cookie(m.cookieName, "", -1))
}

// Flash stores msg for the next request.
func (m *Manager) Flash(w http.ResponseWriter, msg string) {
	http.SetCookie(w, m.cookie(m.flashName(), base64.RawURLEncoding.EncodeToString([]byte(msg)), flashMaxAge))
}

// PopFlash returns the pending flash message, if any, and clears it.
func (m *Manager) PopFlash(w http.ResponseWriter, r *http.Request) string {
	c, err := r.Cookie(m.flashName())
	if err != nil {
		return ""
	}
	http.SetCookie(w, m.cookie(m.flashName(), "", -1))

	msg, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		return ""
	}
	return string(msg)
}

func (m *Manager) flashName() string {
	return m.cookieName + "_flash"
}

func (m *Manager) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: m.sameSite,
	}
}

type usernameKey struct{}

// ContextWithUsername returns a copy of ctx carrying username.
func ContextWithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, usernameKey{}, username)
}

// UsernameFromContext returns the username placed by RequireLogin or RequireAPI.
func UsernameFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(usernameKey{}).(string); ok {
		return v
	}
	return ""
}
