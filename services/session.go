package services

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionState is the admin shell gate: Loading → Authorized | Redirecting.
type SessionState int

const (
	SessionLoading SessionState = iota
	SessionAuthorized
	SessionRedirecting
)

func (s SessionState) String() string {
	switch s {
	case SessionAuthorized:
		return "authorized"
	case SessionRedirecting:
		return "redirecting"
	default:
		return "loading"
	}
}

// TokenStore is wherever the admin UI persisted its token (a cookie here).
type TokenStore interface {
	Load() (string, bool)
	Clear()
}

// Session is the outcome of one guard check.
type Session struct {
	State     SessionState
	Username  string
	ExpiresAt time.Time
	// Reason says why the guard redirected; empty when authorized.
	Reason string
}

// SessionGuard decides whether to render the admin shell. It decodes the
// stored token WITHOUT verifying its signature, so its answer is only a UX
// hint. Authorisation is the TokenManager's job on every API call.
type SessionGuard struct {
	parser *jwt.Parser
	now    func() time.Time
}

func NewSessionGuard() *SessionGuard {
	return &SessionGuard{parser: jwt.NewParser(), now: time.Now}
}

// Check runs the guard once. Any failure clears the stored token.
func (g *SessionGuard) Check(store TokenStore) Session {
	token, ok := store.Load()
	if !ok || token == "" {
		return Session{State: SessionRedirecting, Reason: "no token"}
	}

	s := g.inspect(token)
	if s.State != SessionAuthorized {
		store.Clear()
	}
	return s
}

func (g *SessionGuard) inspect(token string) Session {
	claims := jwt.MapClaims{}
	if _, _, err := g.parser.ParseUnverified(token, claims); err != nil {
		return Session{State: SessionRedirecting, Reason: "malformed token"}
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return Session{State: SessionRedirecting, Reason: "missing expiry"}
	}
	if !g.now().Before(exp.Time) {
		return Session{State: SessionRedirecting, Reason: "token expired"}
	}
	if !truthy(claims["isAdmin"]) {
		return Session{State: SessionRedirecting, Reason: "not an admin"}
	}
	if !truthy(claims["username"]) {
		return Session{State: SessionRedirecting, Reason: "missing username"}
	}

	username, _ := claims["username"].(string)
	return Session{State: SessionAuthorized, Username: username, ExpiresAt: exp.Time}
}

// truthy mirrors how the browser treats a decoded JSON claim.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case float64:
		return x != 0
	default:
		return true
	}
}
