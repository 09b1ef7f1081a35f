package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memTokenStore struct {
	token   string
	present bool
	cleared bool
}

func (s *memTokenStore) Load() (string, bool) { return s.token, s.present }

func (s *memTokenStore) Clear() {
	s.token, s.present, s.cleared = "", false, true
}

// unverifiedToken signs with a key the guard never sees.
func unverifiedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("client-side-guard-never-checks-this"))
	require.NoError(t, err)
	return s
}

func TestSessionGuard(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(time.Hour).Unix()

	tests := []struct {
		name       string
		store      *memTokenStore
		wantState  SessionState
		wantReason string
		wantClear  bool
	}{
		{
			name:       "no token",
			store:      &memTokenStore{},
			wantState:  SessionRedirecting,
			wantReason: "no token",
		},
		{
			name:      "valid claims",
			store:     &memTokenStore{present: true, token: unverifiedToken(t, jwt.MapClaims{"username": "admin", "isAdmin": true, "exp": future})},
			wantState: SessionAuthorized,
		},
		{
			name:       "malformed",
			store:      &memTokenStore{present: true, token: "abc.def"},
			wantState:  SessionRedirecting,
			wantReason: "malformed token",
			wantClear:  true,
		},
		{
			name:       "expired",
			store:      &memTokenStore{present: true, token: unverifiedToken(t, jwt.MapClaims{"username": "admin", "isAdmin": true, "exp": now.Add(-time.Second).Unix()})},
			wantState:  SessionRedirecting,
			wantReason: "token expired",
			wantClear:  true,
		},
		{
			name:       "expires exactly now",
			store:      &memTokenStore{present: true, token: unverifiedToken(t, jwt.MapClaims{"username": "admin", "isAdmin": true, "exp": now.Unix()})},
			wantState:  SessionRedirecting,
			wantReason: "token expired",
			wantClear:  true,
		},
		{
			name:       "no exp",
			store:      &memTokenStore{present: true, token: unverifiedToken(t, jwt.MapClaims{"username": "admin", "isAdmin": true})},
			wantState:  SessionRedirecting,
			wantReason: "missing expiry",
			wantClear:  true,
		},
		{
			name:       "isAdmin false",
			store:      &memTokenStore{present: true, token: unverifiedToken(t, jwt.MapClaims{"username": "admin", "isAdmin": false, "exp": future})},
			wantState:  SessionRedirecting,
			wantReason: "not an admin",
			wantClear:  true,
		},
		{
			name:       "isAdmin missing",
			store:      &memTokenStore{present: true, token: unverifiedToken(t, jwt.MapClaims{"username": "admin", "exp": future})},
			wantState:  SessionRedirecting,
			wantReason: "not an admin",
			wantClear:  true,
		},
		{
			name:       "empty username",
			store:      &memTokenStore{present: true, token: unverifiedToken(t, jwt.MapClaims{"username": "", "isAdmin": true, "exp": future})},
			wantState:  SessionRedirecting,
			wantReason: "missing username",
			wantClear:  true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewSessionGuard()
			g.now = func() time.Time { return now }

			s := g.Check(tt.store)
			assert.Equal(t, tt.wantState, s.State)
			assert.Equal(t, tt.wantReason, s.Reason)
			assert.Equal(t, tt.wantClear, tt.store.cleared)
			if tt.wantState == SessionAuthorized {
				assert.Equal(t, "admin", s.Username)
				assert.Equal(t, time.Unix(future, 0), s.ExpiresAt)
			}
		})
	}
}

func TestSessionGuard_IsNotAuthorisation(t *testing.T) {
	// A token the server would reject still opens the shell; the API stays closed.
	forged := unverifiedToken(t, jwt.MapClaims{"username": "admin", "isAdmin": true, "exp": time.Now().Add(time.Hour).Unix()})

	s := NewSessionGuard().Check(&memTokenStore{present: true, token: forged})
	assert.Equal(t, SessionAuthorized, s.State)

	_, err := NewTokenManager(testSecret, "catalog-test", time.Hour).Verify(forged)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestSessionState_String(t *testing.T) {
	assert.Equal(t, "loading", SessionLoading.String())
	assert.Equal(t, "authorized", SessionAuthorized.String())
	assert.Equal(t, "redirecting", SessionRedirecting.String())
}
