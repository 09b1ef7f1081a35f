package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/Gautam3767/product-catalog-backend/models"
)

// AdminClaims is the token payload shared with the admin UI:
// {username, isAdmin, exp, iat, iss, jti}.
type AdminClaims struct {
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HS256 admin tokens.
type TokenManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager expects a secret of at least 32 characters; config validation enforces it.
func NewTokenManager(secret, issuer string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), issuer: issuer, ttl: ttl, now: time.Now}
}

// Issue signs a token for username that expires after the configured TTL.
func (m *TokenManager) Issue(username string) (string, time.Time, error) {
	now := m.now()
	exp := now.Add(m.ttl)
	claims := AdminClaims{
		Username: username,
		IsAdmin:  true,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   username,
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

// Verify checks signature, expiry, issuer and the admin claims. Every
// failure is reported as ErrUnauthorized.
func (m *TokenManager) Verify(token string) (*AdminClaims, error) {
	if token == "" {
		return nil, unauthorized("missing token")
	}
	claims := &AdminClaims{}
	keyFunc := func(*jwt.Token) (any, error) { return m.secret, nil }
	_, err := jwt.ParseWithClaims(token, claims, keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, unauthorized("token expired")
		}
		return nil, unauthorized("invalid token")
	}
	if !claims.IsAdmin || claims.Username == "" {
		return nil, unauthorized("invalid token")
	}
	return claims, nil
}

func unauthorized(msg string) error {
	return &AppError{Kind: ErrUnauthorized, Message: msg}
}

// LoginResult is returned to the admin UI after a successful login.
type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Username  string    `json:"username"`
}

// AuthService checks the single configured admin account.
type AuthService struct {
	tokens       *TokenManager
	username     string
	passwordHash []byte
	log          logrus.FieldLogger
}

func NewAuthService(tokens *TokenManager, username, passwordHash string, log logrus.FieldLogger) *AuthService {
	return &AuthService{
		tokens:       tokens,
		username:     username,
		passwordHash: []byte(passwordHash),
		log:          log.WithField("service", "auth"),
	}
}

// Login verifies the credentials against the bcrypt hash and issues a token.
func (s *AuthService) Login(_ context.Context, in models.LoginPayload) (*LoginResult, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	userOK := subtle.ConstantTimeCompare([]byte(in.Username), []byte(s.username)) == 1
	// bcrypt runs even when the username is wrong.
	passErr := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(in.Password))
	if !userOK || passErr != nil {
		s.log.WithField("username", in.Username).Warn("Admin login rejected")
		return nil, unauthorized("invalid username or password")
	}

	token, exp, err := s.tokens.Issue(s.username)
	if err != nil {
		return nil, err
	}
	s.log.WithField("username", s.username).Info("Admin logged in")
	return &LoginResult{Token: token, ExpiresAt: exp, Username: s.username}, nil
}

// Verify exposes token verification to the HTTP middleware.
func (s *AuthService) Verify(token string) (*AdminClaims, error) {
	return s.tokens.Verify(token)
}
