// Package auth implements bearer-token authentication: issuing and
// verifying the signed access/refresh token pair, and the middleware
// that resolves the Authorization header into the request's actor.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/huddlehq/huddle/internal/app/system/apperr"
	"github.com/huddlehq/huddle/internal/app/system/httpjson"
	"github.com/huddlehq/huddle/internal/domain/models"
	"go.uber.org/zap"
)

// Default token lifetimes.
const (
	DefaultAccessTTL  = 15 * time.Minute
	DefaultRefreshTTL = 7 * 24 * time.Hour
)

// Actor is the authenticated identity threaded into every workflow call.
type Actor struct {
	ID    string
	Name  string
	Email string
	Role  string
}

// Claims is the JWT payload carried by both access and refresh tokens.
type Claims struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// TokenPair holds a freshly issued access and refresh token.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

var errInvalidToken = errors.New("invalid or expired token")

// TokenManager issues and verifies HS256-signed tokens.
type TokenManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenManager builds a TokenManager. Zero TTLs fall back to the
// defaults.
func NewTokenManager(secret string, accessTTL, refreshTTL time.Duration) *TokenManager {
	if accessTTL <= 0 {
		accessTTL = DefaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = DefaultRefreshTTL
	}
	return &TokenManager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// IssuePair signs a new access/refresh token pair for u. The refresh
// token carries only the subject; callers persist it on the user record
// so it can be matched and rotated.
func (tm *TokenManager) IssuePair(u *models.User) (TokenPair, error) {
	now := time.Now()

	access, err := tm.sign(Claims{
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.Hex(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.accessTTL)),
		},
	})
	if err != nil {
		return TokenPair{}, err
	}

	refresh, err := tm.sign(Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.Hex(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.refreshTTL)),
		},
	})
	if err != nil {
		return TokenPair{}, err
	}

	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (tm *TokenManager) sign(c Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(tm.secret)
}

// Verify parses and validates a token string, returning its claims.
func (tm *TokenManager) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{},
		func(t *jwt.Token) (any, error) { return tm.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !token.Valid {
		return nil, errInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || claims.Subject == "" {
		return nil, errInvalidToken
	}
	return claims, nil
}

type ctxKey string

const actorKey ctxKey = "actor"

// CurrentActor returns the actor set by RequireBearer (or a test
// helper) and a found flag.
func CurrentActor(r *http.Request) (*Actor, bool) {
	a, ok := r.Context().Value(actorKey).(*Actor)
	return a, ok
}

// WithActor injects an actor into the request context. Exposed for
// handler tests.
func WithActor(r *http.Request, a *Actor) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), actorKey, a))
}

// RequireBearer verifies the Authorization header and injects the actor
// into the request context. Requests without a valid bearer token get a
// 401 envelope.
func (tm *TokenManager) RequireBearer(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				httpjson.Error(w, log, apperr.Unauthorized("missing Authorization header"))
				return
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				httpjson.Error(w, log, apperr.Unauthorized("invalid Authorization header format"))
				return
			}

			claims, err := tm.Verify(parts[1])
			if err != nil {
				log.Warn("token validation failed", zap.Error(err))
				httpjson.Error(w, log, apperr.Unauthorized("invalid or expired token"))
				return
			}

			actor := &Actor{
				ID:    claims.Subject,
				Name:  claims.Name,
				Email: claims.Email,
				Role:  claims.Role,
			}
			next.ServeHTTP(w, WithActor(r, actor))
		})
	}
}
