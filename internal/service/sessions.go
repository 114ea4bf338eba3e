package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"back2u/internal/cache"
	"back2u/internal/common"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	DefaultSessionTTL = 24 * time.Hour
	revokedKeyPrefix  = "session:revoked:"
)

var (
	timeNow         = time.Now
	parseWithClaims = jwt.ParseWithClaims
	newTokenID      = uuid.NewString
)

var (
	errNoSession      = common.Newf(common.ErrUnauthenticated, "authentication required")
	errInvalidSession = common.Newf(common.ErrUnauthenticated, "invalid or expired session")
	errRevokedSession = common.Newf(common.ErrUnauthenticated, "session has been revoked")
)

// SessionClaims is the JWT payload of a login session.
type SessionClaims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// Sessions issues and verifies HS256 session tokens. Revoked token ids are
// kept in Cache until the token would have expired anyway.
type Sessions struct {
	Secret []byte
	TTL    time.Duration
	Cache  cache.Cache
}

func (s *Sessions) ttl() time.Duration {
	if s.TTL <= 0 {
		return DefaultSessionTTL
	}
	return s.TTL
}

// Issue signs a new token for userID.
func (s *Sessions) Issue(userID string) (string, error) {
	if len(s.Secret) == 0 {
		return "", errors.New("session secret not configured")
	}
	now := timeNow()
	claims := SessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        newTokenID(),
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl())),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
}

func (s *Sessions) parse(token string) (*SessionClaims, error) {
	if token == "" {
		return nil, errNoSession
	}
	tok, err := parseWithClaims(token, &SessionClaims{}, func(*jwt.Token) (interface{}, error) {
		return s.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(timeNow),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidSession, err)
	}
	claims, ok := tok.Claims.(*SessionClaims)
	if !ok || !tok.Valid || claims.UserID == "" || claims.ID == "" {
		return nil, errInvalidSession
	}
	return claims, nil
}

// Verify returns the claims of a valid, unrevoked token. A failing
// revocation lookup rejects the token.
func (s *Sessions) Verify(ctx context.Context, token string) (*SessionClaims, error) {
	claims, err := s.parse(token)
	if err != nil {
		return nil, err
	}
	if s.Cache == nil {
		return claims, nil
	}
	n, err := s.Cache.Exists(ctx, revokedKeyPrefix+claims.ID).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: revocation lookup: %v", errInvalidSession, err)
	}
	if n > 0 {
		return nil, errRevokedSession
	}
	return claims, nil
}

// Revoke denies token for the rest of its lifetime. Tokens that are already
// invalid need no revocation and are ignored.
func (s *Sessions) Revoke(ctx context.Context, token string) error {
	claims, err := s.parse(token)
	if err != nil || s.Cache == nil {
		return nil
	}
	remaining := claims.ExpiresAt.Time.Sub(timeNow())
	if remaining <= 0 {
		return nil
	}
	if err := s.Cache.Set(ctx, revokedKeyPrefix+claims.ID, 1, remaining).Err(); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}
