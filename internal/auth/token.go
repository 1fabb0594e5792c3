package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"inkwell/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTokenTTL is the session token lifetime used when the configuration
// does not supply one.
const DefaultTokenTTL = 30 * 24 * time.Hour

var (
	// ErrTokenExpired is returned by Verify for structurally valid tokens
	// whose exp claim has passed.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid is returned by Verify for malformed tokens, bad
	// signatures, or unexpected signing methods.
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims is the claim set carried in a session token.
type Claims struct {
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
	jwt.RegisteredClaims
}

// UserID parses the subject claim back into the numeric user ID.
func (c *Claims) UserID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("parse subject %q: %w", c.Subject, err)
	}
	return uint(id), nil
}

// TokenManager issues and verifies HS256-signed session tokens. The signing
// secret is injected at construction and read-only afterwards.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager returns a TokenManager signing with secret. A non-positive
// ttl falls back to DefaultTokenTTL.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Issue creates a signed token for the given identity.
func (m *TokenManager) Issue(userID uint, username string, role models.Role) (string, error) {
	if len(m.secret) == 0 {
		return "", fmt.Errorf("signing secret not configured")
	}

	now := time.Now()
	claims := Claims{
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        generateJTI(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify checks the token's signature and expiry and returns its claims.
// Expiry is reported as ErrTokenExpired, everything else as ErrTokenInvalid;
// both render as 401 at the HTTP surface.
func (m *TokenManager) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}
	if !claims.Role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrTokenInvalid, claims.Role)
	}
	return claims, nil
}

// generateJTI creates a unique token ID to make issued tokens distinguishable.
func generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}
