package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/vidbrief/vidbrief-server/internal/model"
)

// Claims represents access-token claims with token type and user ID.
type Claims struct {
	jwt.RegisteredClaims
	UserID    uuid.UUID `json:"user_id"`
	TokenType string    `json:"typ"`
}

// JWT implements AccessTokenManager backed by symmetric HMAC. Refresh
// tokens are not JWTs; they are opaque values minted by NewOpaqueToken
// and persisted server-side.
type JWT struct {
	secretKey string
	accessTTL time.Duration
	now       func() time.Time
}

const typeAccess = "access"

// NewJWT creates a new JWT access-token manager with the provided secret
// key and access TTL.
func NewJWT(secretKey string, accessTTL time.Duration) *JWT {
	return &JWT{secretKey: secretKey, accessTTL: accessTTL, now: time.Now}
}

// GenerateAccessToken creates a short-lived signed access token.
func (j *JWT) GenerateAccessToken(userID uuid.UUID) (string, error) {
	now := j.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.accessTTL)),
		},
		UserID:    userID,
		TokenType: typeAccess,
	})

	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return tokenString, nil
}

// ParseAccessToken validates a token and extracts the user ID. Failures
// are reported as model.ErrTokenExpired, model.ErrTokenSignature or
// model.ErrTokenMalformed so callers can distinguish an expired token
// from garbage.
func (j *JWT) ParseAccessToken(tokenString string) (uuid.UUID, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	}, jwt.WithTimeFunc(j.now))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return uuid.Nil, model.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return uuid.Nil, model.ErrTokenSignature
		default:
			return uuid.Nil, fmt.Errorf("%w: %v", model.ErrTokenMalformed, err)
		}
	}
	if !token.Valid {
		return uuid.Nil, model.ErrTokenMalformed
	}
	if claims.TokenType != typeAccess {
		return uuid.Nil, fmt.Errorf("%w: token type mismatch", model.ErrTokenMalformed)
	}
	return claims.UserID, nil
}
