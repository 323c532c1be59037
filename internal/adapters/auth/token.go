package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"eventrsvp/internal/domain"
)

type jwtClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

type jwtCodec struct {
	secret []byte
}

// NewJWTCodec returns a TokenIssuer/TokenVerifier pair backed by HS256 JWTs
// signed with the given secret.
func NewJWTCodec(secret string) interface {
	domain.TokenIssuer
	domain.TokenVerifier
} {
	return &jwtCodec{secret: []byte(secret)}
}

func (c *jwtCodec) Issue(userID int64, email string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
		Email: email,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

func (c *jwtCodec) Verify(tokenString string) (int64, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwtClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		return 0, fmt.Errorf("invalid token: %w", err)
	}
	claims, ok := token.Claims.(*jwtClaims)
	if !ok || !token.Valid {
		return 0, fmt.Errorf("invalid token claims")
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid subject: %w", err)
	}
	return userID, nil
}
