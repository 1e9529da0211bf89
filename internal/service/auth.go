package service

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Connection-level authentication failures. The wording is part of the
// client contract and must not change.
var (
	ErrTokenMissing = errors.New("Authentication Error: Token not provided.")
	ErrTokenInvalid = errors.New("Authentication Error: Invalid Token.")
)

// Claims is the decoded identity presented at connection-open time.
type Claims struct {
	UserID string
}

// Auther verifies the credential a client presents when opening the
// persistent channel. Verification shares secret and algorithm with the
// REST authentication layer.
type Auther interface {
	Verify(token string) (Claims, error)
}

type AuthService struct {
	secret []byte
}

func NewAuthService(secret string) *AuthService {
	return &AuthService{secret: []byte(secret)}
}

// Verify checks signature and expiry and extracts the stable user id from
// the "id" claim, as issued by the REST login endpoint. Any failure maps to
// one of the two fixed authentication errors; the connection attempt must
// terminate before it reaches the registry.
func (a *AuthService) Verify(token string) (Claims, error) {
	if token == "" {
		return Claims{}, ErrTokenMissing
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil || !parsed.Valid {
		return Claims{}, ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrTokenInvalid
	}
	id, ok := claims["id"].(string)
	if !ok || id == "" {
		return Claims{}, ErrTokenInvalid
	}

	return Claims{UserID: id}, nil
}
