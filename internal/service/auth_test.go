package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}
	return token
}

func TestVerify_ValidToken(t *testing.T) {
	auther := NewAuthService(testSecret)
	token := signToken(t, testSecret, jwt.MapClaims{
		"id":  "64f0c2a1b9d3e8f4a1b2c3d4",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	claims, err := auther.Verify(token)
	if err != nil {
		t.Fatalf("Verify() failed: %v", err)
	}
	if claims.UserID != "64f0c2a1b9d3e8f4a1b2c3d4" {
		t.Errorf("UserID = %q, want the id claim", claims.UserID)
	}
}

func TestVerify_MissingToken(t *testing.T) {
	auther := NewAuthService(testSecret)

	_, err := auther.Verify("")
	if !errors.Is(err, ErrTokenMissing) {
		t.Errorf("Verify(\"\") error = %v, want ErrTokenMissing", err)
	}
}

func TestVerify_RejectsBadTokens(t *testing.T) {
	auther := NewAuthService(testSecret)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-jwt"},
		{"wrong secret", signToken(t, "other-secret", jwt.MapClaims{
			"id": "u1", "exp": time.Now().Add(time.Hour).Unix(),
		})},
		{"expired", signToken(t, testSecret, jwt.MapClaims{
			"id": "u1", "exp": time.Now().Add(-time.Hour).Unix(),
		})},
		{"no id claim", signToken(t, testSecret, jwt.MapClaims{
			"sub": "u1", "exp": time.Now().Add(time.Hour).Unix(),
		})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := auther.Verify(tt.token); !errors.Is(err, ErrTokenInvalid) {
				t.Errorf("Verify() error = %v, want ErrTokenInvalid", err)
			}
		})
	}
}

func TestVerify_RejectsUnexpectedAlgorithm(t *testing.T) {
	auther := NewAuthService(testSecret)

	// alg=none is never acceptable, whatever the payload says.
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"id": "u1",
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("building none-alg token: %v", err)
	}

	if _, err := auther.Verify(token); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("Verify(none-alg) error = %v, want ErrTokenInvalid", err)
	}
}
