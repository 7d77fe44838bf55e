package utils

import (
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestMain(m *testing.M) {
	_ = os.Setenv("JWT_SECRET", "devconnector_test_jwt_secret_key_1234567890")
	os.Exit(m.Run())
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(42)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("expected user 42, got %d", claims.UserID)
	}
}

func TestGenerateTokenRejectsInvalidUser(t *testing.T) {
	if _, err := GenerateToken(0); err == nil {
		t.Fatal("expected error for user id 0")
	}
	if _, err := GenerateToken(-1); err == nil {
		t.Fatal("expected error for negative user id")
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	for _, token := range []string{"", "   ", "not.a.token"} {
		if _, err := ValidateToken(token); err == nil {
			t.Fatalf("expected error for token %q", token)
		}
	}
}

func signTestToken(t *testing.T, claims Claims) string {
	t.Helper()
	secret, err := getJWTSecret()
	if err != nil {
		t.Fatalf("getJWTSecret: %v", err)
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		t.Fatalf("SignedString: %v", err)
	}
	return signed
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	past := time.Now().Add(-2 * time.Hour)
	token := signTestToken(t, Claims{
		UserID: 42,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(42),
			Issuer:    jwtIssuer,
			IssuedAt:  jwt.NewNumericDate(past),
			NotBefore: jwt.NewNumericDate(past),
			ExpiresAt: jwt.NewNumericDate(past.Add(time.Hour)),
		},
	})

	if _, err := ValidateToken(token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestValidateTokenRejectsWrongIssuer(t *testing.T) {
	now := time.Now()
	token := signTestToken(t, Claims{
		UserID: 42,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(42),
			Issuer:    "someone-else",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	})

	if _, err := ValidateToken(token); err == nil {
		t.Fatal("expected token with wrong issuer to be rejected")
	}
}
