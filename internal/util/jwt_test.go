package util

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT(42, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	userID, err := ParseJWT(token, testSecret)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if userID != 42 {
		t.Errorf("user id = %d, want 42", userID)
	}
}

func TestParseJWTExpired(t *testing.T) {
	token, err := GenerateJWT(42, testSecret, -time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := ParseJWT(token, testSecret); !errors.Is(err, jwt.ErrTokenExpired) {
		t.Errorf("want ErrTokenExpired, got %v", err)
	}
}

func TestParseJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT(42, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := ParseJWT(token, "other-secret"); err == nil {
		t.Error("token signed with another secret should be rejected")
	}
}

func TestParseJWTRejectsUnsignedToken(t *testing.T) {
	claims := Claims{
		UserID: 42,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := ParseJWT(token, testSecret); err == nil {
		t.Error("none-algorithm token should be rejected")
	}
}

func TestParseJWTRejectsForeignIssuer(t *testing.T) {
	claims := Claims{
		UserID: 42,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := ParseJWT(token, testSecret); err == nil {
		t.Error("token from another issuer should be rejected")
	}
}

func TestExtractToken(t *testing.T) {
	cases := []struct {
		name   string
		header string
		want   string
	}{
		{"bearer", "Bearer abc", "abc"},
		{"lowercase scheme", "bearer abc", "abc"},
		{"missing header", "", ""},
		{"wrong scheme", "Basic abc", ""},
		{"no space", "Bearerabc", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := &http.Request{Header: http.Header{}}
			if tc.header != "" {
				r.Header.Set("Authorization", tc.header)
			}
			if got := ExtractToken(r); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}
