package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestIssueVerify_RoundTrip(t *testing.T) {
	secret := "test_secret"
	now := time.Unix(1700000000, 0)

	s, err := Issue("user-123", "driver", secret, now, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	got, err := Verify(s, secret, now.Add(time.Minute))
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if got.UserID != "user-123" {
		t.Fatalf("user id mismatch: %q", got.UserID)
	}
	if got.Role != "driver" {
		t.Fatalf("role mismatch: %q", got.Role)
	}
}

func TestVerify_Expired(t *testing.T) {
	secret := "test_secret"
	now := time.Unix(1700000000, 0)

	s, err := Issue("user-123", "client", secret, now, time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := Verify(s, secret, now.Add(2*time.Minute)); err == nil {
		t.Fatalf("expected expiry error")
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	now := time.Unix(1700000000, 0)
	s, err := Issue("user-123", "client", "secret-a", now, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := Verify(s, "secret-b", now); err == nil {
		t.Fatalf("expected signature error")
	}
}

func TestVerify_RejectsUnexpectedAlg(t *testing.T) {
	now := time.Unix(1700000000, 0)
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-123",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := Verify(unsigned, "secret", now); err == nil {
		t.Fatalf("expected alg rejection")
	}
}
