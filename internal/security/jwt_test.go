package security

import (
	"strings"
	"testing"
	"time"
)

func newJWTManagerForTest() *JWTManager {
	return NewJWTManager("my-campus-hub", "abcdefghijklmnopqrstuvwxyz123456")
}

func TestJWTSignAndParseRoundTrip(t *testing.T) {
	m := newJWTManagerForTest()
	token, err := m.Sign(42, "alice@x.com", time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	claims, err := m.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	id, err := claims.UserID()
	if err != nil {
		t.Fatalf("user id: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected user id 42, got %d", id)
	}
	if claims.Email != "alice@x.com" {
		t.Fatalf("unexpected email claim %q", claims.Email)
	}
	if claims.ID == "" {
		t.Fatal("expected a jti claim")
	}
}

func TestJWTEveryIssuanceIsDistinct(t *testing.T) {
	m := newJWTManagerForTest()
	a, err := m.Sign(1, "a@x.com", time.Hour)
	if err != nil {
		t.Fatalf("sign a: %v", err)
	}
	b, err := m.Sign(1, "a@x.com", time.Hour)
	if err != nil {
		t.Fatalf("sign b: %v", err)
	}
	if a == b {
		t.Fatal("two issuances for the same user produced the same token string")
	}
}

func TestJWTTamperedTokenFails(t *testing.T) {
	m := newJWTManagerForTest()
	token, err := m.Sign(1, "a@x.com", time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %s", token)
	}
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]
	if _, err := m.Parse(tampered); err == nil {
		t.Fatal("expected tampered token to be rejected")
	}
}

func TestJWTWrongSecretFails(t *testing.T) {
	token, err := newJWTManagerForTest().Sign(1, "a@x.com", time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	other := NewJWTManager("my-campus-hub", "00000000000000000000000000000000")
	if _, err := other.Parse(token); err == nil {
		t.Fatal("expected token signed with a different secret to be rejected")
	}
}

func TestJWTExpiredByClaimFails(t *testing.T) {
	m := newJWTManagerForTest()
	token, err := m.Sign(1, "a@x.com", -time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := m.Parse(token); err == nil {
		t.Fatal("expected expired token to be rejected at parse time")
	}
}
