package security

import "testing"

func TestHashPasswordNeverStoresPlaintext(t *testing.T) {
	hash, err := HashPassword("pw123456", 10)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "pw123456" {
		t.Fatal("hash equals the plaintext password")
	}
	if !VerifyPassword(hash, "pw123456") {
		t.Fatal("correct password failed verification")
	}
	if VerifyPassword(hash, "pw1234567") {
		t.Fatal("wrong password passed verification")
	}
	if VerifyPassword(hash, "") {
		t.Fatal("empty password passed verification")
	}
}

func TestHashPasswordSaltsEachHash(t *testing.T) {
	a, err := HashPassword("pw123456", 10)
	if err != nil {
		t.Fatalf("hash a: %v", err)
	}
	b, err := HashPassword("pw123456", 10)
	if err != nil {
		t.Fatalf("hash b: %v", err)
	}
	if a == b {
		t.Fatal("two hashes of the same password are identical, salt missing")
	}
}

func TestHashPasswordRejectsBadCost(t *testing.T) {
	if _, err := HashPassword("pw123456", 99); err == nil {
		t.Fatal("expected out-of-range cost to be rejected")
	}
}

func TestNewResetTokenShapeAndEntropy(t *testing.T) {
	a, err := NewResetToken()
	if err != nil {
		t.Fatalf("generate a: %v", err)
	}
	if len(a) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(a))
	}
	b, err := NewResetToken()
	if err != nil {
		t.Fatalf("generate b: %v", err)
	}
	if a == b {
		t.Fatal("two reset tokens are identical")
	}
}
