package utils

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestCheckPasswordRoundTrip(t *testing.T) {
	h, err := HashPassword("s3cret", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if h == "s3cret" {
		t.Fatalf("hash must not equal the secret")
	}
	if !CheckPassword(h, "s3cret") {
		t.Fatalf("expected matching password to verify")
	}
	if CheckPassword(h, "s3cret ") {
		t.Fatalf("expected wrong password to fail")
	}
}

func TestHashIsSalted(t *testing.T) {
	a, _ := HashPassword("p", bcrypt.MinCost)
	b, _ := HashPassword("p", bcrypt.MinCost)
	if a == b {
		t.Fatalf("two hashes of the same secret should differ")
	}
}

func TestCheckPasswordMalformedDigest(t *testing.T) {
	for _, digest := range []string{"", "not-a-hash", "$2a$04$short"} {
		if CheckPassword(digest, "p") {
			t.Fatalf("malformed digest %q verified", digest)
		}
	}
}
