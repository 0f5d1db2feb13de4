package password

import "testing"

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("secret-password")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if hash == "secret-password" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !Verify("secret-password", hash) {
		t.Fatal("correct password rejected")
	}
	if Verify("wrong-password", hash) {
		t.Fatal("wrong password accepted")
	}
}

func TestHashToken(t *testing.T) {
	a := HashToken("some-refresh-token")
	b := HashToken("some-refresh-token")
	c := HashToken("other-token")

	if a != b {
		t.Fatal("same token must hash to the same digest")
	}
	if a == c {
		t.Fatal("different tokens must not collide")
	}
	if len(a) != 64 {
		t.Fatalf("digest length = %d, want 64 hex chars", len(a))
	}
}

func TestValidate(t *testing.T) {
	if Validate("short") {
		t.Fatal("password below minimum length accepted")
	}
	if !Validate("longenough") {
		t.Fatal("valid password rejected")
	}
}
