package hash

import (
	"strings"
	"testing"
)

func TestHashVerify_RoundTrip(t *testing.T) {
	h := NewBcryptHasher()

	digest, err := h.Hash("secreto123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if digest == "secreto123" || digest == "" {
		t.Fatalf("digest must not echo the plaintext")
	}
	if !strings.HasPrefix(digest, "$2") {
		t.Fatalf("unexpected digest format %q", digest)
	}

	if !h.Verify("secreto123", digest) {
		t.Fatalf("correct password must verify")
	}
	if h.Verify("incorrecta", digest) {
		t.Fatalf("wrong password must not verify")
	}
}

func TestHash_SaltsDiffer(t *testing.T) {
	h := NewBcryptHasher()

	a, err := h.Hash("secreto123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	b, err := h.Hash("secreto123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if a == b {
		t.Fatalf("two hashes of the same password must not match")
	}
}

func TestVerify_GarbageDigest(t *testing.T) {
	h := NewBcryptHasher()

	if h.Verify("secreto123", "not-a-bcrypt-digest") {
		t.Fatalf("garbage digest must not verify")
	}
	if h.Verify("secreto123", "") {
		t.Fatalf("empty digest must not verify")
	}
}
