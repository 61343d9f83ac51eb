package keys

import (
	"bytes"
	"math/rand"
	"testing"
)

func TestParsePrivateKey(t *testing.T) {
	key, err := GenerateECDSAKey()
	if err != nil {
		t.Fatalf("err: %v", err)
	}

	dump := DumpPrivateKey(key)

	parsed, err := ParsePrivateKey(dump)
	if err != nil {
		t.Fatalf("err: %v", err)
	}

	if parsed.D.Cmp(key.D) != 0 {
		t.Fatalf("parsed D should be %v, not %v", key.D, parsed.D)
	}

	if parsed.PublicKey.X.Cmp(key.PublicKey.X) != 0 ||
		parsed.PublicKey.Y.Cmp(key.PublicKey.Y) != 0 {
		t.Fatalf("parsed public key does not match")
	}
}

func TestGenerateECDSAKeyFromReader(t *testing.T) {
	key1, err := GenerateECDSAKeyFromReader(rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("err: %v", err)
	}

	key2, err := GenerateECDSAKeyFromReader(rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("err: %v", err)
	}

	if key1.D.Cmp(key2.D) != 0 {
		t.Fatalf("same reader seed should produce the same key")
	}

	key3, err := GenerateECDSAKeyFromReader(rand.New(rand.NewSource(43)))
	if err != nil {
		t.Fatalf("err: %v", err)
	}

	if key1.D.Cmp(key3.D) == 0 {
		t.Fatalf("different reader seeds should produce different keys")
	}
}

func TestPublicKeyRoundTrip(t *testing.T) {
	key, err := GenerateECDSAKey()
	if err != nil {
		t.Fatalf("err: %v", err)
	}

	pubBytes := FromPublicKey(&key.PublicKey)
	if len(pubBytes) == 0 {
		t.Fatalf("FromPublicKey returned empty bytes")
	}

	pub := ToPublicKey(pubBytes)
	if pub.X.Cmp(key.PublicKey.X) != 0 || pub.Y.Cmp(key.PublicKey.Y) != 0 {
		t.Fatalf("public key round trip failed")
	}

	if !bytes.Equal(FromPublicKey(pub), pubBytes) {
		t.Fatalf("public key bytes round trip failed")
	}
}

func TestPublicKeyID(t *testing.T) {
	key, err := GenerateECDSAKey()
	if err != nil {
		t.Fatalf("err: %v", err)
	}

	pubBytes := FromPublicKey(&key.PublicKey)

	id1 := PublicKeyID(pubBytes)
	id2 := PublicKeyID(pubBytes)

	if id1 != id2 {
		t.Fatalf("PublicKeyID should be deterministic; got %d and %d", id1, id2)
	}
}
