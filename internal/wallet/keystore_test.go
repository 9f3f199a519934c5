package wallet

import (
	"bytes"
	"testing"
)

// testEncryptionParams keeps Argon2id cheap enough for the test suite.
func testEncryptionParams() EncryptionParams {
	return EncryptionParams{Memory: 1024, Iterations: 1, Parallelism: 1}
}

func TestEncryptDecrypt(t *testing.T) {
	data := []byte("the seed material")
	password := []byte("hunter2")

	encrypted, err := Encrypt(data, password, testEncryptionParams())
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if bytes.Contains(encrypted, data) {
		t.Fatal("ciphertext contains plaintext")
	}

	decrypted, err := Decrypt(encrypted, password)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if !bytes.Equal(decrypted, data) {
		t.Errorf("decrypted = %q, want %q", decrypted, data)
	}

	if _, err := Decrypt(encrypted, []byte("wrong")); err == nil {
		t.Error("wrong password accepted")
	}
	if _, err := Decrypt(encrypted[:10], password); err == nil {
		t.Error("truncated ciphertext accepted")
	}

	// Flipping a ciphertext byte must break authentication.
	corrupted := append([]byte(nil), encrypted...)
	corrupted[len(corrupted)-1] ^= 0xFF
	if _, err := Decrypt(corrupted, password); err == nil {
		t.Error("corrupted ciphertext accepted")
	}
}

func TestKeystore_CreateLoad(t *testing.T) {
	ks, err := NewKeystore(t.TempDir())
	if err != nil {
		t.Fatalf("NewKeystore: %v", err)
	}
	seed := testSeed()
	password := []byte("correct horse")

	if err := ks.Create("main", seed, password, testEncryptionParams()); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := ks.Create("main", seed, password, testEncryptionParams()); err == nil {
		t.Error("duplicate wallet name accepted")
	}

	loaded, err := ks.Load("main", password)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !bytes.Equal(loaded, seed) {
		t.Error("loaded seed differs from stored seed")
	}

	if _, err := ks.Load("main", []byte("wrong")); err == nil {
		t.Error("wrong password accepted")
	}
	if _, err := ks.Load("missing", password); err == nil {
		t.Error("missing wallet loaded")
	}
}

func TestKeystore_List(t *testing.T) {
	ks, err := NewKeystore(t.TempDir())
	if err != nil {
		t.Fatalf("NewKeystore: %v", err)
	}

	names, err := ks.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(names) != 0 {
		t.Fatalf("fresh keystore lists %v", names)
	}

	for _, name := range []string{"alpha", "beta"} {
		if err := ks.Create(name, testSeed(), []byte("pw"), testEncryptionParams()); err != nil {
			t.Fatalf("Create(%q): %v", name, err)
		}
	}
	names, err = ks.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(names) != 2 {
		t.Errorf("List = %v, want 2 wallets", names)
	}
}

func TestKeystore_NextIndex(t *testing.T) {
	ks, err := NewKeystore(t.TempDir())
	if err != nil {
		t.Fatalf("NewKeystore: %v", err)
	}
	if err := ks.Create("w", testSeed(), []byte("pw"), testEncryptionParams()); err != nil {
		t.Fatalf("Create: %v", err)
	}

	idx, err := ks.NextIndex("w")
	if err != nil {
		t.Fatalf("NextIndex: %v", err)
	}
	if idx != 0 {
		t.Fatalf("fresh wallet NextIndex = %d", idx)
	}

	if err := ks.AdvanceIndex("w"); err != nil {
		t.Fatalf("AdvanceIndex: %v", err)
	}
	idx, err = ks.NextIndex("w")
	if err != nil {
		t.Fatalf("NextIndex: %v", err)
	}
	if idx != 1 {
		t.Errorf("NextIndex after advance = %d, want 1", idx)
	}
}

func TestKeystore_Delete(t *testing.T) {
	ks, err := NewKeystore(t.TempDir())
	if err != nil {
		t.Fatalf("NewKeystore: %v", err)
	}
	if err := ks.Create("w", testSeed(), []byte("pw"), testEncryptionParams()); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := ks.Delete("w"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := ks.Delete("w"); err == nil {
		t.Error("double delete succeeded")
	}
	if _, err := ks.Load("w", []byte("pw")); err == nil {
		t.Error("deleted wallet still loads")
	}
}
