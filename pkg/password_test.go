package pkg

import "testing"

func TestPasswordHashing(t *testing.T) {
	hash, err := GeneratePassword("Login2025*")
	if err != nil {
		t.Fatalf("GeneratePassword failed: %v", err)
	}
	if hash == "Login2025*" {
		t.Fatal("hash must not be the plaintext")
	}
	if !ComparePassword(hash, "Login2025*") {
		t.Error("hash should verify against the original password")
	}
	if ComparePassword(hash, "wrong") {
		t.Error("hash must not verify against a different password")
	}

	other, _ := GeneratePassword("Login2025*")
	if other == hash {
		t.Error("each hash must use its own salt")
	}
}
