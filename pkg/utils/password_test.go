package utils

import "testing"

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "correct horse" {
		t.Fatal("password stored in the clear")
	}

	if !CheckPasswordHash("correct horse", hash) {
		t.Error("correct password rejected")
	}
	if CheckPasswordHash("wrong horse", hash) {
		t.Error("wrong password accepted")
	}
	if CheckPasswordHash("correct horse", "not-a-hash") {
		t.Error("garbage hash accepted")
	}
}
