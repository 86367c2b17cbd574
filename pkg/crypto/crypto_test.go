package crypto

import (
	"strings"
	"testing"
)

func TestGenerateCode(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		code, err := GenerateCode("ART-", 8)
		if err != nil {
			t.Fatalf("GenerateCode() error = %v", err)
		}
		if !strings.HasPrefix(code, "ART-") || len(code) != 12 {
			t.Fatalf("GenerateCode() = %q, want ART- plus 8 chars", code)
		}
		for _, r := range strings.TrimPrefix(code, "ART-") {
			if !strings.ContainsRune(CodeAlphabet, r) {
				t.Fatalf("GenerateCode() = %q contains %q outside the alphabet", code, r)
			}
		}
		seen[code] = struct{}{}
	}
	if len(seen) < 45 {
		t.Errorf("only %d distinct codes out of 50", len(seen))
	}
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("correct horse")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if !CheckPassword("correct horse", hash) {
		t.Error("CheckPassword() = false for the right password")
	}
	if CheckPassword("wrong", hash) {
		t.Error("CheckPassword() = true for the wrong password")
	}
}
