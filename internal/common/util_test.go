package common

import (
	"encoding/hex"
	"strings"
	"testing"
)

// ---------- MakeRandHexString ----------

func TestMakeRandHexString_LengthAndHex(t *testing.T) {
	const n = 16
	s, err := MakeRandHexString(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s) != n*2 {
		t.Fatalf("expected hex length %d, got %d", n*2, len(s))
	}
	if _, err := hex.DecodeString(s); err != nil {
		t.Fatalf("string is not valid hex: %v", err)
	}
}

func TestMakeRandHexString_ZeroSize(t *testing.T) {
	s, err := MakeRandHexString(0)
	if err != nil {
		t.Fatalf("unexpected error for size=0: %v", err)
	}
	if s != "" {
		t.Fatalf("expected empty string for size=0, got %q", s)
	}
}

// ---------- GenerateRandByteArray ----------

func TestGenerateRandByteArray_Basic(t *testing.T) {
	const n = 32
	buf := GenerateRandByteArray(n)
	if len(buf) != n {
		t.Fatalf("expected length %d, got %d", n, len(buf))
	}
}

// ---------- MakeInviteCode ----------

func TestMakeInviteCode_LengthAndAlphabet(t *testing.T) {
	code, err := MakeInviteCode(6, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(code) != 6 {
		t.Fatalf("expected length 6, got %d (%q)", len(code), code)
	}
	for _, c := range code {
		if !strings.ContainsRune(inviteAlphabet, c) {
			t.Fatalf("character %q not in invite alphabet", c)
		}
	}
}

func TestMakeInviteCode_Prefix(t *testing.T) {
	code, err := MakeInviteCode(6, "gym")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(code, "GYM") {
		t.Fatalf("expected uppercased prefix, got %q", code)
	}
	if len(code) != 9 {
		t.Fatalf("expected length 9, got %d", len(code))
	}
}

// ---------- NormalizeInviteCode ----------

func TestNormalizeInviteCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ab12cd", "AB12CD"},
		{"  AB 12 CD  ", "AB12CD"},
		{"https://example.com/#token=ab12cd", "AB12CD"},
		{"#token=AB12CD", "AB12CD"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeInviteCode(tt.in); got != tt.want {
			t.Errorf("NormalizeInviteCode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
