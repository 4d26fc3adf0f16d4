package util

import (
	"strings"
	"testing"
)

func TestGenerateRoomCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		code := GenerateRoomCode()
		if len(code) != RoomCodeLength {
			t.Fatalf("expected %d-char code, got %q", RoomCodeLength, code)
		}
		if !IsValidRoomCode(code) {
			t.Fatalf("generated code %q fails its own validation", code)
		}
		seen[code] = true
	}
	// 1000 次生成全部相同几乎不可能
	if len(seen) < 2 {
		t.Fatalf("expected varied codes, got %d distinct", len(seen))
	}
}

func TestIsValidRoomCode(t *testing.T) {
	cases := []struct {
		code  string
		valid bool
	}{
		{"AB2C3", true},
		{"abcde", false},
		{"AB2C", false},
		{"AB2C3X", false},
		{"AB0C3", false}, // 0 不在字符集中
		{"", false},
	}
	for _, tc := range cases {
		if got := IsValidRoomCode(tc.code); got != tc.valid {
			t.Errorf("IsValidRoomCode(%q) = %v, want %v", tc.code, got, tc.valid)
		}
	}
}

func TestRoomCodeCharsetExcludesAmbiguous(t *testing.T) {
	for _, r := range "0O1IL" {
		if strings.ContainsRune(roomCodeCharset, r) {
			t.Errorf("charset should not contain ambiguous %q", r)
		}
	}
}
