package simd

import "testing"

func TestMemchrDigitAt(t *testing.T) {
	tests := []struct {
		name     string
		haystack string
		at       int
		want     int
	}{
		{"empty", "", 0, -1},
		{"no digit", "hello world", 0, -1},
		{"leading digit", "9abc", 0, 0},
		{"digit mid string", "abc123", 0, 3},
		{"at past digit", "123abc", 1, 1},
		{"at skips non-digit to next digit", "1a2b3c", 3, 4},
		{"at beyond length", "123", 10, -1},
		{"negative at clamps to zero", "5x", -3, 0},
		{"digit at chunk boundary", "abcdefg8", 0, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MemchrDigitAt([]byte(tt.haystack), tt.at)
			if got != tt.want {
				t.Errorf("MemchrDigitAt(%q, %d) = %d, want %d", tt.haystack, tt.at, got, tt.want)
			}
		})
	}
}

func TestMemchrAlnumAt(t *testing.T) {
	tests := []struct {
		name     string
		haystack string
		at       int
		want     int
	}{
		{"empty", "", 0, -1},
		{"no alnum", "   !!!  ", 0, -1},
		{"leading letter", "xyz", 0, 0},
		{"underscore counts", "   _tail", 0, 3},
		{"digit counts", "---9---", 0, 3},
		{"at past match", "ab cd", 1, 1},
		{"at skips to next word", "ab cd", 2, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MemchrAlnumAt([]byte(tt.haystack), tt.at)
			if got != tt.want {
				t.Errorf("MemchrAlnumAt(%q, %d) = %d, want %d", tt.haystack, tt.at, got, tt.want)
			}
		})
	}
}

func TestIsASCII(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  bool
	}{
		{"empty", nil, true},
		{"ascii short", []byte("hello"), true},
		{"ascii 8 bytes", []byte("12345678"), true},
		{"non-ascii first byte", append([]byte{0x80}, []byte("1234567")...), false},
		{"non-ascii last byte", append([]byte("1234567"), 0x80), false},
		{"non-ascii mid chunk", []byte("123\x80567"), false},
		{"non-ascii tail after full chunks", append([]byte("0123456789abcdef"), 0x80), false},
		{"del is ascii", []byte{0x7F}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsASCII(tt.input); got != tt.want {
				t.Errorf("IsASCII(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
