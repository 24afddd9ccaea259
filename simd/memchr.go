// Package simd provides small ASCII-only byte scans used by package
// prefilter to find candidate match offsets before the full
// backtracking matcher runs.
//
// This is a scaled-down sibling of coregx-coregex/simd: that package
// gates hand-written AVX2/SSE assembly on golang.org/x/sys/cpu feature
// flags and processes many bytes per iteration. Grep input here is a
// single line at a time, not a multi-megabyte haystack, so an assembly
// kernel buys nothing, and a per-byte predicate (is this a digit? is
// this a word char?) can't be tested against a whole 8-byte word at
// once the way a single fixed byte value can — every byte in the chunk
// still has to be checked individually, so there is nothing to gate on
// a CPU feature flag for MemchrDigitAt/MemchrAlnumAt.
//
// IsASCII is the one query in this package that genuinely vectorizes:
// "does any byte have its high bit set" is a single fixed bitmask test
// applied uniformly to 8 bytes at once, the same 8-byte SWAR technique
// coregx-coregex/simd/ascii_generic.go uses.
package simd

import "encoding/binary"

// MemchrDigitAt returns the index of the first ASCII digit '0'-'9' at or
// after position at in haystack, or -1 if none exists.
func MemchrDigitAt(haystack []byte, at int) int {
	return scanAt(haystack, at, isDigitByte)
}

// MemchrAlnumAt returns the index of the first ASCII letter, digit, or
// underscore at or after position at in haystack, or -1 if none exists.
func MemchrAlnumAt(haystack []byte, at int) int {
	return scanAt(haystack, at, isWordByte)
}

func scanAt(haystack []byte, at int, pred func(byte) bool) int {
	if at < 0 {
		at = 0
	}
	for i := at; i < len(haystack); i++ {
		if pred(haystack[i]) {
			return i
		}
	}
	return -1
}

func isDigitByte(b byte) bool {
	return b >= '0' && b <= '9'
}

func isWordByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9') || b == '_'
}

const hiBitMask = uint64(0x8080808080808080)

// IsASCII reports whether data contains no byte >= 0x80, using the same
// 8-byte SWAR technique as coregx-coregex/simd/ascii_generic.go.
func IsASCII(data []byte) bool {
	idx := 0
	for idx+8 <= len(data) {
		if binary.LittleEndian.Uint64(data[idx:])&hiBitMask != 0 {
			return false
		}
		idx += 8
	}
	for ; idx < len(data); idx++ {
		if data[idx] >= 0x80 {
			return false
		}
	}
	return true
}
