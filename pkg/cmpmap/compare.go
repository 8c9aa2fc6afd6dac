package cmpmap

import (
	"bytes"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/exp/constraints"
)

// CompareStrings compares strings lexicographically byte by byte.
func CompareStrings(a, b string) int { return strings.Compare(a, b) }

// CompareStringsFold compares strings ignoring case.
// Case is folded rune by rune, no memory is allocated.
// Bytes that aren't valid UTF-8 are compared as is.
func CompareStringsFold(a, b string) int {
	for a != "" && b != "" {
		ra, sa := decodeRune(a)
		rb, sb := decodeRune(b)
		ia, ib := ra == utf8.RuneError && sa == 1, rb == utf8.RuneError && sb == 1
		if ia || ib {
			switch {
			case a[0] < b[0]:
				return -1
			case a[0] > b[0]:
				return 1
			case ia && !ib:
				return -1
			case ib && !ia:
				return 1
			}
			a, b = a[1:], b[1:]
			continue
		}
		a, b = a[sa:], b[sb:]
		if ra == rb {
			continue
		}
		if ra, rb = unicode.ToLower(ra), unicode.ToLower(rb); ra != rb {
			if ra < rb {
				return -1
			}
			return 1
		}
	}
	switch {
	case a == "" && b == "":
		return 0
	case a == "":
		return -1
	}
	return 1
}

func decodeRune(s string) (rune, int) {
	if c := s[0]; c < utf8.RuneSelf {
		return rune(c), 1
	}
	return utf8.DecodeRuneInString(s)
}

// CompareBytes compares byte slices by content.
func CompareBytes(a, b []byte) int { return bytes.Compare(a, b) }

// CompareInts returns 0 if a == b, otherwise -1.
func CompareInts[T constraints.Signed](a, b T) int { return eq(a == b) }

// CompareUints returns 0 if a == b, otherwise -1.
func CompareUints[T constraints.Unsigned](a, b T) int { return eq(a == b) }

// CompareFloats returns 0 if a == b, otherwise -1.
// NaN is never equal to anything, including itself.
func CompareFloats[T constraints.Float](a, b T) int { return eq(a == b) }

// CompareFloat32 is CompareFloats for float32 keys.
func CompareFloat32(a, b float32) int { return CompareFloats(a, b) }

// CompareFloat64 is CompareFloats for float64 keys.
func CompareFloat64(a, b float64) int { return CompareFloats(a, b) }

// ComparePointers returns 0 if a and b point to the same address,
// otherwise -1. The pointed-to values are never read.
func ComparePointers[T any](a, b *T) int { return eq(a == b) }

// CompareComparable returns 0 if a == b, otherwise -1.
func CompareComparable[T comparable](a, b T) int { return eq(a == b) }

func eq(equal bool) int {
	if equal {
		return 0
	}
	return -1
}
