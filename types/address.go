package types

import "strings"

// AddressLength is the fixed width of a ledger identity: "0x" plus
// 40 hexadecimal characters.
const AddressLength = 42

// IsAddress reports whether s is a syntactically valid ledger identity.
func IsAddress(s string) bool {
	if len(s) != AddressLength {
		return false
	}
	if s[0] != '0' || (s[1] != 'x' && s[1] != 'X') {
		return false
	}
	for _, c := range s[2:] {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// NormalizeAddress maps an identity to its canonical (lowercase) form.
// All equality comparisons go through this.
func NormalizeAddress(s string) string {
	return strings.ToLower(s)
}

// SameAddress compares two identities case-insensitively.
func SameAddress(a, b string) bool {
	return NormalizeAddress(a) == NormalizeAddress(b)
}
