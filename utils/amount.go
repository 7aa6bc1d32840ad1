package utils

import (
	"fmt"
	"strings"

	"github.com/holiman/uint256"
)

// Decimals is the ledger-native fixed-point scale: one display unit is
// 10^18 base units. Conversion is exact in both directions; monetary
// values never pass through floating point.
const Decimals = 18

var scale = new(uint256.Int).Exp(uint256.NewInt(10), uint256.NewInt(Decimals))

func Uint256ToString(v *uint256.Int) string {
	if v == nil {
		return "0"
	}
	return v.Dec()
}

func Uint256FromString(s string) (*uint256.Int, error) {
	return uint256.FromDecimal(s)
}

// FormatAmount renders base units as a human decimal string, trimming
// trailing fractional zeros ("50", "0.25").
func FormatAmount(v *uint256.Int) string {
	if v == nil {
		return "0"
	}
	quot := new(uint256.Int)
	rem := new(uint256.Int)
	quot.DivMod(v, scale, rem)
	if rem.IsZero() {
		return quot.Dec()
	}
	frac := fmt.Sprintf("%0*s", Decimals, rem.Dec())
	frac = strings.TrimRight(frac, "0")
	return quot.Dec() + "." + frac
}

// ParseAmount converts a human decimal string to base units. The input
// must be a plain positive decimal: digits, at most one point, at most
// Decimals fractional digits. Anything else is rejected rather than
// rounded.
func ParseAmount(s string) (*uint256.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("amount is empty")
	}

	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i+1:]
		if strings.IndexByte(fracPart, '.') >= 0 {
			return nil, fmt.Errorf("invalid amount %q", s)
		}
	}
	if intPart == "" && fracPart == "" {
		return nil, fmt.Errorf("invalid amount %q", s)
	}
	if len(fracPart) > Decimals {
		return nil, fmt.Errorf("amount %q has more than %d decimal places", s, Decimals)
	}
	if !isDigits(intPart) || !isDigits(fracPart) {
		return nil, fmt.Errorf("invalid amount %q", s)
	}

	// value = intPart * 10^Decimals + fracPart * 10^(Decimals-len(fracPart))
	whole := new(uint256.Int)
	if intPart != "" {
		parsed, err := uint256.FromDecimal(intPart)
		if err != nil {
			return nil, fmt.Errorf("invalid amount %q: %v", s, err)
		}
		if _, overflow := whole.MulOverflow(parsed, scale); overflow {
			return nil, fmt.Errorf("amount %q is out of range", s)
		}
	}

	if fracPart != "" {
		fracDigits := strings.TrimLeft(fracPart, "0")
		if fracDigits != "" {
			parsed, err := uint256.FromDecimal(fracDigits)
			if err != nil {
				return nil, fmt.Errorf("invalid amount %q: %v", s, err)
			}
			shift := new(uint256.Int).Exp(uint256.NewInt(10), uint256.NewInt(uint64(Decimals-len(fracPart))))
			frac := new(uint256.Int).Mul(parsed, shift)
			if _, overflow := whole.AddOverflow(whole, frac); overflow {
				return nil, fmt.Errorf("amount %q is out of range", s)
			}
		}
	}

	return whole, nil
}

// ParsePositiveAmount is ParseAmount plus the coordinator's payment
// precondition: the value must be strictly greater than zero.
func ParsePositiveAmount(s string) (*uint256.Int, error) {
	v, err := ParseAmount(s)
	if err != nil {
		return nil, err
	}
	if v.IsZero() {
		return nil, fmt.Errorf("amount must be greater than zero")
	}
	return v, nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
