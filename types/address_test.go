package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAddress(t *testing.T) {
	assert.True(t, IsAddress("0x1234567890abcdef1234567890abcdef12345678"))
	assert.True(t, IsAddress("0x1234567890ABCDEF1234567890ABCDEF12345678"))

	assert.False(t, IsAddress(""))
	assert.False(t, IsAddress("0x123"))
	assert.False(t, IsAddress("1x1234567890abcdef1234567890abcdef12345678"))
	assert.False(t, IsAddress("0x1234567890abcdef1234567890abcdef1234567g"))
	assert.False(t, IsAddress("0x1234567890abcdef1234567890abcdef123456789"))
}

// Two spellings of the same identity must behave as one account
// everywhere, so equality is case-insensitive.
func TestSameAddress(t *testing.T) {
	assert.True(t, SameAddress(
		"0xABCDEF1234567890abcdef1234567890ABCDEF12",
		"0xabcdef1234567890abcdef1234567890abcdef12",
	))
	assert.False(t, SameAddress(
		"0xabcdef1234567890abcdef1234567890abcdef12",
		"0xabcdef1234567890abcdef1234567890abcdef13",
	))
}
