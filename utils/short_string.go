package utils

import "fmt"

// ShortenAddress renders an identity in the compact display form used
// in logs and the CLI, e.g. "0x1234ab...cdef".
func ShortenAddress(addr string) string {
	if len(addr) <= 12 {
		return addr
	}
	return fmt.Sprintf("%s...%s", addr[:8], addr[len(addr)-4:])
}
