package utils

import "math/bits"

// IsPowerOfTwo - Returns true if n is a positive power of two
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// Log2 - Returns the base 2 logarithm of n, rounded down. n must be positive.
func Log2(n int) int {
	return bits.Len(uint(n)) - 1
}

// CeilHalf - Returns n / 2 rounded up
func CeilHalf(n int) int {
	return (n + 1) / 2
}
