package hash

import (
	"hash/crc32"
)

// StringHashAlgorithm - Hash algorithm for string keys implemented using crc32.ChecksumIEEE over the key bytes.
// It is what the table layer uses for its encoded primary keys.
type StringHashAlgorithm struct{}

// NewStringHashAlgorithm - Returns a pointer to a new StringHashAlgorithm instance
func NewStringHashAlgorithm() *StringHashAlgorithm {
	return &StringHashAlgorithm{}
}

// HashFunc1 - Given key it generates a hash value
func (S *StringHashAlgorithm) HashFunc1(key string) uint64 {
	return uint64(crc32.ChecksumIEEE([]byte(key)))
}
