package hash

import (
	"fmt"
	"hash/crc32"

	"github.com/gostonefire/mapindex/hashfunc"
)

// DefaultHashAlgorithm - The internally used hash algorithm when none is supplied to an engine.
// Integer keys hash to their 64 bit two's complement value folded to 32 bits (h ^ h>>32), so small non negative
// keys hash to themselves. String keys use crc32.ChecksumIEEE over their bytes and any other comparable key is
// hashed by crc32 over its fmt representation.
type DefaultHashAlgorithm[K comparable] struct{}

// NewDefaultHashAlgorithm - Returns a pointer to a new DefaultHashAlgorithm instance
func NewDefaultHashAlgorithm[K comparable]() *DefaultHashAlgorithm[K] {
	return &DefaultHashAlgorithm[K]{}
}

// HashFunc1 - Given key it generates a hash value
func (D *DefaultHashAlgorithm[K]) HashFunc1(key K) uint64 {
	switch k := any(key).(type) {
	case int:
		return fold(uint64(k))
	case int8:
		return fold(uint64(k))
	case int16:
		return fold(uint64(k))
	case int32:
		return fold(uint64(k))
	case int64:
		return fold(uint64(k))
	case uint:
		return fold(uint64(k))
	case uint8:
		return uint64(k)
	case uint16:
		return uint64(k)
	case uint32:
		return uint64(k)
	case uint64:
		return fold(k)
	case uintptr:
		return fold(uint64(k))
	case string:
		return uint64(crc32.ChecksumIEEE([]byte(k)))
	}

	return uint64(crc32.ChecksumIEEE([]byte(fmt.Sprintf("%v", key))))
}

// fold - Folds the high 32 bits of h into the low 32 bits
func fold(h uint64) uint64 {
	return uint64(uint32(h ^ h>>32))
}

// Resolve - Returns hashAlgorithm if not nil, otherwise a DefaultHashAlgorithm.
// The second return value tells whether the internal algorithm was chosen.
func Resolve[K comparable](hashAlgorithm hashfunc.HashAlgorithm[K]) (algorithm hashfunc.HashAlgorithm[K], internal bool) {
	if hashAlgorithm == nil {
		return NewDefaultHashAlgorithm[K](), true
	}

	return hashAlgorithm, false
}
