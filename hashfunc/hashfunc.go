package hashfunc

// HashAlgorithm - Interface that permits an implementation using the hash based index engines to supply a custom
// hash function suited for its particular distribution of keys.
// The engines reduce the hash value themselves, the extendible engine by masking the low order bits and the
// linear engine by taking the value modulo its current table size. Hence, the low order bits should be well spread.
type HashAlgorithm[K comparable] interface {
	// HashFunc1 - Given key it generates a hash value.
	// Equal keys must always generate the same value, and the value must never change for the life of the index.
	HashFunc1(key K) uint64
}

// Func - Adapter that allows an ordinary function to be used as a HashAlgorithm
type Func[K comparable] func(key K) uint64

// HashFunc1 - Calls F(key)
func (F Func[K]) HashFunc1(key K) uint64 {
	return F(key)
}
