package model

import (
	"log/slog"

	"github.com/gostonefire/mapindex/hashfunc"
)

// Record - Represents one key/value entry held in a bucket or a leaf
type Record[K comparable, V any] struct {
	Key   K
	Value V
}

// Bucket - Represents a fixed capacity bucket of records.
//   - Records is the records in insertion order, never longer than the engine's slots (except for an unsplittable bucket)
//   - LocalDepth is the number of low order hash bits shared by all records (extendible hashing only)
//   - Next is the next bucket in an overflow chain (linear hashing only)
type Bucket[K comparable, V any] struct {
	Records    []Record[K, V]
	LocalDepth int
	Next       *Bucket[K, V]
}

// NewBucket - Returns a pointer to a new empty bucket with room for slots records
func NewBucket[K comparable, V any](slots, localDepth int) *Bucket[K, V] {
	return &Bucket[K, V]{
		Records:    make([]Record[K, V], 0, slots),
		LocalDepth: localDepth,
	}
}

// Find - Returns the index of the record with key, or -1 if not present
func (B *Bucket[K, V]) Find(key K) int {
	for i, r := range B.Records {
		if r.Key == key {
			return i
		}
	}

	return -1
}

// TreeConf - Is a struct to be passed in the call to bptree.New and contains configuration for the ordered engine.
//   - Order is the maximum fanout of an internal node, a node holds at most Order - 1 keys
//   - Logger is where structural events are logged, nil means slog.Default()
type TreeConf struct {
	Order  int
	Logger *slog.Logger
}

// HashConf - Is a struct to be passed in the call to exthash.New or linhash.New and contains configuration
// for the hash engines.
//   - InitialSize is the initial number of buckets (extendible, must be a power of two) or chains (linear)
//   - Slots is the number of records per bucket
//   - HashAlgorithm is the hash function to use, nil means the internal default
//   - Logger is where structural events are logged, nil means slog.Default()
type HashConf[K comparable] struct {
	InitialSize   int
	Slots         int
	HashAlgorithm hashfunc.HashAlgorithm[K]
	Logger        *slog.Logger
}
