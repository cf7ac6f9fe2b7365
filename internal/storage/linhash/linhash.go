// Package linhash implements the linear hash engine. The table grows one chain at a time, chain s being split
// into s and s + mod1 whenever an insert has to open an overflow bucket.
package linhash

import (
	"iter"
	"log/slog"

	"github.com/gostonefire/mapindex/engine"
	"github.com/gostonefire/mapindex/hashfunc"
	"github.com/gostonefire/mapindex/internal/hash"
	"github.com/gostonefire/mapindex/internal/model"
	"github.com/gostonefire/mapindex/internal/overflow"
)

// LinHashMap - Represents an implementation of the linear hash engine
type LinHashMap[K comparable, V any] struct {
	chains            []*model.Bucket[K, V]
	mod1              int
	mod2              int
	split             int
	splitSteps        int
	slots             int
	count             int
	hashAlgorithm     hashfunc.HashAlgorithm[K]
	internalAlgorithm bool
	logger            *slog.Logger
}

// New - Returns a pointer to a new empty LinHashMap.
//   - hashConf is a model.HashConf struct where InitialSize is the number of chains in the first round
//
// It returns:
//   - linHash which is a pointer to the created instance
//   - err which is of type engine.ConfigError if the configuration is invalid
func New[K comparable, V any](hashConf model.HashConf[K]) (linHash *LinHashMap[K, V], err error) {
	if hashConf.InitialSize <= 0 {
		err = engine.NewConfigError("initial size must be a positive value higher than 0 (zero), got %d", hashConf.InitialSize)
		return
	}
	if hashConf.Slots <= 0 {
		err = engine.NewConfigError("slots must be a positive value higher than 0 (zero), got %d", hashConf.Slots)
		return
	}

	logger := hashConf.Logger
	if logger == nil {
		logger = slog.Default()
	}

	hashAlgorithm, internalAlg := hash.Resolve(hashConf.HashAlgorithm)

	linHash = &LinHashMap[K, V]{
		chains:            make([]*model.Bucket[K, V], hashConf.InitialSize, 2*hashConf.InitialSize),
		mod1:              hashConf.InitialSize,
		mod2:              2 * hashConf.InitialSize,
		slots:             hashConf.Slots,
		hashAlgorithm:     hashAlgorithm,
		internalAlgorithm: internalAlg,
		logger:            logger.With("engine", engine.LinearHash),
	}

	for i := range linHash.chains {
		linHash.chains[i] = model.NewBucket[K, V](hashConf.Slots, 0)
	}

	return
}

// Get - Returns the value stored for key.
//   - key is the key to look up
//
// It returns:
//   - value is the value if found, otherwise the zero value of V
//   - found is true if key is present
func (L *LinHashMap[K, V]) Get(key K) (value V, found bool) {
	for b := L.chains[L.address(key)]; b != nil; b = b.Next {
		if i := b.Find(key); i >= 0 {
			value = b.Records[i].Value
			found = true
			return
		}
	}

	return
}

// Put - Inserts the key/value pair. An existing key is left untouched.
// The record goes into the first bucket of its chain with a free slot. If there is none a new overflow bucket
// is linked to the end of the chain and one split step is taken.
//   - key is the key to insert
//   - value is the value to associate with key
//
// It returns:
//   - outcome is engine.Inserted or engine.DuplicateIgnored if the key was already present
func (L *LinHashMap[K, V]) Put(key K, value V) (outcome engine.InsertOutcome) {
	head := L.chains[L.address(key)]

	var last *model.Bucket[K, V]
	var free *model.Bucket[K, V]
	for b := head; b != nil; b = b.Next {
		if b.Find(key) >= 0 {
			outcome = engine.DuplicateIgnored
			return
		}
		if free == nil && len(b.Records) < L.slots {
			free = b
		}
		last = b
	}

	record := model.Record[K, V]{Key: key, Value: value}
	L.count++
	outcome = engine.Inserted

	if free != nil {
		free.Records = append(free.Records, record)
		return
	}

	last.Next = model.NewBucket[K, V](L.slots, 0)
	last.Next.Records = append(last.Next.Records, record)

	L.splitStep()

	return
}

// Size - Returns the number of entries stored
func (L *LinHashMap[K, V]) Size() int {
	return L.count
}

// Entries - Returns every entry, chain by chain and within a chain from the home bucket through its overflow buckets
func (L *LinHashMap[K, V]) Entries() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, head := range L.chains {
			records := overflow.NewRecords(head)
			for records.HasNext() {
				r, _ := records.Next()
				if !yield(r.Key, r.Value) {
					return
				}
			}
		}
	}
}

// Stat - Returns statistics for the table, BucketDistribution holds the number of records per chain
func (L *LinHashMap[K, V]) Stat() (stat engine.Stat) {
	stat = engine.Stat{
		Kind:               engine.LinearHash,
		Records:            L.count,
		Buckets:            len(L.chains),
		Mod1:               L.mod1,
		Mod2:               L.mod2,
		SplitPointer:       L.split,
		SplitSteps:         L.splitSteps,
		InternalHash:       L.internalAlgorithm,
		BucketDistribution: make([]int, len(L.chains)),
	}

	for i, head := range L.chains {
		for b := head; b != nil; b = b.Next {
			stat.BucketDistribution[i] += len(b.Records)
		}
	}

	return
}

// address - Returns the chain designated for key, hash mod mod1 unless that chain has already been split
// in the current round in which case hash mod mod2
func (L *LinHashMap[K, V]) address(key K) int {
	h := L.hashAlgorithm.HashFunc1(key)

	i := int(h % uint64(L.mod1))
	if i < L.split {
		i = int(h % uint64(L.mod2))
	}

	return i
}
