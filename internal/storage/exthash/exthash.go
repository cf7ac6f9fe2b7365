// Package exthash implements the extendible hash engine. Buckets live in a table in creation order and are
// reached through a directory of bucket handles addressed by the low order bits of the key hash.
package exthash

import (
	"iter"
	"log/slog"

	"github.com/gostonefire/mapindex/engine"
	"github.com/gostonefire/mapindex/hashfunc"
	"github.com/gostonefire/mapindex/internal/conf"
	"github.com/gostonefire/mapindex/internal/hash"
	"github.com/gostonefire/mapindex/internal/model"
	"github.com/gostonefire/mapindex/internal/utils"
)

// ExtHashMap - Represents an implementation of the extendible hash engine
type ExtHashMap[K comparable, V any] struct {
	buckets           []*model.Bucket[K, V]
	directory         []int
	globalDepth       int
	maxDepth          int
	slots             int
	count             int
	hashAlgorithm     hashfunc.HashAlgorithm[K]
	internalAlgorithm bool
	logger            *slog.Logger
}

// New - Returns a pointer to a new empty ExtHashMap.
//   - hashConf is a model.HashConf struct where InitialSize must be a power of two
//
// It returns:
//   - extHash which is a pointer to the created instance
//   - err which is of type engine.ConfigError if the configuration is invalid
func New[K comparable, V any](hashConf model.HashConf[K]) (extHash *ExtHashMap[K, V], err error) {
	if !utils.IsPowerOfTwo(hashConf.InitialSize) {
		err = engine.NewConfigError("initial size must be a power of two, got %d", hashConf.InitialSize)
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
	globalDepth := utils.Log2(hashConf.InitialSize)

	maxDepth := conf.HashBits
	if internalAlg {
		maxDepth = conf.DefaultHashBits
	}

	extHash = &ExtHashMap[K, V]{
		buckets:           make([]*model.Bucket[K, V], 0, hashConf.InitialSize),
		directory:         make([]int, hashConf.InitialSize),
		globalDepth:       globalDepth,
		maxDepth:          maxDepth,
		slots:             hashConf.Slots,
		hashAlgorithm:     hashAlgorithm,
		internalAlgorithm: internalAlg,
		logger:            logger.With("engine", engine.ExtendibleHash),
	}

	for i := range extHash.directory {
		extHash.directory[i] = extHash.newBucket(globalDepth)
	}

	return
}

// Get - Returns the value stored for key.
//   - key is the key to look up
//
// It returns:
//   - value is the value if found, otherwise the zero value of V
//   - found is true if key is present
func (E *ExtHashMap[K, V]) Get(key K) (value V, found bool) {
	b := E.bucketOf(E.dirIndex(E.hashAlgorithm.HashFunc1(key)))

	if i := b.Find(key); i >= 0 {
		value = b.Records[i].Value
		found = true
	}

	return
}

// Put - Inserts the key/value pair. An existing key is left untouched.
//   - key is the key to insert
//   - value is the value to associate with key
//
// It returns:
//   - outcome is engine.Inserted or engine.DuplicateIgnored if the key was already present
func (E *ExtHashMap[K, V]) Put(key K, value V) (outcome engine.InsertOutcome) {
	handle := E.directory[E.dirIndex(E.hashAlgorithm.HashFunc1(key))]
	b := E.buckets[handle]

	if b.Find(key) >= 0 {
		outcome = engine.DuplicateIgnored
		return
	}

	b.Records = append(b.Records, model.Record[K, V]{Key: key, Value: value})
	E.count++

	if len(b.Records) > E.slots {
		E.split(handle)
	}

	outcome = engine.Inserted

	return
}

// Size - Returns the number of entries stored
func (E *ExtHashMap[K, V]) Size() int {
	return E.count
}

// Entries - Returns every entry, bucket by bucket in bucket creation order
func (E *ExtHashMap[K, V]) Entries() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, b := range E.buckets {
			for _, r := range b.Records {
				if !yield(r.Key, r.Value) {
					return
				}
			}
		}
	}
}

// Stat - Returns statistics for the table, BucketDistribution holds the number of records per bucket in
// bucket creation order
func (E *ExtHashMap[K, V]) Stat() (stat engine.Stat) {
	stat = engine.Stat{
		Kind:               engine.ExtendibleHash,
		Records:            E.count,
		Buckets:            len(E.buckets),
		GlobalDepth:        E.globalDepth,
		DirectorySize:      len(E.directory),
		InternalHash:       E.internalAlgorithm,
		BucketDistribution: make([]int, len(E.buckets)),
	}

	for i, b := range E.buckets {
		stat.BucketDistribution[i] = len(b.Records)
	}

	return
}

// dirIndex - Returns the directory index for a hash value, i.e. hashValue mod 2^globalDepth
func (E *ExtHashMap[K, V]) dirIndex(hashValue uint64) int {
	return int(hashValue & (uint64(len(E.directory)) - 1))
}

// newBucket - Appends a new empty bucket to the bucket table and returns its handle
func (E *ExtHashMap[K, V]) newBucket(localDepth int) (handle int) {
	E.buckets = append(E.buckets, model.NewBucket[K, V](E.slots+1, localDepth))
	handle = len(E.buckets) - 1

	return
}
