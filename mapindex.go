// Package mapindex provides three interchangeable in-memory index engines behind one key/value map contract:
// an ordered B+Tree, an extendible hash table and a linear hash table.
package mapindex

import (
	"cmp"
	"iter"
	"log/slog"

	"github.com/gostonefire/mapindex/config"
	"github.com/gostonefire/mapindex/engine"
	"github.com/gostonefire/mapindex/hashfunc"
	"github.com/gostonefire/mapindex/internal/model"
	"github.com/gostonefire/mapindex/internal/storage/bptree"
	"github.com/gostonefire/mapindex/internal/storage/exthash"
	"github.com/gostonefire/mapindex/internal/storage/linhash"
	"github.com/gostonefire/mapindex/sortedview"
)

// Map - Interface implemented by every index engine. Instances are not safe for concurrent use.
type Map[K comparable, V any] interface {
	// Get - Returns the value stored for key, found is false if the key is absent
	Get(key K) (value V, found bool)
	// Put - Inserts key and value unless key is already present, in which case nothing changes and
	// engine.DuplicateIgnored is returned
	Put(key K, value V) engine.InsertOutcome
	// Size - Returns the number of stored entries
	Size() int
	// Entries - Returns a restartable sequence over all entries, in key order for the ordered engine and in
	// bucket order for the hash engines
	Entries() iter.Seq2[K, V]
	// Stat - Returns engine statistics
	Stat() engine.Stat
}

// SortedMap - Interface implemented by the ordered engine.
// Views are materialised copies, later inserts into the map are not reflected in a view already returned.
type SortedMap[K cmp.Ordered, V any] interface {
	Map[K, V]
	// FirstKey - Returns the smallest key or an engine.EmptyIndex error
	FirstKey() (K, error)
	// LastKey - Returns the largest key or an engine.EmptyIndex error
	LastKey() (K, error)
	// HeadView - Returns the entries with keys strictly less than toKey
	HeadView(toKey K) *sortedview.View[K, V]
	// TailView - Returns the entries with keys greater than or equal to fromKey
	TailView(fromKey K) *sortedview.View[K, V]
	// RangeView - Returns the entries with keys in [fromKey, toKey)
	RangeView(fromKey, toKey K) *sortedview.View[K, V]
}

var (
	_ SortedMap[int, int] = (*bptree.BpTreeMap[int, int])(nil)
	_ Map[int, int]       = (*exthash.ExtHashMap[int, int])(nil)
	_ Map[int, int]       = (*linhash.LinHashMap[int, int])(nil)
)

// NewBpTreeMap - Returns a new empty ordered index.
//   - order is the maximum fanout of a node, at least 3
//   - logger receives structural events at debug level, nil means slog.Default()
//
// It returns:
//   - sortedMap is the created index
//   - err is of type engine.ConfigError if order is too small
func NewBpTreeMap[K cmp.Ordered, V any](order int, logger *slog.Logger) (sortedMap SortedMap[K, V], err error) {
	t, err := bptree.New[K, V](model.TreeConf{Order: order, Logger: logger})
	if err != nil {
		return
	}
	sortedMap = t

	return
}

// NewExtHashMap - Returns a new empty extendible hash index.
//   - initialSize is the initial number of buckets, a power of two
//   - slots is the number of records per bucket
//   - hashAlgorithm is an optional custom hash algorithm, nil means the internal default
//   - logger receives structural events at debug level, nil means slog.Default()
//
// It returns:
//   - hashMap is the created index
//   - err is of type engine.ConfigError if any parameter is invalid
func NewExtHashMap[K comparable, V any](
	initialSize int,
	slots int,
	hashAlgorithm hashfunc.HashAlgorithm[K],
	logger *slog.Logger,
) (hashMap Map[K, V], err error) {
	e, err := exthash.New[K, V](model.HashConf[K]{
		InitialSize:   initialSize,
		Slots:         slots,
		HashAlgorithm: hashAlgorithm,
		Logger:        logger,
	})
	if err != nil {
		return
	}
	hashMap = e

	return
}

// NewLinHashMap - Returns a new empty linear hash index.
//   - initialSize is the number of chains in the first round
//   - slots is the number of records per bucket
//   - hashAlgorithm is an optional custom hash algorithm, nil means the internal default
//   - logger receives structural events at debug level, nil means slog.Default()
//
// It returns:
//   - hashMap is the created index
//   - err is of type engine.ConfigError if any parameter is invalid
func NewLinHashMap[K comparable, V any](
	initialSize int,
	slots int,
	hashAlgorithm hashfunc.HashAlgorithm[K],
	logger *slog.Logger,
) (hashMap Map[K, V], err error) {
	l, err := linhash.New[K, V](model.HashConf[K]{
		InitialSize:   initialSize,
		Slots:         slots,
		HashAlgorithm: hashAlgorithm,
		Logger:        logger,
	})
	if err != nil {
		return
	}
	hashMap = l

	return
}

// New - Returns a new empty index of the engine kind given by indexConfig.
//   - indexConfig selects the engine and its parameters
//   - hashAlgorithm is an optional custom hash algorithm for the hash engines, nil means the internal default
//   - logger receives structural events at debug level, nil means slog.Default()
//
// It returns:
//   - index is the created index, its dynamic type implements SortedMap when the engine is engine.BPTree
//   - err is of type engine.ConfigError if the configuration is invalid
func New[K cmp.Ordered, V any](
	indexConfig config.IndexConfig,
	hashAlgorithm hashfunc.HashAlgorithm[K],
	logger *slog.Logger,
) (index Map[K, V], err error) {
	if err = indexConfig.Validate(); err != nil {
		return
	}

	switch indexConfig.Engine {
	case engine.BPTree:
		return NewBpTreeMap[K, V](indexConfig.Order, logger)
	case engine.ExtendibleHash:
		return NewExtHashMap[K, V](indexConfig.InitialSize, indexConfig.Slots, hashAlgorithm, logger)
	default:
		return NewLinHashMap[K, V](indexConfig.InitialSize, indexConfig.Slots, hashAlgorithm, logger)
	}
}

// NewSorted - Returns a new empty ordered index from indexConfig, which must name engine.BPTree
func NewSorted[K cmp.Ordered, V any](indexConfig config.IndexConfig, logger *slog.Logger) (sortedMap SortedMap[K, V], err error) {
	if indexConfig.Engine != engine.BPTree {
		err = engine.NewConfigError("engine %q does not keep keys in order", indexConfig.Engine)
		return
	}
	if err = indexConfig.Validate(); err != nil {
		return
	}

	return NewBpTreeMap[K, V](indexConfig.Order, logger)
}
