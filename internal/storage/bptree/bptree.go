// Package bptree implements the ordered index engine, a B+Tree whose leaves form a doubly linked chain.
// Nodes are kept in a single arena and refer to their parent, children and siblings by handle.
package bptree

import (
	"cmp"
	"iter"
	"log/slog"
	"slices"

	"github.com/gostonefire/mapindex/engine"
	"github.com/gostonefire/mapindex/internal/conf"
	"github.com/gostonefire/mapindex/internal/model"
)

// node - One tree node. Leaves use values, internal nodes use children (always len(keys) + 1 of them).
type node[K cmp.Ordered, V any] struct {
	isLeaf   bool
	keys     []K
	values   []V
	children []int
	parent   int
	left     int
	right    int
}

// BpTreeMap - Represents an implementation of the ordered index engine
type BpTreeMap[K cmp.Ordered, V any] struct {
	order  int
	nodes  []node[K, V]
	root   int
	height int
	count  int
	logger *slog.Logger
}

// New - Returns a pointer to a new empty BpTreeMap.
//   - treeConf is a model.TreeConf struct providing the order (fanout) and logger
//
// It returns:
//   - bpTree which is a pointer to the created instance
//   - err which is of type engine.ConfigError if the order is below the minimum
func New[K cmp.Ordered, V any](treeConf model.TreeConf) (bpTree *BpTreeMap[K, V], err error) {
	if treeConf.Order < conf.MinOrder {
		err = engine.NewConfigError("order must be at least %d, got %d", conf.MinOrder, treeConf.Order)
		return
	}

	logger := treeConf.Logger
	if logger == nil {
		logger = slog.Default()
	}

	bpTree = &BpTreeMap[K, V]{
		order:  treeConf.Order,
		height: 1,
		logger: logger.With("engine", engine.BPTree),
	}
	bpTree.root = bpTree.newNode(true)

	return
}

// Get - Returns the value stored for key.
//   - key is the key to look up
//
// It returns:
//   - value is the value if found, otherwise the zero value of V
//   - found is true if key is present
func (B *BpTreeMap[K, V]) Get(key K) (value V, found bool) {
	n := &B.nodes[B.findLeaf(key)]

	i, found := slices.BinarySearch(n.keys, key)
	if found {
		value = n.values[i]
	}

	return
}

// Put - Inserts the key/value pair. An existing key is left untouched.
//   - key is the key to insert
//   - value is the value to associate with key
//
// It returns:
//   - outcome is engine.Inserted or engine.DuplicateIgnored if the key was already present
func (B *BpTreeMap[K, V]) Put(key K, value V) (outcome engine.InsertOutcome) {
	leaf := B.findLeaf(key)
	n := &B.nodes[leaf]

	i, found := slices.BinarySearch(n.keys, key)
	if found {
		outcome = engine.DuplicateIgnored
		return
	}

	if len(n.keys) < B.order-1 {
		n.keys = slices.Insert(n.keys, i, key)
		n.values = slices.Insert(n.values, i, value)
	} else {
		separator, sibling := B.splitLeaf(leaf, i, key, value)
		B.insertIntoParent(leaf, separator, sibling)
	}

	B.count++
	outcome = engine.Inserted

	return
}

// Size - Returns the number of entries stored
func (B *BpTreeMap[K, V]) Size() int {
	return B.count
}

// Entries - Returns every entry in ascending key order by walking the leaf chain
func (B *BpTreeMap[K, V]) Entries() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for h := B.leftmostLeaf(); h != conf.NoNode; h = B.nodes[h].right {
			n := &B.nodes[h]
			for i, k := range n.keys {
				if !yield(k, n.values[i]) {
					return
				}
			}
		}
	}
}

// FirstKey - Returns the smallest key, or an engine.EmptyIndex error if there are no entries
func (B *BpTreeMap[K, V]) FirstKey() (key K, err error) {
	if B.count == 0 {
		err = engine.EmptyIndex{}
		return
	}

	key = B.nodes[B.leftmostLeaf()].keys[0]

	return
}

// LastKey - Returns the largest key, or an engine.EmptyIndex error if there are no entries
func (B *BpTreeMap[K, V]) LastKey() (key K, err error) {
	if B.count == 0 {
		err = engine.EmptyIndex{}
		return
	}

	h := B.root
	for !B.nodes[h].isLeaf {
		children := B.nodes[h].children
		h = children[len(children)-1]
	}
	keys := B.nodes[h].keys
	key = keys[len(keys)-1]

	return
}

// Stat - Returns statistics for the tree, BucketDistribution holds the number of keys per leaf from left to right
func (B *BpTreeMap[K, V]) Stat() (stat engine.Stat) {
	stat = engine.Stat{
		Kind:    engine.BPTree,
		Records: B.count,
		Buckets: len(B.nodes),
		Height:  B.height,
	}

	for h := B.leftmostLeaf(); h != conf.NoNode; h = B.nodes[h].right {
		stat.BucketDistribution = append(stat.BucketDistribution, len(B.nodes[h].keys))
	}

	return
}

// newNode - Appends a new empty node to the arena and returns its handle.
// Any pointer into the arena taken before this call may be stale afterwards.
func (B *BpTreeMap[K, V]) newNode(isLeaf bool) (h int) {
	n := node[K, V]{
		isLeaf: isLeaf,
		keys:   make([]K, 0, B.order-1),
		parent: conf.NoNode,
		left:   conf.NoNode,
		right:  conf.NoNode,
	}
	if isLeaf {
		n.values = make([]V, 0, B.order-1)
	} else {
		n.children = make([]int, 0, B.order)
	}

	B.nodes = append(B.nodes, n)
	h = len(B.nodes) - 1

	return
}

// findLeaf - Descends from the root to the leaf where key is or would be stored
func (B *BpTreeMap[K, V]) findLeaf(key K) (h int) {
	h = B.root
	for !B.nodes[h].isLeaf {
		n := &B.nodes[h]
		h = n.children[childIndex(n.keys, key)]
	}

	return
}

// leftmostLeaf - Returns the first leaf of the leaf chain
func (B *BpTreeMap[K, V]) leftmostLeaf() (h int) {
	h = B.root
	for !B.nodes[h].isLeaf {
		h = B.nodes[h].children[0]
	}

	return
}

// childIndex - Returns the index of the child to follow for key, which is the number of node keys <= key
func childIndex[K cmp.Ordered](keys []K, key K) int {
	i, found := slices.BinarySearch(keys, key)
	if found {
		i++
	}

	return i
}
