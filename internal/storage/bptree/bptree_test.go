//go:build unit

package bptree

import (
	"cmp"
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"testing"

	"github.com/gostonefire/mapindex/engine"
	"github.com/gostonefire/mapindex/internal/conf"
	"github.com/gostonefire/mapindex/internal/model"
	"github.com/stretchr/testify/assert"
)

// checkInvariants - Verifies ordering, key ranges, equal leaf depth, parent handles and the leaf chain
func checkInvariants[K cmp.Ordered, V any](t *testing.T, b *BpTreeMap[K, V]) {
	t.Helper()

	var walk func(h, depth int, lo, hi *K)
	walk = func(h, depth int, lo, hi *K) {
		n := &b.nodes[h]
		assert.LessOrEqual(t, len(n.keys), b.order-1, "node %d within capacity", h)
		for i := 1; i < len(n.keys); i++ {
			assert.Less(t, n.keys[i-1], n.keys[i], "node %d keys strictly ascending", h)
		}
		for _, k := range n.keys {
			if lo != nil {
				assert.GreaterOrEqual(t, k, *lo, "node %d key above lower bound", h)
			}
			if hi != nil {
				assert.Less(t, k, *hi, "node %d key below upper bound", h)
			}
		}

		if n.isLeaf {
			assert.Equal(t, b.height, depth, "leaf %d at tree height", h)
			assert.Equal(t, len(n.keys), len(n.values), "leaf %d has one value per key", h)
			return
		}

		assert.Equal(t, len(n.keys)+1, len(n.children), "node %d has one more child than keys", h)
		for i, c := range n.children {
			assert.Equal(t, h, b.nodes[c].parent, "child %d points back to parent %d", c, h)
			cLo, cHi := lo, hi
			if i > 0 {
				l := n.keys[i-1]
				cLo = &l
			}
			if i < len(n.keys) {
				u := n.keys[i]
				cHi = &u
			}
			walk(c, depth+1, cLo, cHi)
		}
	}

	assert.Equal(t, conf.NoNode, b.nodes[b.root].parent, "root has no parent")
	walk(b.root, 1, nil, nil)

	count := 0
	prev := conf.NoNode
	var last *K
	for h := b.leftmostLeaf(); h != conf.NoNode; h = b.nodes[h].right {
		n := &b.nodes[h]
		assert.True(t, n.isLeaf, "leaf chain only holds leaves")
		assert.Equal(t, prev, n.left, "left link of %d matches chain", h)
		for _, k := range n.keys {
			if last != nil {
				assert.Less(t, *last, k, "leaf chain ascending")
			}
			kk := k
			last = &kk
			count++
		}
		prev = h
	}
	assert.Equal(t, b.count, count, "leaf chain holds every key once")
}

func newTree[K cmp.Ordered, V any](t *testing.T, order int) *BpTreeMap[K, V] {
	t.Helper()
	b, err := New[K, V](model.TreeConf{Order: order})
	assert.NoError(t, err, "create tree of order %d", order)
	return b
}

func TestNew(t *testing.T) {
	t.Run("creates an empty tree", func(t *testing.T) {
		// Execute
		b, err := New[int, int](model.TreeConf{Order: conf.DefaultOrder})

		// Check
		assert.NoError(t, err, "create tree")
		assert.Equal(t, 0, b.Size(), "empty tree")
		assert.Equal(t, 1, b.height, "single leaf")
		assert.True(t, b.nodes[b.root].isLeaf, "root is a leaf")
	})

	t.Run("rejects an order below the minimum", func(t *testing.T) {
		// Execute
		_, err := New[int, int](model.TreeConf{Order: 2})

		// Check
		assert.True(t, errors.Is(err, engine.ConfigError{}), "order 2 rejected with ConfigError")
	})
}

func TestBpTreeMap_Put(t *testing.T) {
	t.Run("odd keys 1..49 with order 5", func(t *testing.T) {
		// Prepare
		b := newTree[int, int](t, 5)

		// Execute
		for i := 1; i < 50; i += 2 {
			assert.Equal(t, engine.Inserted, b.Put(i, i*i), "insert %d", i)
		}

		// Check
		first, err := b.FirstKey()
		assert.NoError(t, err, "first key")
		last, err := b.LastKey()
		assert.NoError(t, err, "last key")
		assert.Equal(t, 25, b.Size(), "25 entries")
		assert.Equal(t, 1, first, "first key is 1")
		assert.Equal(t, 49, last, "last key is 49")
		for i := 0; i < 51; i++ {
			v, found := b.Get(i)
			if i%2 == 1 {
				assert.True(t, found, "key %d found", i)
				assert.Equal(t, i*i, v, "value of %d", i)
			} else {
				assert.False(t, found, "key %d absent", i)
			}
		}
		checkInvariants(t, b)
	})

	t.Run("random insertion order across orders", func(t *testing.T) {
		for _, order := range []int{3, 4, 5, 8, 32} {
			// Prepare
			b := newTree[int, string](t, order)
			keys := rand.New(rand.NewSource(int64(order))).Perm(2000)

			// Execute
			for _, k := range keys {
				assert.Equal(t, engine.Inserted, b.Put(k, fmt.Sprint(k)), "insert %d", k)
			}

			// Check
			checkInvariants(t, b)
			assert.Equal(t, len(keys), b.Size(), "order %d size", order)

			var got []int
			for k, v := range b.Entries() {
				assert.Equal(t, fmt.Sprint(k), v, "value travels with key %d", k)
				got = append(got, k)
			}
			assert.True(t, slices.IsSorted(got), "order %d entries ascending", order)
			assert.Equal(t, len(keys), len(got), "order %d entries complete", order)

			for _, k := range keys {
				v, found := b.Get(k)
				assert.True(t, found, "order %d key %d found", order, k)
				assert.Equal(t, fmt.Sprint(k), v, "order %d value of %d", order, k)
			}
			_, found := b.Get(-1)
			assert.False(t, found, "never inserted key absent")
			_, found = b.Get(len(keys))
			assert.False(t, found, "never inserted key absent")
		}
	})

	t.Run("descending insertion keeps the tree balanced", func(t *testing.T) {
		// Prepare
		b := newTree[int, int](t, 4)

		// Execute
		for i := 500; i > 0; i-- {
			b.Put(i, i)
		}

		// Check
		checkInvariants(t, b)
		first, _ := b.FirstKey()
		last, _ := b.LastKey()
		assert.Equal(t, 1, first, "smallest key")
		assert.Equal(t, 500, last, "largest key")
	})

	t.Run("duplicate key is ignored", func(t *testing.T) {
		// Prepare
		b := newTree[string, int](t, 5)
		for i := 0; i < 20; i++ {
			b.Put(fmt.Sprintf("k%02d", i), i)
		}

		// Execute
		outcome := b.Put("k07", 700)

		// Check
		assert.Equal(t, engine.DuplicateIgnored, outcome, "duplicate reported")
		assert.Equal(t, 20, b.Size(), "size unchanged")
		v, found := b.Get("k07")
		assert.True(t, found, "key still present")
		assert.Equal(t, 7, v, "first value kept")
		checkInvariants(t, b)
	})
}

func TestBpTreeMap_FirstKey(t *testing.T) {
	t.Run("empty tree reports EmptyIndex", func(t *testing.T) {
		// Prepare
		b := newTree[int, int](t, 5)

		// Execute
		_, errFirst := b.FirstKey()
		_, errLast := b.LastKey()

		// Check
		assert.True(t, errors.Is(errFirst, engine.EmptyIndex{}), "first key of empty tree")
		assert.True(t, errors.Is(errLast, engine.EmptyIndex{}), "last key of empty tree")
	})

	t.Run("single entry is both first and last", func(t *testing.T) {
		// Prepare
		b := newTree[int, int](t, 5)
		b.Put(42, 1)

		// Execute
		first, _ := b.FirstKey()
		last, _ := b.LastKey()

		// Check
		assert.Equal(t, 42, first, "first key")
		assert.Equal(t, 42, last, "last key")
	})
}

func TestBpTreeMap_Entries(t *testing.T) {
	t.Run("empty tree yields nothing", func(t *testing.T) {
		// Prepare
		b := newTree[int, int](t, 5)

		// Execute
		n := 0
		for range b.Entries() {
			n++
		}

		// Check
		assert.Equal(t, 0, n, "no entries")
	})

	t.Run("sequence can be restarted and stopped early", func(t *testing.T) {
		// Prepare
		b := newTree[int, int](t, 5)
		for i := 0; i < 100; i++ {
			b.Put(i, i)
		}

		// Execute
		var firstPass, secondPass []int
		for k := range b.Entries() {
			if k == 10 {
				break
			}
			firstPass = append(firstPass, k)
		}
		for k := range b.Entries() {
			secondPass = append(secondPass, k)
		}

		// Check
		assert.Len(t, firstPass, 10, "stopped after ten")
		assert.Len(t, secondPass, 100, "restarted from the beginning")
	})
}

func TestBpTreeMap_Views(t *testing.T) {
	// Prepare
	b := newTree[int, int](t, 5)
	var keys []int
	for _, k := range rand.New(rand.NewSource(7)).Perm(300) {
		key := k * 3
		keys = append(keys, key)
		b.Put(key, -key)
	}
	slices.Sort(keys)

	expect := func(keep func(int) bool) (want []int) {
		for _, k := range keys {
			if keep(k) {
				want = append(want, k)
			}
		}
		return
	}

	bounds := []int{-5, 0, 1, 3, 4, 150, 151, 449, 450, 897, 898, 1000}

	t.Run("head view holds keys below toKey", func(t *testing.T) {
		for _, to := range bounds {
			// Execute
			v := b.HeadView(to)

			// Check
			want := expect(func(k int) bool { return k < to })
			assert.Equal(t, len(want), v.Size(), "head(%d) size", to)
			if len(want) > 0 {
				assert.Equal(t, want, v.Keys(), "head(%d) keys", to)
			}
			for k, val := range v.Entries() {
				assert.Equal(t, -k, val, "head(%d) value of %d", to, k)
			}
		}
	})

	t.Run("tail view holds keys from fromKey", func(t *testing.T) {
		for _, from := range bounds {
			// Execute
			v := b.TailView(from)

			// Check
			want := expect(func(k int) bool { return k >= from })
			assert.Equal(t, len(want), v.Size(), "tail(%d) size", from)
			if len(want) > 0 {
				assert.Equal(t, want, v.Keys(), "tail(%d) keys", from)
			}
		}
	})

	t.Run("range view is the intersection of head and tail", func(t *testing.T) {
		for _, from := range bounds {
			for _, to := range bounds {
				// Execute
				v := b.RangeView(from, to)

				// Check
				want := expect(func(k int) bool { return from <= k && k < to })
				assert.Equal(t, len(want), v.Size(), "range(%d, %d) size", from, to)
				if len(want) > 0 {
					assert.Equal(t, want, v.Keys(), "range(%d, %d) keys", from, to)
				}
			}
		}
	})

	t.Run("views are snapshots", func(t *testing.T) {
		// Prepare
		v := b.TailView(0)
		size := v.Size()

		// Execute
		b.Put(10_000, 1)

		// Check
		assert.Equal(t, size, v.Size(), "view does not follow later inserts")
		assert.False(t, v.Contains(10_000), "new key not in view")
	})
}

func TestBpTreeMap_Stat(t *testing.T) {
	t.Run("reports height and leaf distribution", func(t *testing.T) {
		// Prepare
		b := newTree[int, int](t, 5)

		// Execute
		for i := 0; i < 4; i++ {
			b.Put(i, i)
		}
		small := b.Stat()
		for i := 4; i < 200; i++ {
			b.Put(i, i)
		}
		large := b.Stat()

		// Check
		assert.Equal(t, engine.BPTree, small.Kind, "engine kind")
		assert.Equal(t, 1, small.Height, "four keys fit in the root leaf")
		assert.Equal(t, []int{4}, small.BucketDistribution, "one leaf with four keys")
		assert.Greater(t, large.Height, 2, "tree has grown")
		assert.Equal(t, 200, large.Records, "record count")

		sum := 0
		for _, n := range large.BucketDistribution {
			assert.GreaterOrEqual(t, n, 1, "no empty leaves")
			sum += n
		}
		assert.Equal(t, 200, sum, "distribution covers every key")
	})
}
