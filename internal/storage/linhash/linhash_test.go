//go:build unit

package linhash

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/gostonefire/mapindex/engine"
	"github.com/gostonefire/mapindex/internal/model"
	"github.com/stretchr/testify/assert"
)

// checkChains - Verifies the chain count, bucket capacities and that every record lives in its designated chain
func checkChains[K comparable, V any](t *testing.T, l *LinHashMap[K, V]) {
	t.Helper()

	assert.Equal(t, l.mod1+l.split, len(l.chains), "mod1 + split chains")
	assert.Equal(t, 2*l.mod1, l.mod2, "mod2 is twice mod1")
	assert.Less(t, l.split, l.mod1, "split pointer within round")

	n := 0
	for i, head := range l.chains {
		for b := head; b != nil; b = b.Next {
			assert.LessOrEqual(t, len(b.Records), l.slots, "chain %d bucket within capacity", i)
			for _, r := range b.Records {
				assert.Equal(t, i, l.address(r.Key), "record %v in chain %d", r.Key, i)
				n++
			}
		}
	}
	assert.Equal(t, l.count, n, "count matches stored records")
}

func newLin[K comparable, V any](t *testing.T, initialSize, slots int) *LinHashMap[K, V] {
	t.Helper()
	l, err := New[K, V](model.HashConf[K]{InitialSize: initialSize, Slots: slots})
	assert.NoError(t, err, "create linear hash map")
	return l
}

func TestNew(t *testing.T) {
	t.Run("creates initial chains", func(t *testing.T) {
		// Execute
		l, err := New[int, int](model.HashConf[int]{InitialSize: 11, Slots: 4})

		// Check
		assert.NoError(t, err, "create linear hash map")
		assert.Len(t, l.chains, 11, "eleven chains")
		assert.True(t, l.Stat().InternalHash, "internal hash algorithm")
		assert.Equal(t, 11, l.mod1, "mod1")
		assert.Equal(t, 22, l.mod2, "mod2")
		assert.Equal(t, 0, l.split, "split pointer")
		checkChains(t, l)
	})

	t.Run("rejects non positive sizes", func(t *testing.T) {
		// Execute
		_, err1 := New[int, int](model.HashConf[int]{InitialSize: 0, Slots: 4})
		_, err2 := New[int, int](model.HashConf[int]{InitialSize: 4, Slots: -1})

		// Check
		assert.True(t, errors.Is(err1, engine.ConfigError{}), "zero initial size rejected")
		assert.True(t, errors.Is(err2, engine.ConfigError{}), "negative slots rejected")
	})
}

func TestLinHashMap_Put(t *testing.T) {
	t.Run("keys 0..88 from initial size 11", func(t *testing.T) {
		// Prepare
		l := newLin[int, int](t, 11, 4)

		// Execute
		for i := 0; i < 89; i++ {
			assert.Equal(t, engine.Inserted, l.Put(i, i*i), "insert %d", i)
		}

		// Check
		checkChains(t, l)
		assert.Equal(t, 89, l.Size(), "size")
		assert.Equal(t, 12, l.splitSteps, "split steps")
		assert.Equal(t, 22, l.mod1, "mod1")
		assert.Equal(t, 44, l.mod2, "mod2")
		assert.Equal(t, 1, l.split, "split pointer")
		assert.Len(t, l.chains, 23, "chains")
		for i := 0; i < 89; i++ {
			v, found := l.Get(i)
			assert.True(t, found, "key %d found", i)
			assert.Equal(t, i*i, v, "value of %d", i)
		}
		_, found := l.Get(89)
		assert.False(t, found, "key 89 absent")
	})

	t.Run("keys stay retrievable across every split", func(t *testing.T) {
		// Prepare
		l := newLin[string, int](t, 3, 2)
		r := rand.New(rand.NewSource(11))
		var keys []string
		seen := make(map[string]bool)

		// Execute & Check
		for len(keys) < 1500 {
			k := fmt.Sprintf("k%d", r.Intn(1_000_000))
			if seen[k] {
				continue
			}
			seen[k] = true
			keys = append(keys, k)

			steps := l.splitSteps
			l.Put(k, len(keys)-1)
			if l.splitSteps != steps {
				for i, prev := range keys {
					v, found := l.Get(prev)
					assert.True(t, found, "key %s found after split", prev)
					assert.Equal(t, i, v, "value of %s", prev)
				}
			}
		}
		checkChains(t, l)
		assert.Equal(t, len(keys), l.Size(), "size")
	})

	t.Run("duplicate key is ignored", func(t *testing.T) {
		// Prepare
		l := newLin[int, string](t, 2, 2)
		for i := 0; i < 30; i++ {
			l.Put(i, "first")
		}

		// Execute
		outcome := l.Put(7, "second")

		// Check
		assert.Equal(t, engine.DuplicateIgnored, outcome, "duplicate reported")
		assert.Equal(t, 30, l.Size(), "size unchanged")
		v, _ := l.Get(7)
		assert.Equal(t, "first", v, "first value kept")
	})

	t.Run("negative integer keys", func(t *testing.T) {
		// Prepare
		l := newLin[int, int](t, 5, 4)

		// Execute
		for i := -200; i < 0; i++ {
			l.Put(i, -i)
		}

		// Check
		checkChains(t, l)
		for i := -200; i < 0; i++ {
			v, found := l.Get(i)
			assert.True(t, found, "key %d found", i)
			assert.Equal(t, -i, v, "value of %d", i)
		}
	})
}

func TestLinHashMap_splitStep(t *testing.T) {
	t.Run("round completes after mod1 steps", func(t *testing.T) {
		// Prepare
		l := newLin[int, int](t, 3, 4)
		for i := 0; i < 9; i++ {
			l.Put(i, i)
		}

		// Execute & Check
		for step := 1; step <= 3; step++ {
			l.splitStep()
			checkChains(t, l)
			for i := 0; i < 9; i++ {
				_, found := l.Get(i)
				assert.True(t, found, "key %d found after step %d", i, step)
			}
		}
		assert.Equal(t, 0, l.split, "split pointer reset")
		assert.Equal(t, 6, l.mod1, "mod1 doubled")
		assert.Equal(t, 12, l.mod2, "mod2 doubled")
		assert.Len(t, l.chains, 6, "chains doubled")
	})

	t.Run("rebuilt chains are compacted", func(t *testing.T) {
		// Prepare
		l := newLin[int, int](t, 1, 2)
		head := l.chains[0]
		head.Records = append(head.Records, model.Record[int, int]{Key: 0}, model.Record[int, int]{Key: 1})
		head.Next = model.NewBucket[int, int](2, 0)
		head.Next.Records = append(head.Next.Records, model.Record[int, int]{Key: 2}, model.Record[int, int]{Key: 4})
		l.count = 4

		// Execute
		l.splitStep()

		// Check
		checkChains(t, l)
		assert.Equal(t, []model.Record[int, int]{{Key: 0}, {Key: 2}}, l.chains[0].Records, "even keys stay")
		assert.NotNil(t, l.chains[0].Next, "third even key in overflow bucket")
		assert.Equal(t, []model.Record[int, int]{{Key: 4}}, l.chains[0].Next.Records, "overflow bucket")
		assert.Equal(t, []model.Record[int, int]{{Key: 1}}, l.chains[1].Records, "odd key moved")
		assert.Nil(t, l.chains[1].Next, "no overflow on new chain")
	})
}

func TestLinHashMap_Entries(t *testing.T) {
	t.Run("yields every entry once and stops early", func(t *testing.T) {
		// Prepare
		l := newLin[int, int](t, 4, 2)
		want := make(map[int]int)
		for i := 0; i < 300; i++ {
			l.Put(i*13, i)
			want[i*13] = i
		}

		// Execute
		got := make(map[int]int)
		for k, v := range l.Entries() {
			got[k] = v
		}
		n := 0
		for range l.Entries() {
			n++
			if n == 5 {
				break
			}
		}

		// Check
		assert.Equal(t, want, got, "all entries")
		assert.Equal(t, 5, n, "early stop")
	})
}

func TestLinHashMap_Stat(t *testing.T) {
	t.Run("reports moduli and split pointer", func(t *testing.T) {
		// Prepare
		l := newLin[int, int](t, 11, 4)
		for i := 0; i < 89; i++ {
			l.Put(i, i)
		}

		// Execute
		stat := l.Stat()

		// Check
		assert.Equal(t, engine.LinearHash, stat.Kind, "engine kind")
		assert.Equal(t, 89, stat.Records, "records")
		assert.Equal(t, 23, stat.Buckets, "chains")
		assert.Equal(t, 22, stat.Mod1, "mod1")
		assert.Equal(t, 44, stat.Mod2, "mod2")
		assert.Equal(t, 1, stat.SplitPointer, "split pointer")
		assert.Equal(t, 12, stat.SplitSteps, "split steps")
		assert.Len(t, stat.BucketDistribution, 23, "one count per chain")
		assert.True(t, stat.InternalHash, "internal hash algorithm")
	})
}
