package linhash

import (
	"github.com/gostonefire/mapindex/internal/model"
	"github.com/gostonefire/mapindex/internal/overflow"
)

// splitStep - Splits the chain at the split pointer. Every record of the chain is rehashed with mod2 and ends up
// either in a rebuilt chain at the same position or in a new chain appended at position split + mod1.
// When the split pointer reaches mod1 the round is complete and the table size doubles.
func (L *LinHashMap[K, V]) splitStep() {
	old := newChain[K, V](L.slots)
	moved := newChain[K, V](L.slots)

	records := overflow.NewRecords(L.chains[L.split])
	for records.HasNext() {
		r, _ := records.Next()
		if int(L.hashAlgorithm.HashFunc1(r.Key)%uint64(L.mod2)) == L.split {
			old.add(r)
		} else {
			moved.add(r)
		}
	}

	L.chains[L.split] = old.head
	L.chains = append(L.chains, moved.head)
	L.splitSteps++

	L.logger.Debug("chain split", "chain", L.split, "new_chain", L.split+L.mod1, "records", old.records,
		"moved_records", moved.records)

	L.split++
	if L.split == L.mod1 {
		L.mod1 = L.mod2
		L.mod2 = 2 * L.mod1
		L.split = 0

		L.logger.Debug("round complete", "mod1", L.mod1, "mod2", L.mod2, "chains", len(L.chains))
	}
}

// chain - Builds a bucket chain by appending records, opening a new overflow bucket when the tail is full
type chain[K comparable, V any] struct {
	head    *model.Bucket[K, V]
	tail    *model.Bucket[K, V]
	slots   int
	records int
}

func newChain[K comparable, V any](slots int) *chain[K, V] {
	b := model.NewBucket[K, V](slots, 0)
	return &chain[K, V]{head: b, tail: b, slots: slots}
}

func (C *chain[K, V]) add(r model.Record[K, V]) {
	if len(C.tail.Records) == C.slots {
		C.tail.Next = model.NewBucket[K, V](C.slots, 0)
		C.tail = C.tail.Next
	}
	C.tail.Records = append(C.tail.Records, r)
	C.records++
}
