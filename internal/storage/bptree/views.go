package bptree

import (
	"cmp"

	"github.com/gostonefire/mapindex/internal/conf"
	"github.com/gostonefire/mapindex/sortedview"
	"github.com/zhangyunhao116/skipset"
)

// HeadView - Returns a new sorted view holding every entry with a key < toKey.
// It descends to the leaf toKey belongs in and walks the leaf chain to the left from there.
func (B *BpTreeMap[K, V]) HeadView(toKey K) (view *sortedview.View[K, V]) {
	view = sortedview.New[K, V]()

	h := B.findLeaf(toKey)
	n := &B.nodes[h]
	for i, k := range n.keys {
		if k >= toKey {
			break
		}
		view.Put(k, n.values[i])
	}

	for h = n.left; h != conf.NoNode; h = B.nodes[h].left {
		n = &B.nodes[h]
		for i, k := range n.keys {
			view.Put(k, n.values[i])
		}
	}

	return
}

// TailView - Returns a new sorted view holding every entry with a key >= fromKey.
// It descends to the leaf fromKey belongs in and walks the leaf chain to the right from there.
func (B *BpTreeMap[K, V]) TailView(fromKey K) (view *sortedview.View[K, V]) {
	view = sortedview.New[K, V]()

	h := B.findLeaf(fromKey)
	n := &B.nodes[h]
	for i, k := range n.keys {
		if k >= fromKey {
			view.Put(k, n.values[i])
		}
	}

	for h = n.right; h != conf.NoNode; h = B.nodes[h].right {
		n = &B.nodes[h]
		for i, k := range n.keys {
			view.Put(k, n.values[i])
		}
	}

	return
}

// RangeView - Returns a new sorted view holding every entry with fromKey <= key < toKey, built as the
// intersection of HeadView(toKey) and TailView(fromKey).
func (B *BpTreeMap[K, V]) RangeView(fromKey, toKey K) (view *sortedview.View[K, V]) {
	view = sortedview.New[K, V]()
	if fromKey >= toKey {
		return
	}

	tailKeys := skipset.NewFunc[K](cmp.Less[K])
	for k := range B.TailView(fromKey).Entries() {
		tailKeys.Add(k)
	}

	for k, v := range B.HeadView(toKey).Entries() {
		if tailKeys.Contains(k) {
			view.Put(k, v)
		}
	}

	return
}
