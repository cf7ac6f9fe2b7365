package bptree

import (
	"slices"

	"github.com/gostonefire/mapindex/internal/conf"
	"github.com/gostonefire/mapindex/internal/utils"
)

// splitLeaf - Splits the full leaf h while inserting key/value at position pos.
// The first ceil(order/2) entries stay in h, the rest move to a new right sibling.
// It returns:
//   - separator is the smallest key of the new sibling, to be copied into the parent
//   - sibling is the handle of the new leaf
func (B *BpTreeMap[K, V]) splitLeaf(h, pos int, key K, value V) (separator K, sibling int) {
	n := &B.nodes[h]

	keys := make([]K, 0, B.order)
	keys = append(keys, n.keys[:pos]...)
	keys = append(keys, key)
	keys = append(keys, n.keys[pos:]...)

	values := make([]V, 0, B.order)
	values = append(values, n.values[:pos]...)
	values = append(values, value)
	values = append(values, n.values[pos:]...)

	m := utils.CeilHalf(B.order)

	sibling = B.newNode(true)
	n = &B.nodes[h]
	s := &B.nodes[sibling]

	n.keys = append(n.keys[:0], keys[:m]...)
	clear(n.values[m:])
	n.values = append(n.values[:0], values[:m]...)
	s.keys = append(s.keys, keys[m:]...)
	s.values = append(s.values, values[m:]...)

	B.link(h, sibling)
	separator = s.keys[0]

	return
}

// splitInternal - Splits the full internal node h while inserting separator key and child right after
// the child at index at. The node keeps its first ceil(order/2) children, the key between the halves moves up.
// It returns:
//   - separator is the key promoted to the parent
//   - sibling is the handle of the new internal node
func (B *BpTreeMap[K, V]) splitInternal(h, at int, key K, child int) (separator K, sibling int) {
	n := &B.nodes[h]

	keys := make([]K, 0, B.order)
	keys = append(keys, n.keys[:at]...)
	keys = append(keys, key)
	keys = append(keys, n.keys[at:]...)

	children := make([]int, 0, B.order+1)
	children = append(children, n.children[:at+1]...)
	children = append(children, child)
	children = append(children, n.children[at+1:]...)

	m := utils.CeilHalf(B.order)

	sibling = B.newNode(false)
	n = &B.nodes[h]
	s := &B.nodes[sibling]

	n.keys = append(n.keys[:0], keys[:m-1]...)
	n.children = append(n.children[:0], children[:m]...)
	separator = keys[m-1]
	s.keys = append(s.keys, keys[m:]...)
	s.children = append(s.children, children[m:]...)

	for _, c := range n.children {
		B.nodes[c].parent = h
	}
	for _, c := range s.children {
		B.nodes[c].parent = sibling
	}

	B.link(h, sibling)

	return
}

// insertIntoParent - Hooks the new node right in next to left under separator, splitting ancestors as long as
// they are full. A split of the root creates a new root, which is the only way the tree grows in height.
func (B *BpTreeMap[K, V]) insertIntoParent(left int, separator K, right int) {
	for {
		p := B.nodes[left].parent
		if p == conf.NoNode {
			root := B.newNode(false)
			r := &B.nodes[root]
			r.keys = append(r.keys, separator)
			r.children = append(r.children, left, right)
			B.nodes[left].parent = root
			B.nodes[right].parent = root
			B.root = root
			B.height++
			B.logger.Debug("root split", "height", B.height, "nodes", len(B.nodes))
			return
		}

		pn := &B.nodes[p]
		at := slices.Index(pn.children, left)

		if len(pn.keys) < B.order-1 {
			pn.keys = slices.Insert(pn.keys, at, separator)
			pn.children = slices.Insert(pn.children, at+1, right)
			B.nodes[right].parent = p
			return
		}

		separator, right = B.splitInternal(p, at, separator, right)
		left = p
	}
}

// link - Places sibling to the right of h in the sibling chain of their level
func (B *BpTreeMap[K, V]) link(h, sibling int) {
	n := &B.nodes[h]
	s := &B.nodes[sibling]

	s.parent = n.parent
	s.left = h
	s.right = n.right
	if n.right != conf.NoNode {
		B.nodes[n.right].left = sibling
	}
	n.right = sibling
}
