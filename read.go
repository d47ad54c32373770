package ordmap

// lookupNode is the heap-index read used throughout the engine: "which
// node is current for this (version, key)?" (spec §2).
func lookupNode[K Key, V any](m *Map[K, V], key K) (*node[K, V], bool) {
	return m.eng.lookupHeap(m.heap, key, m.depth, m.ver)
}

// findNeighbor resolves from's neighbor in dir as visible from m,
// special-casing the list boundaries before walking from's own neighbor
// storage (spec §4.3: "If fromNode is M.head going previous, or M.tail
// going next, return null").
func findNeighbor[K Key, V any](m *Map[K, V], from *node[K, V], dir direction) *node[K, V] {
	if dir == directionPrevious && from == m.head {
		return nil
	}
	if dir == directionNext && from == m.tail {
		return nil
	}
	return m.eng.findNeighbor(from, m.depth, m.ver, dir)
}

func walkForward[K Key, V any](m *Map[K, V], fn func(n *node[K, V]) bool) {
	for n := m.head; n != nil; {
		next := findNeighbor(m, n, directionNext)
		if !fn(n) {
			return
		}
		n = next
	}
}

func walkBackward[K Key, V any](m *Map[K, V], fn func(n *node[K, V]) bool) {
	for n := m.tail; n != nil; {
		prev := findNeighbor(m, n, directionPrevious)
		if !fn(n) {
			return
		}
		n = prev
	}
}

// Get returns the value stored at key and whether it was present.
func (m *Map[K, V]) Get(key K) (V, bool, error) {
	m.materialize()
	if err := m.checkReadGate("get"); err != nil {
		var zero V
		return zero, false, err
	}
	n, ok := lookupNode(m, key)
	if !ok {
		var zero V
		return zero, false, nil
	}
	return n.elem.value, true, nil
}

// First returns the item at the head of m's order (a key prepended with
// prependMissing comes before older keys).
func (m *Map[K, V]) First() (Item[K, V], bool, error) {
	m.materialize()
	if err := m.checkReadGate("first"); err != nil {
		return Item[K, V]{}, false, err
	}
	if m.head == nil {
		return Item[K, V]{}, false, nil
	}
	return Item[K, V]{Key: m.head.elem.key, Value: m.head.elem.value}, true, nil
}

// Last returns the item at the tail of m's order.
func (m *Map[K, V]) Last() (Item[K, V], bool, error) {
	m.materialize()
	if err := m.checkReadGate("last"); err != nil {
		return Item[K, V]{}, false, err
	}
	if m.tail == nil {
		return Item[K, V]{}, false, nil
	}
	return Item[K, V]{Key: m.tail.elem.key, Value: m.tail.elem.value}, true, nil
}

// ForEach walks m in insertion order (or reverse, if reversed is true),
// calling fn(key, value, index). Returning false from fn aborts the
// walk early.
func (m *Map[K, V]) ForEach(fn func(key K, value V, index int) bool, reversed bool) error {
	m.materialize()
	if err := m.checkReadGate("forEach"); err != nil {
		return err
	}
	i := 0
	walk := walkForward[K, V]
	if reversed {
		walk = walkBackward[K, V]
	}
	walk(m, func(n *node[K, V]) bool {
		keepGoing := fn(n.elem.key, n.elem.value, i)
		i++
		return keepGoing
	})
	return nil
}

// RangeBefore collects up to max items ending at (and, if inclusive,
// including) key, walking backward from key's node and then reversing
// the collected run so the result reads in forward order. Returns an
// empty, non-nil slice if key is absent or max <= 0.
func (m *Map[K, V]) RangeBefore(key K, max int, inclusive bool) ([]Item[K, V], error) {
	m.materialize()
	if err := m.checkReadGate("rangeBefore"); err != nil {
		return nil, err
	}
	n, ok := lookupNode(m, key)
	if !ok || max <= 0 {
		return []Item[K, V]{}, nil
	}

	var collected []Item[K, V]
	start := n
	if !inclusive {
		start = findNeighbor(m, n, directionPrevious)
	}
	for cur := start; cur != nil && len(collected) < max; cur = findNeighbor(m, cur, directionPrevious) {
		collected = append(collected, Item[K, V]{Key: cur.elem.key, Value: cur.elem.value})
	}

	reverseItems(collected)
	return collected, nil
}

// RangeAfter is the mirror of RangeBefore, walking forward from key.
func (m *Map[K, V]) RangeAfter(key K, max int, inclusive bool) ([]Item[K, V], error) {
	m.materialize()
	if err := m.checkReadGate("rangeAfter"); err != nil {
		return nil, err
	}
	n, ok := lookupNode(m, key)
	if !ok || max <= 0 {
		return []Item[K, V]{}, nil
	}

	var collected []Item[K, V]
	start := n
	if !inclusive {
		start = findNeighbor(m, n, directionNext)
	}
	for cur := start; cur != nil && len(collected) < max; cur = findNeighbor(m, cur, directionNext) {
		collected = append(collected, Item[K, V]{Key: cur.elem.key, Value: cur.elem.value})
	}
	return collected, nil
}

func reverseItems[K Key, V any](items []Item[K, V]) {
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
}
