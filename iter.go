package ordmap

// Keys returns all keys in insertion order.
func (m *Map[K, V]) Keys() ([]K, error) {
	m.materialize()
	if err := m.checkReadGate("keys"); err != nil {
		return nil, err
	}
	keys := make([]K, 0, m.length)
	walkForward(m, func(n *node[K, V]) bool {
		keys = append(keys, n.elem.key)
		return true
	})
	return keys, nil
}

// Values returns all values in insertion order.
func (m *Map[K, V]) Values() ([]V, error) {
	m.materialize()
	if err := m.checkReadGate("values"); err != nil {
		return nil, err
	}
	values := make([]V, 0, m.length)
	walkForward(m, func(n *node[K, V]) bool {
		values = append(values, n.elem.value)
		return true
	})
	return values, nil
}

// KeysValues returns all items in insertion order.
func (m *Map[K, V]) KeysValues() ([]Item[K, V], error) {
	m.materialize()
	if err := m.checkReadGate("keysValues"); err != nil {
		return nil, err
	}
	items := make([]Item[K, V], 0, m.length)
	walkForward(m, func(n *node[K, V]) bool {
		items = append(items, Item[K, V]{Key: n.elem.key, Value: n.elem.value})
		return true
	})
	return items, nil
}

// MapValues produces a new slice by applying fn to every (key, value,
// index) in insertion order. Named MapValues, not Map, to avoid
// shadowing the package's own Map type.
func (m *Map[K, V]) MapValues(fn func(value V, key K, index int) V) ([]V, error) {
	m.materialize()
	if err := m.checkReadGate("map"); err != nil {
		return nil, err
	}
	out := make([]V, 0, m.length)
	i := 0
	walkForward(m, func(n *node[K, V]) bool {
		out = append(out, fn(n.elem.value, n.elem.key, i))
		i++
		return true
	})
	return out, nil
}

// Filter returns the items for which fn returns true, in insertion order.
func (m *Map[K, V]) Filter(fn func(value V, key K, index int) bool) ([]Item[K, V], error) {
	m.materialize()
	if err := m.checkReadGate("filter"); err != nil {
		return nil, err
	}
	var out []Item[K, V]
	i := 0
	walkForward(m, func(n *node[K, V]) bool {
		if fn(n.elem.value, n.elem.key, i) {
			out = append(out, Item[K, V]{Key: n.elem.key, Value: n.elem.value})
		}
		i++
		return true
	})
	return out, nil
}

// Every reports whether fn holds for every item, short-circuiting on the
// first failure.
func (m *Map[K, V]) Every(fn func(value V, key K, index int) bool) (bool, error) {
	m.materialize()
	if err := m.checkReadGate("every"); err != nil {
		return false, err
	}
	result := true
	i := 0
	walkForward(m, func(n *node[K, V]) bool {
		if !fn(n.elem.value, n.elem.key, i) {
			result = false
			return false
		}
		i++
		return true
	})
	return result, nil
}

// Some reports whether fn holds for at least one item, short-circuiting
// on the first success.
func (m *Map[K, V]) Some(fn func(value V, key K, index int) bool) (bool, error) {
	m.materialize()
	if err := m.checkReadGate("some"); err != nil {
		return false, err
	}
	result := false
	i := 0
	walkForward(m, func(n *node[K, V]) bool {
		if fn(n.elem.value, n.elem.key, i) {
			result = true
			return false
		}
		i++
		return true
	})
	return result, nil
}

// Reduce folds fn over m's values in insertion order with no seed: the
// first value is the initial accumulator, and fn is applied starting
// from the second element, matching spec's "reduce's no-initial-value
// contract: skip the first element and thereafter apply fn accumulating".
// Returns ErrReduceEmptyNoInitialValue on an empty map.
func (m *Map[K, V]) Reduce(fn func(acc, value V, key K, index int) V) (V, error) {
	m.materialize()
	var zero V
	if err := m.checkReadGate("reduce"); err != nil {
		return zero, err
	}
	if m.length == 0 {
		return zero, ErrReduceEmptyNoInitialValue
	}

	var acc V
	first := true
	i := 0
	walkForward(m, func(n *node[K, V]) bool {
		if first {
			acc = n.elem.value
			first = false
		} else {
			acc = fn(acc, n.elem.value, n.elem.key, i)
		}
		i++
		return true
	})
	return acc, nil
}

// ReduceFrom folds fn over every value in insertion order starting from
// the supplied seed.
func (m *Map[K, V]) ReduceFrom(seed V, fn func(acc, value V, key K, index int) V) (V, error) {
	m.materialize()
	if err := m.checkReadGate("reduce"); err != nil {
		return seed, err
	}
	acc := seed
	i := 0
	walkForward(m, func(n *node[K, V]) bool {
		acc = fn(acc, n.elem.value, n.elem.key, i)
		i++
		return true
	})
	return acc, nil
}
