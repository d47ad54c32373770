package ordmap

// deferredInit is the lazy-proxy collaborator: initialization is folded
// into an explicit materialize() call invoked at the top of every
// operation, the minimal concrete form a proxy takes when the target
// language lacks transparent proxying, which Go does.
type deferredInit[K Key, V any] struct {
	items []Item[K, V]
	done  bool
}

// newLazyMap returns a map whose Length is pre-set to len(items) but
// whose nodes are not constructed until the first call to materialize.
func newLazyMap[K Key, V any](items []Item[K, V], mode Mode, keyPropName string, equalFn func(a, b V) bool) *Map[K, V] {
	m := newRootMap[K, V](mode, keyPropName, equalFn)
	m.length = len(items)
	m.lazy = &deferredInit[K, V]{items: items}
	return m
}

// materialize triggers real population on first use and is a cheap
// no-op on every call after. It is invoked at the top of every public
// Map method that reads or changes the map's contents (Mode and
// KeyPropName, set at construction, do not call it), so a lazy map is
// indistinguishable from an eagerly built one to any caller.
func (m *Map[K, V]) materialize() {
	if m.lazy == nil || m.lazy.done {
		return
	}
	m.lazy.done = true
	items := m.lazy.items

	root := newRootMap[K, V](m.mode, m.keyPropName, m.equalFn)
	populated, err := root.Set(items, false)
	if err != nil {
		// Populating a fresh root can never trip a gate or any other
		// Set error path.
		panic(err)
	}
	populated.lazy = nil
	*m = *populated
}
