package ordmap

import "reflect"

// Map is a persistent, insertion-ordered map keyed by K, carrying
// arbitrary V payloads. Every mutating method returns a new *Map that
// structurally shares unchanged state with its ancestor; the ancestor
// remains valid to read (except in Lightweight mode, see package docs).
//
// The zero Map is not usable; construct one with New.
type Map[K Key, V any] struct {
	heap        *heapIndex[K, V]
	eng         engine[K, V]
	mode        Mode
	keyPropName string
	equalFn     func(a, b V) bool

	depth int
	ver   version

	head, tail *node[K, V]
	length     int

	ancestor *Map[K, V]
	change   ChangeRecord[K, V]

	children uint32 // count of children forked from this map (multiway)
	mutated  bool   // gate flag, flips once this map has produced a distinct child

	lazy *deferredInit[K, V]
}

// Options configures New.
type Options[K Key, V any] struct {
	// InitialItems populates the map in a single initial mutation.
	InitialItems []Item[K, V]

	// KeyPropName is carried as metadata and surfaced by the JSON
	// collaborator; it has no behavioral effect on the Go API, which
	// always takes explicit (Key, Value) pairs. Defaults to "id".
	KeyPropName string

	// Mode selects single/multiway/lightweight semantics. Defaults to
	// Multiway; an unrecognized value is also treated as Multiway.
	Mode Mode

	// Lazy defers population of InitialItems until the first call to
	// any method on the returned map.
	Lazy bool

	// Equal reports whether two values are identical for the purposes
	// of the no-op mutation rule (spec invariant I6: "M.set(x) === M
	// when x's value is identity-equal to the stored one"). Go has no
	// single universal identity-equality for an arbitrary type
	// parameter; Equal defaults to reflect.DeepEqual when nil. Callers
	// whose V is a pointer or interface type, and who want reference
	// identity instead of deep equality, should supply their own.
	Equal func(a, b V) bool
}

// New constructs a persistent ordered map per opts.
func New[K Key, V any](opts Options[K, V]) *Map[K, V] {
	mode := normalizeMode(opts.Mode)
	keyPropName := opts.KeyPropName
	if keyPropName == "" {
		keyPropName = "id"
	}
	equalFn := opts.Equal
	if equalFn == nil {
		equalFn = defaultEqual[V]
	}

	if opts.Lazy {
		return newLazyMap(opts.InitialItems, mode, keyPropName, equalFn)
	}

	root := newRootMap[K, V](mode, keyPropName, equalFn)
	populated, err := root.Set(opts.InitialItems, false)
	if err != nil {
		// Single/lightweight gates never trip on a fresh root's first
		// mutation, and Set never errors for any other reason; a panic
		// here would indicate an engine bug, not a usage error.
		panic(err)
	}
	return populated
}

func newRootMap[K Key, V any](mode Mode, keyPropName string, equalFn func(a, b V) bool) *Map[K, V] {
	return &Map[K, V]{
		heap:        newHeapIndex[K, V](mode),
		eng:         newEngine[K, V](mode),
		mode:        mode,
		keyPropName: keyPropName,
		equalFn:     equalFn,
	}
}

func defaultEqual[V any](a, b V) bool {
	return reflect.DeepEqual(a, b)
}

func (m *Map[K, V]) valuesEqual(a, b V) bool {
	return m.equalFn(a, b)
}

// fork returns a child sharing heap, keyPropName, mode, head, tail and
// length with m, with ancestor = m and depth = depth(m) + 1 (spec §4.4
// Fork).
func (m *Map[K, V]) fork() *Map[K, V] {
	child := &Map[K, V]{
		heap:        m.heap,
		eng:         m.eng,
		mode:        m.mode,
		keyPropName: m.keyPropName,
		equalFn:     m.equalFn,
		depth:       m.depth + 1,
		ver:         m.eng.childVersion(m),
		head:        m.head,
		tail:        m.tail,
		length:      m.length,
		ancestor:    m,
	}
	return child
}

func (m *Map[K, V]) markMutated() { m.mutated = true }

// checkMutateGate runs before any fork, per spec's failure model ("no
// partial state is observable on error: gate checks run before any
// fork").
func (m *Map[K, V]) checkMutateGate(op string) error {
	switch m.mode {
	case Lightweight:
		if m.mutated {
			return gateError(op, ErrLightweightModePostMutationUse)
		}
	case Single:
		if m.mutated {
			return gateError(op, ErrSingleModeMutationAlreadyOccurred)
		}
	}
	return nil
}

// checkReadGate is the lightweight-mode "any operation, reads included"
// rule; it is a no-op outside lightweight mode.
func (m *Map[K, V]) checkReadGate(op string) error {
	if m.mode == Lightweight && m.mutated {
		return gateError(op, ErrLightweightModePostMutationUse)
	}
	return nil
}

// Len reports the number of keys visible from m.
func (m *Map[K, V]) Len() (int, error) {
	m.materialize()
	if err := m.checkReadGate("len"); err != nil {
		return 0, err
	}
	return m.length, nil
}

// IsEmpty reports whether m has no keys.
func (m *Map[K, V]) IsEmpty() (bool, error) {
	m.materialize()
	if err := m.checkReadGate("isEmpty"); err != nil {
		return false, err
	}
	return m.length == 0, nil
}

// Mode reports m's operating mode.
func (m *Map[K, V]) Mode() Mode { return m.mode }

// KeyPropName reports the metadata carried for JSON round-tripping.
func (m *Map[K, V]) KeyPropName() string { return m.keyPropName }

// Change returns the change record describing the mutation that produced
// m. Fresh roots carry a zero ChangeRecord (Kind == ChangeNone).
func (m *Map[K, V]) Change() (ChangeRecord[K, V], error) {
	m.materialize()
	if err := m.checkReadGate("change"); err != nil {
		return ChangeRecord[K, V]{}, err
	}
	return m.change, nil
}

// Ancestor returns the map m was forked from, or nil for a root.
func (m *Map[K, V]) Ancestor() (*Map[K, V], error) {
	m.materialize()
	if err := m.checkReadGate("ancestor"); err != nil {
		return nil, err
	}
	return m.ancestor, nil
}

// mapMarker is the unforgeable tag interface IsMap probes for: it is
// satisfied only by *Map[K, V], for any instantiation of K and V, via an
// unexported method no other type can implement from outside the
// package.
type mapMarker interface{ ordmapSentinel() }

func (m *Map[K, V]) ordmapSentinel() {}

// IsMap reports whether v is a *Map[K, V] for some K, V.
func IsMap(v any) bool {
	_, ok := v.(mapMarker)
	return ok
}
