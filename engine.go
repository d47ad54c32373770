package ordmap

import "github.com/ordmap/ordmap/internal/linkmap"

// engine is the mode dispatch vtable: one interface implementing "which
// node belongs to me?" for a given mode, selected once per root and
// shared by every descendant (spec §9 Design Notes: "prefer a tagged
// variant with an internal trait/vtable-like dispatch").
type engine[K Key, V any] interface {
	makeNode(key K, value V) *node[K, V]
	makeOrphan(key K) *node[K, V]

	// bind records prev.next = next and next.previous = prev, visible
	// from depth/ver onward.
	bind(depth int, ver version, prev, next *node[K, V])

	// findNeighbor walks n's own neighbor storage in the given
	// direction, returning the neighbor visible from (depth, ver).
	findNeighbor(n *node[K, V], depth int, ver version, dir direction) *node[K, V]

	lookupHeap(h *heapIndex[K, V], key K, depth int, ver version) (*node[K, V], bool)
	updateHeap(h *heapIndex[K, V], key K, depth int, ver version, n *node[K, V])

	// childVersion returns the version a newly forked child of parent
	// should carry.
	childVersion(parent *Map[K, V]) version
}

// layeredEngine implements single and multiway modes. Single mode is
// multiway mode with childVersion always returning the root version: the
// root is a prefix of every version, so lookups never need to
// distinguish the two modes once a node exists (see heap.go).
type layeredEngine[K Key, V any] struct {
	branching bool
}

func (e layeredEngine[K, V]) makeNode(key K, value V) *node[K, V] { return newLayeredNode[K, V](key, value) }
func (e layeredEngine[K, V]) makeOrphan(key K) *node[K, V]        { return newLayeredOrphan[K, V](key) }

func (e layeredEngine[K, V]) bind(depth int, ver version, prev, next *node[K, V]) {
	bindLayer(prev.nextLayer, depth, ver, next)
	bindLayer(next.prevLayer, depth, ver, prev)
}

func bindLayer[K Key, V any](layer *depthLayer[K, V], depth int, ver version, target *node[K, V]) {
	stack, ok := layer.Get(depth)
	if !ok {
		stack = linkmap.New[versionKey, *node[K, V]]()
		layer.Set(depth, stack, true)
	}
	stack.Set(ver.key(), target, true)
}

func (e layeredEngine[K, V]) findNeighbor(n *node[K, V], depth int, ver version, dir direction) *node[K, V] {
	layer := n.layerFor(dir)
	var result *node[K, V]
	layer.ForEach(func(d int, stack *linkmap.Map[versionKey, *node[K, V]]) bool {
		if d > depth {
			return true
		}
		stack.ForEach(func(vk versionKey, cand *node[K, V]) bool {
			if versionKeyIsAncestor(vk, ver) {
				result = cand
				return false
			}
			return true
		})
		return result == nil
	})
	return result
}

func (e layeredEngine[K, V]) lookupHeap(h *heapIndex[K, V], key K, depth int, ver version) (*node[K, V], bool) {
	return h.lookupLayered(key, depth, ver)
}

func (e layeredEngine[K, V]) updateHeap(h *heapIndex[K, V], key K, depth int, ver version, n *node[K, V]) {
	h.putLayered(key, depth, ver, n)
}

func (e layeredEngine[K, V]) childVersion(parent *Map[K, V]) version {
	if !e.branching {
		return parent.ver
	}
	idx := parent.children
	parent.children++
	return parent.ver.child(idx)
}

// lightweightEngine implements lightweight mode: raw neighbor pointers,
// a flat heap index, freely overwritten since the predecessor map is, by
// contract, unusable after its first mutation.
type lightweightEngine[K Key, V any] struct{}

func (lightweightEngine[K, V]) makeNode(key K, value V) *node[K, V] { return newRawNode[K, V](key, value) }
func (lightweightEngine[K, V]) makeOrphan(key K) *node[K, V]        { return newRawOrphan[K, V](key) }

func (lightweightEngine[K, V]) bind(_ int, _ version, prev, next *node[K, V]) {
	prev.setRaw(directionNext, next)
	next.setRaw(directionPrevious, prev)
}

func (lightweightEngine[K, V]) findNeighbor(n *node[K, V], _ int, _ version, dir direction) *node[K, V] {
	return n.rawFor(dir)
}

func (lightweightEngine[K, V]) lookupHeap(h *heapIndex[K, V], key K, _ int, _ version) (*node[K, V], bool) {
	return h.lookupFlat(key)
}

func (lightweightEngine[K, V]) updateHeap(h *heapIndex[K, V], key K, _ int, _ version, n *node[K, V]) {
	h.putFlat(key, n)
}

func (lightweightEngine[K, V]) childVersion(*Map[K, V]) version { return nil }

func newEngine[K Key, V any](mode Mode) engine[K, V] {
	switch mode {
	case Single:
		return layeredEngine[K, V]{branching: false}
	case Lightweight:
		return lightweightEngine[K, V]{}
	default:
		return layeredEngine[K, V]{branching: true}
	}
}
