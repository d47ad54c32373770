package ordmap

import "github.com/ordmap/ordmap/internal/linkmap"

// element is the stored (key, value) pair carried by a node.
type element[K Key, V any] struct {
	key   K
	value V
}

// depthLayer is a per-node neighbor dictionary: depth -> version stack.
// In single mode the version stack never holds more than one entry (the
// root version ""); in multiway it may hold one entry per branch that has
// ever bound a neighbor at that depth. It is itself an
// internal/linkmap.Map, per spec §4.2's description of DepthLayer as "an
// instance of the ordered-link primitive" — traversal below always walks
// newest-prepended-first via ForEach (depths are prepended on write, see
// bind in engine.go).
type depthLayer[K Key, V any] = linkmap.Map[int, *linkmap.Map[versionKey, *node[K, V]]]

// node is an immutable element wrapper carrying mode-specific neighbor
// storage. Once created and bound by its creating map, a node's fields
// are never rewritten in single/multiway mode — binds only ever add new
// (depth, version) entries. orphan is the one flag set at tombstone
// creation and never flipped afterward.
type node[K Key, V any] struct {
	elem   element[K, V]
	orphan bool

	// single & multiway neighbor storage.
	prevLayer *depthLayer[K, V]
	nextLayer *depthLayer[K, V]

	// lightweight neighbor storage: overwritten freely, since by
	// contract the predecessor map is no longer usable once a
	// lightweight map has mutated.
	prevRaw *node[K, V]
	nextRaw *node[K, V]
}

func newLayeredNode[K Key, V any](key K, value V) *node[K, V] {
	return &node[K, V]{
		elem:      element[K, V]{key: key, value: value},
		prevLayer: linkmap.New[int, *linkmap.Map[versionKey, *node[K, V]]](),
		nextLayer: linkmap.New[int, *linkmap.Map[versionKey, *node[K, V]]](),
	}
}

func newLayeredOrphan[K Key, V any](key K) *node[K, V] {
	n := newLayeredNode[K, V](key, *new(V))
	n.orphan = true
	return n
}

func newRawNode[K Key, V any](key K, value V) *node[K, V] {
	return &node[K, V]{elem: element[K, V]{key: key, value: value}}
}

func newRawOrphan[K Key, V any](key K) *node[K, V] {
	n := newRawNode[K, V](key, *new(V))
	n.orphan = true
	return n
}

// direction of a neighbor walk.
type direction int

const (
	directionPrevious direction = iota
	directionNext
)

func (n *node[K, V]) layerFor(dir direction) *depthLayer[K, V] {
	if dir == directionPrevious {
		return n.prevLayer
	}
	return n.nextLayer
}

func (n *node[K, V]) rawFor(dir direction) *node[K, V] {
	if dir == directionPrevious {
		return n.prevRaw
	}
	return n.nextRaw
}

func (n *node[K, V]) setRaw(dir direction, to *node[K, V]) {
	if dir == directionPrevious {
		n.prevRaw = to
	} else {
		n.nextRaw = to
	}
}
