package ordmap

import "github.com/ordmap/ordmap/internal/linkmap"

// heapIndex is the process-internal store shared by reference across all
// versions forked from one root. It maps key -> DepthLayer and resolves
// "which node is current for this (version, key)" (spec §2, component 2).
//
// Only one of layered/flat is populated, chosen once at construction time
// by the map's mode and never changed afterward.
//
// Single mode is realized as multiway mode restricted to the root version
// (the empty vector): the root version is a prefix of every version, so
// the ancestry check in lookupLayered always succeeds and single mode's
// per-depth version stack never grows past one entry — exactly spec
// §4.2's single-mode lookup contract ("return the first entry whose
// recorded depth <= depth(M)"), without a separate code path.
type heapIndex[K Key, V any] struct {
	layered map[K]*depthLayer[K, V]
	flat    map[K]*node[K, V]
}

func newHeapIndex[K Key, V any](mode Mode) *heapIndex[K, V] {
	h := &heapIndex[K, V]{}
	if mode == Lightweight {
		h.flat = make(map[K]*node[K, V])
	} else {
		h.layered = make(map[K]*depthLayer[K, V])
	}
	return h
}

// layerFor returns the DepthLayer for key, creating it on first write.
func (h *heapIndex[K, V]) layerFor(key K) *depthLayer[K, V] {
	l, ok := h.layered[key]
	if !ok {
		l = linkmap.New[int, *linkmap.Map[versionKey, *node[K, V]]]()
		h.layered[key] = l
	}
	return l
}

// putLayered prepends (depth -> version -> n) so that DepthLayer
// traversal visits newest depth first (spec §4.2 update contract).
func (h *heapIndex[K, V]) putLayered(key K, depth int, ver version, n *node[K, V]) {
	layer := h.layerFor(key)
	stack, ok := layer.Get(depth)
	if !ok {
		stack = linkmap.New[versionKey, *node[K, V]]()
		layer.Set(depth, stack, true)
	}
	stack.Set(ver.key(), n, true)
}

// putFlat overwrites the flat entry for key (lightweight mode).
func (h *heapIndex[K, V]) putFlat(key K, n *node[K, V]) {
	h.flat[key] = n
}

// lookupLayered walks the DepthLayer newest-depth-first and, within each
// depth, the version stack newest-version-first, returning the first
// entry whose recorded depth <= depth and whose recorded version is an
// ancestor of ver. Returns (nil, false) if nothing is visible, or if the
// first visible entry is an orphan tombstone (spec invariant I5).
func (h *heapIndex[K, V]) lookupLayered(key K, depth int, ver version) (*node[K, V], bool) {
	layer, ok := h.layered[key]
	if !ok {
		return nil, false
	}

	var result *node[K, V]
	layer.ForEach(func(d int, stack *linkmap.Map[versionKey, *node[K, V]]) bool {
		if d > depth {
			return true // newer depths than ours may precede ours in the layer; skip them
		}
		stack.ForEach(func(vk versionKey, n *node[K, V]) bool {
			if versionKeyIsAncestor(vk, ver) {
				result = n
				return false
			}
			return true
		})
		return result == nil
	})

	if result == nil || result.orphan {
		return nil, false
	}
	return result, true
}

// lookupFlat performs the direct hash hit for lightweight mode.
func (h *heapIndex[K, V]) lookupFlat(key K) (*node[K, V], bool) {
	n, ok := h.flat[key]
	if !ok || n.orphan {
		return nil, false
	}
	return n, true
}

func versionKeyIsAncestor(vk versionKey, ver version) bool {
	return decodeVersionKey(vk).isAncestorOf(ver)
}

func decodeVersionKey(vk versionKey) version {
	b := []byte(vk)
	v := make(version, len(b)/4)
	for i := range v {
		v[i] = uint32(b[i*4])<<24 | uint32(b[i*4+1])<<16 | uint32(b[i*4+2])<<8 | uint32(b[i*4+3])
	}
	return v
}
