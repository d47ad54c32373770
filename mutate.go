package ordmap

// Set inserts or updates every item in items, returning the resulting
// map. Keys absent from m are inserted; present keys are replaced with
// a fresh node carrying the new value, unless the new value is
// identity-equal (per m's Equal option) to the stored one, in which
// case that single item is a no-op (spec invariant I6). If items
// contains duplicate keys, the occurrence at the lowest index wins —
// both for the value that is kept and for the position a newly
// inserted key is given among its insertion siblings.
//
// prependMissing controls where absent keys land: appended after the
// current tail (false) or prepended before the current head (true).
// Existing keys are always replaced in their current slot regardless
// of prependMissing.
func (m *Map[K, V]) Set(items []Item[K, V], prependMissing bool) (*Map[K, V], error) {
	m.materialize()
	if err := m.checkMutateGate("set"); err != nil {
		return nil, err
	}

	type planned struct {
		value    V
		inserted bool
	}
	plan := make(map[K]planned, len(items))
	order := make([]K, 0, len(items))
	seen := make(map[K]bool, len(items))
	for _, it := range items {
		if seen[it.Key] {
			continue
		}
		seen[it.Key] = true
		existing, ok := lookupNode(m, it.Key)
		if ok && m.valuesEqual(existing.elem.value, it.Value) {
			continue
		}
		plan[it.Key] = planned{value: it.Value, inserted: !ok}
		order = append(order, it.Key)
	}
	if len(order) == 0 {
		return m, nil
	}

	result := m.fork()

	// created tracks nodes minted during this call, so that when two
	// touched keys are adjacent to each other, the second one to be
	// spliced binds to the first's fresh node rather than to its own
	// now-superseded ancestor neighbor.
	created := make(map[K]*node[K, V], len(order))
	currentNode := func(key K) (*node[K, V], bool) {
		if n, ok := created[key]; ok {
			return n, true
		}
		return lookupNode(m, key)
	}

	var localHead, localTail *node[K, V]

	for _, key := range order {
		p := plan[key]
		// Looked up before updateHeap: in lightweight mode the flat heap
		// entry is overwritten by the new node.
		old, _ := lookupNode(m, key)
		newNode := result.eng.makeNode(key, p.value)
		created[key] = newNode
		result.eng.updateHeap(result.heap, key, result.depth, result.ver, newNode)

		if p.inserted {
			if localTail != nil {
				result.eng.bind(result.depth, result.ver, localTail, newNode)
			} else {
				localHead = newNode
			}
			localTail = newNode
			result.length++
			continue
		}

		prevOld := findNeighbor(m, old, directionPrevious)
		nextOld := findNeighbor(m, old, directionNext)

		switch {
		case prevOld == nil:
			result.head = newNode
		default:
			if prevNode, ok := currentNode(prevOld.elem.key); ok {
				result.eng.bind(result.depth, result.ver, prevNode, newNode)
			}
		}
		switch {
		case nextOld == nil:
			result.tail = newNode
		default:
			if nextNode, ok := currentNode(nextOld.elem.key); ok {
				result.eng.bind(result.depth, result.ver, newNode, nextNode)
			}
		}
	}

	if localTail != nil {
		if prependMissing {
			if result.head != nil {
				result.eng.bind(result.depth, result.ver, localTail, result.head)
			} else {
				result.tail = localTail
			}
			result.head = localHead
		} else {
			if result.tail != nil {
				result.eng.bind(result.depth, result.ver, result.tail, localHead)
			} else {
				result.head = localHead
			}
			result.tail = localTail
		}
	}

	m.markMutated()

	var inserted, updated []Item[K, V]
	walkForward(result, func(n *node[K, V]) bool {
		p, ok := plan[n.elem.key]
		if !ok {
			return true
		}
		item := Item[K, V]{Key: n.elem.key, Value: n.elem.value}
		if p.inserted {
			inserted = append(inserted, item)
		} else {
			updated = append(updated, item)
		}
		return true
	})

	result.change = ChangeRecord[K, V]{
		Kind: ChangeSet,
		Set: SetChange[K, V]{
			Inserted:       inserted,
			Updated:        updated,
			PrependMissing: prependMissing,
		},
	}
	return result, nil
}

// spliceReplace builds a fresh node for key carrying value and binds it
// into the slot key currently occupies in m, leaving every other node
// untouched. Used by Replace's same-key path, where exactly one node
// changes and no substitution bookkeeping is needed.
func spliceReplace[K Key, V any](m, result *Map[K, V], key K, value V) *node[K, V] {
	old, _ := lookupNode(m, key)
	newNode := result.eng.makeNode(key, value)
	result.eng.updateHeap(result.heap, key, result.depth, result.ver, newNode)

	prevOld := findNeighbor(m, old, directionPrevious)
	nextOld := findNeighbor(m, old, directionNext)
	if prevOld == nil {
		result.head = newNode
	} else {
		result.eng.bind(result.depth, result.ver, prevOld, newNode)
	}
	if nextOld == nil {
		result.tail = newNode
	} else {
		result.eng.bind(result.depth, result.ver, newNode, nextOld)
	}
	return newNode
}

// Replace swaps whatever currently sits at oldKey for item, which may
// carry a different key than oldKey. If oldKey is not present and
// addMissing is false, Replace is a no-op (returns m unchanged). If
// oldKey is not present and addMissing is true, item is added as though
// by Set(prependMissing); per that fallback's own existence probe,
// WasInserted/WasUpdated there are decided against item.Key, not oldKey
// (oldKey is then a pure no-op lookup key).
//
// Renaming a present key (oldKey != item.Key) puts item in oldKey's slot.
// If item.Key already had a node, that node is dropped; when it is the
// immediate neighbor of oldKey's node, the new node is bound directly to
// the node beyond it.
func (m *Map[K, V]) Replace(oldKey K, item Item[K, V], addMissing, prependMissing bool) (*Map[K, V], error) {
	m.materialize()
	if err := m.checkMutateGate("replace"); err != nil {
		return nil, err
	}

	old, hadOld := lookupNode(m, oldKey)
	existingForNewKey, hadNewKeyNode := lookupNode(m, item.Key)

	if !hadOld {
		if !addMissing {
			return m, nil
		}
		wasInserted := !hadNewKeyNode
		result, err := m.Set([]Item[K, V]{item}, prependMissing)
		if err != nil {
			return nil, err
		}
		if result == m {
			return m, nil
		}
		result.change = ChangeRecord[K, V]{
			Kind: ChangeReplace,
			Replace: ReplaceChange[K, V]{
				OldKey:                oldKey,
				Key:                   item.Key,
				Value:                 item.Value,
				WasInserted:           wasInserted,
				WasUpdated:            !wasInserted,
				HadExistentNodeForKey: hadNewKeyNode,
				PrependMissing:        prependMissing,
			},
		}
		return result, nil
	}

	if oldKey == item.Key {
		if m.valuesEqual(old.elem.value, item.Value) {
			return m, nil
		}
		result := m.fork()
		spliceReplace(m, result, oldKey, item.Value)
		m.markMutated()
		result.change = ChangeRecord[K, V]{
			Kind: ChangeReplace,
			Replace: ReplaceChange[K, V]{
				OldKey:                oldKey,
				Key:                   item.Key,
				Value:                 item.Value,
				WasUpdated:            true,
				HadExistentNodeForKey: true,
				PrependMissing:        prependMissing,
			},
		}
		return result, nil
	}

	// Renaming: oldKey's slot is taken over by item.Key's new content;
	// if item.Key already had a node elsewhere, that occurrence is
	// dropped so the key stays unique.
	result := m.fork()

	prevOld := findNeighbor(m, old, directionPrevious)
	nextOld := findNeighbor(m, old, directionNext)

	var prevOther, nextOther *node[K, V]
	adjacent := false
	if hadNewKeyNode {
		prevOther = findNeighbor(m, existingForNewKey, directionPrevious)
		nextOther = findNeighbor(m, existingForNewKey, directionNext)
		switch {
		case nextOld == existingForNewKey:
			nextOld, adjacent = nextOther, true
		case prevOld == existingForNewKey:
			prevOld, adjacent = prevOther, true
		}
	}

	newNode := result.eng.makeNode(item.Key, item.Value)
	result.eng.updateHeap(result.heap, item.Key, result.depth, result.ver, newNode)
	orphanOld := result.eng.makeOrphan(oldKey)
	result.eng.updateHeap(result.heap, oldKey, result.depth, result.ver, orphanOld)

	if prevOld == nil {
		result.head = newNode
	} else {
		result.eng.bind(result.depth, result.ver, prevOld, newNode)
	}
	if nextOld == nil {
		result.tail = newNode
	} else {
		result.eng.bind(result.depth, result.ver, newNode, nextOld)
	}

	newLength := m.length
	if hadNewKeyNode {
		switch {
		case adjacent:
			// The bindings above already step over existingForNewKey.
		case prevOther == nil && nextOther == nil:
			// existingForNewKey had no other neighbors; its removal is
			// already reflected by the head/tail assignments above.
		case prevOther == nil:
			result.head = nextOther
		case nextOther == nil:
			result.tail = prevOther
		default:
			result.eng.bind(result.depth, result.ver, prevOther, nextOther)
		}
		newLength--
	}
	result.length = newLength

	m.markMutated()

	result.change = ChangeRecord[K, V]{
		Kind: ChangeReplace,
		Replace: ReplaceChange[K, V]{
			OldKey:                oldKey,
			Key:                   item.Key,
			Value:                 item.Value,
			WasUpdated:            true,
			HadExistentNodeForKey: hadNewKeyNode,
			PrependMissing:        prependMissing,
		},
	}
	return result, nil
}

// Unset removes key from the map, closing the gap between its former
// neighbors by rebinding them to each other (spec §4.4's "repair" step).
// Boundary removals (key at head, tail, or the map's sole entry) are
// handled by reassigning head/tail directly, relying on findNeighbor's
// own boundary shortcut rather than minting a repair node. Returns
// (m, false, nil) if key is absent.
func (m *Map[K, V]) Unset(key K) (*Map[K, V], bool, error) {
	m.materialize()
	if err := m.checkMutateGate("unset"); err != nil {
		return nil, false, err
	}

	old, ok := lookupNode(m, key)
	if !ok {
		return m, false, nil
	}

	result := m.fork()
	prevN := findNeighbor(m, old, directionPrevious)
	nextN := findNeighbor(m, old, directionNext)

	orphan := result.eng.makeOrphan(key)
	result.eng.updateHeap(result.heap, key, result.depth, result.ver, orphan)

	switch {
	case prevN == nil && nextN == nil:
		result.head = nil
		result.tail = nil
	case prevN == nil:
		result.head = nextN
	case nextN == nil:
		result.tail = prevN
	default:
		result.eng.bind(result.depth, result.ver, prevN, nextN)
	}
	result.length--

	m.markMutated()
	result.change = ChangeRecord[K, V]{
		Kind: ChangeUnset,
		Unset: UnsetChange[K, V]{
			Key:   key,
			Value: old.elem.value,
		},
	}
	return result, true, nil
}

// Empty discards every entry by starting a fresh heap index rather than
// carrying the old one forward: an O(1) operation equivalent to a new
// root, not a sweep tombstoning every currently visible key.
func (m *Map[K, V]) Empty() (*Map[K, V], error) {
	m.materialize()
	if err := m.checkMutateGate("empty"); err != nil {
		return nil, err
	}
	if m.length == 0 {
		return m, nil
	}

	result := newRootMap[K, V](m.mode, m.keyPropName, m.equalFn)
	result.depth = m.depth + 1
	result.ancestor = m

	m.markMutated()
	result.change = ChangeRecord[K, V]{Kind: ChangeEmpty}
	return result, nil
}
