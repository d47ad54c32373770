package ordmap

import "encoding/binary"

// version identifies a map's position in multiway branching history as a
// sequence of child indices: the root is the empty vector, and each fork
// appends the index of the child being created among its parent's
// children so far. Ancestry is a prefix relation on the vector.
//
// REDESIGN FLAGS (spec §9) call out the original's string-concatenation
// versions with a separator as a hazard if the separator ever collides
// with key material; a vector of integers has no such hazard.
type version []uint32

// child returns the version of the n'th child forked from v.
func (v version) child(n uint32) version {
	c := make(version, len(v)+1)
	copy(c, v)
	c[len(v)] = n
	return c
}

// isAncestorOf reports whether v is a prefix of other, i.e. whether a map
// at version v is on the lineage of a map at version other.
func (v version) isAncestorOf(other version) bool {
	if len(v) > len(other) {
		return false
	}
	for i, c := range v {
		if other[i] != c {
			return false
		}
	}
	return true
}

// versionKey is the fixed-width encoding of a version used as a map key
// inside internal/linkmap's version stacks. Fixed width guarantees that
// string-prefix comparisons over the encoding coincide exactly with
// vector-prefix comparisons over the version, so no separator byte is
// needed between components.
type versionKey string

func (v version) key() versionKey {
	buf := make([]byte, 4*len(v))
	for i, c := range v {
		binary.BigEndian.PutUint32(buf[i*4:], c)
	}
	return versionKey(buf)
}
