package ordmap

// ChangeKind tags which mutation produced a ChangeRecord.
type ChangeKind int

const (
	// ChangeNone marks the zero ChangeRecord, carried by maps that have
	// never been the result of a mutation (e.g. fresh roots).
	ChangeNone ChangeKind = iota
	ChangeSet
	ChangeReplace
	ChangeUnset
	ChangeEmpty
)

// ChangeRecord describes the mutation that produced a map, attached to
// the result of Set, Replace, Unset and Empty. It is a Go tagged struct
// standing in for spec's tagged union over the four mutation kinds (spec
// §9 Design Notes: "do not use open-ended dictionaries").
type ChangeRecord[K Key, V any] struct {
	Kind ChangeKind

	// Populated when Kind == ChangeSet.
	Set SetChange[K, V]

	// Populated when Kind == ChangeReplace.
	Replace ReplaceChange[K, V]

	// Populated when Kind == ChangeUnset.
	Unset UnsetChange[K, V]
}

// SetChange describes a Set mutation. Inserted and Updated are ordered
// by final position in the new map.
type SetChange[K Key, V any] struct {
	Inserted       []Item[K, V]
	Updated        []Item[K, V]
	PrependMissing bool
}

// ReplaceChange describes a Replace mutation.
type ReplaceChange[K Key, V any] struct {
	OldKey                K
	Key                   K
	Value                 V
	WasInserted           bool
	WasUpdated            bool
	HadExistentNodeForKey bool
	PrependMissing        bool
}

// UnsetChange describes an Unset mutation.
type UnsetChange[K Key, V any] struct {
	Key   K
	Value V
}
