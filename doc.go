// Package ordmap provides a persistent (immutable) ordered map keyed by a
// primitive (string or integer), carrying arbitrary value payloads.
//
// Every mutating operation — Set, Replace, Unset, Empty — returns a new
// logical version of the map. The new version structurally shares
// unchanged state with its ancestors rather than copying them, so forking
// history is cheap regardless of how large the map has grown.
//
// Three modes trade freedom against lookup cost:
//
//   - [Single]: at most one mutation per map, forming one linear branch of
//     history. Reusing a mutated map for a further mutation returns
//     [ErrSingleModeMutationAlreadyOccurred].
//   - [Multiway]: arbitrary branching of history. Any number of children
//     may be forked from the same map, and reads on one branch never see
//     writes made only on a sibling branch.
//   - [Lightweight]: at most one mutation, after which the predecessor
//     becomes entirely unusable (reads included), returning
//     [ErrLightweightModePostMutationUse]. This mode trades away history
//     for the cheapest possible lookup.
//
// ordmap is not safe for concurrent mutation of a single map instance.
// Two maps descended from different roots are independent and may be used
// from different goroutines without synchronization; two maps descended
// from the same root must not be mutated concurrently.
package ordmap
