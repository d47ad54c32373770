package ordmap

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func items(keys ...string) []Item[string, int] {
	out := make([]Item[string, int], len(keys))
	for i, k := range keys {
		out[i] = Item[string, int]{Key: k, Value: i + 1}
	}
	return out
}

func keysOf(t *testing.T, m *Map[string, int]) []string {
	t.Helper()
	ks, err := m.Keys()
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	return ks
}

func TestSingleModeAppendThenGateError(t *testing.T) {
	m := New(Options[string, int]{Mode: Single})

	m2, err := m.Set(items("a", "b"), false)
	if err != nil {
		t.Fatalf("first Set: %v", err)
	}
	if got := keysOf(t, m2); !cmp.Equal(got, []string{"a", "b"}) {
		t.Fatalf("keys = %v", got)
	}

	_, err = m.Set(items("c"), false)
	if !errors.Is(err, ErrSingleModeMutationAlreadyOccurred) {
		t.Fatalf("expected ErrSingleModeMutationAlreadyOccurred, got %v", err)
	}

	// m2 itself is still a fresh single-mode map: it can mutate once.
	_, err = m2.Set(items("c"), false)
	if err != nil {
		t.Fatalf("m2's first Set should succeed: %v", err)
	}
}

func TestSetPrependVsAppend(t *testing.T) {
	m := New(Options[string, int]{Mode: Multiway, InitialItems: items("b")})

	appended, err := m.Set(items("c"), false)
	if err != nil {
		t.Fatalf("append Set: %v", err)
	}
	if got := keysOf(t, appended); !cmp.Equal(got, []string{"b", "c"}) {
		t.Fatalf("append keys = %v", got)
	}

	prepended, err := m.Set(items("a"), true)
	if err != nil {
		t.Fatalf("prepend Set: %v", err)
	}
	if got := keysOf(t, prepended); !cmp.Equal(got, []string{"a", "b"}) {
		t.Fatalf("prepend keys = %v", got)
	}
}

func TestMultiwayBranchingIsolation(t *testing.T) {
	root := New(Options[string, int]{Mode: Multiway, InitialItems: items("a", "b")})

	left, err := root.Set(items("x"), false)
	if err != nil {
		t.Fatalf("left Set: %v", err)
	}
	right, err := root.Set(items("y"), false)
	if err != nil {
		t.Fatalf("right Set: %v", err)
	}

	if got := keysOf(t, left); !cmp.Equal(got, []string{"a", "b", "x"}) {
		t.Fatalf("left keys = %v", got)
	}
	if got := keysOf(t, right); !cmp.Equal(got, []string{"a", "b", "y"}) {
		t.Fatalf("right keys = %v", got)
	}
	if got := keysOf(t, root); !cmp.Equal(got, []string{"a", "b"}) {
		t.Fatalf("root keys should be unchanged, got %v", got)
	}
}

func TestUnsetRepairsNeighbors(t *testing.T) {
	m := New(Options[string, int]{InitialItems: items("a", "b", "c")})

	next, found, err := m.Unset("b")
	if err != nil {
		t.Fatalf("Unset: %v", err)
	}
	if !found {
		t.Fatalf("expected b to be found")
	}
	if got := keysOf(t, next); !cmp.Equal(got, []string{"a", "c"}) {
		t.Fatalf("keys after unset = %v", got)
	}
	if got := keysOf(t, m); !cmp.Equal(got, []string{"a", "b", "c"}) {
		t.Fatalf("ancestor keys should be unchanged, got %v", got)
	}

	_, found, err = next.Unset("zzz")
	if err != nil {
		t.Fatalf("Unset absent key: %v", err)
	}
	if found {
		t.Fatalf("expected absent key to report not-found")
	}
}

func TestReplaceWithKeyChange(t *testing.T) {
	m := New(Options[string, int]{InitialItems: items("a", "b", "c")})

	renamed, err := m.Replace("b", Item[string, int]{Key: "bb", Value: 99}, false, false)
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if got := keysOf(t, renamed); !cmp.Equal(got, []string{"a", "bb", "c"}) {
		t.Fatalf("keys after rename = %v", got)
	}
	v, ok, err := renamed.Get("bb")
	if err != nil || !ok || v != 99 {
		t.Fatalf("Get(bb) = %v, %v, %v", v, ok, err)
	}
	if _, ok, _ := renamed.Get("b"); ok {
		t.Fatalf("old key b should no longer resolve")
	}

	change, err := renamed.Change()
	if err != nil {
		t.Fatalf("Change: %v", err)
	}
	if change.Kind != ChangeReplace || change.Replace.OldKey != "b" || change.Replace.Key != "bb" {
		t.Fatalf("unexpected change record: %+v", change)
	}
}

func TestReplaceMissingKeyWithoutAddMissingIsNoOp(t *testing.T) {
	m := New(Options[string, int]{InitialItems: items("a")})

	same, err := m.Replace("zzz", Item[string, int]{Key: "zzz", Value: 1}, false, false)
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if same != m {
		t.Fatalf("expected no-op Replace to return the same map")
	}
}

func TestReplaceMissingKeyWithAddMissingInserts(t *testing.T) {
	m := New(Options[string, int]{InitialItems: items("a")})

	result, err := m.Replace("zzz", Item[string, int]{Key: "zzz", Value: 7}, true, false)
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if got := keysOf(t, result); !cmp.Equal(got, []string{"a", "zzz"}) {
		t.Fatalf("keys after addMissing Replace = %v", got)
	}
	change, err := result.Change()
	if err != nil {
		t.Fatalf("Change: %v", err)
	}
	if change.Kind != ChangeReplace || !change.Replace.WasInserted {
		t.Fatalf("expected WasInserted change record, got %+v", change)
	}
}

func TestReplaceSingleModeSameKeyNoOpValueDoesNotMutate(t *testing.T) {
	m := New(Options[string, int]{Mode: Single, InitialItems: items("a")})

	same, err := m.Replace("a", Item[string, int]{Key: "a", Value: 1}, false, false)
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if same != m {
		t.Fatalf("expected identity-equal Replace on Single mode to be a no-op")
	}

	// The gate must still be unflipped: a further mutation should succeed.
	if _, err := m.Set(items("b"), false); err != nil {
		t.Fatalf("Set after no-op Replace should still succeed: %v", err)
	}
}

func TestIsEmpty(t *testing.T) {
	empty := New(Options[string, int]{})
	isEmpty, err := empty.IsEmpty()
	if err != nil {
		t.Fatalf("IsEmpty: %v", err)
	}
	if !isEmpty {
		t.Fatalf("expected a fresh map to be empty")
	}

	nonEmpty := New(Options[string, int]{InitialItems: items("a")})
	isEmpty, err = nonEmpty.IsEmpty()
	if err != nil {
		t.Fatalf("IsEmpty: %v", err)
	}
	if isEmpty {
		t.Fatalf("expected a populated map to report not empty")
	}

	m := New(Options[string, int]{Mode: Lightweight, InitialItems: items("a")})
	if _, err := m.Set(items("b"), false); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, err := m.IsEmpty(); !errors.Is(err, ErrLightweightModePostMutationUse) {
		t.Fatalf("expected IsEmpty on a mutated lightweight ancestor to be gated, got %v", err)
	}
}

func TestLightweightModeLocksAncestorAfterMutation(t *testing.T) {
	m := New(Options[string, int]{Mode: Lightweight, InitialItems: items("a")})

	next, err := m.Set(items("b"), false)
	if err != nil {
		t.Fatalf("Set: %v", err)
	}

	_, _, err = m.Get("a")
	if !errors.Is(err, ErrLightweightModePostMutationUse) {
		t.Fatalf("expected lockout on ancestor read, got %v", err)
	}
	_, err = m.Set(items("c"), false)
	if !errors.Is(err, ErrLightweightModePostMutationUse) {
		t.Fatalf("expected lockout on ancestor mutate, got %v", err)
	}

	if got := keysOf(t, next); !cmp.Equal(got, []string{"a", "b"}) {
		t.Fatalf("keys on successor = %v", got)
	}
}

func TestRangeQueries(t *testing.T) {
	m := New(Options[string, int]{InitialItems: items("1", "2", "3", "4", "5")})

	before, err := m.RangeBefore("4", 2, true)
	if err != nil {
		t.Fatalf("RangeBefore: %v", err)
	}
	if got := []string{before[0].Key, before[1].Key}; !cmp.Equal(got, []string{"3", "4"}) {
		t.Fatalf("RangeBefore keys = %v", got)
	}

	after, err := m.RangeAfter("2", 2, false)
	if err != nil {
		t.Fatalf("RangeAfter: %v", err)
	}
	if got := []string{after[0].Key, after[1].Key}; !cmp.Equal(got, []string{"3", "4"}) {
		t.Fatalf("RangeAfter keys = %v", got)
	}
}

func TestReduceWithoutSeedRequiresNonEmpty(t *testing.T) {
	empty := New(Options[string, int]{})
	_, err := empty.Reduce(func(acc, v int, k string, i int) int { return acc + v })
	if !errors.Is(err, ErrReduceEmptyNoInitialValue) {
		t.Fatalf("expected ErrReduceEmptyNoInitialValue, got %v", err)
	}

	m := New(Options[string, int]{InitialItems: items("a", "b", "c")})
	sum, err := m.Reduce(func(acc, v int, k string, i int) int { return acc + v })
	if err != nil {
		t.Fatalf("Reduce: %v", err)
	}
	if sum != 6 { // 1 + 2 + 3
		t.Fatalf("sum = %d", sum)
	}
}

func TestSetNoOpPreservesIdentity(t *testing.T) {
	m := New(Options[string, int]{InitialItems: items("a")})
	same, err := m.Set([]Item[string, int]{{Key: "a", Value: 1}}, false)
	if err != nil {
		t.Fatalf("Set: %v", err)
	}
	if same != m {
		t.Fatalf("expected identity-equal value to return the same map")
	}
}

func TestSetDuplicateKeysLowestIndexWins(t *testing.T) {
	m := New(Options[string, int]{})
	result, err := m.Set([]Item[string, int]{
		{Key: "a", Value: 1},
		{Key: "a", Value: 2},
	}, false)
	if err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, ok, err := result.Get("a")
	if err != nil || !ok || v != 1 {
		t.Fatalf("Get(a) = %v, %v, %v, want 1", v, ok, err)
	}
}

func TestEmptyClearsEveryKey(t *testing.T) {
	m := New(Options[string, int]{InitialItems: items("a", "b")})
	cleared, err := m.Empty()
	if err != nil {
		t.Fatalf("Empty: %v", err)
	}
	n, err := cleared.Len()
	if err != nil {
		t.Fatalf("Len: %v", err)
	}
	if n != 0 {
		t.Fatalf("Len after Empty = %d", n)
	}
	if _, ok, _ := cleared.Get("a"); ok {
		t.Fatalf("expected a to be gone after Empty")
	}
	if got := keysOf(t, m); !cmp.Equal(got, []string{"a", "b"}) {
		t.Fatalf("ancestor keys should be unchanged, got %v", got)
	}
}

func TestLazyMaterializeMatchesEager(t *testing.T) {
	lazy := New(Options[string, int]{InitialItems: items("a", "b", "c"), Lazy: true})
	n, err := lazy.Len()
	if err != nil {
		t.Fatalf("Len: %v", err)
	}
	if n != 3 {
		t.Fatalf("lazy Len = %d", n)
	}
	if got := keysOf(t, lazy); !cmp.Equal(got, []string{"a", "b", "c"}) {
		t.Fatalf("lazy keys = %v", got)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	m := New(Options[string, int]{KeyPropName: "id", InitialItems: items("a", "b")})
	encoded, err := ToJSON[string, int](m)
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	decoded, err := FromJSON[string, int](encoded, Multiway, nil)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if decoded.KeyPropName() != "id" {
		t.Fatalf("KeyPropName = %q", decoded.KeyPropName())
	}
	if got := keysOf(t, decoded); !cmp.Equal(got, []string{"a", "b"}) {
		t.Fatalf("decoded keys = %v", got)
	}
}

func TestIsMap(t *testing.T) {
	m := New(Options[string, int]{})
	if !IsMap(m) {
		t.Fatalf("expected IsMap(m) to be true")
	}
	if IsMap(42) {
		t.Fatalf("expected IsMap(42) to be false")
	}
}
