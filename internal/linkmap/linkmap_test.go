package linkmap

import "testing"

func collect[K comparable, V any](m *Map[K, V]) []K {
	var keys []K
	m.ForEach(func(k K, _ V) bool {
		keys = append(keys, k)
		return true
	})
	return keys
}

func TestSetAppendOrder(t *testing.T) {
	m := New[string, int]()
	m.Set("a", 1, false)
	m.Set("b", 2, false)
	m.Set("c", 3, false)

	got := collect(m)
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestSetPrepend(t *testing.T) {
	m := New[string, int]()
	m.Set("a", 1, false)
	m.Set("b", 2, false)
	m.Set("z", 0, true)

	got := collect(m)
	want := []string{"z", "a", "b"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestSetExistingOverwritesInPlace(t *testing.T) {
	m := New[string, int]()
	m.Set("a", 1, false)
	m.Set("b", 2, false)
	m.Set("a", 99, false)

	got := collect(m)
	want := []string{"a", "b"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order changed on overwrite: got %v, want %v", got, want)
		}
	}
	if v, _ := m.Get("a"); v != 99 {
		t.Fatalf("Get(a) = %d, want 99", v)
	}
}

func TestRemoveMiddle(t *testing.T) {
	m := New[string, int]()
	m.Set("a", 1, false)
	m.Set("b", 2, false)
	m.Set("c", 3, false)

	if err := m.Remove("b"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	got := collect(m)
	want := []string{"a", "c"}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("got %v, want %v", got, want)
	}
	if first, _, _ := m.First(); first != "a" {
		t.Fatalf("First() = %v, want a", first)
	}
	if last, _, _ := m.Last(); last != "c" {
		t.Fatalf("Last() = %v, want c", last)
	}
}

func TestRemoveHeadAndTail(t *testing.T) {
	m := New[string, int]()
	m.Set("a", 1, false)
	m.Set("b", 2, false)
	m.Set("c", 3, false)

	if err := m.Remove("a"); err != nil {
		t.Fatal(err)
	}
	if first, _, _ := m.First(); first != "b" {
		t.Fatalf("First() = %v, want b", first)
	}

	if err := m.Remove("c"); err != nil {
		t.Fatal(err)
	}
	if last, _, _ := m.Last(); last != "b" {
		t.Fatalf("Last() = %v, want b", last)
	}
}

func TestRemoveUnknownKey(t *testing.T) {
	m := New[string, int]()
	m.Set("a", 1, false)
	if err := m.Remove("missing"); err == nil {
		t.Fatal("expected ErrUnknownKey")
	}
}

func TestForEachAbort(t *testing.T) {
	m := New[string, int]()
	m.Set("a", 1, false)
	m.Set("b", 2, false)
	m.Set("c", 3, false)

	var seen []string
	m.ForEach(func(k string, _ int) bool {
		seen = append(seen, k)
		return k != "b"
	})
	if len(seen) != 2 {
		t.Fatalf("expected abort after 2 elements, got %v", seen)
	}
}

func TestForEachReverseIsForwardReversed(t *testing.T) {
	m := New[string, int]()
	for _, k := range []string{"a", "b", "c", "d"} {
		m.Set(k, 0, false)
	}

	forward := collect(m)
	var reverse []string
	m.ForEachReverse(func(k string, _ int) bool {
		reverse = append(reverse, k)
		return true
	})

	if len(forward) != len(reverse) {
		t.Fatalf("length mismatch")
	}
	for i := range forward {
		if forward[i] != reverse[len(reverse)-1-i] {
			t.Fatalf("forward %v is not the reverse of %v", forward, reverse)
		}
	}
}

func TestZeroValueUsable(t *testing.T) {
	var m Map[string, int]
	m.Set("a", 1, false)
	if v, ok := m.Get("a"); !ok || v != 1 {
		t.Fatalf("zero-value Map not usable: %v %v", v, ok)
	}
}
