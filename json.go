package ordmap

import "encoding/json"

// jsonWire is the on-the-wire shape produced by ToJSON and consumed by
// FromJSON (spec §6): the key-property name travels alongside the
// ordered key/value pairs so a round trip preserves it.
type jsonWire[K Key, V any] struct {
	KeyPropName string         `json:"keyPropName"`
	KeysValues  []jsonItem[K, V] `json:"keysValues"`
}

type jsonItem[K Key, V any] struct {
	Key   K `json:"key"`
	Value V `json:"value"`
}

// ToJSON serializes m's key property name and its items, in insertion
// order, to the wire shape described in spec §6.
func ToJSON[K Key, V any](m *Map[K, V]) (string, error) {
	m.materialize()
	if err := m.checkReadGate("toJSON"); err != nil {
		return "", err
	}

	wire := jsonWire[K, V]{KeyPropName: m.keyPropName}
	walkForward(m, func(n *node[K, V]) bool {
		wire.KeysValues = append(wire.KeysValues, jsonItem[K, V]{Key: n.elem.key, Value: n.elem.value})
		return true
	})

	buf, err := json.Marshal(wire)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

// FromJSON rebuilds a map from the wire shape ToJSON produces, using the
// lazy factory path so the result materializes identically to one built
// by New(Options{Lazy: true}).
func FromJSON[K Key, V any](data string, mode Mode, equal func(a, b V) bool) (*Map[K, V], error) {
	var wire jsonWire[K, V]
	if err := json.Unmarshal([]byte(data), &wire); err != nil {
		return nil, err
	}

	items := make([]Item[K, V], len(wire.KeysValues))
	for i, kv := range wire.KeysValues {
		items[i] = Item[K, V]{Key: kv.Key, Value: kv.Value}
	}

	return New(Options[K, V]{
		InitialItems: items,
		KeyPropName:  wire.KeyPropName,
		Mode:         mode,
		Lazy:         true,
		Equal:        equal,
	}), nil
}
