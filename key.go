package ordmap

// Key is the constraint on map keys: a primitive string or integer type.
// Order is never derived from K — order is strictly insertion order.
type Key interface {
	~string |
		~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}
