package ordmap

// Mode selects how a map resolves "which node belongs to me?" during
// lookup, trading freedom to branch history against lookup cost.
type Mode int

const (
	// Single permits at most one mutation per map: one linear branch of
	// history. Reusing a mutated map for a further mutation fails with
	// ErrSingleModeMutationAlreadyOccurred; the map remains readable.
	Single Mode = 1

	// Multiway permits arbitrary branching of history. This is the
	// default mode.
	Multiway Mode = 2

	// Lightweight permits at most one mutation, after which the
	// predecessor becomes unusable for any operation, reads included.
	Lightweight Mode = 3
)

// normalizeMode substitutes Multiway for any unrecognized mode value,
// per spec's factory contract ("if mode is unknown, silently substitute
// the default").
func normalizeMode(m Mode) Mode {
	switch m {
	case Single, Multiway, Lightweight:
		return m
	default:
		return Multiway
	}
}

func (m Mode) String() string {
	switch m {
	case Single:
		return "single"
	case Multiway:
		return "multiway"
	case Lightweight:
		return "lightweight"
	default:
		return "unknown"
	}
}
