// Package ids interns timer, step, object and value names into small integer identifiers.
package ids

// Namespace selects one of the independent identifier tables
type Namespace uint8

const (
	// Timer names measured regions opened with Begin/End
	Timer Namespace = iota
	// Step names sub-phases inside a timer
	Step
	// Object names the optional subject a step is performed on
	Object
	// Value names scalar values sampled per iteration
	Value

	numNamespaces
)

// String returns the namespace label used in logs
func (ns Namespace) String() string {
	switch ns {
	case Timer:
		return "timer"
	case Step:
		return "step"
	case Object:
		return "object"
	case Value:
		return "value"
	default:
		return "unknown"
	}
}

// ID is an interned name. Zero means "no name".
type ID uint32

// None is the reserved empty identifier
const None ID = 0

type table struct {
	names []string
	index map[string]ID
}

// Interner maps names to identifiers and back, one table per namespace.
// Identifiers are never reused or freed. An Interner is not safe for
// concurrent first use of a name; callers serialize if they share one.
type Interner struct {
	tables [numNamespaces]table
}

// NewInterner creates an empty interner
func NewInterner() *Interner {
	in := &Interner{}
	for i := range in.tables {
		// slot 0 is the reserved empty name
		in.tables[i] = table{
			names: []string{""},
			index: make(map[string]ID),
		}
	}
	return in
}

// ID returns the identifier for name, creating it on first use.
// The empty name always maps to None and is never stored.
func (in *Interner) ID(ns Namespace, name string) ID {
	if name == "" || ns >= numNamespaces {
		return None
	}
	t := &in.tables[ns]
	if id, ok := t.index[name]; ok {
		return id
	}
	id := ID(len(t.names))
	t.names = append(t.names, name)
	t.index[name] = id
	return id
}

// Lookup returns the identifier for name without creating it
func (in *Interner) Lookup(ns Namespace, name string) (ID, bool) {
	if name == "" || ns >= numNamespaces {
		return None, false
	}
	id, ok := in.tables[ns].index[name]
	return id, ok
}

// Name returns the name of id, or "" when id is None or was never issued
func (in *Interner) Name(ns Namespace, id ID) string {
	if ns >= numNamespaces {
		return ""
	}
	names := in.tables[ns].names
	if int(id) >= len(names) {
		return ""
	}
	return names[id]
}

// LastID returns the highest identifier issued in ns (None if none yet)
func (in *Interner) LastID(ns Namespace) ID {
	if ns >= numNamespaces {
		return None
	}
	return ID(len(in.tables[ns].names) - 1)
}
