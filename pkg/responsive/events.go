package responsive

// EventKind identifies a table event.
type EventKind int

const (
	// EventColumnCollapsed fires after each step of the collapse loop and
	// after a collapse trigger is activated.
	EventColumnCollapsed EventKind = iota
	// EventColumnExpanded fires after every expansion.
	EventColumnExpanded
)

func (k EventKind) String() string {
	switch k {
	case EventColumnCollapsed:
		return "collapse"
	case EventColumnExpanded:
		return "expand"
	}
	return "unknown"
}

// ParseEventKind accepts the names returned by String.
func ParseEventKind(s string) (EventKind, bool) {
	switch s {
	case "collapse":
		return EventColumnCollapsed, true
	case "expand":
		return EventColumnExpanded, true
	}
	return 0, false
}

// Event describes a change of column state. Auto is set for changes made
// by the fitting rather than by a trigger or an explicit call.
type Event struct {
	Kind   EventKind
	Table  *Table
	Column int
	Auto   bool
}

type Listener func(Event)

// On registers l for events of the given kind.
func (t *Table) On(kind EventKind, l Listener) {
	t.listeners[kind] = append(t.listeners[kind], l)
}

func (t *Table) emit(e Event) {
	e.Table = t
	for _, l := range t.listeners[e.Kind] {
		l(e)
	}
}
