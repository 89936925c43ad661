package parser

import "github.com/aledsdavies/tomlfront/pkgs/raw"

// StringKind records which token form produced a key or value string,
// so a receiver (or a later validator) knows which content rules
// apply without re-inspecting the raw bytes.
type StringKind int

const (
	StringLiteral StringKind = iota
	StringBasic
	StringMlLiteral
	StringMlBasic
	// StringUnquoted marks a bare key or a value written without
	// quotes (atoms: booleans, numbers, datetimes).
	StringUnquoted
)

func (k StringKind) String() string {
	switch k {
	case StringLiteral:
		return "literal string"
	case StringBasic:
		return "basic string"
	case StringMlLiteral:
		return "multi-line literal string"
	case StringMlBasic:
		return "multi-line basic string"
	case StringUnquoted:
		return "unquoted string"
	default:
		return "unknown string kind"
	}
}

// EventKind names one element of the structural event stream. The set
// is closed: every event belongs to exactly one of these.
type EventKind int

const (
	StdTableOpen EventKind = iota
	StdTableClose
	ArrayTableOpen
	ArrayTableClose
	InlineTableOpen
	InlineTableClose
	ArrayOpen
	ArrayClose
	SimpleKey
	KeySep
	KeyValSep
	Value
	ValueSep
	Decor
	ErrorEvent
)

// Description renders the event kind the way a diagnostic names it.
func (k EventKind) Description() string {
	switch k {
	case StdTableOpen:
		return "std-table open"
	case StdTableClose:
		return "std-table close"
	case ArrayTableOpen:
		return "array-table open"
	case ArrayTableClose:
		return "array-table close"
	case InlineTableOpen:
		return "inline-table open"
	case InlineTableClose:
		return "inline-table close"
	case ArrayOpen:
		return "array open"
	case ArrayClose:
		return "array close"
	case SimpleKey:
		return "key"
	case KeySep:
		return "key separator"
	case KeyValSep:
		return "key-value separator"
	case Value:
		return "value"
	case ValueSep:
		return "value separator"
	case Decor:
		return "decor"
	case ErrorEvent:
		return "error"
	default:
		return "unknown event"
	}
}

// Event is one element of the structural stream: a kind, the span it
// covers, and (for SimpleKey/Value) which string form produced it.
type Event struct {
	Kind   EventKind
	Raw    raw.Raw
	String StringKind
}

// EventReceiver gets one callback per EventKind as the parser walks
// the token stream. Implementations never see raw tokens, only
// already-classified structural events; a receiver that only cares
// about a subset of events can embed NoopReceiver and override the
// rest.
type EventReceiver interface {
	StdTableOpen(r raw.Raw)
	StdTableClose(r raw.Raw)
	ArrayTableOpen(r raw.Raw)
	ArrayTableClose(r raw.Raw)
	InlineTableOpen(r raw.Raw)
	InlineTableClose(r raw.Raw)
	ArrayOpen(r raw.Raw)
	ArrayClose(r raw.Raw)
	SimpleKey(r raw.Raw, kind StringKind)
	KeySep(r raw.Raw)
	KeyValSep(r raw.Raw)
	Value(r raw.Raw, kind StringKind)
	ValueSep(r raw.Raw)
	Decor(r raw.Raw)
	Error(r raw.Raw)
}

// NoopReceiver implements EventReceiver by discarding every callback.
// Embed it to build a receiver that only overrides the events it
// cares about.
type NoopReceiver struct{}

func (NoopReceiver) StdTableOpen(raw.Raw)          {}
func (NoopReceiver) StdTableClose(raw.Raw)         {}
func (NoopReceiver) ArrayTableOpen(raw.Raw)        {}
func (NoopReceiver) ArrayTableClose(raw.Raw)       {}
func (NoopReceiver) InlineTableOpen(raw.Raw)       {}
func (NoopReceiver) InlineTableClose(raw.Raw)      {}
func (NoopReceiver) ArrayOpen(raw.Raw)             {}
func (NoopReceiver) ArrayClose(raw.Raw)            {}
func (NoopReceiver) SimpleKey(raw.Raw, StringKind) {}
func (NoopReceiver) KeySep(raw.Raw)                {}
func (NoopReceiver) KeyValSep(raw.Raw)             {}
func (NoopReceiver) Value(raw.Raw, StringKind)     {}
func (NoopReceiver) ValueSep(raw.Raw)              {}
func (NoopReceiver) Decor(raw.Raw)                 {}
func (NoopReceiver) Error(raw.Raw)                 {}

// CollectingReceiver is an EventReceiver that appends every callback
// as a flat Event slice, for callers (mainly tests) that want the
// whole stream as a value rather than a live callback.
type CollectingReceiver struct {
	Events []Event
}

func (c *CollectingReceiver) push(kind EventKind, r raw.Raw, sk StringKind) {
	c.Events = append(c.Events, Event{Kind: kind, Raw: r, String: sk})
}

func (c *CollectingReceiver) StdTableOpen(r raw.Raw)    { c.push(StdTableOpen, r, 0) }
func (c *CollectingReceiver) StdTableClose(r raw.Raw)   { c.push(StdTableClose, r, 0) }
func (c *CollectingReceiver) ArrayTableOpen(r raw.Raw)  { c.push(ArrayTableOpen, r, 0) }
func (c *CollectingReceiver) ArrayTableClose(r raw.Raw) { c.push(ArrayTableClose, r, 0) }
func (c *CollectingReceiver) InlineTableOpen(r raw.Raw) { c.push(InlineTableOpen, r, 0) }
func (c *CollectingReceiver) InlineTableClose(r raw.Raw) {
	c.push(InlineTableClose, r, 0)
}
func (c *CollectingReceiver) ArrayOpen(r raw.Raw)  { c.push(ArrayOpen, r, 0) }
func (c *CollectingReceiver) ArrayClose(r raw.Raw) { c.push(ArrayClose, r, 0) }
func (c *CollectingReceiver) SimpleKey(r raw.Raw, kind StringKind) {
	c.push(SimpleKey, r, kind)
}
func (c *CollectingReceiver) KeySep(r raw.Raw)    { c.push(KeySep, r, 0) }
func (c *CollectingReceiver) KeyValSep(r raw.Raw) { c.push(KeyValSep, r, 0) }
func (c *CollectingReceiver) Value(r raw.Raw, kind StringKind) {
	c.push(Value, r, kind)
}
func (c *CollectingReceiver) ValueSep(r raw.Raw) { c.push(ValueSep, r, 0) }
func (c *CollectingReceiver) Decor(r raw.Raw)    { c.push(Decor, r, 0) }
func (c *CollectingReceiver) Error(r raw.Raw)    { c.push(ErrorEvent, r, 0) }
