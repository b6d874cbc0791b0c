package widget

// EventType names a native widget event.
type EventType string

const (
	EventText           EventType = "text"
	EventCheck          EventType = "check"
	EventSlider         EventType = "slider"
	EventChoice         EventType = "choice"
	EventCombo          EventType = "combo"
	EventDateChanged    EventType = "date_changed"
	EventFilePicked     EventType = "file_picked"
	EventCellChanged    EventType = "cell_changed"
	EventSelectCell     EventType = "select_cell"
	EventKeyDown        EventType = "key_down"
	EventItemSelected   EventType = "item_selected"
	EventItemDeselected EventType = "item_deselected"
	EventClose          EventType = "close"
	EventDestroy        EventType = "destroy"
)

// Key identifies a keyboard key in EventKeyDown.
type Key string

const (
	KeyDelete       Key = "delete"
	KeyBack         Key = "backspace"
	KeyNumpadDelete Key = "numpad_delete"
	KeyEnter        Key = "enter"
	KeyNumpadEnter  Key = "numpad_enter"
	KeyEscape       Key = "esc"
	KeyUp           Key = "up"
	KeyDown         Key = "down"
	KeyLeft         Key = "left"
	KeyRight        Key = "right"
	KeyTab          Key = "tab"
)

// Event carries a native event to handlers.
type Event struct {
	Type EventType
	// Row and Col locate grid events; Row is also the item index of list
	// events.
	Row, Col int
	// Selection is the selected index of choice and combo events, -1 for none.
	Selection int
	Key       Key
	Path      string

	skipped bool
	vetoed  bool
}

// NewEvent returns an event of type t with no selection.
func NewEvent(t EventType) *Event {
	return &Event{Type: t, Selection: -1}
}

// Skip lets default processing continue after the handler returns.
func (e *Event) Skip() { e.skipped = true }

// Veto cancels the state change the event announces.
func (e *Event) Veto() { e.vetoed = true }

func (e *Event) Skipped() bool { return e.skipped }
func (e *Event) Vetoed() bool  { return e.vetoed }

// Handler handles one event.
type Handler func(*Event)

// Source is implemented by everything that emits events.
type Source interface {
	// On registers h for events of type t and returns a function that
	// removes it.
	On(t EventType, h Handler) (cancel func())
}

type handlerEntry struct {
	h      Handler
	active bool
}

// Emitter is an embeddable Source implementation.
type Emitter struct {
	handlers map[EventType][]*handlerEntry
}

func (em *Emitter) On(t EventType, h Handler) func() {
	if em.handlers == nil {
		em.handlers = make(map[EventType][]*handlerEntry)
	}
	e := &handlerEntry{h: h, active: true}
	em.handlers[t] = append(em.handlers[t], e)
	return func() {
		if !e.active {
			return
		}
		e.active = false
		hs := em.handlers[t]
		for i, other := range hs {
			if other == e {
				em.handlers[t] = append(hs[:i:i], hs[i+1:]...)
				break
			}
		}
	}
}

// Emit delivers e to the handlers of e.Type in registration order. A handler
// that neither skips nor vetoes consumes the event and later handlers do not
// run. Emit returns e for inspection.
func (em *Emitter) Emit(e *Event) *Event {
	hs := append([]*handlerEntry(nil), em.handlers[e.Type]...)
	e.skipped = true
	for _, h := range hs {
		if !h.active {
			continue
		}
		e.skipped = false
		h.h(e)
		if e.vetoed || !e.skipped {
			break
		}
	}
	return e
}

// Handled reports whether some handler consumed the event without asking for
// default processing.
func Handled(e *Event) bool {
	return !e.skipped
}
