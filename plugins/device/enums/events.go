package enums

// AccessoryEvent describes enum with accessory registry events.
type AccessoryEvent int

const (
	// EvtAdded describes newly registered accessory.
	EvtAdded AccessoryEvent = iota
	// EvtRemoved describes unregistered accessory.
	EvtRemoved
	// EvtState describes switch state change.
	EvtState
)

var eventNames = map[AccessoryEvent]string{
	EvtAdded:   "added",
	EvtRemoved: "removed",
	EvtState:   "state",
}

// String returns event name.
func (i AccessoryEvent) String() string {
	name, ok := eventNames[i]
	if !ok {
		return "unknown"
	}

	return name
}
