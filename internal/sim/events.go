package sim

import (
	"fmt"
	"strings"
)

type EventKind int

const (
	EventSleep EventKind = iota
	EventEnergy
	EventSkill
	EventHelp
	EventCooking
)

func (k EventKind) String() string {
	switch k {
	case EventSleep:
		return "sleep"
	case EventEnergy:
		return "energy"
	case EventSkill:
		return "skill"
	case EventHelp:
		return "help"
	case EventCooking:
		return "cooking"
	}
	return "unknown"
}

type Event struct {
	Time        TimeOfDay
	Kind        EventKind
	Description string
}

func (e Event) String() string {
	return fmt.Sprintf("[%s] %-7s %s", e.Time, e.Kind, e.Description)
}

// eventLog is nil unless logging is on; add is a no-op on nil and never
// calls describe then.
type eventLog struct {
	events []Event
}

func (l *eventLog) add(at TimeOfDay, kind EventKind, describe func() string) {
	if l == nil {
		return
	}
	l.events = append(l.events, Event{Time: at, Kind: kind, Description: describe()})
}

func FormatEvents(events []Event) string {
	var b strings.Builder
	for _, e := range events {
		b.WriteString(e.String())
		b.WriteByte('\n')
	}
	return b.String()
}
