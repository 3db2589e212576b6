// Package availability fetches per-date slot availability from the backend and
// guards the current snapshot against out-of-order responses.
package availability

import "github.com/wolfman30/elitecuts-web/internal/backend"

// Status describes how a slot label renders for the snapshot's date.
type Status int

const (
	// StatusHidden marks labels absent from the slot template; they are not rendered.
	StatusHidden Status = iota
	StatusSelectable
	StatusReserved
	StatusUnavailable
)

func (s Status) String() string {
	switch s {
	case StatusSelectable:
		return "selectable"
	case StatusReserved:
		return "reserved"
	case StatusUnavailable:
		return "unavailable"
	default:
		return "hidden"
	}
}

// Snapshot is the backend's view of one date's slots.
type Snapshot struct {
	Date      string
	AllSlots  []string
	Available []string
	Reserved  []string
}

// EmptySnapshot is the fail-safe "nothing bookable" snapshot for date.
func EmptySnapshot(date string) Snapshot {
	return Snapshot{Date: date, AllSlots: []string{}, Available: []string{}, Reserved: []string{}}
}

// FromBackend converts the available-times response, keeping date as the key.
func FromBackend(date string, resp *backend.AvailableTimes) Snapshot {
	if resp == nil {
		return EmptySnapshot(date)
	}
	return Snapshot{
		Date:      date,
		AllSlots:  nonNil(resp.AllTimeSlots),
		Available: nonNil(resp.AvailableTimes),
		Reserved:  nonNil(resp.ReservedTimes),
	}
}

// Empty reports whether the snapshot has no slots to render.
func (s Snapshot) Empty() bool {
	return len(s.AllSlots) == 0
}

// Selectable reports whether label is available and not reserved.
func (s Snapshot) Selectable(label string) bool {
	return s.Status(label) == StatusSelectable
}

func (s Snapshot) Status(label string) Status {
	if !contains(s.AllSlots, label) {
		return StatusHidden
	}
	if contains(s.Reserved, label) {
		return StatusReserved
	}
	if contains(s.Available, label) {
		return StatusSelectable
	}
	return StatusUnavailable
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
