package admin

import (
	"strings"

	"github.com/wolfman30/elitecuts-web/internal/backend"
)

// Tab is one dashboard tab.
type Tab string

const (
	TabActive       Tab = "active-reservations"
	TabPast         Tab = "past-reservations"
	TabCancelled    Tab = "cancelled-reservations"
	TabWorkingHours Tab = "working-hours"
)

// Tabs lists the dashboard tabs in display order.
func Tabs() []Tab {
	return []Tab{TabActive, TabPast, TabCancelled, TabWorkingHours}
}

// ParseTab falls back to the active tab for unknown values.
func ParseTab(v string) Tab {
	for _, t := range Tabs() {
		if string(t) == v {
			return t
		}
	}
	return TabActive
}

func (t Tab) Label() string {
	switch t {
	case TabPast:
		return "Past Reservations"
	case TabCancelled:
		return "Cancelled Reservations"
	case TabWorkingHours:
		return "Working Hours"
	default:
		return "Active Reservations"
	}
}

// Filter narrows a reservation list. Search matches name or email
// case-insensitively; Date must be a prefix of the reservation date.
type Filter struct {
	Search string
	Date   string
}

func (f Filter) Matches(r backend.Reservation) bool {
	needle := strings.ToLower(f.Search)
	matchesSearch := strings.Contains(strings.ToLower(r.Name), needle) ||
		strings.Contains(strings.ToLower(r.Email), needle)
	matchesDate := f.Date == "" || strings.HasPrefix(r.Date, f.Date)
	return matchesSearch && matchesDate
}

// Apply returns the matching reservations in their original order.
func (f Filter) Apply(list []backend.Reservation) []backend.Reservation {
	out := make([]backend.Reservation, 0, len(list))
	for _, r := range list {
		if f.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}
