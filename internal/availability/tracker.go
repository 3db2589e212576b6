package availability

import (
	"context"
	"sync"

	"github.com/wolfman30/elitecuts-web/internal/observability/metrics"
)

// Ticket identifies one issued fetch.
type Ticket struct {
	Seq  uint64
	Date string
}

// Tracker holds the snapshot for the currently selected date. Results are
// accepted only for the latest ticket whose date still matches the selection.
type Tracker struct {
	mu      sync.Mutex
	fetcher Fetcher
	metrics *metrics.FrontendMetrics

	seq     uint64
	date    string
	current Snapshot
}

func NewTracker(f Fetcher, m *metrics.FrontendMetrics) *Tracker {
	return &Tracker{fetcher: f, metrics: m, current: EmptySnapshot("")}
}

// Begin records date as the selection and issues a ticket for its fetch. The
// previous snapshot is dropped so no stale slots render while loading.
func (t *Tracker) Begin(date string) Ticket {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seq++
	t.date = date
	t.current = EmptySnapshot(date)
	return Ticket{Seq: t.seq, Date: date}
}

// Resolve stores snap if ticket is still current. It reports whether the
// result was kept.
func (t *Tracker) Resolve(ticket Ticket, snap Snapshot) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if ticket.Seq != t.seq || ticket.Date != t.date || snap.Date != ticket.Date {
		t.metrics.ObserveStaleAvailability()
		return false
	}
	t.current = snap
	return true
}

// Load selects date and fetches its snapshot. The tracker lock is not held
// during the fetch.
func (t *Tracker) Load(ctx context.Context, date string) (Snapshot, bool) {
	ticket := t.Begin(date)
	if date == "" {
		return t.Current(), true
	}
	snap := t.fetcher.Fetch(ctx, date)
	kept := t.Resolve(ticket, snap)
	return t.Current(), kept
}

// Clear unsets the selection and invalidates in-flight fetches.
func (t *Tracker) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seq++
	t.date = ""
	t.current = EmptySnapshot("")
}

func (t *Tracker) Current() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

func (t *Tracker) Date() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.date
}
