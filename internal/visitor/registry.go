package visitor

import (
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/wolfman30/elitecuts-web/internal/admin"
	"github.com/wolfman30/elitecuts-web/internal/booking"
	"github.com/wolfman30/elitecuts-web/internal/navigation"
)

const defaultCacheSize = 4096

// Factory builds the per-visitor components.
type Factory struct {
	NewForm      func(preselected []string) *booking.Form
	NewDashboard func() *admin.Dashboard
}

// State is everything the site remembers about one visitor in memory.
type State struct {
	ID  string
	Nav *navigation.Context

	factory   Factory
	mu        sync.Mutex
	form      *booking.Form
	dashboard *admin.Dashboard
	flash     Flash
}

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Notice string
	Error  string
}

func (f Flash) Empty() bool {
	return f.Notice == "" && f.Error == ""
}

// SetNotice queues a success message.
func (s *State) SetNotice(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flash.Notice = msg
}

// SetError queues an error message.
func (s *State) SetError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flash.Error = msg
}

// TakeFlash returns and clears the queued messages.
func (s *State) TakeFlash() Flash {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := s.flash
	s.flash = Flash{}
	return f
}

// Form returns the visitor's booking form, creating it on first use.
func (s *State) Form() *booking.Form {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.form == nil {
		s.form = s.factory.NewForm(nil)
	}
	return s.form
}

// Dashboard returns the visitor's admin dashboard view, creating it on first use.
func (s *State) Dashboard() *admin.Dashboard {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dashboard == nil {
		s.dashboard = s.factory.NewDashboard()
	}
	return s.dashboard
}

// ResetDashboard drops the dashboard view, e.g. after logout.
func (s *State) ResetDashboard() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dashboard = nil
}

// Registry is a bounded LRU of visitor state keyed by visitor id.
type Registry struct {
	mu      sync.Mutex
	cache   *lru.Cache[string, *State]
	factory Factory
}

func NewRegistry(size int, factory Factory) (*Registry, error) {
	if size <= 0 {
		size = defaultCacheSize
	}
	if factory.NewForm == nil || factory.NewDashboard == nil {
		return nil, fmt.Errorf("visitor: factory is incomplete")
	}
	cache, err := lru.New[string, *State](size)
	if err != nil {
		return nil, fmt.Errorf("visitor: create cache: %w", err)
	}
	return &Registry{cache: cache, factory: factory}, nil
}

// Get returns the state for id, creating it if needed.
func (r *Registry) Get(id string) *State {
	r.mu.Lock()
	defer r.mu.Unlock()
	if st, ok := r.cache.Get(id); ok {
		return st
	}
	st := &State{ID: id, Nav: navigation.NewContext(), factory: r.factory}
	r.cache.Add(id, st)
	return st
}

func (r *Registry) Len() int {
	return r.cache.Len()
}
