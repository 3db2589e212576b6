// Package navigation tracks which public page a visitor is on and what the
// previous page handed to it.
package navigation

import (
	"sync"

	"github.com/wolfman30/elitecuts-web/internal/booking"
)

// Page names a public page.
type Page string

const (
	PageLanding      Page = "landing"
	PageAbout        Page = "about"
	PageServices     Page = "services"
	PageAppointment  Page = "appointment"
	PageConfirmation Page = "confirmation"
)

// Valid reports whether p is a known page.
func (p Page) Valid() bool {
	switch p {
	case PageLanding, PageAbout, PageServices, PageAppointment, PageConfirmation:
		return true
	}
	return false
}

// Path is the URL the page is served at.
func (p Page) Path() string {
	switch p {
	case PageAbout:
		return "/about"
	case PageServices:
		return "/services"
	case PageAppointment:
		return "/appointment"
	case PageConfirmation:
		return "/confirmation"
	default:
		return "/"
	}
}

// State is a snapshot of a Context.
type State struct {
	Current             Page
	Appointment         *booking.ConfirmedAppointment
	PreselectedServices []string
}

// Option supplies data carried by a transition.
type Option func(*transition)

type transition struct {
	appointment *booking.ConfirmedAppointment
	services    []string
}

// WithAppointment hands a confirmed appointment to the next page.
func WithAppointment(a *booking.ConfirmedAppointment) Option {
	return func(t *transition) { t.appointment = a }
}

// WithServices preselects service ids on the next page.
func WithServices(ids ...string) Option {
	return func(t *transition) { t.services = append([]string(nil), ids...) }
}

// Context is one visitor's navigation state.
type Context struct {
	mu    sync.Mutex
	state State
}

func NewContext() *Context {
	return &Context{state: State{Current: PageLanding, PreselectedServices: []string{}}}
}

// Transition moves to page. Preselected services reset to empty unless
// supplied; the appointment is kept until another one replaces it.
func (c *Context) Transition(to Page, opts ...Option) State {
	var t transition
	for _, opt := range opts {
		opt(&t)
	}
	if !to.Valid() {
		to = PageLanding
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Current = to
	c.state.PreselectedServices = []string{}
	if t.services != nil {
		c.state.PreselectedServices = t.services
	}
	if t.appointment != nil {
		appt := *t.appointment
		c.state.Appointment = &appt
	}
	return c.snapshotLocked()
}

// State returns a copy of the current state.
func (c *Context) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Context) snapshotLocked() State {
	out := State{
		Current:             c.state.Current,
		PreselectedServices: append([]string{}, c.state.PreselectedServices...),
	}
	if c.state.Appointment != nil {
		appt := *c.state.Appointment
		out.Appointment = &appt
	}
	return out
}
