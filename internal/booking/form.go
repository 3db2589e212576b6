package booking

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/wolfman30/elitecuts-web/internal/availability"
	"github.com/wolfman30/elitecuts-web/internal/catalog"
	"github.com/wolfman30/elitecuts-web/internal/validation"
)

const (
	MsgSlotReserved    = "This time slot is reserved, please select another time."
	MsgSlotUnavailable = "This time slot is not available, please select another time."
	MsgNoSlots         = "No available appointments for this date. Please select another date."
)

// ErrSubmitInProgress is returned when a second submit arrives before the
// first one resolves.
var ErrSubmitInProgress = errors.New("booking: submission already in progress")

// TimeOption is one rendered time button.
type TimeOption struct {
	Label    string
	Status   availability.Status
	Selected bool
	Message  string
}

func (o TimeOption) Selectable() bool {
	return o.Status == availability.StatusSelectable
}

// ServiceOption is one service card with its selection state.
type ServiceOption struct {
	catalog.Service
	Selected bool
}

// FormView is an immutable render model of the form.
type FormView struct {
	Draft        Draft
	Services     []ServiceOption
	Dates        []DateOption
	Times        []TimeOption
	NoSlots      bool
	ShowContact  bool
	EmailInvalid bool
	PhoneInvalid bool
	EmailDomains []string
	Valid        bool
	Missing      []string
	Tooltip      string
	Error        string
	Submitting   bool
}

// FormOption customises a Form.
type FormOption func(*Form)

// WithClock overrides the wall clock used for the date window and today's
// time filter.
func WithClock(now func() time.Time) FormOption {
	return func(f *Form) {
		if now != nil {
			f.now = now
		}
	}
}

// Form is one visitor's appointment page. Handlers for a visitor are applied
// one at a time; availability fetches run outside the lock and are guarded by
// the tracker.
type Form struct {
	mu         sync.Mutex
	draft      Draft
	tracker    *availability.Tracker
	submitter  *Submitter
	now        func() time.Time
	lastError  string
	submitting bool
}

func NewForm(tracker *availability.Tracker, submitter *Submitter, preselected []string, opts ...FormOption) *Form {
	f := &Form{
		draft:     NewDraft(preselected),
		tracker:   tracker,
		submitter: submitter,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Reset starts a new visit with preselected services.
func (f *Form) Reset(preselected []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft = NewDraft(preselected)
	f.lastError = ""
	f.tracker.Clear()
}

func (f *Form) ToggleService(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft.ToggleService(id)
}

// SelectDate sets the date, clears the time and loads the date's availability.
// An empty date is the same as ClearDate.
func (f *Form) SelectDate(ctx context.Context, date string) error {
	if date == "" {
		f.ClearDate()
		return nil
	}
	f.mu.Lock()
	if !IsOfferedDate(date, f.now()) {
		f.mu.Unlock()
		return ErrDateNotOffered
	}
	f.draft.SelectDate(date)
	f.lastError = ""
	f.mu.Unlock()

	f.tracker.Load(ctx, date)
	return nil
}

// ClearDate unsets the date and drops the snapshot immediately.
func (f *Form) ClearDate() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft.SelectDate("")
	f.tracker.Clear()
}

// SelectTime picks label if it is currently offered and selectable.
func (f *Form) SelectTime(label string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft.SelectTime(label, offeredSlots(f.timeOptionsLocked()))
}

// UpdateContact replaces all three contact fields.
func (f *Form) UpdateContact(c Contact) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft.SetName(c.Name)
	f.draft.SetEmail(c.Email)
	f.draft.SetPhone(c.Phone)
}

// Submit sends the draft. On failure the draft stays intact and the error
// message is kept for the next render. On success the visit is over and the
// form starts an empty draft.
func (f *Form) Submit(ctx context.Context) (*ConfirmedAppointment, error) {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return nil, ErrSubmitInProgress
	}
	if !f.draft.IsFormValid() {
		f.mu.Unlock()
		return nil, ErrIncompleteDraft
	}
	draft := f.draft.Clone()
	f.submitting = true
	f.lastError = ""
	f.mu.Unlock()

	appt, err := f.submitter.Submit(ctx, draft)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitting = false
	if err != nil {
		f.lastError = SubmitMessage(err)
		return nil, err
	}
	f.draft = NewDraft(nil)
	f.tracker.Clear()
	return appt, nil
}

// Draft returns a copy of the current draft.
func (f *Form) Draft() Draft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft.Clone()
}

// TimeOptions lists the rendered time buttons for the selected date.
func (f *Form) TimeOptions() []TimeOption {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.timeOptionsLocked()
}

func (f *Form) View() FormView {
	f.mu.Lock()
	defer f.mu.Unlock()

	d := f.draft.Clone()
	times := f.timeOptionsLocked()
	snap := f.tracker.Current()

	services := catalog.Services()
	opts := make([]ServiceOption, len(services))
	for i, s := range services {
		opts[i] = ServiceOption{Service: s, Selected: d.HasService(s.ID)}
	}

	missing := d.MissingRequirements()
	return FormView{
		Draft:        d,
		Services:     opts,
		Dates:        OfferedDates(f.now()),
		Times:        times,
		NoSlots:      d.SelectedDate != "" && snap.Date == d.SelectedDate && len(times) == 0,
		ShowContact:  d.ShowContact(),
		EmailInvalid: d.Contact.Email != "" && !validation.IsEmailValid(d.Contact.Email),
		PhoneInvalid: d.Contact.Phone != "" && !validation.IsPhoneValid(d.Contact.Phone),
		EmailDomains: validation.AllowedEmailDomains(),
		Valid:        len(missing) == 0,
		Missing:      missing,
		Tooltip:      d.TooltipMessage(),
		Error:        f.lastError,
		Submitting:   f.submitting,
	}
}

func (f *Form) timeOptionsLocked() []TimeOption {
	date := f.draft.SelectedDate
	snap := f.tracker.Current()
	if date == "" || snap.Date != date {
		return []TimeOption{}
	}
	labels := OfferedTimes(date, snap.AllSlots, f.now())
	out := make([]TimeOption, 0, len(labels))
	for _, label := range labels {
		status := snap.Status(label)
		opt := TimeOption{Label: label, Status: status, Selected: label == f.draft.SelectedTime}
		switch status {
		case availability.StatusReserved:
			opt.Message = MsgSlotReserved
		case availability.StatusUnavailable:
			opt.Message = MsgSlotUnavailable
		}
		out = append(out, opt)
	}
	return out
}

type offeredSlots []TimeOption

func (o offeredSlots) Selectable(label string) bool {
	for _, opt := range o {
		if opt.Label == label {
			return opt.Selectable()
		}
	}
	return false
}
