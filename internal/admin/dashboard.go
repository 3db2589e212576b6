package admin

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/wolfman30/elitecuts-web/internal/backend"
	"github.com/wolfman30/elitecuts-web/internal/observability/metrics"
	"github.com/wolfman30/elitecuts-web/pkg/logging"
)

// MutationPolicy decides how the dashboard reflects a successful cancel.
type MutationPolicy string

const (
	// PolicyOptimistic moves the cancelled record locally without refetching.
	PolicyOptimistic MutationPolicy = "optimistic"
	// PolicyRefetch reloads every partition after a cancel.
	PolicyRefetch MutationPolicy = "refetch"
)

// ParsePolicy falls back to PolicyOptimistic for unknown values.
func ParsePolicy(v string) MutationPolicy {
	if MutationPolicy(v) == PolicyRefetch {
		return PolicyRefetch
	}
	return PolicyOptimistic
}

// DashboardAPI is the subset of the backend the dashboard calls.
type DashboardAPI interface {
	ListReservations(ctx context.Context, token string, partition backend.Partition) ([]backend.Reservation, error)
	CancelReservation(ctx context.Context, token string, id int) (*backend.MessageResponse, error)
	ListWorkingHours(ctx context.Context, token string) ([]backend.WorkingHours, error)
	CreateWorkingHours(ctx context.Context, token string, req backend.WorkingHoursRequest) (*backend.MessageResponse, error)
}

// Data is the dashboard's local copy of the backend lists.
type Data struct {
	Active       []backend.Reservation
	Past         []backend.Reservation
	Cancelled    []backend.Reservation
	WorkingHours []backend.WorkingHours
}

func emptyData() Data {
	return Data{
		Active:       []backend.Reservation{},
		Past:         []backend.Reservation{},
		Cancelled:    []backend.Reservation{},
		WorkingHours: []backend.WorkingHours{},
	}
}

func (d Data) clone() Data {
	return Data{
		Active:       append([]backend.Reservation{}, d.Active...),
		Past:         append([]backend.Reservation{}, d.Past...),
		Cancelled:    append([]backend.Reservation{}, d.Cancelled...),
		WorkingHours: append([]backend.WorkingHours{}, d.WorkingHours...),
	}
}

// Reservations returns the list shown on tab; nil for the working-hours tab.
func (d Data) Reservations(tab Tab) []backend.Reservation {
	switch tab {
	case TabActive:
		return d.Active
	case TabPast:
		return d.Past
	case TabCancelled:
		return d.Cancelled
	default:
		return nil
	}
}

// Count is the badge number for tab.
func (d Data) Count(tab Tab) int {
	if tab == TabWorkingHours {
		return len(d.WorkingHours)
	}
	return len(d.Reservations(tab))
}

// MutationError carries the message shown after a failed cancel or add.
type MutationError struct {
	Message string
	Err     error
}

func (e *MutationError) Error() string { return e.Message }
func (e *MutationError) Unwrap() error { return e.Err }

// Dashboard is one visitor's dashboard view state.
type Dashboard struct {
	mu      sync.Mutex
	api     DashboardAPI
	policy  MutationPolicy
	logger  *logging.Logger
	metrics *metrics.FrontendMetrics

	data      Data
	loaded    bool
	hoursForm backend.WorkingHoursRequest
}

func NewDashboard(api DashboardAPI, policy MutationPolicy, logger *logging.Logger, m *metrics.FrontendMetrics) *Dashboard {
	if logger == nil {
		logger = logging.Default()
	}
	return &Dashboard{
		api:       api,
		policy:    ParsePolicy(string(policy)),
		logger:    logger.Component("admin_dashboard"),
		metrics:   m,
		data:      emptyData(),
		hoursForm: NewWorkingHoursForm(),
	}
}

// Data returns a copy of the current lists.
func (d *Dashboard) Data() Data {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.data.clone()
}

// Loaded reports whether at least one refresh has completed.
func (d *Dashboard) Loaded() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.loaded
}

// WorkingHoursForm returns the current add-hours form values.
func (d *Dashboard) WorkingHoursForm() backend.WorkingHoursRequest {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.hoursForm
}

// Refresh fetches all four lists in parallel. A failed fetch keeps that
// list's previous value; the first error is returned for logging.
func (d *Dashboard) Refresh(ctx context.Context, token string) error {
	if token == "" {
		return ErrNotAuthenticated
	}

	var (
		g                       errgroup.Group
		active, past, cancelled []backend.Reservation
		hours                   []backend.WorkingHours
		okActive, okPast        bool
		okCancelled, okHours    bool
	)
	g.Go(func() error {
		list, err := d.api.ListReservations(ctx, token, backend.PartitionActive)
		if err != nil {
			return err
		}
		active, okActive = list, true
		return nil
	})
	g.Go(func() error {
		list, err := d.api.ListReservations(ctx, token, backend.PartitionPast)
		if err != nil {
			return err
		}
		past, okPast = list, true
		return nil
	})
	g.Go(func() error {
		list, err := d.api.ListReservations(ctx, token, backend.PartitionCancelled)
		if err != nil {
			return err
		}
		cancelled, okCancelled = list, true
		return nil
	})
	g.Go(func() error {
		list, err := d.api.ListWorkingHours(ctx, token)
		if err != nil {
			return err
		}
		hours, okHours = list, true
		return nil
	})
	err := g.Wait()

	d.mu.Lock()
	defer d.mu.Unlock()
	if okActive {
		d.data.Active = active
	}
	if okPast {
		d.data.Past = past
	}
	if okCancelled {
		d.data.Cancelled = cancelled
	}
	if okHours {
		d.data.WorkingHours = hours
	}
	d.loaded = true

	if err != nil {
		d.logger.Warn("dashboard refresh incomplete", "error", err)
		return fmt.Errorf("refresh dashboard: %w", err)
	}
	return nil
}

// Cancel cancels reservation id. Under PolicyOptimistic the record moves from
// active to the front of cancelled with status "cancelled"; under
// PolicyRefetch all lists are reloaded. On failure nothing changes.
func (d *Dashboard) Cancel(ctx context.Context, token string, id int) error {
	if token == "" {
		return ErrNotAuthenticated
	}
	if _, err := d.api.CancelReservation(ctx, token, id); err != nil {
		d.metrics.ObserveAdminMutation("cancel", "failure")
		d.logger.Warn("cancel reservation failed", "reservation_id", id, "error", err)
		return &MutationError{Message: backend.UserMessage(err, MsgCancelFailed, MsgConnectionError), Err: err}
	}
	d.metrics.ObserveAdminMutation("cancel", "success")
	d.logger.Info("reservation cancelled", "reservation_id", id, "policy", string(d.policy))

	if d.policy == PolicyRefetch {
		if err := d.Refresh(ctx, token); err != nil {
			d.logger.Warn("refetch after cancel incomplete", "error", err)
		}
		return nil
	}
	d.applyCancel(id)
	return nil
}

func (d *Dashboard) applyCancel(id int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var (
		moved *backend.Reservation
		kept  = make([]backend.Reservation, 0, len(d.data.Active))
	)
	for _, r := range d.data.Active {
		if r.ID == id {
			if moved == nil {
				copied := r
				moved = &copied
			}
			continue
		}
		kept = append(kept, r)
	}
	d.data.Active = kept
	if moved == nil {
		return
	}
	moved.Status = backend.StatusCancelled
	d.data.Cancelled = append([]backend.Reservation{*moved}, d.data.Cancelled...)
}

// AddWorkingHours creates a working-hours exception, resets the form and
// reloads every list. It returns the backend's message.
func (d *Dashboard) AddWorkingHours(ctx context.Context, token string, req backend.WorkingHoursRequest) (string, error) {
	if token == "" {
		return "", ErrNotAuthenticated
	}
	req = normalizeWorkingHours(req)

	d.mu.Lock()
	d.hoursForm = req
	d.mu.Unlock()

	resp, err := d.api.CreateWorkingHours(ctx, token, req)
	if err != nil {
		d.metrics.ObserveAdminMutation("working_hours", "failure")
		d.logger.Warn("add working hours failed", "date", req.Date, "error", err)
		return "", &MutationError{Message: backend.UserMessage(err, MsgAddHoursFailed, MsgConnectionError), Err: err}
	}
	d.metrics.ObserveAdminMutation("working_hours", "success")

	d.mu.Lock()
	d.hoursForm = NewWorkingHoursForm()
	d.mu.Unlock()

	if err := d.Refresh(ctx, token); err != nil {
		d.logger.Warn("refetch after working hours incomplete", "error", err)
	}
	return resp.Message, nil
}
