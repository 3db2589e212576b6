package booking

import (
	"context"
	"errors"

	"github.com/wolfman30/elitecuts-web/internal/backend"
	"github.com/wolfman30/elitecuts-web/internal/observability/metrics"
	"github.com/wolfman30/elitecuts-web/pkg/logging"
)

const (
	MsgSubmitRejected  = "Reservation could not be created: Unknown error"
	MsgSubmitTransport = "Reservation could not be created. Please try again."
)

// ConfirmedAppointment is what the confirmation page shows. It is built from
// the submitted draft, not from the backend's echo.
type ConfirmedAppointment struct {
	Date    string
	Time    string
	Service string
	Name    string
	Email   string
	Phone   string
}

// SubmitError carries the message shown on the form after a failed submission.
type SubmitError struct {
	Message string
	Err     error
}

func (e *SubmitError) Error() string {
	return e.Message
}

func (e *SubmitError) Unwrap() error {
	return e.Err
}

// Reserver creates reservations on the backend.
type Reserver interface {
	CreateReservation(ctx context.Context, req backend.ReservationRequest) (*backend.Reservation, error)
}

// BuildReservation converts a complete draft into the wire payload.
func BuildReservation(d Draft) (backend.ReservationRequest, error) {
	if !d.IsFormValid() {
		return backend.ReservationRequest{}, ErrIncompleteDraft
	}
	ts, err := Timestamp(d.SelectedDate, d.SelectedTime)
	if err != nil {
		return backend.ReservationRequest{}, err
	}
	return backend.ReservationRequest{
		Name:    d.Contact.Name,
		Email:   d.Contact.Email,
		Phone:   d.Contact.Phone,
		Service: d.ServiceNames(),
		Date:    ts,
		Time:    d.SelectedTime,
	}, nil
}

// Submitter sends drafts to the reservation backend. It never retries.
type Submitter struct {
	backend Reserver
	logger  *logging.Logger
	metrics *metrics.FrontendMetrics
}

func NewSubmitter(b Reserver, logger *logging.Logger, m *metrics.FrontendMetrics) *Submitter {
	if logger == nil {
		logger = logging.Default()
	}
	return &Submitter{backend: b, logger: logger.Component("booking"), metrics: m}
}

// Submit creates the reservation for d. The draft itself is never modified.
func (s *Submitter) Submit(ctx context.Context, d Draft) (*ConfirmedAppointment, error) {
	req, err := BuildReservation(d)
	if err != nil {
		s.metrics.ObserveSubmission("invalid")
		return nil, err
	}

	if _, err := s.backend.CreateReservation(ctx, req); err != nil {
		outcome := "transport_error"
		if backend.IsAPIError(err) {
			outcome = "rejected"
		}
		s.metrics.ObserveSubmission(outcome)
		s.logger.Warn("reservation submission failed", "date", req.Date, "outcome", outcome, "error", err)
		return nil, &SubmitError{
			Message: backend.UserMessage(err, MsgSubmitRejected, MsgSubmitTransport),
			Err:     err,
		}
	}

	s.metrics.ObserveSubmission("success")
	s.logger.Info("reservation created", "date", req.Date, "time", req.Time)
	return &ConfirmedAppointment{
		Date:    d.SelectedDate,
		Time:    d.SelectedTime,
		Service: req.Service,
		Name:    d.Contact.Name,
		Email:   d.Contact.Email,
		Phone:   d.Contact.Phone,
	}, nil
}

// SubmitMessage returns the user-facing text for a Submit error.
func SubmitMessage(err error) string {
	var se *SubmitError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &se):
		return se.Message
	default:
		return MsgSubmitTransport
	}
}
