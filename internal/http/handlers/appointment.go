package handlers

import (
	"errors"
	"net/http"

	"github.com/wolfman30/elitecuts-web/internal/booking"
	"github.com/wolfman30/elitecuts-web/internal/navigation"
	"github.com/wolfman30/elitecuts-web/internal/visitor"
	"github.com/wolfman30/elitecuts-web/pkg/logging"
)

// Form actions posted to /appointment.
const (
	actionToggleService = "toggle-service"
	actionSelectDate    = "select-date"
	actionClearDate     = "clear-date"
	actionSelectTime    = "select-time"
	actionUpdateContact = "update-contact"
	actionSubmit        = "submit"
)

// AppointmentHandler serves the booking form. Every POST applies one action
// and redirects back so a reload never repeats it.
type AppointmentHandler struct {
	visitors *visitor.Registry
	render   *Renderer
	logger   *logging.Logger
}

func NewAppointmentHandler(visitors *visitor.Registry, render *Renderer, logger *logging.Logger) *AppointmentHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &AppointmentHandler{visitors: visitors, render: render, logger: logger.Component("appointment")}
}

// Show renders the form. Arriving from another page starts a fresh draft.
func (h *AppointmentHandler) Show(w http.ResponseWriter, r *http.Request) {
	st := visitorState(r, h.visitors)
	form := st.Form()
	if st.Nav.State().Current != navigation.PageAppointment {
		state := st.Nav.Transition(navigation.PageAppointment)
		form.Reset(state.PreselectedServices)
	}
	h.render.Render(w, r, http.StatusOK, "appointment", pageData{
		Title: "Book Appointment",
		Flash: st.TakeFlash(),
		Body:  form.View(),
	})
}

// Act applies one posted form action. A post arriving from another page, such
// as a stale tab or the back button after confirmation, starts a fresh draft.
func (h *AppointmentHandler) Act(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	st := visitorState(r, h.visitors)
	form := st.Form()
	if st.Nav.State().Current != navigation.PageAppointment {
		state := st.Nav.Transition(navigation.PageAppointment)
		form.Reset(state.PreselectedServices)
	}

	switch r.PostFormValue("action") {
	case actionToggleService:
		form.ToggleService(r.PostFormValue("service"))

	case actionSelectDate:
		if err := form.SelectDate(r.Context(), r.PostFormValue("date")); err != nil {
			h.logger.Debug("date rejected", "date", r.PostFormValue("date"), "error", err)
			st.SetError("Please choose one of the offered dates.")
		}

	case actionClearDate:
		form.ClearDate()

	case actionSelectTime:
		if err := form.SelectTime(r.PostFormValue("time")); err != nil {
			st.SetError(timeErrorMessage(form, r.PostFormValue("time"), err))
		}

	case actionUpdateContact:
		form.UpdateContact(contactFromForm(r))

	case actionSubmit:
		form.UpdateContact(contactFromForm(r))
		appt, err := form.Submit(r.Context())
		if err != nil {
			if errors.Is(err, booking.ErrIncompleteDraft) {
				st.SetError(form.View().Tooltip)
			}
			// Backend failures are kept on the form itself.
			break
		}
		st.Nav.Transition(navigation.PageConfirmation, navigation.WithAppointment(appt))
		http.Redirect(w, r, navigation.PageConfirmation.Path(), http.StatusSeeOther)
		return

	default:
		http.Error(w, "unknown action", http.StatusBadRequest)
		return
	}

	http.Redirect(w, r, navigation.PageAppointment.Path(), http.StatusSeeOther)
}

func contactFromForm(r *http.Request) booking.Contact {
	return booking.Contact{
		Name:  r.PostFormValue("name"),
		Email: r.PostFormValue("email"),
		Phone: r.PostFormValue("phone"),
	}
}

func timeErrorMessage(form *booking.Form, label string, err error) string {
	if errors.Is(err, booking.ErrNoDateSelected) {
		return "Please select a date first."
	}
	for _, opt := range form.TimeOptions() {
		if opt.Label == label && opt.Message != "" {
			return opt.Message
		}
	}
	return booking.MsgSlotUnavailable
}
