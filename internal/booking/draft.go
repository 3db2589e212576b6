// Package booking holds the appointment form: the customer's draft, the
// offered dates and times, and submission to the reservation backend.
package booking

import (
	"strings"

	"github.com/wolfman30/elitecuts-web/internal/catalog"
	"github.com/wolfman30/elitecuts-web/internal/validation"
)

// Tooltip messages, in the order they are reported.
const (
	MsgSelectService = "Please select at least one service"
	MsgChooseDate    = "Please choose a date"
	MsgSelectTime    = "Please select a time"
	MsgEnterName     = "Please enter your name"
	MsgEnterEmail    = "Please enter your email"
	MsgInvalidEmail  = "Please enter a valid email address"
	MsgEnterPhone    = "Please enter your phone number"
	MsgInvalidPhone  = "Please enter a valid phone number"

	tooltipSeparator = " • "
)

// Contact is the customer's details.
type Contact struct {
	Name  string
	Email string
	Phone string
}

// SlotChecker reports whether a slot label may be chosen.
type SlotChecker interface {
	Selectable(label string) bool
}

// Draft is the in-progress booking for one visit to the appointment page.
type Draft struct {
	SelectedServiceIDs []string
	SelectedDate       string
	SelectedTime       string
	Contact            Contact
}

// NewDraft returns a draft with ids preselected.
func NewDraft(preselected []string) Draft {
	var d Draft
	d.Preselect(preselected)
	return d
}

// Preselect replaces the service selection with the known ids in order.
func (d *Draft) Preselect(ids []string) {
	d.SelectedServiceIDs = []string{}
	for _, id := range ids {
		if _, ok := catalog.ServiceByID(id); ok && !d.HasService(id) {
			d.SelectedServiceIDs = append(d.SelectedServiceIDs, id)
		}
	}
}

func (d *Draft) HasService(id string) bool {
	for _, existing := range d.SelectedServiceIDs {
		if existing == id {
			return true
		}
	}
	return false
}

// ToggleService adds or removes id. Unknown ids are ignored. It reports
// whether id is selected afterwards.
func (d *Draft) ToggleService(id string) bool {
	if _, ok := catalog.ServiceByID(id); !ok {
		return false
	}
	for i, existing := range d.SelectedServiceIDs {
		if existing == id {
			d.SelectedServiceIDs = append(d.SelectedServiceIDs[:i:i], d.SelectedServiceIDs[i+1:]...)
			return false
		}
	}
	d.SelectedServiceIDs = append(d.SelectedServiceIDs, id)
	return true
}

// SelectDate sets the date and always clears the selected time.
func (d *Draft) SelectDate(date string) {
	d.SelectedDate = date
	d.SelectedTime = ""
}

// SelectTime accepts label only when a date is set and checker reports it
// selectable.
func (d *Draft) SelectTime(label string, checker SlotChecker) error {
	if d.SelectedDate == "" {
		return ErrNoDateSelected
	}
	if checker == nil || !checker.Selectable(label) {
		return ErrSlotNotSelectable
	}
	d.SelectedTime = label
	return nil
}

func (d *Draft) SetName(name string) {
	d.Contact.Name = name
}

func (d *Draft) SetEmail(email string) {
	d.Contact.Email = email
}

// SetPhone stores the phone reformatted as (XXX) XXX XX XX.
func (d *Draft) SetPhone(phone string) {
	d.Contact.Phone = validation.FormatPhoneNumber(phone)
}

// MissingRequirements lists every unmet condition in display order.
func (d Draft) MissingRequirements() []string {
	var missing []string
	if len(d.SelectedServiceIDs) == 0 {
		missing = append(missing, MsgSelectService)
	}
	if d.SelectedDate == "" {
		missing = append(missing, MsgChooseDate)
	}
	if d.SelectedTime == "" {
		missing = append(missing, MsgSelectTime)
	}
	if d.Contact.Name == "" {
		missing = append(missing, MsgEnterName)
	}
	if d.Contact.Email == "" {
		missing = append(missing, MsgEnterEmail)
	} else if !validation.IsEmailValid(d.Contact.Email) {
		missing = append(missing, MsgInvalidEmail)
	}
	if d.Contact.Phone == "" {
		missing = append(missing, MsgEnterPhone)
	} else if !validation.IsPhoneValid(d.Contact.Phone) {
		missing = append(missing, MsgInvalidPhone)
	}
	return missing
}

func (d Draft) IsFormValid() bool {
	return len(d.SelectedServiceIDs) > 0 &&
		d.SelectedDate != "" &&
		d.SelectedTime != "" &&
		d.Contact.Name != "" &&
		validation.IsEmailValid(d.Contact.Email) &&
		validation.IsPhoneValid(d.Contact.Phone)
}

// TooltipMessage joins the missing requirements with " • ".
func (d Draft) TooltipMessage() string {
	return strings.Join(d.MissingRequirements(), tooltipSeparator)
}

// ServiceNames is the comma-joined display names of the selection.
func (d Draft) ServiceNames() string {
	return catalog.ServiceNames(d.SelectedServiceIDs)
}

// ShowContact reports whether the contact section is shown.
func (d Draft) ShowContact() bool {
	return d.SelectedDate != "" && d.SelectedTime != "" && len(d.SelectedServiceIDs) > 0
}

// Clone returns a copy that shares no slices with d.
func (d Draft) Clone() Draft {
	out := d
	out.SelectedServiceIDs = append([]string(nil), d.SelectedServiceIDs...)
	return out
}
