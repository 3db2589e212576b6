package booking

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type allowAll struct{}

func (allowAll) Selectable(string) bool { return true }

type allowNone struct{}

func (allowNone) Selectable(string) bool { return false }

func completeDraft() Draft {
	d := NewDraft([]string{"1"})
	d.SelectDate("2025-03-10")
	d.SelectedTime = "2:30 PM"
	d.SetName("Jo Smith")
	d.SetEmail("jo@gmail.com")
	d.SetPhone("5551234567")
	return d
}

func TestDraftValidityAllCombinations(t *testing.T) {
	for mask := 0; mask < 1<<6; mask++ {
		has := func(bit int) bool { return mask&(1<<bit) != 0 }
		t.Run(fmt.Sprintf("mask_%06b", mask), func(t *testing.T) {
			var d Draft
			if has(0) {
				d.ToggleService("2")
			}
			if has(1) {
				d.SelectDate("2025-03-10")
			}
			if has(2) {
				d.SelectedTime = "9:00 AM"
			}
			if has(3) {
				d.SetName("Jo")
			}
			if has(4) {
				d.SetEmail("jo@outlook.com")
			}
			if has(5) {
				d.SetPhone("555 123 4567")
			}
			want := mask == 1<<6-1
			assert.Equal(t, want, d.IsFormValid())
			assert.Equal(t, want, len(d.MissingRequirements()) == 0)
		})
	}
}

func TestDraftMissingRequirementsOrder(t *testing.T) {
	var d Draft
	assert.Equal(t, []string{
		MsgSelectService, MsgChooseDate, MsgSelectTime, MsgEnterName, MsgEnterEmail, MsgEnterPhone,
	}, d.MissingRequirements())

	d.SetEmail("jo@live.com")
	d.SetPhone("555")
	assert.Equal(t, []string{
		MsgSelectService, MsgChooseDate, MsgSelectTime, MsgEnterName, MsgInvalidEmail, MsgInvalidPhone,
	}, d.MissingRequirements())
	assert.Equal(t,
		"Please select at least one service • Please choose a date • Please select a time • Please enter your name • Please enter a valid email address • Please enter a valid phone number",
		d.TooltipMessage())

	assert.Empty(t, completeDraft().TooltipMessage())
}

func TestDraftSelectDateResetsTime(t *testing.T) {
	for _, prior := range []string{"9:00 AM", "12:00 PM", "6:00 PM", ""} {
		d := completeDraft()
		d.SelectedTime = prior
		d.SelectDate("2025-03-11")
		assert.Equal(t, "", d.SelectedTime, "prior %q", prior)
		assert.Equal(t, "2025-03-11", d.SelectedDate)
	}

	d := completeDraft()
	d.SelectDate("2025-03-10")
	assert.Equal(t, "", d.SelectedTime, "reselecting the same date still clears the time")
}

func TestDraftSelectTime(t *testing.T) {
	var d Draft
	assert.ErrorIs(t, d.SelectTime("9:00 AM", allowAll{}), ErrNoDateSelected)

	d.SelectDate("2025-03-10")
	assert.ErrorIs(t, d.SelectTime("9:00 AM", allowNone{}), ErrSlotNotSelectable)
	assert.ErrorIs(t, d.SelectTime("9:00 AM", nil), ErrSlotNotSelectable)
	assert.Empty(t, d.SelectedTime)

	require.NoError(t, d.SelectTime("9:00 AM", allowAll{}))
	assert.Equal(t, "9:00 AM", d.SelectedTime)
}

func TestDraftToggleService(t *testing.T) {
	var d Draft
	assert.True(t, d.ToggleService("3"))
	assert.True(t, d.ToggleService("1"))
	assert.False(t, d.ToggleService("99"))
	assert.Equal(t, []string{"3", "1"}, d.SelectedServiceIDs)
	assert.Equal(t, "Hair & Beard Combo, Classic Haircut", d.ServiceNames())

	assert.False(t, d.ToggleService("3"))
	assert.Equal(t, []string{"1"}, d.SelectedServiceIDs)
}

func TestDraftPreselect(t *testing.T) {
	d := NewDraft([]string{"1", "2", "1", "bogus", "5"})
	assert.Equal(t, []string{"1", "2", "5"}, d.SelectedServiceIDs)

	empty := NewDraft(nil)
	assert.NotNil(t, empty.SelectedServiceIDs)
	assert.Empty(t, empty.SelectedServiceIDs)
}

func TestDraftSetPhoneFormats(t *testing.T) {
	var d Draft
	d.SetPhone("555-123-4567 ext 89")
	assert.Equal(t, "(555) 123 45 67", d.Contact.Phone)
}

func TestDraftShowContact(t *testing.T) {
	d := completeDraft()
	assert.True(t, d.ShowContact())
	d.SelectDate("2025-03-11")
	assert.False(t, d.ShowContact())
}

func TestDraftCloneIsIndependent(t *testing.T) {
	d := completeDraft()
	c := d.Clone()
	c.ToggleService("2")
	assert.Equal(t, []string{"1"}, d.SelectedServiceIDs)
}
