package booking

import "time"

const (
	// BookingWindowDays is today plus the following 13 days.
	BookingWindowDays = 14
	dateLayout        = "2006-01-02"
)

// DateOption is one date button on the appointment page.
type DateOption struct {
	Value string
	Label string
}

// OfferedDates lists the bookable dates starting with today in now's location.
func OfferedDates(now time.Time) []DateOption {
	y, m, d := now.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	out := make([]DateOption, 0, BookingWindowDays)
	for i := 0; i < BookingWindowDays; i++ {
		day := start.AddDate(0, 0, i)
		out = append(out, DateOption{Value: day.Format(dateLayout), Label: dateLabel(i, day)})
	}
	return out
}

func dateLabel(offset int, day time.Time) string {
	switch offset {
	case 0:
		return "Today"
	case 1:
		return "Tomorrow"
	default:
		return day.Format("Mon, Jan 2")
	}
}

// IsOfferedDate reports whether date falls within the booking window.
func IsOfferedDate(date string, now time.Time) bool {
	for _, opt := range OfferedDates(now) {
		if opt.Value == date {
			return true
		}
	}
	return false
}

// IsToday reports whether date is now's calendar date.
func IsToday(date string, now time.Time) bool {
	return date == now.Format(dateLayout)
}

// OfferedTimes filters template for date. On today only slots strictly after
// now's hour and minute remain; other dates get the whole template.
func OfferedTimes(date string, template []string, now time.Time) []string {
	if date == "" {
		return []string{}
	}
	if !IsToday(date, now) {
		return append([]string{}, template...)
	}
	out := make([]string, 0, len(template))
	for _, label := range template {
		if slotAfter(label, now) {
			out = append(out, label)
		}
	}
	return out
}

func slotAfter(label string, now time.Time) bool {
	hour, minute, err := ParseSlot(label)
	if err != nil {
		return false
	}
	if hour > now.Hour() {
		return true
	}
	return hour == now.Hour() && minute > now.Minute()
}
