package booking

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseSlot converts a 12-hour label such as "2:30 PM" to a 24-hour hour and
// minute. 12 PM is hour 12 and 12 AM is hour 0.
func ParseSlot(label string) (hour, minute int, err error) {
	clock, period, ok := strings.Cut(strings.TrimSpace(label), " ")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidSlot, label)
	}
	h, m, ok := strings.Cut(clock, ":")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidSlot, label)
	}
	hour, err = strconv.Atoi(h)
	if err != nil || hour < 1 || hour > 12 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidSlot, label)
	}
	minute, err = strconv.Atoi(m)
	if err != nil || len(m) != 2 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidSlot, label)
	}

	switch strings.ToUpper(period) {
	case "PM":
		if hour != 12 {
			hour += 12
		}
	case "AM":
		if hour == 12 {
			hour = 0
		}
	default:
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidSlot, label)
	}
	return hour, minute, nil
}

// To24Hour renders label as "HH:MM:00".
func To24Hour(label string) (string, error) {
	hour, minute, err := ParseSlot(label)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%02d:%02d:00", hour, minute), nil
}

// Timestamp combines a YYYY-MM-DD date and a slot label into
// "YYYY-MM-DDTHH:MM:00" wall-clock time.
func Timestamp(date, label string) (string, error) {
	clock, err := To24Hour(label)
	if err != nil {
		return "", err
	}
	return date + "T" + clock, nil
}
