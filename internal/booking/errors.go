package booking

import "errors"

var (
	ErrNoDateSelected    = errors.New("booking: select a date before choosing a time")
	ErrSlotNotSelectable = errors.New("booking: time slot is not selectable")
	ErrDateNotOffered    = errors.New("booking: date is outside the booking window")
	ErrIncompleteDraft   = errors.New("booking: draft is incomplete")
	ErrInvalidSlot       = errors.New("booking: invalid slot label")
)
