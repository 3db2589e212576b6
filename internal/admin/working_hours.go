package admin

import (
	"strings"

	"github.com/wolfman30/elitecuts-web/internal/backend"
)

const (
	defaultStartTime = "09:00"
	defaultEndTime   = "18:30"
)

// NewWorkingHoursForm returns the add-hours form defaults: a blank date and an
// unavailable 09:00 to 18:30 window.
func NewWorkingHoursForm() backend.WorkingHoursRequest {
	return backend.WorkingHoursRequest{
		StartTime:   defaultStartTime,
		EndTime:     defaultEndTime,
		IsAvailable: false,
	}
}

// UnavailableHours keeps only the blackout windows.
func UnavailableHours(list []backend.WorkingHours) []backend.WorkingHours {
	out := make([]backend.WorkingHours, 0, len(list))
	for _, wh := range list {
		if !wh.IsAvailable {
			out = append(out, wh)
		}
	}
	return out
}

func normalizeWorkingHours(req backend.WorkingHoursRequest) backend.WorkingHoursRequest {
	req.Date = strings.TrimSpace(req.Date)
	req.StartTime = strings.TrimSpace(req.StartTime)
	req.EndTime = strings.TrimSpace(req.EndTime)
	if req.StartTime == "" {
		req.StartTime = defaultStartTime
	}
	if req.EndTime == "" {
		req.EndTime = defaultEndTime
	}
	return req
}
