package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrMissingToken is returned by admin calls made without a bearer token.
var ErrMissingToken = errors.New("backend: admin token required")

// ErrEmptyAccessToken is returned when a login succeeds without a token.
var ErrEmptyAccessToken = errors.New("backend: login returned no access token")

// APIError is a non-2xx response from the backend.
type APIError struct {
	StatusCode int
	Detail     string
	Body       string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Body)
}

// IsAPIError reports whether err carries a backend rejection.
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

// UserMessage maps err onto the message shown to the user: the server detail
// verbatim when present, rejected for other non-2xx responses, and
// transport for everything else.
func UserMessage(err error, rejected, transport string) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Detail != "" {
			return apiErr.Detail
		}
		return rejected
	}
	return transport
}

// parseDetail extracts {"detail": "..."} from an error body. FastAPI validation
// errors carry a list under detail; those are summarised by their messages.
func parseDetail(body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return ""
	}
	var text string
	if err := json.Unmarshal(payload.Detail, &text); err == nil {
		return strings.TrimSpace(text)
	}
	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(payload.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if it.Msg != "" {
				msgs = append(msgs, it.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}
