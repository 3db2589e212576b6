package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/wolfman30/elitecuts-web/internal/observability/metrics"
	"github.com/wolfman30/elitecuts-web/pkg/logging"
)

const (
	DefaultBaseURL = "http://localhost:8000"
	maxErrorBody   = 300
)

// Client wraps the reservation backend's REST endpoints.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *logging.Logger
	metrics    *metrics.FrontendMetrics
	tracer     trace.Tracer
	timeout    time.Duration
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout bounds every call. Zero keeps the HTTP client's own timeout.
// It is applied to a copy, so a client passed to WithHTTPClient is never
// modified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithMetrics records call counts and latency.
func WithMetrics(m *metrics.FrontendMetrics) Option {
	return func(c *Client) { c.metrics = m }
}

// NewClient constructs a backend client.
func NewClient(baseURL string, logger *logging.Logger, opts ...Option) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = logging.Default()
	}
	c := &Client{
		httpClient: &http.Client{},
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     logger,
		tracer:     otel.Tracer("elitecuts.internal.backend"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c
}

// CreateReservation submits a new reservation.
func (c *Client) CreateReservation(ctx context.Context, req ReservationRequest) (*Reservation, error) {
	var created Reservation
	if err := c.doJSON(ctx, "create_reservation", http.MethodPost, "/reservations", "", req, &created); err != nil {
		return nil, fmt.Errorf("create reservation: %w", err)
	}
	return &created, nil
}

// AvailableTimes fetches the slot template and reserved/available slots for a date.
func (c *Client) AvailableTimes(ctx context.Context, date string) (*AvailableTimes, error) {
	q := url.Values{}
	q.Set("date", date)
	var out AvailableTimes
	if err := c.doJSON(ctx, "available_times", http.MethodGet, "/reservations/available-times?"+q.Encode(), "", nil, &out); err != nil {
		return nil, fmt.Errorf("get available times: %w", err)
	}
	return &out, nil
}

// Chat sends one user message plus recent context to the chatbot.
func (c *Client) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if req.ConversationHistory == nil {
		req.ConversationHistory = []ChatTurn{}
	}
	var out ChatResponse
	if err := c.doJSON(ctx, "chatbot", http.MethodPost, "/chatbot", "", req, &out); err != nil {
		return nil, fmt.Errorf("chatbot: %w", err)
	}
	return &out, nil
}

// Login exchanges admin credentials for a bearer token.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	var out LoginResponse
	body := LoginRequest{Username: username, Password: password}
	if err := c.doJSON(ctx, "admin_login", http.MethodPost, "/admin/login", "", body, &out); err != nil {
		return nil, fmt.Errorf("admin login: %w", err)
	}
	if out.AccessToken == "" {
		return nil, fmt.Errorf("admin login: %w", ErrEmptyAccessToken)
	}
	return &out, nil
}

// ListReservations returns one admin reservation partition.
func (c *Client) ListReservations(ctx context.Context, token string, partition Partition) ([]Reservation, error) {
	if !partition.Valid() {
		return nil, fmt.Errorf("list reservations: unknown partition %q", partition)
	}
	var out []Reservation
	path := "/admin/reservations/" + string(partition)
	if err := c.doJSON(ctx, "admin_reservations_"+string(partition), http.MethodGet, path, token, nil, &out); err != nil {
		return nil, fmt.Errorf("list %s reservations: %w", partition, err)
	}
	if out == nil {
		out = []Reservation{}
	}
	return out, nil
}

// CancelReservation cancels one reservation by id.
func (c *Client) CancelReservation(ctx context.Context, token string, id int) (*MessageResponse, error) {
	var out MessageResponse
	path := "/admin/reservations/" + strconv.Itoa(id)
	if err := c.doJSON(ctx, "admin_cancel_reservation", http.MethodDelete, path, token, nil, &out); err != nil {
		return nil, fmt.Errorf("cancel reservation %d: %w", id, err)
	}
	return &out, nil
}

// ListWorkingHours returns every working-hours exception.
func (c *Client) ListWorkingHours(ctx context.Context, token string) ([]WorkingHours, error) {
	var out []WorkingHours
	if err := c.doJSON(ctx, "admin_working_hours", http.MethodGet, "/admin/working-hours", token, nil, &out); err != nil {
		return nil, fmt.Errorf("list working hours: %w", err)
	}
	if out == nil {
		out = []WorkingHours{}
	}
	return out, nil
}

// CreateWorkingHours adds or updates a working-hours exception.
func (c *Client) CreateWorkingHours(ctx context.Context, token string, req WorkingHoursRequest) (*MessageResponse, error) {
	var out MessageResponse
	if err := c.doJSON(ctx, "admin_create_working_hours", http.MethodPost, "/admin/working-hours", token, req, &out); err != nil {
		return nil, fmt.Errorf("create working hours: %w", err)
	}
	return &out, nil
}

func (c *Client) doJSON(ctx context.Context, endpoint, method, path, token string, body interface{}, out interface{}) (err error) {
	if strings.HasPrefix(path, "/admin/") && path != "/admin/login" && token == "" {
		return ErrMissingToken
	}

	ctx, span := c.tracer.Start(ctx, "backend."+endpoint)
	defer span.End()
	span.SetAttributes(
		attribute.String("http.method", method),
		attribute.String("elitecuts.backend.endpoint", endpoint),
	)

	start := time.Now()
	status := "error"
	defer func() {
		c.metrics.ObserveBackendCall(endpoint, status, time.Since(start).Seconds())
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()
	status = strconv.Itoa(resp.StatusCode)
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := string(respBody)
		if len(msg) > maxErrorBody {
			msg = msg[:maxErrorBody]
		}
		c.logger.Warn("backend API non-2xx response", "status", resp.StatusCode, "endpoint", endpoint, "body", msg)
		return &APIError{StatusCode: resp.StatusCode, Detail: parseDetail(respBody), Body: msg}
	}

	if len(respBody) == 0 || out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
