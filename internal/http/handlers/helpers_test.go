package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/wolfman30/elitecuts-web/internal/admin"
	"github.com/wolfman30/elitecuts-web/internal/availability"
	"github.com/wolfman30/elitecuts-web/internal/backend"
	"github.com/wolfman30/elitecuts-web/internal/booking"
	"github.com/wolfman30/elitecuts-web/internal/catalog"
	"github.com/wolfman30/elitecuts-web/internal/http/middleware"
	"github.com/wolfman30/elitecuts-web/internal/visitor"
	"github.com/wolfman30/elitecuts-web/pkg/logging"
)

// testBackend is an in-memory reservation backend.
type testBackend struct {
	mu           sync.Mutex
	reserved     []string
	created      []backend.ReservationRequest
	rejectDetail string
	active       []backend.Reservation
	cancelled    []int
	hours        []backend.WorkingHours
}

func (b *testBackend) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/reservations/available-times", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		var available []string
		for _, s := range catalog.TimeSlots() {
			if !contains(b.reserved, s) {
				available = append(available, s)
			}
		}
		writeJSON(w, http.StatusOK, backend.AvailableTimes{
			Date:           r.URL.Query().Get("date"),
			AllTimeSlots:   catalog.TimeSlots(),
			AvailableTimes: available,
			ReservedTimes:  b.reserved,
		})
	})
	mux.HandleFunc("/reservations", func(w http.ResponseWriter, r *http.Request) {
		var req backend.ReservationRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.rejectDetail != "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"detail": b.rejectDetail})
			return
		}
		b.created = append(b.created, req)
		writeJSON(w, http.StatusOK, backend.Reservation{ID: len(b.created), Name: req.Name, Status: backend.StatusActive})
	})
	mux.HandleFunc("/admin/login", func(w http.ResponseWriter, r *http.Request) {
		var req backend.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Username != "admin" || req.Password != "secret" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Incorrect username or password"})
			return
		}
		writeJSON(w, http.StatusOK, backend.LoginResponse{AccessToken: "tok-admin", TokenType: "bearer"})
	})
	mux.HandleFunc("/admin/reservations/", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok-admin", r.Header.Get("Authorization"))
		b.mu.Lock()
		defer b.mu.Unlock()
		switch rest := strings.TrimPrefix(r.URL.Path, "/admin/reservations/"); {
		case r.Method == http.MethodGet && rest == "active":
			writeJSON(w, http.StatusOK, b.active)
		case r.Method == http.MethodGet:
			writeJSON(w, http.StatusOK, []backend.Reservation{})
		case r.Method == http.MethodDelete && rest == "7":
			b.cancelled = append(b.cancelled, 7)
			writeJSON(w, http.StatusOK, backend.MessageResponse{Message: "Reservation cancelled"})
		default:
			writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Reservation not found"})
		}
	})
	mux.HandleFunc("/admin/working-hours", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		if r.Method == http.MethodPost {
			var req backend.WorkingHoursRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			b.hours = append(b.hours, backend.WorkingHours{ID: len(b.hours) + 1, Date: req.Date, StartTime: req.StartTime, EndTime: req.EndTime})
			writeJSON(w, http.StatusOK, backend.MessageResponse{Message: "Working hours added. 2 reservations cancelled."})
			return
		}
		writeJSON(w, http.StatusOK, b.hours)
	})
	return mux
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

type testSite struct {
	server   *httptest.Server
	client   *http.Client
	backend  *testBackend
	visitors *visitor.Registry
}

func newTestSite(t *testing.T, b *testBackend) *testSite {
	t.Helper()
	backendSrv := httptest.NewServer(b.handler(t))
	t.Cleanup(backendSrv.Close)

	logger := logging.Default()
	bc := backend.NewClient(backendSrv.URL, logger)
	visitors, err := visitor.NewRegistry(16, visitor.Factory{
		NewForm: func(pre []string) *booking.Form {
			tracker := availability.NewTracker(availability.NewClient(bc, logger, nil), nil)
			return booking.NewForm(tracker, booking.NewSubmitter(bc, logger, nil), pre)
		},
		NewDashboard: func() *admin.Dashboard {
			return admin.NewDashboard(bc, admin.PolicyOptimistic, logger, nil)
		},
	})
	require.NoError(t, err)

	render, err := NewRenderer(logger)
	require.NoError(t, err)
	sessions := admin.NewSessions(nil)
	site := NewSiteHandler(visitors, render, logger)
	appt := NewAppointmentHandler(visitors, render, logger)
	adm := NewAdminHandler(visitors, admin.NewAuthenticator(bc, sessions, logger), sessions, render, logger)

	r := chi.NewRouter()
	r.Use(middleware.VisitorCookie(middleware.VisitorCookieOptions{}))
	r.Get("/", site.Landing)
	r.Get("/about", site.About)
	r.Get("/services", site.Services)
	r.Get("/services/book", site.BookService)
	r.Get("/appointment", appt.Show)
	r.Post("/appointment", appt.Act)
	r.Get("/confirmation", site.Confirmation)
	r.Get("/admin/login", adm.LoginPage)
	r.Post("/admin/login", adm.Login)
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin(sessions, "/admin/login", logger))
		r.Get("/admin/dashboard", adm.Dashboard)
		r.Post("/admin/reservations/{id}/cancel", adm.Cancel)
		r.Post("/admin/working-hours", adm.AddWorkingHours)
		r.Post("/admin/logout", adm.Logout)
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &testSite{server: srv, client: &http.Client{Jar: jar}, backend: b, visitors: visitors}
}

// get follows redirects and returns the final status, path and body.
func (s *testSite) get(t *testing.T, path string) (int, string, string) {
	t.Helper()
	resp, err := s.client.Get(s.server.URL + path)
	require.NoError(t, err)
	return readResponse(t, resp)
}

func (s *testSite) post(t *testing.T, path string, form url.Values) (int, string, string) {
	t.Helper()
	resp, err := s.client.PostForm(s.server.URL+path, form)
	require.NoError(t, err)
	return readResponse(t, resp)
}

func readResponse(t *testing.T, resp *http.Response) (int, string, string) {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, resp.Request.URL.Path, string(body)
}
