package handlers

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfman30/elitecuts-web/internal/backend"
)

func adminBackend() *testBackend {
	return &testBackend{active: []backend.Reservation{{
		ID: 7, Name: "Ada Client", Email: "ada@gmail.com", Phone: "(555) 000 11 22",
		Service: "Beard Trim", Date: "2025-03-10T14:30:00", Time: "2:30 PM", Status: backend.StatusActive,
	}}}
}

func loginAdmin(t *testing.T, site *testSite) string {
	t.Helper()
	status, path, body := site.post(t, "/admin/login", url.Values{"username": {"admin"}, "password": {"secret"}})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "/admin/dashboard", path)
	return body
}

func TestAdmin_DashboardRequiresLogin(t *testing.T) {
	site := newTestSite(t, adminBackend())

	_, path, body := site.get(t, "/admin/dashboard")
	assert.Equal(t, "/admin/login", path)
	assert.Contains(t, body, "Admin Login")
}

func TestAdmin_InvalidCredentials(t *testing.T) {
	site := newTestSite(t, adminBackend())

	status, _, body := site.post(t, "/admin/login", url.Values{"username": {"admin"}, "password": {"nope"}})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Contains(t, body, "Invalid username or password")
	assert.Contains(t, body, `value="admin"`)
}

func TestAdmin_LoginShowsActiveReservations(t *testing.T) {
	site := newTestSite(t, adminBackend())

	body := loginAdmin(t, site)
	assert.Contains(t, body, "Ada Client")
	assert.Contains(t, body, "Mon, Mar 10, 2025")
	assert.Contains(t, body, "Reservation data is kept for one month")

	_, path, _ := site.get(t, "/admin/login")
	assert.Equal(t, "/admin/dashboard", path)
}

func TestAdmin_TwoStepCancel(t *testing.T) {
	b := adminBackend()
	site := newTestSite(t, b)
	loginAdmin(t, site)

	_, _, body := site.get(t, "/admin/dashboard?tab=active-reservations&confirm=7")
	assert.Contains(t, body, "Confirm Cancel")
	assert.Empty(t, b.cancelled)

	_, path, body := site.post(t, "/admin/reservations/7/cancel", url.Values{"tab": {"active-reservations"}})
	assert.Equal(t, "/admin/dashboard", path)
	assert.Contains(t, body, "No reservations found.")
	assert.Equal(t, []int{7}, b.cancelled)

	_, _, body = site.get(t, "/admin/dashboard?tab=cancelled-reservations")
	assert.Contains(t, body, "Ada Client")
	assert.Contains(t, body, backend.StatusCancelled)
}

func TestAdmin_CancelFailureFlashesDetail(t *testing.T) {
	site := newTestSite(t, adminBackend())
	loginAdmin(t, site)

	_, _, body := site.post(t, "/admin/reservations/8/cancel", url.Values{"tab": {"active-reservations"}})
	assert.Contains(t, body, "Reservation not found")
	assert.Contains(t, body, "Ada Client")
}

func TestAdmin_FilterBySearch(t *testing.T) {
	site := newTestSite(t, adminBackend())
	loginAdmin(t, site)

	_, _, body := site.get(t, "/admin/dashboard?tab=active-reservations&search=zed")
	assert.NotContains(t, body, "Ada Client")

	_, _, body = site.get(t, "/admin/dashboard?tab=active-reservations&search=ADA&date=2025-03-10")
	assert.Contains(t, body, "Ada Client")
}

func TestAdmin_AddWorkingHours(t *testing.T) {
	b := adminBackend()
	site := newTestSite(t, b)
	loginAdmin(t, site)

	_, _, body := site.get(t, "/admin/dashboard?tab=working-hours")
	assert.Contains(t, body, "No unavailable hours defined yet.")

	_, _, body = site.post(t, "/admin/working-hours", url.Values{
		"date": {"2025-03-20"}, "start_time": {"09:00"}, "end_time": {"12:00"},
	})
	assert.Contains(t, body, "Working hours added. 2 reservations cancelled.")
	assert.Contains(t, body, "2025-03-20")
	require.Len(t, b.hours, 1)
	assert.Equal(t, "12:00", b.hours[0].EndTime)
}

func TestAdmin_Logout(t *testing.T) {
	site := newTestSite(t, adminBackend())
	loginAdmin(t, site)

	_, path, _ := site.post(t, "/admin/logout", nil)
	assert.Equal(t, "/admin/login", path)

	_, path, _ = site.get(t, "/admin/dashboard")
	assert.Equal(t, "/admin/login", path)
}
