package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/wolfman30/elitecuts-web/internal/admin"
	"github.com/wolfman30/elitecuts-web/internal/backend"
	"github.com/wolfman30/elitecuts-web/internal/http/middleware"
	"github.com/wolfman30/elitecuts-web/internal/visitor"
	"github.com/wolfman30/elitecuts-web/pkg/logging"
)

const (
	adminLoginPath     = "/admin/login"
	adminDashboardPath = "/admin/dashboard"
)

// AdminHandler serves the admin login page and the dashboard.
type AdminHandler struct {
	visitors *visitor.Registry
	auth     *admin.Authenticator
	sessions *admin.Sessions
	render   *Renderer
	logger   *logging.Logger
}

func NewAdminHandler(visitors *visitor.Registry, auth *admin.Authenticator, sessions *admin.Sessions, render *Renderer, logger *logging.Logger) *AdminHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &AdminHandler{
		visitors: visitors,
		auth:     auth,
		sessions: sessions,
		render:   render,
		logger:   logger.Component("admin_handler"),
	}
}

type loginView struct {
	Username string
	Error    string
}

// LoginPage shows the login form, or the dashboard when already signed in.
func (h *AdminHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	visitorID, _ := visitor.IDFromContext(r.Context())
	if session, err := h.sessions.Load(r.Context(), visitorID); err == nil && session.IsAuthenticated {
		http.Redirect(w, r, adminDashboardPath, http.StatusSeeOther)
		return
	}
	st := h.visitors.Get(visitorID)
	h.render.Render(w, r, http.StatusOK, "admin_login", pageData{
		Title: "Admin Login",
		Flash: st.TakeFlash(),
		Body:  loginView{},
	})
}

func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	visitorID, _ := visitor.IDFromContext(r.Context())
	username := r.PostFormValue("username")

	if _, err := h.auth.Login(r.Context(), visitorID, username, r.PostFormValue("password")); err != nil {
		msg := admin.MsgConnectionError
		var le *admin.LoginError
		if errors.As(err, &le) {
			msg = le.Message
		}
		h.render.Render(w, r, http.StatusUnauthorized, "admin_login", pageData{
			Title: "Admin Login",
			Body:  loginView{Username: username, Error: msg},
		})
		return
	}

	h.visitors.Get(visitorID).ResetDashboard()
	http.Redirect(w, r, adminDashboardPath, http.StatusSeeOther)
}

func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	visitorID, _ := visitor.IDFromContext(r.Context())
	if err := h.auth.Logout(r.Context(), visitorID); err != nil {
		h.logger.Error("failed to clear admin session", "error", err)
	}
	h.visitors.Get(visitorID).ResetDashboard()
	http.Redirect(w, r, adminLoginPath, http.StatusSeeOther)
}

type tabView struct {
	Tab    admin.Tab
	Label  string
	Count  int
	Active bool
}

type dashboardView struct {
	Tab             admin.Tab
	Tabs            []tabView
	Filter          admin.Filter
	Reservations    []backend.Reservation
	Cancellable     bool
	ConfirmID       int
	WorkingHoursTab bool
	Hours           []backend.WorkingHours
	HoursForm       backend.WorkingHoursRequest
}

// Dashboard renders one tab. Lists are fetched on first view and on
// ?refresh=1; mutations update them in place.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.AdminSessionFromContext(r.Context())
	st := visitorState(r, h.visitors)
	dash := st.Dashboard()

	q := r.URL.Query()
	if !dash.Loaded() || q.Get("refresh") == "1" {
		if err := dash.Refresh(r.Context(), session.Token); err != nil {
			h.logger.Warn("dashboard refresh failed", "error", err)
		}
	}

	tab := admin.ParseTab(q.Get("tab"))
	data := dash.Data()
	filter := admin.Filter{Search: q.Get("search"), Date: q.Get("date")}

	tabs := make([]tabView, 0, len(admin.Tabs()))
	for _, t := range admin.Tabs() {
		tabs = append(tabs, tabView{Tab: t, Label: t.Label(), Count: data.Count(t), Active: t == tab})
	}
	confirmID, _ := strconv.Atoi(q.Get("confirm"))

	view := dashboardView{
		Tab:             tab,
		Tabs:            tabs,
		Filter:          filter,
		Cancellable:     tab == admin.TabActive,
		ConfirmID:       confirmID,
		WorkingHoursTab: tab == admin.TabWorkingHours,
		HoursForm:       dash.WorkingHoursForm(),
	}
	if view.WorkingHoursTab {
		view.Hours = admin.UnavailableHours(data.WorkingHours)
	} else {
		view.Reservations = filter.Apply(data.Reservations(tab))
	}

	h.render.Render(w, r, http.StatusOK, "admin_dashboard", pageData{
		Title:     "Admin Dashboard",
		Flash:     st.TakeFlash(),
		Admin:     true,
		AdminName: session.Subject(),
		Body:      view,
	})
}

// Cancel is the confirmed second step of a cancellation.
func (h *AdminHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.AdminSessionFromContext(r.Context())
	st := visitorState(r, h.visitors)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		http.Error(w, "invalid reservation id", http.StatusBadRequest)
		return
	}
	if err := st.Dashboard().Cancel(r.Context(), session.Token, id); err != nil {
		st.SetError(mutationMessage(err, admin.MsgCancelFailed))
	}
	http.Redirect(w, r, dashboardURL(admin.ParseTab(r.PostFormValue("tab"))), http.StatusSeeOther)
}

func (h *AdminHandler) AddWorkingHours(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	session, _ := middleware.AdminSessionFromContext(r.Context())
	st := visitorState(r, h.visitors)

	req := backend.WorkingHoursRequest{
		Date:        r.PostFormValue("date"),
		StartTime:   r.PostFormValue("start_time"),
		EndTime:     r.PostFormValue("end_time"),
		IsAvailable: false,
	}
	msg, err := st.Dashboard().AddWorkingHours(r.Context(), session.Token, req)
	if err != nil {
		st.SetError(mutationMessage(err, admin.MsgAddHoursFailed))
	} else {
		st.SetNotice(msg)
	}
	http.Redirect(w, r, dashboardURL(admin.TabWorkingHours), http.StatusSeeOther)
}

func mutationMessage(err error, fallback string) string {
	var me *admin.MutationError
	if errors.As(err, &me) {
		return me.Message
	}
	return fallback
}

func dashboardURL(tab admin.Tab) string {
	q := url.Values{}
	q.Set("tab", string(tab))
	return adminDashboardPath + "?" + q.Encode()
}
