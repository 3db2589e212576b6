package handlers

import (
	"net/http"

	"github.com/wolfman30/elitecuts-web/internal/catalog"
	"github.com/wolfman30/elitecuts-web/internal/navigation"
	"github.com/wolfman30/elitecuts-web/internal/visitor"
	"github.com/wolfman30/elitecuts-web/pkg/logging"
)

// SiteHandler serves the public marketing pages and the confirmation page.
type SiteHandler struct {
	visitors *visitor.Registry
	render   *Renderer
	logger   *logging.Logger
}

func NewSiteHandler(visitors *visitor.Registry, render *Renderer, logger *logging.Logger) *SiteHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &SiteHandler{visitors: visitors, render: render, logger: logger.Component("site")}
}

type packageView struct {
	catalog.ServicePackage
	Services []catalog.Service
	Totals   catalog.Totals
}

func (h *SiteHandler) Landing(w http.ResponseWriter, r *http.Request) {
	st := visitorState(r, h.visitors)
	st.Nav.Transition(navigation.PageLanding)
	h.render.Render(w, r, http.StatusOK, "landing", pageData{
		Title: "Home",
		Flash: st.TakeFlash(),
		Body:  struct{ Services []catalog.Service }{catalog.Services()},
	})
}

func (h *SiteHandler) About(w http.ResponseWriter, r *http.Request) {
	st := visitorState(r, h.visitors)
	st.Nav.Transition(navigation.PageAbout)
	h.render.Render(w, r, http.StatusOK, "about", pageData{
		Title: "About",
		Flash: st.TakeFlash(),
		Body:  struct{ Staff []catalog.Staff }{catalog.StaffMembers()},
	})
}

func (h *SiteHandler) Services(w http.ResponseWriter, r *http.Request) {
	st := visitorState(r, h.visitors)
	st.Nav.Transition(navigation.PageServices)

	pkgs := catalog.Packages()
	views := make([]packageView, len(pkgs))
	for i, p := range pkgs {
		views[i] = packageView{ServicePackage: p, Services: catalog.PackageServices(p), Totals: catalog.PackageTotals(p)}
	}
	h.render.Render(w, r, http.StatusOK, "services", pageData{
		Title: "Services",
		Flash: st.TakeFlash(),
		Body: struct {
			Services []catalog.Service
			Packages []packageView
		}{catalog.Services(), views},
	})
}

// BookService opens the appointment page with a service or a package's
// services preselected.
func (h *SiteHandler) BookService(w http.ResponseWriter, r *http.Request) {
	st := visitorState(r, h.visitors)

	var ids []string
	if id := r.URL.Query().Get("package"); id != "" {
		if p, ok := catalog.PackageByID(id); ok {
			ids = p.ServiceIDs
		}
	} else if id := r.URL.Query().Get("service"); id != "" {
		if _, ok := catalog.ServiceByID(id); ok {
			ids = []string{id}
		}
	}

	state := st.Nav.Transition(navigation.PageAppointment, navigation.WithServices(ids...))
	st.Form().Reset(state.PreselectedServices)
	http.Redirect(w, r, navigation.PageAppointment.Path(), http.StatusSeeOther)
}

func (h *SiteHandler) Confirmation(w http.ResponseWriter, r *http.Request) {
	st := visitorState(r, h.visitors)
	state := st.Nav.State()
	if state.Current != navigation.PageConfirmation {
		state = st.Nav.Transition(navigation.PageConfirmation)
	}
	h.render.Render(w, r, http.StatusOK, "confirmation", pageData{
		Title: "Confirmation",
		Flash: st.TakeFlash(),
		Body:  struct{ Appointment any }{appointmentOrNil(state)},
	})
}

func appointmentOrNil(state navigation.State) any {
	if state.Appointment == nil {
		return nil
	}
	return state.Appointment
}

func visitorState(r *http.Request, visitors *visitor.Registry) *visitor.State {
	id, _ := visitor.IDFromContext(r.Context())
	return visitors.Get(id)
}
