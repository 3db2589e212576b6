package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/csrf"

	"github.com/wolfman30/elitecuts-web/internal/http/handlers"
	httpmiddleware "github.com/wolfman30/elitecuts-web/internal/http/middleware"
	"github.com/wolfman30/elitecuts-web/internal/webchat"
	"github.com/wolfman30/elitecuts-web/pkg/logging"
)

const adminLoginPath = "/admin/login"

// Config holds router configuration
type Config struct {
	Logger         *logging.Logger
	Site           *handlers.SiteHandler
	Appointment    *handlers.AppointmentHandler
	Admin          *handlers.AdminHandler
	Health         *handlers.HealthHandler
	WebChat        *webchat.Handler
	AdminSessions  httpmiddleware.SessionLoader
	MetricsHandler http.Handler

	CORSAllowedOrigins []string
	VisitorCookie      httpmiddleware.VisitorCookieOptions

	// CSRFKey must be 32 bytes. CookieSecure false marks every request as
	// plain HTTP so the origin checks accept local development.
	CSRFKey      []byte
	CookieSecure bool

	ChatRateLimit float64
	ChatRateBurst int
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(httpmiddleware.VisitorCookie(cfg.VisitorCookie))
	r.Use(httpmiddleware.RequestLogger(logger))
	r.Use(middleware.Compress(5))

	// Public endpoints (health checks, metrics, chat widget)
	r.Group(func(public chi.Router) {
		if cfg.Health != nil {
			public.Get("/health", cfg.Health.Health)
		}
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}
		if cfg.WebChat != nil {
			public.Route("/chat", func(chat chi.Router) {
				if len(cfg.CORSAllowedOrigins) > 0 {
					chat.Use(httpmiddleware.CORS(httpmiddleware.CORSOptions{
						AllowedOrigins: cfg.CORSAllowedOrigins,
						AllowedMethods: []string{http.MethodGet, http.MethodPost},
						AllowedHeaders: []string{"Content-Type", "X-Chat-Session"},
						MaxAge:         10 * time.Minute,
					}))
				}
				chat.Get("/widget.js", cfg.WebChat.HandleWidgetJS)
				chat.Get("/ws", cfg.WebChat.HandleWebSocket)
				chat.Get("/history", cfg.WebChat.HandleHistory)
				chat.Group(func(limited chi.Router) {
					limited.Use(httpmiddleware.RateLimit(cfg.ChatRateLimit, cfg.ChatRateBurst))
					limited.Post("/sessions", cfg.WebChat.HandleCreateSession)
					limited.Post("/message", cfg.WebChat.HandleMessage)
				})
			})
		}
	})

	// Pages with forms are CSRF protected.
	r.Group(func(pages chi.Router) {
		if !cfg.CookieSecure {
			pages.Use(plaintextHTTP)
		}
		pages.Use(csrf.Protect(cfg.CSRFKey,
			csrf.Secure(cfg.CookieSecure),
			csrf.Path("/"),
			csrf.SameSite(csrf.SameSiteLaxMode),
			csrf.ErrorHandler(csrfFailure(logger)),
		))

		pages.Get("/", cfg.Site.Landing)
		pages.Get("/about", cfg.Site.About)
		pages.Get("/services", cfg.Site.Services)
		pages.Get("/services/book", cfg.Site.BookService)
		pages.Get("/appointment", cfg.Appointment.Show)
		pages.Post("/appointment", cfg.Appointment.Act)
		pages.Get("/confirmation", cfg.Site.Confirmation)

		pages.Route("/admin", func(admin chi.Router) {
			admin.Get("/", func(w http.ResponseWriter, r *http.Request) {
				http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
			})
			admin.Get("/login", cfg.Admin.LoginPage)
			admin.With(httpmiddleware.RateLimit(cfg.ChatRateLimit, cfg.ChatRateBurst)).Post("/login", cfg.Admin.Login)

			admin.Group(func(protected chi.Router) {
				protected.Use(httpmiddleware.RequireAdmin(cfg.AdminSessions, adminLoginPath, logger))
				protected.Get("/dashboard", cfg.Admin.Dashboard)
				protected.Post("/reservations/{id}/cancel", cfg.Admin.Cancel)
				protected.Post("/working-hours", cfg.Admin.AddWorkingHours)
				protected.Post("/logout", cfg.Admin.Logout)
			})
		})
	})

	return r
}

func plaintextHTTP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
	})
}

func csrfFailure(logger *logging.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Warn("csrf validation failed", "path", r.URL.Path, "reason", csrf.FailureReason(r))
		http.Error(w, "Forbidden - invalid form token. Please reload the page and try again.", http.StatusForbidden)
	})
}
