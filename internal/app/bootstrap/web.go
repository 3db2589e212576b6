package bootstrap

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/wolfman30/elitecuts-web/internal/admin"
	"github.com/wolfman30/elitecuts-web/internal/api/router"
	"github.com/wolfman30/elitecuts-web/internal/availability"
	"github.com/wolfman30/elitecuts-web/internal/backend"
	"github.com/wolfman30/elitecuts-web/internal/booking"
	"github.com/wolfman30/elitecuts-web/internal/chat"
	appconfig "github.com/wolfman30/elitecuts-web/internal/config"
	"github.com/wolfman30/elitecuts-web/internal/http/handlers"
	httpmiddleware "github.com/wolfman30/elitecuts-web/internal/http/middleware"
	"github.com/wolfman30/elitecuts-web/internal/observability/metrics"
	"github.com/wolfman30/elitecuts-web/internal/visitor"
	"github.com/wolfman30/elitecuts-web/internal/webchat"
	"github.com/wolfman30/elitecuts-web/pkg/logging"
)

// Web is the assembled site.
type Web struct {
	Handler http.Handler
	Redis   *redis.Client
}

// Close releases the Redis connection, if any.
func (w *Web) Close() error {
	if w == nil || w.Redis == nil {
		return nil
	}
	return w.Redis.Close()
}

// BuildWeb wires the backend client, per-visitor state, chat sessions and
// handlers into the router.
func BuildWeb(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger, registry *prometheus.Registry) (*Web, error) {
	if cfg == nil {
		return nil, fmt.Errorf("bootstrap: config is required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	m := metrics.NewFrontendMetrics(registry)

	bc := backend.NewClient(cfg.BackendBaseURL, logger.Component("backend"),
		backend.WithHTTPClient(newBackendHTTPClient()),
		backend.WithTimeout(cfg.BackendTimeout),
		backend.WithMetrics(m),
	)

	loc := cfg.Location()
	now := func() time.Time { return time.Now().In(loc) }
	submitter := booking.NewSubmitter(bc, logger, m)
	availabilityClient := availability.NewClient(bc, logger, m)
	policy := admin.ParsePolicy(cfg.AdminMutationPolicy)

	visitors, err := visitor.NewRegistry(cfg.VisitorCacheSize, visitor.Factory{
		NewForm: func(preselected []string) *booking.Form {
			tracker := availability.NewTracker(availabilityClient, m)
			return booking.NewForm(tracker, submitter, preselected, booking.WithClock(now))
		},
		NewDashboard: func() *admin.Dashboard {
			return admin.NewDashboard(bc, policy, logger, m)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	chatSessions, err := chat.NewSessions(cfg.ChatSessionCacheSize, bc, logger, m)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	redisClient := BuildRedisClient(ctx, cfg, logger, true)
	store := BuildTokenStore(redisClient, logger)
	sessions := admin.NewSessions(store)

	render, err := handlers.NewRenderer(logger)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	var health *handlers.HealthHandler
	if pinger, ok := store.(handlers.Pinger); ok {
		health = handlers.NewHealthHandler(pinger)
	} else {
		health = handlers.NewHealthHandler(nil)
	}

	csrfKey, err := deriveCSRFKey(cfg.CSRFKey, logger)
	if err != nil {
		return nil, err
	}

	h := router.New(&router.Config{
		Logger:         logger,
		Site:           handlers.NewSiteHandler(visitors, render, logger),
		Appointment:    handlers.NewAppointmentHandler(visitors, render, logger),
		Admin:          handlers.NewAdminHandler(visitors, admin.NewAuthenticator(bc, sessions, logger), sessions, render, logger),
		Health:         health,
		WebChat:        webchat.NewHandler(chatSessions, nil, logger),
		AdminSessions:  sessions,
		MetricsHandler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),

		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		VisitorCookie: httpmiddleware.VisitorCookieOptions{
			Name:   cfg.VisitorCookieName,
			TTL:    cfg.VisitorCookieTTL,
			Secure: cfg.CookieSecure,
		},
		CSRFKey:       csrfKey,
		CookieSecure:  cfg.CookieSecure,
		ChatRateLimit: cfg.ChatRateLimit,
		ChatRateBurst: cfg.ChatRateBurst,
	})

	logger.Info("web wired",
		"backend", cfg.BackendBaseURL,
		"redis", redisClient != nil,
		"mutation_policy", string(policy),
	)
	return &Web{Handler: h, Redis: redisClient}, nil
}

// newBackendHTTPClient keeps enough idle connections for the dashboard's four
// parallel fetches.
func newBackendHTTPClient() *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConnsPerHost = 8
	return &http.Client{Transport: transport}
}

// deriveCSRFKey hashes the configured secret to the 32 bytes gorilla/csrf
// needs. Without a secret a random key is used; tokens then do not survive
// a restart.
func deriveCSRFKey(secret string, logger *logging.Logger) ([]byte, error) {
	if strings.TrimSpace(secret) != "" {
		sum := sha256.Sum256([]byte(secret))
		return sum[:], nil
	}
	logger.Warn("CSRF_KEY not set; using a random key")
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("bootstrap: generate csrf key: %w", err)
	}
	return key, nil
}
