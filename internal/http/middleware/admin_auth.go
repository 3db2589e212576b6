package middleware

import (
	"context"
	"net/http"

	"github.com/wolfman30/elitecuts-web/internal/admin"
	"github.com/wolfman30/elitecuts-web/internal/visitor"
	"github.com/wolfman30/elitecuts-web/pkg/logging"
)

type contextKey string

const adminSessionKey contextKey = "adminSession"

// SessionLoader loads the stored admin session of a visitor.
type SessionLoader interface {
	Load(ctx context.Context, visitorID string) (admin.Session, error)
}

// RequireAdmin redirects to loginPath unless the visitor has a stored admin
// token. The session is placed in the request context.
func RequireAdmin(sessions SessionLoader, loginPath string, logger *logging.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			visitorID, _ := visitor.IDFromContext(r.Context())
			session, err := sessions.Load(r.Context(), visitorID)
			if err != nil {
				logger.Error("failed to load admin session", "visitor_id", visitorID, "error", err)
			}
			if err != nil || !session.IsAuthenticated {
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}
			ctx := context.WithValue(r.Context(), adminSessionKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminSessionFromContext returns the admin session if present.
func AdminSessionFromContext(ctx context.Context) (admin.Session, bool) {
	session, ok := ctx.Value(adminSessionKey).(admin.Session)
	return session, ok && session.IsAuthenticated
}
