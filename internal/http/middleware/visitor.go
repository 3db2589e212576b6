package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/wolfman30/elitecuts-web/internal/visitor"
)

// VisitorCookieOptions configures the visitor id cookie.
type VisitorCookieOptions struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

// VisitorCookie makes sure every request carries a visitor id, minting and
// setting a cookie for new visitors. The id is stored in the request context.
func VisitorCookie(opts VisitorCookieOptions) func(http.Handler) http.Handler {
	if opts.Name == "" {
		opts.Name = "elitecuts_visitor"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := ""
			if c, err := r.Cookie(opts.Name); err == nil {
				if _, perr := uuid.Parse(c.Value); perr == nil {
					id = c.Value
				}
			}
			if id == "" {
				id = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     opts.Name,
					Value:    id,
					Path:     "/",
					MaxAge:   int(opts.TTL.Seconds()),
					HttpOnly: true,
					Secure:   opts.Secure,
					SameSite: http.SameSiteLaxMode,
				})
			}
			next.ServeHTTP(w, r.WithContext(visitor.WithID(r.Context(), id)))
		})
	}
}
