package middleware

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"
)

// CORSOptions scopes cross-origin access for one route group.
type CORSOptions struct {
	// AllowedOrigins are matched exactly; "*" allows any Origin.
	AllowedOrigins []string
	// AllowedMethods defaults to GET and POST.
	AllowedMethods []string
	AllowedHeaders []string
	MaxAge         time.Duration
}

// CORS lets pages on other origins call the routes it wraps. Only listed
// origins and methods are granted. A preflight for any other method is
// answered without grant headers.
func CORS(opts CORSOptions) func(http.Handler) http.Handler {
	allowAny := false
	allow := map[string]struct{}{}
	for _, origin := range opts.AllowedOrigins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		if origin == "*" {
			allowAny = true
			continue
		}
		allow[origin] = struct{}{}
	}

	methods := opts.AllowedMethods
	if len(methods) == 0 {
		methods = []string{http.MethodGet, http.MethodPost}
	}
	methods = slices.Clone(methods)
	for i, m := range methods {
		methods[i] = strings.ToUpper(strings.TrimSpace(m))
	}
	allowedMethods := strings.Join(methods, ", ")
	allowedHeaders := strings.Join(opts.AllowedHeaders, ", ")
	maxAge := ""
	if opts.MaxAge > 0 {
		maxAge = strconv.Itoa(int(opts.MaxAge.Seconds()))
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := strings.TrimSpace(r.Header.Get("Origin"))
			preflight := r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != ""
			w.Header().Add("Vary", "Origin")

			method := r.Method
			if preflight {
				method = strings.ToUpper(r.Header.Get("Access-Control-Request-Method"))
			}
			granted := origin != "" && (allowAny || hasOrigin(allow, origin)) && slices.Contains(methods, method)
			if granted {
				w.Header().Set("Access-Control-Allow-Origin", origin)
			}

			if preflight && origin != "" {
				if granted {
					w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
					if allowedHeaders != "" {
						w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)
					}
					if maxAge != "" {
						w.Header().Set("Access-Control-Max-Age", maxAge)
					}
				}
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func hasOrigin(allow map[string]struct{}, origin string) bool {
	_, ok := allow[origin]
	return ok
}
