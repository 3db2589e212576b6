// Package visitor identifies browser visitors and keeps their per-visitor
// page state.
package visitor

import "context"

type ctxKey string

const idKey ctxKey = "elitecuts.visitor_id"

// WithID stores the visitor id in context.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, idKey, id)
}

// IDFromContext extracts the visitor id if present.
func IDFromContext(ctx context.Context) (string, bool) {
	val := ctx.Value(idKey)
	if val == nil {
		return "", false
	}
	id, ok := val.(string)
	return id, ok && id != ""
}
