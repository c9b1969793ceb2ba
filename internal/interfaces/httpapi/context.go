package httpapi

import "context"

type contextKey string

const adminContextKey contextKey = "admin_request"

func withAdmin(ctx context.Context) context.Context {
	return context.WithValue(ctx, adminContextKey, true)
}

// isAdminRequest reports whether RequireAdminToken accepted the request.
func isAdminRequest(ctx context.Context) bool {
	ok, _ := ctx.Value(adminContextKey).(bool)
	return ok
}
