package utils

import "context"

type contextKey string

const AdminKey contextKey = "admin_username"

// SetAdminContext marks ctx as belonging to an authenticated admin.
func SetAdminContext(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, AdminKey, username)
}

// AdminFromContext returns the admin username, if any.
func AdminFromContext(ctx context.Context) (string, bool) {
	u, ok := ctx.Value(AdminKey).(string)
	return u, ok && u != ""
}
