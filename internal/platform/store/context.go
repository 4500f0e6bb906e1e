package store

import "context"

type tenantKey struct{}

// WithTenant attaches a tenant id to the context
func WithTenant(ctx context.Context, tenantID string) context.Context {
	return context.WithValue(ctx, tenantKey{}, tenantID)
}

// TenantID retrieves a tenant id from context if present
func TenantID(ctx context.Context) (string, bool) {
	s, _ := ctx.Value(tenantKey{}).(string)
	return s, s != ""
}
