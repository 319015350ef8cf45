package auth

import "context"

// Identity is the authenticated caller attached to a request context.
type Identity struct {
	TenantID string
	Subject  string
	Role     Role
}

type contextKey struct{}

// WithIdentity attaches the caller identity to the context.
func WithIdentity(ctx context.Context, tenantID string, role Role, subject string) context.Context {
	return context.WithValue(ctx, contextKey{}, Identity{
		TenantID: tenantID,
		Subject:  subject,
		Role:     role,
	})
}

// IdentityFromContext returns the caller identity, zero when absent.
func IdentityFromContext(ctx context.Context) Identity {
	if ctx == nil {
		return Identity{}
	}
	identity, _ := ctx.Value(contextKey{}).(Identity)
	return identity
}

// TenantIDFromContext returns the caller's tenant id.
func TenantIDFromContext(ctx context.Context) string {
	return IdentityFromContext(ctx).TenantID
}

// SubjectFromContext returns the caller's subject.
func SubjectFromContext(ctx context.Context) string {
	return IdentityFromContext(ctx).Subject
}

// RoleFromContext returns the caller's role.
func RoleFromContext(ctx context.Context) Role {
	return IdentityFromContext(ctx).Role
}
