package auth

import (
	"net/http"
	"strings"
)

// Policy maps requests to the role they require. Routes the policy does
// not claim fall through to the middleware untouched.
type Policy struct {
	exemptPaths    map[string]struct{}
	exemptPrefixes []string
}

// NewDefaultPolicy builds the service policy. Exempt paths (health and
// metrics endpoints) skip auth entirely.
func NewDefaultPolicy(exemptPaths, exemptPrefixes []string) Policy {
	policy := Policy{
		exemptPaths:    make(map[string]struct{}, len(exemptPaths)),
		exemptPrefixes: exemptPrefixes,
	}
	for _, path := range exemptPaths {
		policy.exemptPaths[path] = struct{}{}
	}
	return policy
}

// IsExempt reports whether the request bypasses auth and RBAC.
func (p Policy) IsExempt(r *http.Request) bool {
	if r == nil {
		return true
	}
	if _, ok := p.exemptPaths[r.URL.Path]; ok {
		return true
	}
	for _, prefix := range p.exemptPrefixes {
		if strings.HasPrefix(r.URL.Path, prefix) {
			return true
		}
	}
	return false
}

// RequiredRole resolves the role a request needs. Reading inventory and
// dashboards is viewer work, mutating the fleet is operator work, and
// deletes plus report exports need an admin.
func (p Policy) RequiredRole(r *http.Request) (Role, bool) {
	if r == nil {
		return "", false
	}

	switch path, method := r.URL.Path, r.Method; {
	case path == "/api/v1/devices" || strings.HasPrefix(path, "/api/v1/devices/"):
		switch method {
		case http.MethodGet:
			return RoleViewer, true
		case http.MethodDelete:
			return RoleAdmin, true
		default:
			return RoleOperator, true
		}
	case strings.HasPrefix(path, "/api/v1/dashboard/"):
		return RoleViewer, true
	case strings.HasPrefix(path, "/api/v1/exports/"):
		return RoleAdmin, true
	case strings.HasPrefix(path, "/api/"):
		switch method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			return RoleViewer, true
		default:
			return RoleOperator, true
		}
	}
	return "", false
}
