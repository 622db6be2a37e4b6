// Package guard gates routes on the capability table. It lives below
// both the router and the handlers so either side can attach checks.
package guard

import (
	"net/http"

	"github.com/Salguod-ohlamar/deposito-teixeira/internal/perm"
	"github.com/Salguod-ohlamar/deposito-teixeira/internal/server/authctx"
)

// RequireCapability denies the request unless the current user's role
// resolves the capability to true. The role is always re-resolved
// server-side; a capability absent from the table is denied.
func RequireCapability(capability perm.Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u := authctx.FromContext(r.Context())
			if u == nil || !perm.Allowed(u.Role, capability) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte(`{"error":"Forbidden","message":"missing capability"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
