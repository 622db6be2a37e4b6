package guard

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Salguod-ohlamar/deposito-teixeira/internal/domain"
	"github.com/Salguod-ohlamar/deposito-teixeira/internal/perm"
	"github.com/Salguod-ohlamar/deposito-teixeira/internal/server/authctx"
)

func serve(t *testing.T, capability perm.Capability, user *authctx.CurrentUser) int {
	t.Helper()
	h := RequireCapability(capability)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest("DELETE", "/produtos/1", nil)
	if user != nil {
		req = req.WithContext(authctx.WithCurrentUser(req.Context(), *user))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code
}

func TestRequireCapability(t *testing.T) {
	admin := &authctx.CurrentUser{ID: 1, Role: domain.RoleAdmin}
	user := &authctx.CurrentUser{ID: 2, Role: domain.RoleUser}
	root := &authctx.CurrentUser{ID: 3, Role: domain.RoleRoot}

	if got := serve(t, perm.CapDeleteProduct, admin); got != http.StatusOK {
		t.Errorf("admin delete: status = %d, want 200", got)
	}
	if got := serve(t, perm.CapDeleteProduct, user); got != http.StatusForbidden {
		t.Errorf("user delete: status = %d, want 403", got)
	}
	if got := serve(t, perm.CapResetUserPassword, admin); got != http.StatusForbidden {
		t.Errorf("admin reset password: status = %d, want 403", got)
	}
	if got := serve(t, perm.CapResetUserPassword, root); got != http.StatusOK {
		t.Errorf("root reset password: status = %d, want 200", got)
	}
	if got := serve(t, perm.CapDeleteProduct, nil); got != http.StatusForbidden {
		t.Errorf("anonymous: status = %d, want 403", got)
	}
	if got := serve(t, perm.CapDeleteProduct, &authctx.CurrentUser{Role: "ghost"}); got != http.StatusForbidden {
		t.Errorf("unknown role: status = %d, want 403", got)
	}
}
