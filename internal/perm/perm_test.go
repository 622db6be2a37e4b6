package perm

import (
	"testing"

	"github.com/Salguod-ohlamar/deposito-teixeira/internal/domain"
)

func allCapabilities() []Capability {
	var caps []Capability
	for _, g := range Groups {
		for key := range g.Capabilities {
			caps = append(caps, key)
		}
	}
	return caps
}

func TestResolve_RootGetsEverything(t *testing.T) {
	got := Resolve(domain.RoleRoot)
	for _, cap := range allCapabilities() {
		if !got[cap] {
			t.Errorf("root missing capability %q", cap)
		}
	}
}

func TestResolve_CoversEveryCapability(t *testing.T) {
	caps := allCapabilities()
	for _, role := range []domain.UserRole{domain.RoleRoot, domain.RoleAdmin, domain.RoleUser, "intern"} {
		got := Resolve(role)
		if len(got) != len(caps) {
			t.Errorf("role %q: got %d entries, want %d", role, len(got), len(caps))
		}
		for _, cap := range caps {
			if _, ok := got[cap]; !ok {
				t.Errorf("role %q: capability %q absent from resolved map", role, cap)
			}
		}
	}
}

func TestResolve_UnknownRoleAllFalse(t *testing.T) {
	got := Resolve("ghost")
	for cap, allowed := range got {
		if allowed {
			t.Errorf("unknown role granted %q", cap)
		}
	}
}

func TestResolve_RoleMembership(t *testing.T) {
	tests := []struct {
		role domain.UserRole
		cap  Capability
		want bool
	}{
		{domain.RoleUser, CapAddProduct, true},
		{domain.RoleUser, CapEditProduct, true},
		{domain.RoleUser, CapDeleteProduct, false},
		{domain.RoleUser, CapViewProductHistory, false},
		{domain.RoleUser, CapManageClients, true},
		{domain.RoleUser, CapManageUsers, false},
		{domain.RoleAdmin, CapDeleteProduct, true},
		{domain.RoleAdmin, CapViewSalesHistory, true},
		{domain.RoleAdmin, CapManageUsers, true},
		{domain.RoleAdmin, CapResetUserPassword, false},
		{domain.RoleAdmin, CapManageBackup, false},
		{domain.RoleAdmin, CapManageTheme, false},
		{domain.RoleRoot, CapResetUserPassword, true},
	}
	for _, tt := range tests {
		if got := Resolve(tt.role)[tt.cap]; got != tt.want {
			t.Errorf("Resolve(%q)[%q] = %v, want %v", tt.role, tt.cap, got, tt.want)
		}
	}
}

func TestResolve_Deterministic(t *testing.T) {
	first := Resolve(domain.RoleAdmin)
	second := Resolve(domain.RoleAdmin)
	if len(first) != len(second) {
		t.Fatalf("resolved maps differ in size: %d vs %d", len(first), len(second))
	}
	for cap, allowed := range first {
		if second[cap] != allowed {
			t.Errorf("capability %q flipped between calls", cap)
		}
	}
}

func TestAllowed(t *testing.T) {
	if !Allowed(domain.RoleAdmin, CapDeleteProduct) {
		t.Error("admin should delete products")
	}
	if Allowed(domain.RoleUser, CapDeleteProduct) {
		t.Error("user should not delete products")
	}
	if Allowed(domain.RoleAdmin, "madeUpCapability") {
		t.Error("undefined capability must be denied")
	}
	if Allowed(domain.RoleRoot, "madeUpCapability") {
		t.Error("undefined capability must be denied even for root")
	}
}
