// Package perm maps user roles to concrete capability flags.
//
// The capability table is static process-wide configuration. Resolve
// always returns an entry for every capability defined in the table so
// call sites never have to distinguish "absent" from "denied".
package perm

import "github.com/Salguod-ohlamar/deposito-teixeira/internal/domain"

type Capability string

const (
	CapAddProduct         Capability = "addProduct"
	CapEditProduct        Capability = "editProduct"
	CapDeleteProduct      Capability = "deleteProduct"
	CapExportCsv          Capability = "exportCsv"
	CapViewProductHistory Capability = "viewProductHistory"

	CapAddService         Capability = "addService"
	CapEditService        Capability = "editService"
	CapDeleteService      Capability = "deleteService"
	CapViewServiceHistory Capability = "viewServiceHistory"

	CapManageBanners Capability = "manageBanners"

	CapViewDashboardCharts Capability = "viewDashboardCharts"
	CapViewSalesHistory    Capability = "viewSalesHistory"
	CapViewUserSalesReport Capability = "viewUserSalesReport"
	CapViewDreReport       Capability = "viewDreReport"
	CapViewActivityLog     Capability = "viewActivityLog"
	CapManageClients       Capability = "manageClients"

	CapManageUsers       Capability = "manageUsers"
	CapResetUserPassword Capability = "resetUserPassword"
	CapManageBackup      Capability = "manageBackup"
	CapManageTheme       Capability = "manageTheme"
)

type Entry struct {
	Label string
	Roles []domain.UserRole
}

type Group struct {
	Title        string
	Capabilities map[Capability]Entry
}

var allRoles = []domain.UserRole{domain.RoleRoot, domain.RoleAdmin, domain.RoleUser}
var adminUp = []domain.UserRole{domain.RoleRoot, domain.RoleAdmin}
var rootOnly = []domain.UserRole{domain.RoleRoot}

// Groups is the capability table. Keys mirror the flags the web client
// checks before showing an action.
var Groups = map[string]Group{
	"products": {
		Title: "Produtos",
		Capabilities: map[Capability]Entry{
			CapAddProduct:         {Label: "Adicionar Produto", Roles: allRoles},
			CapEditProduct:        {Label: "Editar Produto", Roles: allRoles},
			CapDeleteProduct:      {Label: "Excluir Produto", Roles: adminUp},
			CapExportCsv:          {Label: "Exportar CSV de Produtos", Roles: allRoles},
			CapViewProductHistory: {Label: "Visualizar Histórico do Produto", Roles: adminUp},
		},
	},
	"services": {
		Title: "Serviços",
		Capabilities: map[Capability]Entry{
			CapAddService:         {Label: "Adicionar Serviço", Roles: allRoles},
			CapEditService:        {Label: "Editar Serviço", Roles: allRoles},
			CapDeleteService:      {Label: "Excluir Serviço", Roles: adminUp},
			CapViewServiceHistory: {Label: "Visualizar Histórico do Serviço", Roles: adminUp},
		},
	},
	"siteContent": {
		Title: "Conteúdo do Site",
		Capabilities: map[Capability]Entry{
			CapManageBanners: {Label: "Gerenciar Banners", Roles: allRoles},
		},
	},
	"admin": {
		Title: "Administração",
		Capabilities: map[Capability]Entry{
			CapViewDashboardCharts: {Label: "Ver Análise Gráfica", Roles: adminUp},
			CapViewSalesHistory:    {Label: "Ver Histórico de Vendas", Roles: adminUp},
			CapViewUserSalesReport: {Label: "Ver Relatório por Vendedor", Roles: adminUp},
			CapViewDreReport:       {Label: "Ver DRE Simplificado", Roles: adminUp},
			CapViewActivityLog:     {Label: "Ver Log de Atividades", Roles: adminUp},
			CapManageClients:       {Label: "Gerenciar Clientes", Roles: allRoles},
		},
	},
	"root": {
		Title: "Super Admin (Root)",
		Capabilities: map[Capability]Entry{
			CapManageUsers:       {Label: "Gerenciar Usuários", Roles: adminUp},
			CapResetUserPassword: {Label: "Resetar Senha", Roles: rootOnly},
			CapManageBackup:      {Label: "Gerenciar Backup/Restore", Roles: rootOnly},
			CapManageTheme:       {Label: "Alterar Tema do Site", Roles: rootOnly},
		},
	},
}

// Resolve materializes the full capability map for a role.
//
// root gets every capability unconditionally. Any other role, including
// a role the table has never heard of, gets a flag per capability that
// is true only when the role appears in the capability's role list. The
// returned map always covers every key defined in Groups.
func Resolve(role domain.UserRole) map[Capability]bool {
	out := make(map[Capability]bool)
	for _, g := range Groups {
		for key, entry := range g.Capabilities {
			if role == domain.RoleRoot {
				out[key] = true
				continue
			}
			out[key] = containsRole(entry.Roles, role)
		}
	}
	return out
}

// Allowed is the single-capability form of Resolve, used by route
// middleware. Absent keys are denied.
func Allowed(role domain.UserRole, cap Capability) bool {
	if role == domain.RoleRoot {
		_, ok := lookup(cap)
		return ok
	}
	entry, ok := lookup(cap)
	if !ok {
		return false
	}
	return containsRole(entry.Roles, role)
}

func lookup(cap Capability) (Entry, bool) {
	for _, g := range Groups {
		if e, ok := g.Capabilities[cap]; ok {
			return e, true
		}
	}
	return Entry{}, false
}

func containsRole(roles []domain.UserRole, role domain.UserRole) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
