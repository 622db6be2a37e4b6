package catalog

import "github.com/Salguod-ohlamar/deposito-teixeira/internal/domain"

// ProductSchema adapts a product slice to the engine. The sort keys are
// the sortable columns of the stock table.
func ProductSchema(items []domain.Product) Schema {
	return Schema{
		Name: func(i int) string { return items[i].Name },
		Field: func(i int, key string) (Field, bool) {
			p := items[i]
			switch key {
			case "name":
				return StringField(p.Name), true
			case "category":
				return StringField(p.Category), true
			case "brand":
				return StringField(p.Brand), true
			case "supplier":
				return StringField(p.Supplier), true
			case "inStock":
				return NumberField(float64(p.InStock)), true
			case "minQty":
				return NumberField(float64(p.MinQty)), true
			case "warrantyDays":
				return NumberField(float64(p.WarrantyDays)), true
			case "cost":
				return NumberField(p.Cost), true
			case "finalPrice":
				return NumberField(p.FinalPrice), true
			}
			return Field{}, false
		},
		LowStock: func(i int) bool { return items[i].LowStock() },
	}
}

// ServiceSchema adapts a service slice to the engine. Services carry no
// stock, so the low-stock filter never matches.
func ServiceSchema(items []domain.Service) Schema {
	return Schema{
		Name: func(i int) string { return items[i].ServiceName },
		Field: func(i int, key string) (Field, bool) {
			s := items[i]
			switch key {
			case "serviceName":
				return StringField(s.ServiceName), true
			case "supplier":
				return StringField(s.Supplier), true
			case "brand":
				return StringField(s.Brand), true
			case "repairType":
				return StringField(s.RepairType), true
			case "technician":
				return StringField(s.Technician), true
			case "warrantyDays":
				return NumberField(float64(s.WarrantyDays)), true
			case "cost":
				return NumberField(s.Cost), true
			case "finalPrice":
				return NumberField(s.FinalPrice), true
			}
			return Field{}, false
		},
	}
}
