package domain

import "time"

// Enumerations
const (
	RoleRoot  UserRole = "root"
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

type UserRole string

type User struct {
	ID           int64
	Name         string
	Email        string
	Role         UserRole
	IsGoogle     bool
	PasswordHash *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

type Product struct {
	ID            int64
	Name          string
	Category      string
	Brand         string
	Supplier      string
	InStock       int
	MinQty        int
	Cost          float64
	MarkupPercent string
	FinalPrice    float64
	Image         string
	IsFeatured    bool
	IsOffer       bool
	WarrantyDays  int
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     *time.Time
}

// LowStock reports whether the product has fallen to or below its
// minimum quantity.
func (p Product) LowStock() bool {
	return p.InStock <= p.MinQty
}

type Service struct {
	ID            int64
	ServiceName   string
	Supplier      string
	Brand         string
	RepairType    string
	Technician    string
	Cost          float64
	MarkupPercent string
	FinalPrice    float64
	Image         string
	IsFeatured    bool
	IsOffer       bool
	WarrantyDays  int
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     *time.Time
}

// HistoryEntry is one change-log record for a product or service.
// Entries are append-only; listings serve them newest-first.
type HistoryEntry struct {
	ID       int64
	ItemID   int64
	Actor    string
	Action   string
	Details  string
	LoggedAt time.Time
}

type Client struct {
	ID        int64
	Name      string
	Phone     string
	Email     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

type Sale struct {
	ID             int64
	Code           string
	IdempotencyKey string
	Date           time.Time
	Seller         string
	ClientID       *int64
	PaymentMethod  string
	Total          float64
	Items          []SaleItem
	CreatedAt      time.Time
	DeletedAt      *time.Time
}

type SaleItem struct {
	ID        int64
	SaleID    int64
	ProductID *int64
	Name      string
	Qty       int
	UnitPrice float64
}

type Banner struct {
	ID        int64
	Title     string
	Image     string
	Link      string
	Active    bool
	Position  int
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

type ActivityLogEntry struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Admin     string    `json:"admin"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
}

// StockValueSample is one point of the total-stock-value series kept
// for the dashboard chart.
type StockValueSample struct {
	Date       time.Time `json:"date"`
	TotalValue float64   `json:"totalValue"`
}

// TotalStockValue is the cost of everything currently on the shelf.
func TotalStockValue(products []Product) float64 {
	var total float64
	for _, p := range products {
		total += p.Cost * float64(p.InStock)
	}
	return total
}
