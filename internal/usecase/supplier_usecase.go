package usecase

import (
	"context"

	"atelier/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// --- Input DTOs ---

// SupplierInput defines the data required to create or update a supplier.
type SupplierInput struct {
	Name     string
	Website  string
	Email    string
	Products []string
	Notes    string
}

// OrderInput defines a per-supplier cart to be turned into a purchase order.
type OrderInput struct {
	SupplierID  string
	Items       []entity.OrderItem
	TotalAmount *decimal.Decimal
}

// InventoryInput defines one stock row keyed by product name.
type InventoryInput struct {
	ProductName string
	Quantity    int
	Threshold   int
}

// --- Output DTOs ---

// StockReportRow joins one supplier catalog product against its inventory
// row. Untracked products have no row and show the default threshold.
type StockReportRow struct {
	ProductName  string
	SupplierID   string
	SupplierName string
	Quantity     int
	Threshold    int
	Tracked      bool
	LowStock     bool
}

// SupplierUsecase defines the interface for supplier, order and inventory
// operations.
type SupplierUsecase interface {
	ListSuppliers(ctx context.Context) ([]entity.Supplier, error)
	CreateSupplier(ctx context.Context, input SupplierInput) (*entity.Supplier, error)
	UpdateSupplier(ctx context.Context, id string, input SupplierInput) (*entity.Supplier, error)
	DeleteSupplier(ctx context.Context, id string) error

	ListOrders(ctx context.Context) ([]entity.Order, error)

	// PlaceOrder turns a cart into a pending order, denormalizing the
	// supplier name at order time.
	PlaceOrder(ctx context.Context, input OrderInput) (*entity.Order, error)

	// MarkOrderDelivered moves a pending order to delivered. Delivered is
	// terminal; there is no cancellation.
	MarkOrderDelivered(ctx context.Context, id string) (*entity.Order, error)

	DeleteOrder(ctx context.Context, id string) error

	UpsertInventoryItem(ctx context.Context, input InventoryInput) (*entity.InventoryItem, error)

	// StockReport joins every supplier product against inventory by name.
	StockReport(ctx context.Context) ([]StockReportRow, error)
}
