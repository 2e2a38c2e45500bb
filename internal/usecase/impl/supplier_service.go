package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "atelier/internal/delivery/context"
	"atelier/internal/domain/entity"
	domainerrors "atelier/internal/domain/errors"
	"atelier/internal/domain/repository"
	"atelier/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// supplierService implements the SupplierUsecase interface.
type supplierService struct {
	store  repository.DocumentStore
	logger *slog.Logger
	clock  func() time.Time
}

// SupplierServiceParams holds dependencies for SupplierService, injected by Fx.
type SupplierServiceParams struct {
	fx.In

	Store  repository.DocumentStore
	Logger *slog.Logger
}

// NewSupplierService is the constructor for supplierService.
func NewSupplierService(params SupplierServiceParams) usecase.SupplierUsecase {
	return &supplierService{
		store:  params.Store,
		logger: params.Logger,
		clock:  func() time.Time { return time.Now().UTC() },
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *supplierService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *supplierService) ListSuppliers(ctx context.Context) ([]entity.Supplier, error) {
	doc, err := srv.store.Load(ctx)
	if err != nil {
		return nil, domainerrors.NewStoreExecuteError(err, "list suppliers")
	}

	return doc.Suppliers, nil
}

func (srv *supplierService) CreateSupplier(ctx context.Context, input usecase.SupplierInput) (*entity.Supplier, error) {
	supplier := entity.Supplier{
		ID:       uuid.NewString(),
		Name:     input.Name,
		Website:  input.Website,
		Email:    input.Email,
		Products: input.Products,
		Notes:    input.Notes,
	}
	if supplier.Products == nil {
		supplier.Products = []string{}
	}

	if _, err := srv.store.AddSupplier(ctx, supplier); err != nil {
		return nil, domainerrors.NewStoreExecuteError(err, "create supplier")
	}

	return &supplier, nil
}

func (srv *supplierService) UpdateSupplier(ctx context.Context, id string, input usecase.SupplierInput) (*entity.Supplier, error) {
	doc, err := srv.store.Load(ctx)
	if err != nil {
		return nil, domainerrors.NewStoreExecuteError(err, "update supplier")
	}
	if findSupplier(doc, id) == nil {
		return nil, domainerrors.ErrSupplierNotFound
	}

	supplier := entity.Supplier{
		ID:       id,
		Name:     input.Name,
		Website:  input.Website,
		Email:    input.Email,
		Products: input.Products,
		Notes:    input.Notes,
	}
	if supplier.Products == nil {
		supplier.Products = []string{}
	}

	if _, err := srv.store.UpdateSupplier(ctx, supplier); err != nil {
		return nil, domainerrors.NewStoreExecuteError(err, "update supplier")
	}

	return &supplier, nil
}

func (srv *supplierService) DeleteSupplier(ctx context.Context, id string) error {
	if _, err := srv.store.DeleteSupplier(ctx, id); err != nil {
		return domainerrors.NewStoreExecuteError(err, "delete supplier")
	}

	return nil
}

func (srv *supplierService) ListOrders(ctx context.Context) ([]entity.Order, error) {
	doc, err := srv.store.Load(ctx)
	if err != nil {
		return nil, domainerrors.NewStoreExecuteError(err, "list orders")
	}

	return doc.Orders, nil
}

// PlaceOrder turns a per-supplier cart into a pending purchase order. The
// supplier name is denormalized at order time so renaming a supplier later
// leaves historical orders untouched.
func (srv *supplierService) PlaceOrder(ctx context.Context, input usecase.OrderInput) (*entity.Order, error) {
	if len(input.Items) == 0 {
		return nil, domainerrors.ErrEmptyOrder
	}

	doc, err := srv.store.Load(ctx)
	if err != nil {
		return nil, domainerrors.NewStoreExecuteError(err, "place order")
	}
	supplier := findSupplier(doc, input.SupplierID)
	if supplier == nil {
		return nil, domainerrors.ErrSupplierNotFound
	}

	order := entity.Order{
		ID:           uuid.NewString(),
		SupplierID:   supplier.ID,
		SupplierName: supplier.Name,
		Date:         srv.clock(),
		Status:       entity.OrderPending,
		Items:        input.Items,
		TotalAmount:  input.TotalAmount,
	}

	if _, err := srv.store.AddOrder(ctx, order); err != nil {
		return nil, domainerrors.NewStoreExecuteError(err, "place order")
	}
	srv.log(ctx).Info("order placed",
		slog.String("id", order.ID),
		slog.String("supplier", order.SupplierName),
		slog.Int("lines", len(order.Items)))

	return &order, nil
}

// MarkOrderDelivered moves a pending order to delivered. Delivered is
// terminal, so marking an already delivered order changes nothing.
func (srv *supplierService) MarkOrderDelivered(ctx context.Context, id string) (*entity.Order, error) {
	doc, err := srv.store.Load(ctx)
	if err != nil {
		return nil, domainerrors.NewStoreExecuteError(err, "mark delivered")
	}

	var existing *entity.Order
	for i := range doc.Orders {
		if doc.Orders[i].ID == id {
			existing = &doc.Orders[i]

			break
		}
	}
	if existing == nil {
		return nil, domainerrors.ErrOrderNotFound
	}
	if existing.Status == entity.OrderDelivered {
		return existing, nil
	}

	updated := *existing
	updated.Status = entity.OrderDelivered

	if _, err := srv.store.UpdateOrder(ctx, updated); err != nil {
		return nil, domainerrors.NewStoreExecuteError(err, "mark delivered")
	}

	return &updated, nil
}

func (srv *supplierService) DeleteOrder(ctx context.Context, id string) error {
	if _, err := srv.store.DeleteOrder(ctx, id); err != nil {
		return domainerrors.NewStoreExecuteError(err, "delete order")
	}

	return nil
}

func (srv *supplierService) UpsertInventoryItem(ctx context.Context, input usecase.InventoryInput) (*entity.InventoryItem, error) {
	threshold := input.Threshold
	if threshold <= 0 {
		threshold = entity.DefaultStockThreshold
	}

	doc, err := srv.store.UpsertInventoryItem(ctx, entity.InventoryItem{
		ProductName: input.ProductName,
		Quantity:    input.Quantity,
		Threshold:   threshold,
	})
	if err != nil {
		return nil, domainerrors.NewStoreExecuteError(err, "upsert inventory")
	}

	for i := range doc.Inventory {
		if doc.Inventory[i].ProductName == input.ProductName {
			return &doc.Inventory[i], nil
		}
	}

	return nil, domainerrors.ErrInternalError.WrapMessage("inventory row missing after upsert")
}

// StockReport joins every supplier catalog product against inventory rows by
// exact name. Products without a row show as untracked with the default
// threshold; a mismatched name simply fails to join.
func (srv *supplierService) StockReport(ctx context.Context) ([]usecase.StockReportRow, error) {
	doc, err := srv.store.Load(ctx)
	if err != nil {
		return nil, domainerrors.NewStoreExecuteError(err, "stock report")
	}

	byName := make(map[string]entity.InventoryItem, len(doc.Inventory))
	for _, item := range doc.Inventory {
		byName[item.ProductName] = item
	}

	var rows []usecase.StockReportRow
	for _, supplier := range doc.Suppliers {
		for _, product := range supplier.Products {
			row := usecase.StockReportRow{
				ProductName:  product,
				SupplierID:   supplier.ID,
				SupplierName: supplier.Name,
				Threshold:    entity.DefaultStockThreshold,
			}
			if item, ok := byName[product]; ok {
				row.Quantity = item.Quantity
				row.Threshold = item.Threshold
				row.Tracked = true
				row.LowStock = item.LowStock()
			}
			rows = append(rows, row)
		}
	}

	return rows, nil
}

func findSupplier(doc *entity.Document, id string) *entity.Supplier {
	for i := range doc.Suppliers {
		if doc.Suppliers[i].ID == id {
			return &doc.Suppliers[i]
		}
	}

	return nil
}
