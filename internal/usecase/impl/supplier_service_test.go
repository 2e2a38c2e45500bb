package impl

import (
	"context"
	"testing"

	"atelier/internal/domain/entity"
	domainerrors "atelier/internal/domain/errors"
	"atelier/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSupplierService(t *testing.T) usecase.SupplierUsecase {
	t.Helper()

	return NewSupplierService(SupplierServiceParams{
		Store:  newTestStore(t),
		Logger: testLogger(),
	})
}

func TestSupplierService_CRUD(t *testing.T) {
	svc := newSupplierService(t)
	ctx := context.Background()

	created, err := svc.CreateSupplier(ctx, usecase.SupplierInput{
		Name:     "New Supplier",
		Website:  "https://new.example",
		Products: []string{"Base Coat", "Top Coat"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	updated, err := svc.UpdateSupplier(ctx, created.ID, usecase.SupplierInput{
		Name:     "Renamed Supplier",
		Products: []string{"Base Coat"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed Supplier", updated.Name)

	_, err = svc.UpdateSupplier(ctx, "missing", usecase.SupplierInput{Name: "x"})
	assert.ErrorIs(t, err, domainerrors.ErrSupplierNotFound)

	require.NoError(t, svc.DeleteSupplier(ctx, created.ID))
}

func TestSupplierService_PlaceOrder(t *testing.T) {
	svc := newSupplierService(t)
	ctx := context.Background()

	suppliers, err := svc.ListSuppliers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, suppliers)
	supplier := suppliers[0]

	total := decimal.RequireFromString("45.50")
	order, err := svc.PlaceOrder(ctx, usecase.OrderInput{
		SupplierID:  supplier.ID,
		Items:       []entity.OrderItem{{Name: supplier.Products[0], Quantity: 2}},
		TotalAmount: &total,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.OrderPending, order.Status)
	assert.Equal(t, supplier.Name, order.SupplierName)
	assert.False(t, order.Date.IsZero())
}

func TestSupplierService_PlaceOrder_EmptyCart(t *testing.T) {
	svc := newSupplierService(t)

	_, err := svc.PlaceOrder(context.Background(), usecase.OrderInput{SupplierID: "1"})
	assert.ErrorIs(t, err, domainerrors.ErrEmptyOrder)
}

func TestSupplierService_PlaceOrder_UnknownSupplier(t *testing.T) {
	svc := newSupplierService(t)

	_, err := svc.PlaceOrder(context.Background(), usecase.OrderInput{
		SupplierID: "missing",
		Items:      []entity.OrderItem{{Name: "Anything", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domainerrors.ErrSupplierNotFound)
}

func TestSupplierService_MarkOrderDelivered(t *testing.T) {
	svc := newSupplierService(t)
	ctx := context.Background()

	suppliers, err := svc.ListSuppliers(ctx)
	require.NoError(t, err)
	order, err := svc.PlaceOrder(ctx, usecase.OrderInput{
		SupplierID: suppliers[0].ID,
		Items:      []entity.OrderItem{{Name: suppliers[0].Products[0], Quantity: 1}},
	})
	require.NoError(t, err)

	delivered, err := svc.MarkOrderDelivered(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderDelivered, delivered.Status)

	// Delivered is terminal: marking again is a no-op.
	again, err := svc.MarkOrderDelivered(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderDelivered, again.Status)

	_, err = svc.MarkOrderDelivered(ctx, "missing")
	assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
}

func TestSupplierService_UpsertInventoryItem(t *testing.T) {
	svc := newSupplierService(t)
	ctx := context.Background()

	item, err := svc.UpsertInventoryItem(ctx, usecase.InventoryInput{
		ProductName: "Chrome Powder",
		Quantity:    4,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultStockThreshold, item.Threshold, "zero threshold falls back to the default")
	assert.False(t, item.LastUpdated.IsZero())

	item, err = svc.UpsertInventoryItem(ctx, usecase.InventoryInput{
		ProductName: "Chrome Powder",
		Quantity:    1,
		Threshold:   3,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, item.Quantity)
	assert.Equal(t, 3, item.Threshold)
}

func TestSupplierService_StockReport(t *testing.T) {
	svc := newSupplierService(t)
	ctx := context.Background()

	rows, err := svc.StockReport(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, rows)

	byProduct := make(map[string]usecase.StockReportRow, len(rows))
	for _, row := range rows {
		byProduct[row.ProductName] = row
	}

	// Seeded inventory tracks "Files 100/180" at 15 of threshold 10.
	files, ok := byProduct["Files 100/180"]
	require.True(t, ok)
	assert.True(t, files.Tracked)
	assert.Equal(t, 15, files.Quantity)
	assert.Equal(t, 10, files.Threshold)
	assert.False(t, files.LowStock)

	// Catalog products without an inventory row join to nothing and show
	// the default threshold.
	acetone, ok := byProduct["Acetone"]
	require.True(t, ok)
	assert.False(t, acetone.Tracked)
	assert.Zero(t, acetone.Quantity)
	assert.Equal(t, entity.DefaultStockThreshold, acetone.Threshold)
}

func TestSupplierService_StockReport_LowStock(t *testing.T) {
	svc := newSupplierService(t)
	ctx := context.Background()

	suppliers, err := svc.ListSuppliers(ctx)
	require.NoError(t, err)
	product := suppliers[0].Products[0]

	_, err = svc.UpsertInventoryItem(ctx, usecase.InventoryInput{
		ProductName: product,
		Quantity:    1,
		Threshold:   2,
	})
	require.NoError(t, err)

	rows, err := svc.StockReport(ctx)
	require.NoError(t, err)

	for _, row := range rows {
		if row.ProductName == product {
			assert.True(t, row.LowStock)

			return
		}
	}
	t.Fatalf("product %q missing from stock report", product)
}
