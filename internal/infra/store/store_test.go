package store

import (
	"context"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"atelier/internal/domain/entity"
	"atelier/internal/domain/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "atelier.db"), "123456", slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	// Frozen clock keeps seeded relative dates stable across loads.
	frozen := time.Date(2025, time.July, 1, 9, 0, 0, 0, time.UTC)
	s.clock = func() time.Time { return frozen }

	return s
}

func docJSON(t *testing.T, doc *entity.Document) string {
	t.Helper()

	raw, err := json.Marshal(doc)
	require.NoError(t, err)

	return string(raw)
}

func TestLoad_SeedsEmptyStoreIdempotently(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first, err := s.Load(ctx)
	require.NoError(t, err)
	second, err := s.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, docJSON(t, first), docJSON(t, second))
	assert.NotEmpty(t, first.Clients)
	assert.NotEmpty(t, first.Transactions)
	assert.NotEmpty(t, first.Suppliers)
	assert.NotEmpty(t, first.TaxDeclarations)
	assert.NotEmpty(t, first.Inventory)
	assert.Empty(t, first.GiftCards)
	assert.Empty(t, first.CoachingRequests)
	assert.Empty(t, first.CollabRequests)
}

func TestClient_AddUpdateDeleteRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	client := entity.Client{
		ID:          "c-100",
		Name:        "Nina Moreau",
		Instagram:   "@nina.m",
		Notes:       "French tips only",
		TotalVisits: 1,
		LastVisit:   time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC),
	}

	doc, err := s.AddClient(ctx, client)
	require.NoError(t, err)
	lenAfterAdd := len(doc.Clients)

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Clients, lenAfterAdd)
	assert.Equal(t, client, loaded.Clients[lenAfterAdd-1])

	client.Notes = "Moved to gel overlays"
	client.TotalVisits = 2
	doc, err = s.UpdateClient(ctx, client)
	require.NoError(t, err)
	assert.Len(t, doc.Clients, lenAfterAdd)
	assert.Equal(t, client, doc.Clients[lenAfterAdd-1])

	doc, err = s.DeleteClient(ctx, client.ID)
	require.NoError(t, err)
	assert.Len(t, doc.Clients, lenAfterAdd-1)

	// Deleting an unknown id is a no-op.
	doc, err = s.DeleteClient(ctx, "missing")
	require.NoError(t, err)
	assert.Len(t, doc.Clients, lenAfterAdd-1)
}

func TestUpdate_UnknownIDLeavesCollectionUnchanged(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	before, err := s.Load(ctx)
	require.NoError(t, err)

	_, err = s.UpdateTransaction(ctx, entity.Transaction{
		ID:     "missing",
		Date:   time.Now().UTC(),
		Amount: decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	after, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, docJSON(t, before), docJSON(t, after))
}

func TestTransaction_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	txn := entity.Transaction{
		ID:          "t-100",
		Date:        time.Date(2025, time.July, 1, 10, 0, 0, 0, time.UTC),
		Amount:      decimal.RequireFromString("55.50"),
		Method:      entity.PaymentCard,
		Category:    entity.CategoryService,
		Description: "Full set",
	}

	doc, err := s.AddTransaction(ctx, txn)
	require.NoError(t, err)
	n := len(doc.Transactions)

	txn.Description = "Full set + art"
	doc, err = s.UpdateTransaction(ctx, txn)
	require.NoError(t, err)
	assert.Len(t, doc.Transactions, n)
	assert.Equal(t, "Full set + art", doc.Transactions[n-1].Description)

	doc, err = s.DeleteTransaction(ctx, txn.ID)
	require.NoError(t, err)
	assert.Len(t, doc.Transactions, n-1)
}

func TestOrder_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	order := entity.Order{
		ID:           "o-100",
		SupplierID:   "1",
		SupplierName: "Passione Beauty",
		Date:         time.Date(2025, time.July, 1, 8, 0, 0, 0, time.UTC),
		Status:       entity.OrderPending,
		Items:        []entity.OrderItem{{Name: "Brushes", Quantity: 3}},
	}

	doc, err := s.AddOrder(ctx, order)
	require.NoError(t, err)
	n := len(doc.Orders)

	order.Status = entity.OrderDelivered
	doc, err = s.UpdateOrder(ctx, order)
	require.NoError(t, err)
	assert.Len(t, doc.Orders, n)
	assert.Equal(t, entity.OrderDelivered, doc.Orders[n-1].Status)

	doc, err = s.DeleteOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Len(t, doc.Orders, n-1)
}

func TestGiftCard_DuplicateCodeRejected(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	card := entity.GiftCard{
		ID:        "g-1",
		Code:      "GC-AAAAAA",
		Amount:    decimal.NewFromInt(50),
		From:      "Marie",
		To:        "Sophie",
		CreatedAt: time.Now().UTC(),
	}

	_, err := s.AddGiftCard(ctx, card)
	require.NoError(t, err)

	dup := card
	dup.ID = "g-2"
	_, err = s.AddGiftCard(ctx, dup)
	require.ErrorIs(t, err, repository.ErrDuplicateGiftCardCode)

	doc, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, doc.GiftCards, 1)
}

func TestRedeemGiftCard_OneWayWithLedgerEntry(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	amount := decimal.RequireFromString("75.00")
	card := entity.GiftCard{
		ID:        "g-1",
		Code:      "GC-BBBBBB",
		Amount:    amount,
		From:      "Paul",
		To:        "Lea",
		CreatedAt: time.Now().UTC(),
	}
	doc, err := s.AddGiftCard(ctx, card)
	require.NoError(t, err)
	txCount := len(doc.Transactions)

	doc, err = s.RedeemGiftCard(ctx, card.ID, entity.CategoryService)
	require.NoError(t, err)
	require.Len(t, doc.Transactions, txCount+1)
	assert.True(t, doc.GiftCards[len(doc.GiftCards)-1].Redeemed)

	booked := doc.Transactions[txCount]
	assert.True(t, booked.Amount.Equal(amount), "booked %s, want %s", booked.Amount, amount)
	assert.Equal(t, entity.PaymentGiftCard, booked.Method)
	assert.Equal(t, entity.CategoryService, booked.Category)
	assert.Contains(t, booked.Description, card.Code)

	// Second redemption is a no-op: flag stays set, nothing new is booked.
	doc, err = s.RedeemGiftCard(ctx, card.ID, entity.CategoryService)
	require.NoError(t, err)
	assert.Len(t, doc.Transactions, txCount+1)
	assert.True(t, doc.GiftCards[len(doc.GiftCards)-1].Redeemed)
}

func TestRedeemGiftCard_InvalidCategoryDefaultsToService(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	card := entity.GiftCard{ID: "g-1", Code: "GC-CCCCCC", Amount: decimal.NewFromInt(30), CreatedAt: time.Now().UTC()}
	doc, err := s.AddGiftCard(ctx, card)
	require.NoError(t, err)
	txCount := len(doc.Transactions)

	doc, err = s.RedeemGiftCard(ctx, card.ID, entity.TransactionCategory("party"))
	require.NoError(t, err)
	require.Len(t, doc.Transactions, txCount+1)
	assert.Equal(t, entity.CategoryService, doc.Transactions[txCount].Category)
}

func TestRedeemGiftCard_UnknownIDIsNoOp(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	before, err := s.Load(ctx)
	require.NoError(t, err)

	after, err := s.RedeemGiftCard(ctx, "missing", entity.CategoryService)
	require.NoError(t, err)
	assert.Equal(t, docJSON(t, before), docJSON(t, after))
}

func TestMigration_InitializesAbsentCollections(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	// A document written by an older version: only the original collections
	// are present, everything newer is absent (nil marshals to null).
	old := &entity.Document{
		Clients: []entity.Client{{
			ID:        "c-1",
			Name:      "Ancienne Cliente",
			LastVisit: time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC),
		}},
		Transactions: []entity.Transaction{{
			ID:     "t-1",
			Date:   time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC),
			Amount: decimal.NewFromInt(40),
			Method: entity.PaymentCash,
		}},
		Suppliers: []entity.Supplier{},
		GiftCards: []entity.GiftCard{},
		Orders:    []entity.Order{},
	}
	require.NoError(t, s.Save(ctx, old))

	doc, err := s.Load(ctx)
	require.NoError(t, err)

	// Existing data survives.
	require.Len(t, doc.Clients, 1)
	assert.Equal(t, "Ancienne Cliente", doc.Clients[0].Name)
	require.Len(t, doc.Transactions, 1)

	// Absent collections are initialized: later ones seeded, inbound empty.
	assert.NotNil(t, doc.TaxDeclarations)
	assert.NotEmpty(t, doc.TaxDeclarations)
	assert.NotNil(t, doc.Inventory)
	assert.NotEmpty(t, doc.Inventory)
	assert.NotNil(t, doc.CoachingRequests)
	assert.Empty(t, doc.CoachingRequests)
	assert.NotNil(t, doc.CollabRequests)
	assert.Empty(t, doc.CollabRequests)

	// The migrated document was rewritten: a second load returns it as is.
	again, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, docJSON(t, doc), docJSON(t, again))
}

func TestUpsertInventoryItem(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	doc, err := s.Load(ctx)
	require.NoError(t, err)
	n := len(doc.Inventory)

	// New product appends a row.
	doc, err = s.UpsertInventoryItem(ctx, entity.InventoryItem{ProductName: "Chrome Powder", Quantity: 4, Threshold: 2})
	require.NoError(t, err)
	require.Len(t, doc.Inventory, n+1)
	added := doc.Inventory[n]
	assert.Equal(t, "Chrome Powder", added.ProductName)
	assert.Equal(t, s.clock(), added.LastUpdated)

	// Same product replaces the row in place.
	doc, err = s.UpsertInventoryItem(ctx, entity.InventoryItem{ProductName: "Chrome Powder", Quantity: 1, Threshold: 2})
	require.NoError(t, err)
	require.Len(t, doc.Inventory, n+1)
	assert.Equal(t, 1, doc.Inventory[n].Quantity)
}

func TestAdminPIN_DefaultAndOverwrite(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	pin, err := s.AdminPIN(ctx)
	require.NoError(t, err)
	assert.Equal(t, "123456", pin)

	require.NoError(t, s.SetAdminPIN(ctx, "4321"))

	pin, err = s.AdminPIN(ctx)
	require.NoError(t, err)
	assert.Equal(t, "4321", pin)
}

func TestSave_CorruptValueSurfacesOnLoad(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put(documentKey, []byte("{not json"))
	}))

	_, err := s.Load(ctx)
	require.Error(t, err)
}
