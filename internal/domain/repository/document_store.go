// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"atelier/internal/domain/entity"

	"github.com/pkg/errors"
)

// Domain-specific errors for the document store.
var (
	// ErrDuplicateGiftCardCode is returned when adding a gift card whose code
	// is already carried by an issued card. Gift-card codes are the only
	// identifiers the store actively keeps unique.
	ErrDuplicateGiftCardCode = errors.New("gift card code already exists")
)

// DocumentStore is the single source of truth for every business record.
// Each mutator performs a whole-document read-modify-write over exactly one
// collection and returns the updated document, so callers can refresh their
// view without a second Load. Record ids are caller-generated and trusted;
// the store does not enforce their uniqueness. Updates replace whole records
// by id and leave the collection untouched when the id is unknown; deletes
// of an unknown id are no-ops.
type DocumentStore interface {
	// Load returns the current document. A store with no document seeds
	// itself with the fixed demo dataset, and documents written by older
	// versions are forward-migrated (absent collections initialized) and
	// rewritten before being returned.
	Load(ctx context.Context) (*entity.Document, error)

	// Save serializes and persists the entire document, unconditionally
	// overwriting prior content. No validation is performed.
	Save(ctx context.Context, doc *entity.Document) error

	AddClient(ctx context.Context, client entity.Client) (*entity.Document, error)
	UpdateClient(ctx context.Context, client entity.Client) (*entity.Document, error)
	DeleteClient(ctx context.Context, id string) (*entity.Document, error)

	AddTransaction(ctx context.Context, tx entity.Transaction) (*entity.Document, error)
	UpdateTransaction(ctx context.Context, tx entity.Transaction) (*entity.Document, error)
	DeleteTransaction(ctx context.Context, id string) (*entity.Document, error)

	AddSupplier(ctx context.Context, supplier entity.Supplier) (*entity.Document, error)
	UpdateSupplier(ctx context.Context, supplier entity.Supplier) (*entity.Document, error)
	DeleteSupplier(ctx context.Context, id string) (*entity.Document, error)

	AddOrder(ctx context.Context, order entity.Order) (*entity.Document, error)
	UpdateOrder(ctx context.Context, order entity.Order) (*entity.Document, error)
	DeleteOrder(ctx context.Context, id string) (*entity.Document, error)

	// AddGiftCard appends a card after checking its code against every
	// issued card; a collision returns ErrDuplicateGiftCardCode and leaves
	// the document unchanged.
	AddGiftCard(ctx context.Context, card entity.GiftCard) (*entity.Document, error)
	DeleteGiftCard(ctx context.Context, id string) (*entity.Document, error)

	// RedeemGiftCard flips the card's redeemed flag false to true and, in the
	// same update, appends a ledger transaction (gift-card method) for the
	// card amount under the given category. Redeeming an already-redeemed or
	// unknown card is a no-op that appends nothing.
	RedeemGiftCard(ctx context.Context, id string, category entity.TransactionCategory) (*entity.Document, error)

	AddTaxDeclaration(ctx context.Context, decl entity.TaxDeclaration) (*entity.Document, error)
	UpdateTaxDeclaration(ctx context.Context, decl entity.TaxDeclaration) (*entity.Document, error)
	DeleteTaxDeclaration(ctx context.Context, id string) (*entity.Document, error)

	// UpsertInventoryItem writes the stock row keyed by product name,
	// replacing an existing row or appending a new one, and stamps the
	// row's last-updated time.
	UpsertInventoryItem(ctx context.Context, item entity.InventoryItem) (*entity.Document, error)

	AddCoachingRequest(ctx context.Context, req entity.CoachingRequest) (*entity.Document, error)
	UpdateCoachingRequest(ctx context.Context, req entity.CoachingRequest) (*entity.Document, error)
	AddCollabRequest(ctx context.Context, req entity.CollabRequest) (*entity.Document, error)

	// AdminPIN returns the configured admin PIN, falling back to the
	// configured default when none was ever set. The PIN lives beside the
	// document as a separate scalar key.
	AdminPIN(ctx context.Context) (string, error)
	SetAdminPIN(ctx context.Context, pin string) error
}
