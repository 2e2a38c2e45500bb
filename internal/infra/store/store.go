// Package store implements the document store on an embedded bbolt file.
// The whole aggregate document lives as one JSON value under a fixed key;
// every mutation is a read-modify-write of that value inside a single bbolt
// update transaction. The admin PIN sits beside it under its own key.
package store

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"atelier/config"
	"atelier/internal/domain/entity"
	"atelier/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
	"go.uber.org/fx"
)

var (
	bucketName  = []byte("atelier")
	documentKey = []byte("document")
	pinKey      = []byte("admin_pin")
)

// Store is the bbolt-backed implementation of repository.DocumentStore.
type Store struct {
	db         *bolt.DB
	logger     *slog.Logger
	defaultPIN string
	clock      func() time.Time
}

// Params holds dependencies for the store, injected by Fx.
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New opens the document store for the fx application and closes it on
// shutdown.
func New(params Params) (repository.DocumentStore, error) {
	s, err := Open(params.Config.Store.Path, params.Config.Auth.DefaultPIN, params.Logger)
	if err != nil {
		return nil, err
	}

	params.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return s.Close()
		},
	})

	return s, nil
}

// Open opens (creating if needed) the store file at path.
func Open(path, defaultPIN string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "create store directory")
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "open store at %s", path)
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)

		return errors.WithStack(err)
	}); err != nil {
		return nil, errors.Wrap(err, "create store bucket")
	}

	return &Store{
		db:         db,
		logger:     logger,
		defaultPIN: defaultPIN,
		clock:      func() time.Time { return time.Now().UTC() },
	}, nil
}

// Close releases the underlying bbolt file.
func (s *Store) Close() error {
	return errors.WithStack(s.db.Close())
}

// Load returns the current document, seeding an empty store and applying
// forward migrations before handing the document back.
func (s *Store) Load(ctx context.Context) (*entity.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	var doc *entity.Document
	err := s.db.Update(func(tx *bolt.Tx) error {
		loaded, dirty, err := s.loadTx(tx)
		if err != nil {
			return err
		}
		if dirty {
			if err := saveTx(tx, loaded); err != nil {
				return err
			}
		}
		doc = loaded

		return nil
	})
	if err != nil {
		return nil, err
	}

	return doc, nil
}

// Save serializes and persists the entire document, unconditionally
// overwriting prior content.
func (s *Store) Save(ctx context.Context, doc *entity.Document) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return saveTx(tx, doc)
	})
}

// loadTx reads the document within tx. It reports dirty when the document
// had to be seeded or migrated and should be rewritten.
func (s *Store) loadTx(tx *bolt.Tx) (*entity.Document, bool, error) {
	raw := tx.Bucket(bucketName).Get(documentKey)
	if raw == nil {
		s.logger.Info("no document found, writing seed data")

		return SeedDocument(s.clock()), true, nil
	}

	doc := new(entity.Document)
	if err := json.Unmarshal(raw, doc); err != nil {
		return nil, false, errors.Wrap(err, "decode stored document")
	}

	return doc, s.migrate(doc), nil
}

// migrate initializes collections absent from documents written by older
// versions. Collections that shipped with later releases get their seed
// values; inbound request collections start empty.
func (s *Store) migrate(doc *entity.Document) bool {
	dirty := false
	seed := SeedDocument(s.clock())

	if doc.Clients == nil {
		doc.Clients = []entity.Client{}
		dirty = true
	}
	if doc.Transactions == nil {
		doc.Transactions = []entity.Transaction{}
		dirty = true
	}
	if doc.Suppliers == nil {
		doc.Suppliers = []entity.Supplier{}
		dirty = true
	}
	if doc.GiftCards == nil {
		doc.GiftCards = []entity.GiftCard{}
		dirty = true
	}
	if doc.Orders == nil {
		doc.Orders = []entity.Order{}
		dirty = true
	}
	if doc.TaxDeclarations == nil {
		doc.TaxDeclarations = seed.TaxDeclarations
		dirty = true
	}
	if doc.Inventory == nil {
		doc.Inventory = seed.Inventory
		dirty = true
	}
	if doc.CoachingRequests == nil {
		doc.CoachingRequests = []entity.CoachingRequest{}
		dirty = true
	}
	if doc.CollabRequests == nil {
		doc.CollabRequests = []entity.CollabRequest{}
		dirty = true
	}

	return dirty
}

func saveTx(tx *bolt.Tx, doc *entity.Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "encode document")
	}

	return errors.WithStack(tx.Bucket(bucketName).Put(documentKey, raw))
}

// mutate runs fn over the current document and persists the result, all
// inside one update transaction. Seeding and migration apply here too, so a
// mutation against an empty store starts from the seed document.
func (s *Store) mutate(ctx context.Context, fn func(doc *entity.Document) error) (*entity.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	var out *entity.Document
	err := s.db.Update(func(tx *bolt.Tx) error {
		doc, _, err := s.loadTx(tx)
		if err != nil {
			return err
		}
		if err := fn(doc); err != nil {
			return err
		}
		if err := saveTx(tx, doc); err != nil {
			return err
		}
		out = doc

		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (s *Store) AddClient(ctx context.Context, client entity.Client) (*entity.Document, error) {
	return s.mutate(ctx, func(doc *entity.Document) error {
		doc.Clients = append(doc.Clients, client)

		return nil
	})
}

func (s *Store) UpdateClient(ctx context.Context, client entity.Client) (*entity.Document, error) {
	return s.mutate(ctx, func(doc *entity.Document) error {
		doc.Clients = replaceWhere(doc.Clients, client, func(c entity.Client) bool { return c.ID == client.ID })

		return nil
	})
}

func (s *Store) DeleteClient(ctx context.Context, id string) (*entity.Document, error) {
	return s.mutate(ctx, func(doc *entity.Document) error {
		doc.Clients = deleteWhere(doc.Clients, func(c entity.Client) bool { return c.ID == id })

		return nil
	})
}

func (s *Store) AddTransaction(ctx context.Context, txn entity.Transaction) (*entity.Document, error) {
	return s.mutate(ctx, func(doc *entity.Document) error {
		doc.Transactions = append(doc.Transactions, txn)

		return nil
	})
}

func (s *Store) UpdateTransaction(ctx context.Context, txn entity.Transaction) (*entity.Document, error) {
	return s.mutate(ctx, func(doc *entity.Document) error {
		doc.Transactions = replaceWhere(doc.Transactions, txn, func(t entity.Transaction) bool { return t.ID == txn.ID })

		return nil
	})
}

func (s *Store) DeleteTransaction(ctx context.Context, id string) (*entity.Document, error) {
	return s.mutate(ctx, func(doc *entity.Document) error {
		doc.Transactions = deleteWhere(doc.Transactions, func(t entity.Transaction) bool { return t.ID == id })

		return nil
	})
}

func (s *Store) AddSupplier(ctx context.Context, supplier entity.Supplier) (*entity.Document, error) {
	return s.mutate(ctx, func(doc *entity.Document) error {
		doc.Suppliers = append(doc.Suppliers, supplier)

		return nil
	})
}

func (s *Store) UpdateSupplier(ctx context.Context, supplier entity.Supplier) (*entity.Document, error) {
	return s.mutate(ctx, func(doc *entity.Document) error {
		doc.Suppliers = replaceWhere(doc.Suppliers, supplier, func(s entity.Supplier) bool { return s.ID == supplier.ID })

		return nil
	})
}

func (s *Store) DeleteSupplier(ctx context.Context, id string) (*entity.Document, error) {
	return s.mutate(ctx, func(doc *entity.Document) error {
		doc.Suppliers = deleteWhere(doc.Suppliers, func(s entity.Supplier) bool { return s.ID == id })

		return nil
	})
}

func (s *Store) AddOrder(ctx context.Context, order entity.Order) (*entity.Document, error) {
	return s.mutate(ctx, func(doc *entity.Document) error {
		doc.Orders = append(doc.Orders, order)

		return nil
	})
}

func (s *Store) UpdateOrder(ctx context.Context, order entity.Order) (*entity.Document, error) {
	return s.mutate(ctx, func(doc *entity.Document) error {
		doc.Orders = replaceWhere(doc.Orders, order, func(o entity.Order) bool { return o.ID == order.ID })

		return nil
	})
}

func (s *Store) DeleteOrder(ctx context.Context, id string) (*entity.Document, error) {
	return s.mutate(ctx, func(doc *entity.Document) error {
		doc.Orders = deleteWhere(doc.Orders, func(o entity.Order) bool { return o.ID == id })

		return nil
	})
}

func (s *Store) AddGiftCard(ctx context.Context, card entity.GiftCard) (*entity.Document, error) {
	return s.mutate(ctx, func(doc *entity.Document) error {
		if doc.HasGiftCardCode(card.Code) {
			return repository.ErrDuplicateGiftCardCode
		}
		doc.GiftCards = append(doc.GiftCards, card)

		return nil
	})
}

func (s *Store) DeleteGiftCard(ctx context.Context, id string) (*entity.Document, error) {
	return s.mutate(ctx, func(doc *entity.Document) error {
		doc.GiftCards = deleteWhere(doc.GiftCards, func(g entity.GiftCard) bool { return g.ID == id })

		return nil
	})
}

// RedeemGiftCard flips the redeemed flag one way and books the matching
// ledger entry in the same transaction. Unknown or already-redeemed cards
// leave the document untouched.
func (s *Store) RedeemGiftCard(ctx context.Context, id string, category entity.TransactionCategory) (*entity.Document, error) {
	return s.mutate(ctx, func(doc *entity.Document) error {
		for i := range doc.GiftCards {
			card := &doc.GiftCards[i]
			if card.ID != id {
				continue
			}
			if card.Redeemed {
				return nil
			}
			card.Redeemed = true

			if !category.IsValid() {
				category = entity.CategoryService
			}
			doc.Transactions = append(doc.Transactions, entity.Transaction{
				ID:          uuid.NewString(),
				Date:        s.clock(),
				Amount:      card.Amount,
				Method:      entity.PaymentGiftCard,
				Category:    category,
				Description: "Gift card " + card.Code + " redeemed (from " + card.From + " for " + card.To + ")",
			})

			return nil
		}

		return nil
	})
}

func (s *Store) AddTaxDeclaration(ctx context.Context, decl entity.TaxDeclaration) (*entity.Document, error) {
	return s.mutate(ctx, func(doc *entity.Document) error {
		doc.TaxDeclarations = append(doc.TaxDeclarations, decl)

		return nil
	})
}

func (s *Store) UpdateTaxDeclaration(ctx context.Context, decl entity.TaxDeclaration) (*entity.Document, error) {
	return s.mutate(ctx, func(doc *entity.Document) error {
		doc.TaxDeclarations = replaceWhere(doc.TaxDeclarations, decl, func(d entity.TaxDeclaration) bool { return d.ID == decl.ID })

		return nil
	})
}

func (s *Store) DeleteTaxDeclaration(ctx context.Context, id string) (*entity.Document, error) {
	return s.mutate(ctx, func(doc *entity.Document) error {
		doc.TaxDeclarations = deleteWhere(doc.TaxDeclarations, func(d entity.TaxDeclaration) bool { return d.ID == id })

		return nil
	})
}

// UpsertInventoryItem writes the stock row keyed by product name and stamps
// its last-updated time.
func (s *Store) UpsertInventoryItem(ctx context.Context, item entity.InventoryItem) (*entity.Document, error) {
	return s.mutate(ctx, func(doc *entity.Document) error {
		item.LastUpdated = s.clock()
		for i := range doc.Inventory {
			if doc.Inventory[i].ProductName == item.ProductName {
				doc.Inventory[i] = item

				return nil
			}
		}
		doc.Inventory = append(doc.Inventory, item)

		return nil
	})
}

func (s *Store) AddCoachingRequest(ctx context.Context, req entity.CoachingRequest) (*entity.Document, error) {
	return s.mutate(ctx, func(doc *entity.Document) error {
		doc.CoachingRequests = append(doc.CoachingRequests, req)

		return nil
	})
}

func (s *Store) UpdateCoachingRequest(ctx context.Context, req entity.CoachingRequest) (*entity.Document, error) {
	return s.mutate(ctx, func(doc *entity.Document) error {
		doc.CoachingRequests = replaceWhere(doc.CoachingRequests, req, func(r entity.CoachingRequest) bool { return r.ID == req.ID })

		return nil
	})
}

func (s *Store) AddCollabRequest(ctx context.Context, req entity.CollabRequest) (*entity.Document, error) {
	return s.mutate(ctx, func(doc *entity.Document) error {
		doc.CollabRequests = append(doc.CollabRequests, req)

		return nil
	})
}

// AdminPIN returns the configured admin PIN, or the default when never set.
func (s *Store) AdminPIN(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.WithStack(err)
	}

	pin := s.defaultPIN
	err := s.db.View(func(tx *bolt.Tx) error {
		if raw := tx.Bucket(bucketName).Get(pinKey); raw != nil {
			pin = string(raw)
		}

		return nil
	})
	if err != nil {
		return "", errors.WithStack(err)
	}

	return pin, nil
}

// SetAdminPIN overwrites the stored admin PIN.
func (s *Store) SetAdminPIN(ctx context.Context, pin string) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return errors.WithStack(tx.Bucket(bucketName).Put(pinKey, []byte(pin)))
	})
}

// replaceWhere swaps every element matching the predicate for the
// replacement, leaving the slice length unchanged.
func replaceWhere[T any](items []T, replacement T, match func(T) bool) []T {
	for i := range items {
		if match(items[i]) {
			items[i] = replacement
		}
	}

	return items
}

// deleteWhere filters out every element matching the predicate.
func deleteWhere[T any](items []T, match func(T) bool) []T {
	kept := items[:0]
	for _, item := range items {
		if !match(item) {
			kept = append(kept, item)
		}
	}

	return kept
}
