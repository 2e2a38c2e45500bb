package usecase

import (
	"context"

	"atelier/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// IssueGiftCardInput defines the data submitted when purchasing a gift card.
type IssueGiftCardInput struct {
	Amount         decimal.Decimal
	From           string
	To             string
	RecipientEmail string
	Message        string
}

// GiftCardUsecase defines the interface for gift-card operations.
type GiftCardUsecase interface {
	ListGiftCards(ctx context.Context) ([]entity.GiftCard, error)

	// IssueGiftCard creates a card with a freshly generated unique code,
	// regenerating on collision until the store accepts it.
	IssueGiftCard(ctx context.Context, input IssueGiftCardInput) (*entity.GiftCard, error)

	// FindByCode resolves a card from its printed code, for the public
	// gift-card view page.
	FindByCode(ctx context.Context, code string) (*entity.GiftCard, error)

	// Redeem spends the card: flips the one-way flag and books the matching
	// ledger entry. The category override defaults to service.
	Redeem(ctx context.Context, id string, category entity.TransactionCategory) (*entity.GiftCard, error)

	DeleteGiftCard(ctx context.Context, id string) error

	// GiftCardQR renders the card's redeem code as a PNG QR image.
	GiftCardQR(ctx context.Context, id string) ([]byte, error)
}
