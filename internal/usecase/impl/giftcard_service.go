package impl

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"atelier/config"
	deliverycontext "atelier/internal/delivery/context"
	"atelier/internal/domain/entity"
	domainerrors "atelier/internal/domain/errors"
	"atelier/internal/domain/repository"
	"atelier/internal/domain/service"
	"atelier/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// codeAlphabet leaves out look-alike characters so codes survive being read
// off a printed card.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// maxCodeAttempts bounds the regenerate-on-collision loop.
const maxCodeAttempts = 10

// giftCardService implements the GiftCardUsecase interface.
type giftCardService struct {
	store   repository.DocumentStore
	qrcode  service.QRCodeService
	codeGen func() string
	logger  *slog.Logger
	clock   func() time.Time
}

// GiftCardServiceParams holds dependencies for GiftCardService, injected by Fx.
type GiftCardServiceParams struct {
	fx.In

	Store  repository.DocumentStore
	QRCode service.QRCodeService
	Config *config.Config
	Logger *slog.Logger
}

// NewGiftCardService is the constructor for giftCardService.
func NewGiftCardService(params GiftCardServiceParams) usecase.GiftCardUsecase {
	prefix := "GC-"
	length := 6
	if params.Config != nil {
		if params.Config.GiftCards.CodePrefix != "" {
			prefix = params.Config.GiftCards.CodePrefix
		}
		if params.Config.GiftCards.CodeLength > 0 {
			length = params.Config.GiftCards.CodeLength
		}
	}

	return &giftCardService{
		store:   params.Store,
		qrcode:  params.QRCode,
		codeGen: func() string { return randomCode(prefix, length) },
		logger:  params.Logger,
		clock:   func() time.Time { return time.Now().UTC() },
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *giftCardService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *giftCardService) ListGiftCards(ctx context.Context) ([]entity.GiftCard, error) {
	doc, err := srv.store.Load(ctx)
	if err != nil {
		return nil, domainerrors.NewStoreExecuteError(err, "list gift cards")
	}

	return doc.GiftCards, nil
}

// IssueGiftCard creates a card under a freshly generated code. The store is
// the code-uniqueness authority: on a collision the code is regenerated and
// the insert retried.
func (srv *giftCardService) IssueGiftCard(ctx context.Context, input usecase.IssueGiftCardInput) (*entity.GiftCard, error) {
	card := entity.GiftCard{
		ID:             uuid.NewString(),
		Amount:         input.Amount,
		From:           input.From,
		To:             input.To,
		RecipientEmail: input.RecipientEmail,
		Message:        input.Message,
		CreatedAt:      srv.clock(),
	}

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		card.Code = srv.codeGen()

		_, err := srv.store.AddGiftCard(ctx, card)
		if err == nil {
			srv.log(ctx).Info("gift card issued",
				slog.String("id", card.ID),
				slog.String("code", card.Code))

			return &card, nil
		}
		if errors.Is(err, repository.ErrDuplicateGiftCardCode) {
			continue
		}

		return nil, domainerrors.NewStoreExecuteError(err, "issue gift card")
	}

	return nil, domainerrors.ErrGiftCardCodeExhausted
}

func (srv *giftCardService) FindByCode(ctx context.Context, code string) (*entity.GiftCard, error) {
	doc, err := srv.store.Load(ctx)
	if err != nil {
		return nil, domainerrors.NewStoreExecuteError(err, "find gift card")
	}

	card := doc.FindGiftCardByCode(strings.TrimSpace(code))
	if card == nil {
		return nil, domainerrors.ErrGiftCardNotFound
	}

	return card, nil
}

// Redeem spends the card. The flip-plus-ledger-append composite runs in the
// store; this layer only translates the card's state into API errors.
func (srv *giftCardService) Redeem(ctx context.Context, id string, category entity.TransactionCategory) (*entity.GiftCard, error) {
	doc, err := srv.store.Load(ctx)
	if err != nil {
		return nil, domainerrors.NewStoreExecuteError(err, "redeem gift card")
	}

	existing := findGiftCard(doc, id)
	if existing == nil {
		return nil, domainerrors.ErrGiftCardNotFound
	}
	if existing.Redeemed {
		return nil, domainerrors.ErrGiftCardRedeemed
	}

	doc, err = srv.store.RedeemGiftCard(ctx, id, category)
	if err != nil {
		return nil, domainerrors.NewStoreExecuteError(err, "redeem gift card")
	}

	card := findGiftCard(doc, id)
	if card == nil {
		return nil, domainerrors.ErrGiftCardNotFound
	}
	srv.log(ctx).Info("gift card redeemed", slog.String("code", card.Code))

	return card, nil
}

func (srv *giftCardService) DeleteGiftCard(ctx context.Context, id string) error {
	if _, err := srv.store.DeleteGiftCard(ctx, id); err != nil {
		return domainerrors.NewStoreExecuteError(err, "delete gift card")
	}

	return nil
}

// GiftCardQR renders the card's redeem code as a PNG QR image.
func (srv *giftCardService) GiftCardQR(ctx context.Context, id string) ([]byte, error) {
	doc, err := srv.store.Load(ctx)
	if err != nil {
		return nil, domainerrors.NewStoreExecuteError(err, "gift card qr")
	}

	card := findGiftCard(doc, id)
	if card == nil {
		return nil, domainerrors.ErrGiftCardNotFound
	}

	png, err := srv.qrcode.GenerateGiftCardQR(card.Code)
	if err != nil {
		return nil, errors.Wrap(err, "render gift card qr")
	}

	return png, nil
}

func findGiftCard(doc *entity.Document, id string) *entity.GiftCard {
	for i := range doc.GiftCards {
		if doc.GiftCards[i].ID == id {
			return &doc.GiftCards[i]
		}
	}

	return nil
}

func randomCode(prefix string, length int) string {
	var b strings.Builder
	b.Grow(len(prefix) + length)
	b.WriteString(prefix)
	for i := 0; i < length; i++ {
		b.WriteByte(codeAlphabet[rand.IntN(len(codeAlphabet))])
	}

	return b.String()
}
