// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod represents how a sale was settled.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentCard     PaymentMethod = "card"
	PaymentTransfer PaymentMethod = "transfer"
	PaymentCheck    PaymentMethod = "check"
	PaymentGiftCard PaymentMethod = "gift_card"
)

// String returns the string representation of the PaymentMethod.
func (m PaymentMethod) String() string {
	return string(m)
}

// IsValid checks if the PaymentMethod is a valid value.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentTransfer, PaymentCheck, PaymentGiftCard:
		return true
	default:
		return false
	}
}

// TransactionCategory classifies a ledger entry by revenue stream.
type TransactionCategory string

const (
	CategoryService  TransactionCategory = "service"
	CategoryTraining TransactionCategory = "training"
	CategorySale     TransactionCategory = "sale"
	CategoryOther    TransactionCategory = "other"
)

// String returns the string representation of the TransactionCategory.
func (c TransactionCategory) String() string {
	return string(c)
}

// IsValid checks if the TransactionCategory is a valid value.
func (c TransactionCategory) IsValid() bool {
	switch c {
	case CategoryService, CategoryTraining, CategorySale, CategoryOther:
		return true
	default:
		return false
	}
}

// Transaction is an append-only sales ledger entry. Amounts are always
// positive inflows; purchases live on orders, not here.
type Transaction struct {
	ID          string              `json:"id"`          // Caller-generated identifier, unique within the collection.
	Date        time.Time           `json:"date"`        // When the money came in.
	Amount      decimal.Decimal     `json:"amount"`      // Positive amount in the studio currency.
	Method      PaymentMethod       `json:"method"`      // How the sale was settled.
	Category    TransactionCategory `json:"category"`    // Revenue stream the entry belongs to.
	Description string              `json:"description"` // Free-text label shown in the journal.
}
