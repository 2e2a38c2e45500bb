// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// GiftCard represents an issued gift card. The code is the only identifier
// whose uniqueness the store actively enforces; redemption is one-way.
type GiftCard struct {
	ID             string          `json:"id"`                       // Caller-generated identifier, unique within the collection.
	Code           string          `json:"code"`                     // Unique redeem code printed on the card.
	Amount         decimal.Decimal `json:"amount"`                   // Face value of the card.
	From           string          `json:"from"`                     // Sender name.
	To             string          `json:"to"`                       // Recipient name.
	RecipientEmail string          `json:"recipientEmail,omitempty"` // Optional recipient email for delivery.
	Message        string          `json:"message"`                  // Personal message printed on the card.
	Redeemed       bool            `json:"redeemed"`                 // One-way flag; set when the card is spent.
	CreatedAt      time.Time       `json:"createdAt"`                // When the card was issued.
}
