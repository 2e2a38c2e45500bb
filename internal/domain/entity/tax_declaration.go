// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaxType distinguishes the two declaration journals kept by the studio.
type TaxType string

const (
	// TaxSocialContribution is the monthly percentage-of-revenue social charge.
	TaxSocialContribution TaxType = "social_contribution"
	// TaxLocalBusiness is the yearly local business tax.
	TaxLocalBusiness TaxType = "local_business_tax"
)

// String returns the string representation of the TaxType.
func (t TaxType) String() string {
	return string(t)
}

// IsValid checks if the TaxType is a valid value.
func (t TaxType) IsValid() bool {
	switch t {
	case TaxSocialContribution, TaxLocalBusiness:
		return true
	default:
		return false
	}
}

// TaxStatus represents the payment state of a declaration.
type TaxStatus string

const (
	TaxPaid           TaxStatus = "paid"
	TaxPendingPayment TaxStatus = "pending"
)

// String returns the string representation of the TaxStatus.
func (s TaxStatus) String() string {
	return string(s)
}

// IsValid checks if the TaxStatus is a valid value.
func (s TaxStatus) IsValid() bool {
	switch s {
	case TaxPaid, TaxPendingPayment:
		return true
	default:
		return false
	}
}

// TaxDeclaration represents one social or fiscal declaration, either created
// by the computed-then-confirmed declaration flow or entered manually.
type TaxDeclaration struct {
	ID      string          `json:"id"`                // Caller-generated identifier, unique within the collection.
	Type    TaxType         `json:"type"`              // Which journal the declaration belongs to.
	Period  string          `json:"period"`            // Period label, e.g. "October 2025" or "2025".
	Amount  decimal.Decimal `json:"amount"`            // Declared amount due.
	Date    time.Time       `json:"date"`              // When the declaration was recorded.
	Status  TaxStatus       `json:"status"`            // paid or pending.
	Details string          `json:"details,omitempty"` // Free-text breakdown, e.g. revenue per stream.
}
