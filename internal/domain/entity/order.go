// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle state of a purchase order.
// The only transition is pending to delivered; there is no cancellation.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderDelivered OrderStatus = "delivered"
)

// String returns the string representation of the OrderStatus.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid checks if the OrderStatus is a valid value.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderPending, OrderDelivered:
		return true
	default:
		return false
	}
}

// OrderItem is a single product line on a purchase order. The name joins
// against supplier catalogs and inventory rows.
type OrderItem struct {
	Name     string `json:"name"`     // Product name as listed in the supplier catalog.
	Quantity int    `json:"quantity"` // Units ordered.
}

// Order represents a purchase order sent to a supplier.
type Order struct {
	ID           string           `json:"id"`                    // Caller-generated identifier, unique within the collection.
	SupplierID   string           `json:"supplierId"`            // The supplier the order was sent to.
	SupplierName string           `json:"supplierName"`          // Denormalized supplier name at order time.
	Date         time.Time        `json:"date"`                  // When the order was placed.
	Status       OrderStatus      `json:"status"`                // pending or delivered.
	Items        []OrderItem      `json:"items"`                 // Ordered product lines.
	TotalAmount  *decimal.Decimal `json:"totalAmount,omitempty"` // Optional total cost, used for margin tracking.
}
