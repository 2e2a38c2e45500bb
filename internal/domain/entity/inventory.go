// Package entity contains the core business objects of the project.
package entity

import "time"

// DefaultStockThreshold is assumed for products without an inventory row.
const DefaultStockThreshold = 2

// InventoryItem tracks stock for one product. The product name is the key:
// it joins against supplier catalogs and order lines by exact match, and a
// mismatched name simply fails to join.
type InventoryItem struct {
	ProductName string    `json:"productName"` // Product name, acts as the row key.
	Quantity    int       `json:"quantity"`    // Units currently in stock.
	Threshold   int       `json:"threshold"`   // Alert threshold; at or below means low stock.
	LastUpdated time.Time `json:"lastUpdated"` // When the row was last written.
}

// LowStock reports whether the current quantity is at or below the alert
// threshold.
func (i *InventoryItem) LowStock() bool {
	return i.Quantity <= i.Threshold
}
