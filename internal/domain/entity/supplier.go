// Package entity contains the core business objects of the project.
package entity

// Supplier represents a product supplier and its catalog. The product names
// listed here are the join key used by orders and inventory rows.
type Supplier struct {
	ID       string   `json:"id"`              // Caller-generated identifier, unique within the collection.
	Name     string   `json:"name"`            // Supplier display name.
	Website  string   `json:"website"`         // Supplier website URL.
	Email    string   `json:"email,omitempty"` // Optional ordering contact email.
	Products []string `json:"products"`        // Free-text product names forming the order catalog.
	Notes    string   `json:"notes"`           // Free-text notes about the supplier.
}
