// Package entity contains the core business objects of the project.
package entity

// Document is the aggregate holding every business collection. It is the
// sole unit of persistence: the store reads and rewrites it wholesale on
// every mutation. Insertion order is preserved but carries no meaning;
// callers sort for display.
type Document struct {
	Clients          []Client          `json:"clients"`
	Transactions     []Transaction     `json:"transactions"`
	Suppliers        []Supplier        `json:"suppliers"`
	GiftCards        []GiftCard        `json:"giftCards"`
	Orders           []Order           `json:"orders"`
	TaxDeclarations  []TaxDeclaration  `json:"taxDeclarations"`
	Inventory        []InventoryItem   `json:"inventory"`
	CoachingRequests []CoachingRequest `json:"coachingRequests"`
	CollabRequests   []CollabRequest   `json:"collabRequests"`
}

// FindGiftCardByCode returns the gift card carrying the given code, or nil.
func (d *Document) FindGiftCardByCode(code string) *GiftCard {
	for i := range d.GiftCards {
		if d.GiftCards[i].Code == code {
			return &d.GiftCards[i]
		}
	}

	return nil
}

// HasGiftCardCode reports whether any issued card already carries the code.
func (d *Document) HasGiftCardCode(code string) bool {
	return d.FindGiftCardByCode(code) != nil
}
