package store

import (
	"time"

	"atelier/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// SeedDocument builds the fixed demo dataset written on first use. The
// relative dates (upcoming appointments, recent orders) hang off the given
// reference time so a fresh install looks alive.
func SeedDocument(now time.Time) *entity.Document {
	day := 24 * time.Hour
	tomorrow := now.Add(day)
	inTwoDays := now.Add(2 * day)

	return &entity.Document{
		Clients: []entity.Client{
			{
				ID:              "1",
				Name:            "Valerie Basso",
				Instagram:       "@valerie_basso",
				Notes:           "Loves the babyboomer look. Allergic to latex.",
				TotalVisits:     8,
				LastVisit:       time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC),
				NextAppointment: &tomorrow,
			},
			{
				ID:          "2",
				Name:        "Julie Dubois",
				Instagram:   "@juliedub",
				Notes:       "Very short, bitten nails.",
				TotalVisits: 2,
				LastVisit:   time.Date(2025, time.May, 20, 0, 0, 0, 0, time.UTC),
			},
			{
				ID:              "3",
				Name:            "Clara Thomas",
				Instagram:       "@clara_nails",
				Notes:           "Likes complex nail art (rhinestones, 3D).",
				TotalVisits:     12,
				LastVisit:       time.Date(2025, time.June, 25, 0, 0, 0, 0, time.UTC),
				NextAppointment: &inTwoDays,
			},
			{
				ID:          "4",
				Name:        "Emma Petit",
				Instagram:   "@emma_p",
				Notes:       "Prefers classic red. Chronically late.",
				TotalVisits: 5,
				LastVisit:   time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
			},
		},
		Transactions: []entity.Transaction{
			{ID: "1", Date: time.Date(2025, time.June, 25, 0, 0, 0, 0, time.UTC), Amount: decimalFromCents(5500), Method: entity.PaymentGiftCard, Category: entity.CategoryService, Description: "Full sculpted set"},
			{ID: "2", Date: time.Date(2025, time.June, 25, 0, 0, 0, 0, time.UTC), Amount: decimalFromCents(4000), Method: entity.PaymentCash, Category: entity.CategoryService, Description: "Gel infill"},
			{ID: "3", Date: time.Date(2025, time.June, 26, 0, 0, 0, 0, time.UTC), Amount: decimalFromCents(35000), Method: entity.PaymentTransfer, Category: entity.CategoryTraining, Description: "Beginner course deposit"},
			{ID: "4", Date: time.Date(2025, time.June, 26, 0, 0, 0, 0, time.UTC), Amount: decimalFromCents(1500), Method: entity.PaymentCard, Category: entity.CategorySale, Description: "Cuticle oil"},
			{ID: "5", Date: time.Date(2025, time.June, 27, 0, 0, 0, 0, time.UTC), Amount: decimalFromCents(6500), Method: entity.PaymentCard, Category: entity.CategoryService, Description: "3D nail art"},
			{ID: "6", Date: time.Date(2025, time.June, 27, 0, 0, 0, 0, time.UTC), Amount: decimalFromCents(5500), Method: entity.PaymentCard, Category: entity.CategoryService, Description: "Full sculpted set"},
			{ID: "7", Date: time.Date(2025, time.June, 28, 0, 0, 0, 0, time.UTC), Amount: decimalFromCents(4500), Method: entity.PaymentCash, Category: entity.CategoryService, Description: "Gel infill"},
			{ID: "8", Date: time.Date(2025, time.June, 28, 0, 0, 0, 0, time.UTC), Amount: decimalFromCents(1500), Method: entity.PaymentCard, Category: entity.CategorySale, Description: "Cuticle oil"},
		},
		Suppliers: []entity.Supplier{
			{
				ID:       "1",
				Name:     "Passione Beauty",
				Email:    "contact@passionebeauty.example",
				Website:  "https://www.passionebeauty.com",
				Products: []string{"Builder Gel Alpha", "Aqua Gloss", "Color Gels SP", "Brushes", "UV Lamps"},
				Notes:    "The European giant. Great value on colors.",
			},
			{
				ID:       "2",
				Name:     "OA Nail System",
				Email:    "info@oanails.example",
				Website:  "https://www.oanails.example",
				Products: []string{"Structura", "Fiber Gels", "Wonderlack", "Nail Forms"},
				Notes:    "Technical brand. Their builder gels are rock solid.",
			},
			{
				ID:       "3",
				Name:     "Purple Professional",
				Email:    "sales@purpleprofessional.example",
				Website:  "https://purpleprofessional.example",
				Products: []string{"Rubber Base", "Top Coat Milky", "Cleaner Berry", "Low Heat Gel"},
				Notes:    "Their top coat is incredible, never scratches.",
			},
			{
				ID:       "4",
				Name:     "Nails24",
				Email:    "service@nails24.example",
				Website:  "https://www.nails24.example",
				Products: []string{"Files 100/180", "Buffer Blocks", "Cellulose Wipes", "Acetone"},
				Notes:    "Best for consumables and cheap basics.",
			},
			{
				ID:       "5",
				Name:     "Studio Supplies Direct",
				Email:    "",
				Website:  "https://supplies.example",
				Products: []string{"Black Masks", "Paper Towels", "Gloves S", "Bin Liners"},
				Notes:    "Hygiene and disposables, fast delivery.",
			},
		},
		GiftCards: []entity.GiftCard{},
		Orders: []entity.Order{
			{
				ID:           "1",
				SupplierID:   "4",
				SupplierName: "Nails24",
				Date:         now.Add(-5 * day),
				Status:       entity.OrderDelivered,
				Items:        []entity.OrderItem{{Name: "Monophase Gel", Quantity: 2}, {Name: "Cleaner", Quantity: 1}},
				TotalAmount:  decimalPtr(decimalFromCents(4550)),
			},
			{
				ID:           "2",
				SupplierID:   "5",
				SupplierName: "Studio Supplies Direct",
				Date:         now.Add(-day),
				Status:       entity.OrderPending,
				Items:        []entity.OrderItem{{Name: "Nitrile gloves S", Quantity: 5}},
				TotalAmount:  decimalPtr(decimalFromCents(3200)),
			},
		},
		TaxDeclarations: []entity.TaxDeclaration{
			{
				ID:      "1",
				Type:    entity.TaxSocialContribution,
				Period:  "May 2025",
				Amount:  decimalFromCents(45250),
				Date:    time.Date(2025, time.June, 5, 0, 0, 0, 0, time.UTC),
				Status:  entity.TaxPaid,
				Details: "Service revenue: 2100, sales revenue: 80",
			},
			{
				ID:      "2",
				Type:    entity.TaxSocialContribution,
				Period:  "April 2025",
				Amount:  decimalFromCents(38020),
				Date:    time.Date(2025, time.May, 5, 0, 0, 0, 0, time.UTC),
				Status:  entity.TaxPaid,
				Details: "Service revenue: 1800",
			},
			{
				ID:      "3",
				Type:    entity.TaxLocalBusiness,
				Period:  "2025",
				Amount:  decimalFromCents(18000),
				Date:    time.Date(2025, time.December, 15, 0, 0, 0, 0, time.UTC),
				Status:  entity.TaxPendingPayment,
				Details: "Local business tax estimate",
			},
		},
		Inventory: []entity.InventoryItem{
			{ProductName: "UV Builder Gel", Quantity: 3, Threshold: 2, LastUpdated: now},
			{ProductName: "Files 100/180", Quantity: 15, Threshold: 10, LastUpdated: now},
			{ProductName: "Cleaner", Quantity: 1, Threshold: 2, LastUpdated: now},
			{ProductName: "Nitrile gloves S", Quantity: 0, Threshold: 1, LastUpdated: now},
		},
		CoachingRequests: []entity.CoachingRequest{},
		CollabRequests:   []entity.CollabRequest{},
	}
}

// decimalFromCents keeps seed amounts exact without string parsing at every
// call site.
func decimalFromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

func decimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}
