package usecase

import (
	"context"
	"time"

	"atelier/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// --- Input DTOs ---

// TransactionInput defines the data required to record a ledger entry.
type TransactionInput struct {
	Date        time.Time
	Amount      decimal.Decimal
	Method      entity.PaymentMethod
	Category    entity.TransactionCategory
	Description string
}

// DeclarationInput defines the data required to record a tax declaration.
type DeclarationInput struct {
	Type    entity.TaxType
	Period  string
	Amount  decimal.Decimal
	Date    time.Time
	Status  entity.TaxStatus
	Details string
}

// --- Output DTOs ---

// ContributionEstimate is the computed social-contribution breakdown for one
// month, shown to the operator before she confirms the declaration.
type ContributionEstimate struct {
	Period              string
	ServiceRevenue      decimal.Decimal
	SalesRevenue        decimal.Decimal
	ServiceContribution decimal.Decimal
	SalesContribution   decimal.Decimal
	Total               decimal.Decimal
}

// LedgerSummary aggregates the whole ledger into dashboard totals.
type LedgerSummary struct {
	TotalSales     decimal.Decimal
	TotalPurchases decimal.Decimal
	TotalSocial    decimal.Decimal
	TotalFiscal    decimal.Decimal
	NetResult      decimal.Decimal
}

// MonthlyRevenue is one bar of the per-year revenue chart.
type MonthlyRevenue struct {
	Month   time.Month
	Revenue decimal.Decimal
}

// LedgerUsecase defines the interface for bookkeeping operations.
type LedgerUsecase interface {
	ListTransactions(ctx context.Context) ([]entity.Transaction, error)
	CreateTransaction(ctx context.Context, input TransactionInput) (*entity.Transaction, error)
	UpdateTransaction(ctx context.Context, id string, input TransactionInput) (*entity.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error

	// Summary aggregates sales, purchases and declarations into one view.
	Summary(ctx context.Context) (*LedgerSummary, error)

	// MonthlyRevenueSeries returns twelve revenue totals for the given year.
	MonthlyRevenueSeries(ctx context.Context, year int) ([]MonthlyRevenue, error)

	// EstimateSocialContribution computes the contribution due on the revenue
	// of the month containing the given time.
	EstimateSocialContribution(ctx context.Context, at time.Time) (*ContributionEstimate, error)

	// DeclareSocialContribution turns the current estimate into a paid
	// declaration with a details line describing the revenue split.
	DeclareSocialContribution(ctx context.Context, at time.Time) (*entity.TaxDeclaration, error)

	ListDeclarations(ctx context.Context) ([]entity.TaxDeclaration, error)
	CreateDeclaration(ctx context.Context, input DeclarationInput) (*entity.TaxDeclaration, error)
	UpdateDeclaration(ctx context.Context, id string, input DeclarationInput) (*entity.TaxDeclaration, error)
	DeleteDeclaration(ctx context.Context, id string) error

	// ExportSalesJournalCSV renders the sales ledger as a semicolon-separated
	// journal for the accountant.
	ExportSalesJournalCSV(ctx context.Context) ([]byte, error)

	// ExportTaxJournalCSV renders the declaration journal the same way.
	ExportTaxJournalCSV(ctx context.Context) ([]byte, error)

	// AnalyzeRevenue produces a short AI-written observation on the ledger.
	AnalyzeRevenue(ctx context.Context) (string, error)
}
