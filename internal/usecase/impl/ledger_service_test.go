package impl

import (
	"context"
	"strings"
	"testing"
	"time"

	"atelier/internal/domain/entity"
	domainerrors "atelier/internal/domain/errors"
	"atelier/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLedgerService(t *testing.T) usecase.LedgerUsecase {
	t.Helper()

	return NewLedgerService(LedgerServiceParams{
		Store:     newTestStore(t),
		Messenger: stubMessenger{},
		Config:    defaultConfig(),
		Logger:    testLogger(),
	})
}

func recordRevenue(t *testing.T, svc usecase.LedgerUsecase, date time.Time, amount string, category entity.TransactionCategory) {
	t.Helper()

	_, err := svc.CreateTransaction(context.Background(), usecase.TransactionInput{
		Date:     date,
		Amount:   decimal.RequireFromString(amount),
		Method:   entity.PaymentCard,
		Category: category,
	})
	require.NoError(t, err)
}

func TestLedgerService_EstimateSocialContribution(t *testing.T) {
	svc := newLedgerService(t)

	// An otherwise quiet month: 1000 of services, 500 of product sales.
	month := mustDate(t, 2030, time.March, 10)
	recordRevenue(t, svc, month, "600.00", entity.CategoryService)
	recordRevenue(t, svc, month.AddDate(0, 0, 5), "400.00", entity.CategoryTraining)
	recordRevenue(t, svc, month.AddDate(0, 0, 7), "500.00", entity.CategorySale)

	// Revenue from other months must not leak into the estimate.
	recordRevenue(t, svc, mustDate(t, 2030, time.February, 28), "999.00", entity.CategoryService)

	estimate, err := svc.EstimateSocialContribution(context.Background(), month)
	require.NoError(t, err)

	assert.Equal(t, "March 2030", estimate.Period)
	assert.True(t, estimate.ServiceRevenue.Equal(decimal.NewFromInt(1000)), "service revenue %s", estimate.ServiceRevenue)
	assert.True(t, estimate.SalesRevenue.Equal(decimal.NewFromInt(500)), "sales revenue %s", estimate.SalesRevenue)
	assert.True(t, estimate.ServiceContribution.Equal(decimal.NewFromInt(220)), "service contribution %s", estimate.ServiceContribution)
	assert.True(t, estimate.SalesContribution.Equal(decimal.NewFromInt(62)), "sales contribution %s", estimate.SalesContribution)
	assert.True(t, estimate.Total.Equal(decimal.NewFromInt(282)), "total %s", estimate.Total)
}

func TestLedgerService_DeclareSocialContribution(t *testing.T) {
	svc := newLedgerService(t)
	ctx := context.Background()

	month := mustDate(t, 2030, time.March, 10)
	recordRevenue(t, svc, month, "1000.00", entity.CategoryService)
	recordRevenue(t, svc, month, "500.00", entity.CategorySale)

	before, err := svc.ListDeclarations(ctx)
	require.NoError(t, err)

	decl, err := svc.DeclareSocialContribution(ctx, month)
	require.NoError(t, err)
	assert.Equal(t, entity.TaxSocialContribution, decl.Type)
	assert.Equal(t, "March 2030", decl.Period)
	assert.Equal(t, entity.TaxPaid, decl.Status)
	assert.True(t, decl.Amount.Equal(decimal.NewFromInt(282)), "amount %s", decl.Amount)
	assert.Contains(t, decl.Details, "1000.00")
	assert.Contains(t, decl.Details, "500.00")

	after, err := svc.ListDeclarations(ctx)
	require.NoError(t, err)
	assert.Len(t, after, len(before)+1)
}

func TestLedgerService_Summary(t *testing.T) {
	svc := newLedgerService(t)

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)

	// Seeded books: every total is positive and the net result is what is
	// left of sales after purchases and taxes.
	assert.True(t, summary.TotalSales.IsPositive())
	assert.True(t, summary.TotalPurchases.IsPositive())
	assert.True(t, summary.TotalSocial.IsPositive())
	assert.True(t, summary.TotalFiscal.IsPositive())

	want := summary.TotalSales.
		Sub(summary.TotalPurchases).
		Sub(summary.TotalSocial).
		Sub(summary.TotalFiscal)
	assert.True(t, summary.NetResult.Equal(want))
}

func TestLedgerService_MonthlyRevenueSeries(t *testing.T) {
	svc := newLedgerService(t)

	recordRevenue(t, svc, mustDate(t, 2030, time.January, 5), "100.00", entity.CategoryService)
	recordRevenue(t, svc, mustDate(t, 2030, time.January, 20), "50.00", entity.CategorySale)
	recordRevenue(t, svc, mustDate(t, 2030, time.November, 2), "75.00", entity.CategoryService)

	series, err := svc.MonthlyRevenueSeries(context.Background(), 2030)
	require.NoError(t, err)
	require.Len(t, series, 12)

	assert.Equal(t, time.January, series[0].Month)
	assert.True(t, series[0].Revenue.Equal(decimal.NewFromInt(150)), "january %s", series[0].Revenue)
	assert.True(t, series[10].Revenue.Equal(decimal.NewFromInt(75)), "november %s", series[10].Revenue)
	assert.True(t, series[5].Revenue.IsZero())
}

func TestLedgerService_TransactionCRUD(t *testing.T) {
	svc := newLedgerService(t)
	ctx := context.Background()

	created, err := svc.CreateTransaction(ctx, usecase.TransactionInput{
		Amount:      decimal.RequireFromString("45.00"),
		Method:      entity.PaymentCash,
		Category:    entity.CategoryService,
		Description: "Gel infill",
	})
	require.NoError(t, err)
	assert.False(t, created.Date.IsZero(), "zero date defaults to now")

	updated, err := svc.UpdateTransaction(ctx, created.ID, usecase.TransactionInput{
		Date:        created.Date,
		Amount:      decimal.RequireFromString("50.00"),
		Method:      entity.PaymentCard,
		Category:    entity.CategoryService,
		Description: "Gel infill + repair",
	})
	require.NoError(t, err)
	assert.True(t, updated.Amount.Equal(decimal.RequireFromString("50.00")))

	_, err = svc.UpdateTransaction(ctx, "missing", usecase.TransactionInput{Amount: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	require.NoError(t, svc.DeleteTransaction(ctx, created.ID))
}

func TestLedgerService_DeclarationCRUD(t *testing.T) {
	svc := newLedgerService(t)
	ctx := context.Background()

	created, err := svc.CreateDeclaration(ctx, usecase.DeclarationInput{
		Type:   entity.TaxLocalBusiness,
		Period: "2030",
		Amount: decimal.RequireFromString("180.00"),
		Status: entity.TaxPendingPayment,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateDeclaration(ctx, created.ID, usecase.DeclarationInput{
		Type:   entity.TaxLocalBusiness,
		Period: "2030",
		Amount: created.Amount,
		Date:   created.Date,
		Status: entity.TaxPaid,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.TaxPaid, updated.Status)

	_, err = svc.UpdateDeclaration(ctx, "missing", usecase.DeclarationInput{})
	assert.ErrorIs(t, err, domainerrors.ErrDeclarationNotFound)

	require.NoError(t, svc.DeleteDeclaration(ctx, created.ID))
}

func TestLedgerService_ExportSalesJournalCSV(t *testing.T) {
	svc := newLedgerService(t)

	recordRevenue(t, svc, mustDate(t, 2030, time.March, 10), "55.50", entity.CategoryService)

	raw, err := svc.ExportSalesJournalCSV(context.Background())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	assert.Equal(t, "Date;Description;Category;Method;Amount", lines[0])
	assert.Contains(t, string(raw), "2030-03-10")
	assert.Contains(t, string(raw), "55.50")
}

func TestLedgerService_ExportTaxJournalCSV(t *testing.T) {
	svc := newLedgerService(t)

	raw, err := svc.ExportTaxJournalCSV(context.Background())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	assert.Equal(t, "Date;Type;Period;Status;Amount;Details", lines[0])
	assert.Greater(t, len(lines), 1, "seeded declarations exported")
	assert.Contains(t, string(raw), "social_contribution")
}

func TestLedgerService_AnalyzeRevenue(t *testing.T) {
	svc := newLedgerService(t)

	text, err := svc.AnalyzeRevenue(context.Background())
	require.NoError(t, err)
	assert.Contains(t, text, "ledger entries analyzed")
}
