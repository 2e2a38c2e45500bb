package impl

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"time"

	"atelier/config"
	deliverycontext "atelier/internal/delivery/context"
	"atelier/internal/domain/entity"
	domainerrors "atelier/internal/domain/errors"
	"atelier/internal/domain/repository"
	"atelier/internal/domain/service"
	"atelier/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// ledgerService implements the LedgerUsecase interface.
type ledgerService struct {
	store       repository.DocumentStore
	messenger   service.Messenger
	serviceRate decimal.Decimal
	salesRate   decimal.Decimal
	logger      *slog.Logger
	clock       func() time.Time
}

// LedgerServiceParams holds dependencies for LedgerService, injected by Fx.
type LedgerServiceParams struct {
	fx.In

	Store     repository.DocumentStore
	Messenger service.Messenger
	Config    *config.Config
	Logger    *slog.Logger
}

// NewLedgerService is the constructor for ledgerService.
func NewLedgerService(params LedgerServiceParams) usecase.LedgerUsecase {
	serviceRate := 0.22
	salesRate := 0.124
	if params.Config != nil {
		if params.Config.Tax.ServiceRate > 0 {
			serviceRate = params.Config.Tax.ServiceRate
		}
		if params.Config.Tax.SalesRate > 0 {
			salesRate = params.Config.Tax.SalesRate
		}
	}

	return &ledgerService{
		store:       params.Store,
		messenger:   params.Messenger,
		serviceRate: decimal.NewFromFloat(serviceRate),
		salesRate:   decimal.NewFromFloat(salesRate),
		logger:      params.Logger,
		clock:       func() time.Time { return time.Now().UTC() },
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *ledgerService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *ledgerService) ListTransactions(ctx context.Context) ([]entity.Transaction, error) {
	doc, err := srv.store.Load(ctx)
	if err != nil {
		return nil, domainerrors.NewStoreExecuteError(err, "list transactions")
	}

	return doc.Transactions, nil
}

func (srv *ledgerService) CreateTransaction(ctx context.Context, input usecase.TransactionInput) (*entity.Transaction, error) {
	txn := entity.Transaction{
		ID:          uuid.NewString(),
		Date:        input.Date,
		Amount:      input.Amount,
		Method:      input.Method,
		Category:    input.Category,
		Description: input.Description,
	}
	if txn.Date.IsZero() {
		txn.Date = srv.clock()
	}

	if _, err := srv.store.AddTransaction(ctx, txn); err != nil {
		return nil, domainerrors.NewStoreExecuteError(err, "create transaction")
	}
	srv.log(ctx).Info("transaction recorded",
		slog.String("id", txn.ID),
		slog.String("amount", txn.Amount.StringFixed(2)),
		slog.String("category", txn.Category.String()))

	return &txn, nil
}

func (srv *ledgerService) UpdateTransaction(ctx context.Context, id string, input usecase.TransactionInput) (*entity.Transaction, error) {
	doc, err := srv.store.Load(ctx)
	if err != nil {
		return nil, domainerrors.NewStoreExecuteError(err, "update transaction")
	}
	if !hasTransaction(doc, id) {
		return nil, domainerrors.ErrNotFound.WrapMessage("transaction " + id)
	}

	txn := entity.Transaction{
		ID:          id,
		Date:        input.Date,
		Amount:      input.Amount,
		Method:      input.Method,
		Category:    input.Category,
		Description: input.Description,
	}

	if _, err := srv.store.UpdateTransaction(ctx, txn); err != nil {
		return nil, domainerrors.NewStoreExecuteError(err, "update transaction")
	}

	return &txn, nil
}

func (srv *ledgerService) DeleteTransaction(ctx context.Context, id string) error {
	if _, err := srv.store.DeleteTransaction(ctx, id); err != nil {
		return domainerrors.NewStoreExecuteError(err, "delete transaction")
	}

	return nil
}

// Summary aggregates sales, purchase orders and tax declarations into the
// dashboard totals. Purchases only count orders carrying a total amount.
func (srv *ledgerService) Summary(ctx context.Context) (*usecase.LedgerSummary, error) {
	doc, err := srv.store.Load(ctx)
	if err != nil {
		return nil, domainerrors.NewStoreExecuteError(err, "ledger summary")
	}

	summary := &usecase.LedgerSummary{
		TotalSales:     decimal.Zero,
		TotalPurchases: decimal.Zero,
		TotalSocial:    decimal.Zero,
		TotalFiscal:    decimal.Zero,
	}

	for _, txn := range doc.Transactions {
		summary.TotalSales = summary.TotalSales.Add(txn.Amount)
	}
	for _, order := range doc.Orders {
		if order.TotalAmount != nil {
			summary.TotalPurchases = summary.TotalPurchases.Add(*order.TotalAmount)
		}
	}
	for _, decl := range doc.TaxDeclarations {
		switch decl.Type {
		case entity.TaxSocialContribution:
			summary.TotalSocial = summary.TotalSocial.Add(decl.Amount)
		case entity.TaxLocalBusiness:
			summary.TotalFiscal = summary.TotalFiscal.Add(decl.Amount)
		}
	}
	summary.NetResult = summary.TotalSales.
		Sub(summary.TotalPurchases).
		Sub(summary.TotalSocial).
		Sub(summary.TotalFiscal)

	return summary, nil
}

// MonthlyRevenueSeries returns one revenue total per month of the given year.
func (srv *ledgerService) MonthlyRevenueSeries(ctx context.Context, year int) ([]usecase.MonthlyRevenue, error) {
	doc, err := srv.store.Load(ctx)
	if err != nil {
		return nil, domainerrors.NewStoreExecuteError(err, "monthly revenue")
	}

	series := make([]usecase.MonthlyRevenue, 12)
	for i := range series {
		series[i] = usecase.MonthlyRevenue{Month: time.Month(i + 1), Revenue: decimal.Zero}
	}
	for _, txn := range doc.Transactions {
		date := txn.Date.UTC()
		if date.Year() != year {
			continue
		}
		idx := int(date.Month()) - 1
		series[idx].Revenue = series[idx].Revenue.Add(txn.Amount)
	}

	return series, nil
}

// EstimateSocialContribution computes the contribution due on the revenue of
// the month containing at: service and training revenue at the service rate,
// product sales at the sales rate.
func (srv *ledgerService) EstimateSocialContribution(ctx context.Context, at time.Time) (*usecase.ContributionEstimate, error) {
	doc, err := srv.store.Load(ctx)
	if err != nil {
		return nil, domainerrors.NewStoreExecuteError(err, "estimate contribution")
	}

	at = at.UTC()
	serviceRevenue := decimal.Zero
	salesRevenue := decimal.Zero
	for _, txn := range doc.Transactions {
		date := txn.Date.UTC()
		if date.Year() != at.Year() || date.Month() != at.Month() {
			continue
		}
		switch txn.Category {
		case entity.CategoryService, entity.CategoryTraining:
			serviceRevenue = serviceRevenue.Add(txn.Amount)
		case entity.CategorySale:
			salesRevenue = salesRevenue.Add(txn.Amount)
		}
	}

	serviceContribution := serviceRevenue.Mul(srv.serviceRate).Round(2)
	salesContribution := salesRevenue.Mul(srv.salesRate).Round(2)

	return &usecase.ContributionEstimate{
		Period:              at.Format("January 2006"),
		ServiceRevenue:      serviceRevenue,
		SalesRevenue:        salesRevenue,
		ServiceContribution: serviceContribution,
		SalesContribution:   salesContribution,
		Total:               serviceContribution.Add(salesContribution),
	}, nil
}

// DeclareSocialContribution confirms the current estimate as a paid
// declaration carrying the revenue split in its details line.
func (srv *ledgerService) DeclareSocialContribution(ctx context.Context, at time.Time) (*entity.TaxDeclaration, error) {
	estimate, err := srv.EstimateSocialContribution(ctx, at)
	if err != nil {
		return nil, err
	}

	decl := entity.TaxDeclaration{
		ID:     uuid.NewString(),
		Type:   entity.TaxSocialContribution,
		Period: estimate.Period,
		Amount: estimate.Total,
		Date:   srv.clock(),
		Status: entity.TaxPaid,
		Details: fmt.Sprintf("Service revenue: %s, sales revenue: %s",
			estimate.ServiceRevenue.StringFixed(2), estimate.SalesRevenue.StringFixed(2)),
	}

	if _, err := srv.store.AddTaxDeclaration(ctx, decl); err != nil {
		return nil, domainerrors.NewStoreExecuteError(err, "declare contribution")
	}
	srv.log(ctx).Info("social contribution declared",
		slog.String("period", decl.Period),
		slog.String("amount", decl.Amount.StringFixed(2)))

	return &decl, nil
}

func (srv *ledgerService) ListDeclarations(ctx context.Context) ([]entity.TaxDeclaration, error) {
	doc, err := srv.store.Load(ctx)
	if err != nil {
		return nil, domainerrors.NewStoreExecuteError(err, "list declarations")
	}

	return doc.TaxDeclarations, nil
}

func (srv *ledgerService) CreateDeclaration(ctx context.Context, input usecase.DeclarationInput) (*entity.TaxDeclaration, error) {
	decl := entity.TaxDeclaration{
		ID:      uuid.NewString(),
		Type:    input.Type,
		Period:  input.Period,
		Amount:  input.Amount,
		Date:    input.Date,
		Status:  input.Status,
		Details: input.Details,
	}
	if decl.Date.IsZero() {
		decl.Date = srv.clock()
	}

	if _, err := srv.store.AddTaxDeclaration(ctx, decl); err != nil {
		return nil, domainerrors.NewStoreExecuteError(err, "create declaration")
	}

	return &decl, nil
}

func (srv *ledgerService) UpdateDeclaration(ctx context.Context, id string, input usecase.DeclarationInput) (*entity.TaxDeclaration, error) {
	doc, err := srv.store.Load(ctx)
	if err != nil {
		return nil, domainerrors.NewStoreExecuteError(err, "update declaration")
	}
	if !hasDeclaration(doc, id) {
		return nil, domainerrors.ErrDeclarationNotFound
	}

	decl := entity.TaxDeclaration{
		ID:      id,
		Type:    input.Type,
		Period:  input.Period,
		Amount:  input.Amount,
		Date:    input.Date,
		Status:  input.Status,
		Details: input.Details,
	}

	if _, err := srv.store.UpdateTaxDeclaration(ctx, decl); err != nil {
		return nil, domainerrors.NewStoreExecuteError(err, "update declaration")
	}

	return &decl, nil
}

func (srv *ledgerService) DeleteDeclaration(ctx context.Context, id string) error {
	if _, err := srv.store.DeleteTaxDeclaration(ctx, id); err != nil {
		return domainerrors.NewStoreExecuteError(err, "delete declaration")
	}

	return nil
}

// ExportSalesJournalCSV renders the sales ledger as a semicolon-separated
// journal, one row per transaction.
func (srv *ledgerService) ExportSalesJournalCSV(ctx context.Context) ([]byte, error) {
	doc, err := srv.store.Load(ctx)
	if err != nil {
		return nil, domainerrors.NewStoreExecuteError(err, "export sales journal")
	}

	records := [][]string{{"Date", "Description", "Category", "Method", "Amount"}}
	for _, txn := range doc.Transactions {
		records = append(records, []string{
			txn.Date.UTC().Format("2006-01-02"),
			txn.Description,
			txn.Category.String(),
			txn.Method.String(),
			txn.Amount.StringFixed(2),
		})
	}

	return writeCSV(records)
}

// ExportTaxJournalCSV renders the declaration journal the same way.
func (srv *ledgerService) ExportTaxJournalCSV(ctx context.Context) ([]byte, error) {
	doc, err := srv.store.Load(ctx)
	if err != nil {
		return nil, domainerrors.NewStoreExecuteError(err, "export tax journal")
	}

	records := [][]string{{"Date", "Type", "Period", "Status", "Amount", "Details"}}
	for _, decl := range doc.TaxDeclarations {
		records = append(records, []string{
			decl.Date.UTC().Format("2006-01-02"),
			decl.Type.String(),
			decl.Period,
			decl.Status.String(),
			decl.Amount.StringFixed(2),
			decl.Details,
		})
	}

	return writeCSV(records)
}

func (srv *ledgerService) AnalyzeRevenue(ctx context.Context) (string, error) {
	doc, err := srv.store.Load(ctx)
	if err != nil {
		return "", domainerrors.NewStoreExecuteError(err, "analyze revenue")
	}

	return srv.messenger.AnalyzeRevenue(ctx, doc.Transactions)
}

// writeCSV renders records with the semicolon separator the accountant's
// spreadsheet import expects.
func writeCSV(records [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = ';'

	if err := w.WriteAll(records); err != nil {
		return nil, errors.Wrap(err, "write csv")
	}

	return buf.Bytes(), nil
}

func hasTransaction(doc *entity.Document, id string) bool {
	for i := range doc.Transactions {
		if doc.Transactions[i].ID == id {
			return true
		}
	}

	return false
}

func hasDeclaration(doc *entity.Document, id string) bool {
	for i := range doc.TaxDeclarations {
		if doc.TaxDeclarations[i].ID == id {
			return true
		}
	}

	return false
}
