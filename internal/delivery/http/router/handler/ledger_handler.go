package handler

import (
	"net/http"
	"strconv"
	"time"

	"atelier/internal/delivery/http/response"
	"atelier/internal/domain/entity"
	"atelier/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// LedgerHandler holds dependencies for bookkeeping handlers.
type LedgerHandler struct {
	uc usecase.LedgerUsecase
}

// NewLedgerHandler is the constructor for LedgerHandler, injected by Fx.
func NewLedgerHandler(uc usecase.LedgerUsecase) *LedgerHandler {
	return &LedgerHandler{uc: uc}
}

type transactionRequest struct {
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	Method      string          `json:"method" validate:"required"`
	Category    string          `json:"category" validate:"required"`
	Description string          `json:"description"`
}

type declarationRequest struct {
	Type    string          `json:"type" validate:"required"`
	Period  string          `json:"period" validate:"required"`
	Amount  decimal.Decimal `json:"amount" validate:"required"`
	Date    time.Time       `json:"date"`
	Status  string          `json:"status" validate:"required"`
	Details string          `json:"details"`
}

func (r transactionRequest) toInput(c echo.Context) (usecase.TransactionInput, error) {
	method := entity.PaymentMethod(r.Method)
	if !method.IsValid() {
		return usecase.TransactionInput{}, response.BadRequest(c, "INVALID_INPUT", "Unknown payment method "+r.Method)
	}
	category := entity.TransactionCategory(r.Category)
	if !category.IsValid() {
		return usecase.TransactionInput{}, response.BadRequest(c, "INVALID_INPUT", "Unknown category "+r.Category)
	}

	return usecase.TransactionInput{
		Date:        r.Date,
		Amount:      r.Amount,
		Method:      method,
		Category:    category,
		Description: r.Description,
	}, nil
}

func (r declarationRequest) toInput(c echo.Context) (usecase.DeclarationInput, error) {
	taxType := entity.TaxType(r.Type)
	if !taxType.IsValid() {
		return usecase.DeclarationInput{}, response.BadRequest(c, "INVALID_INPUT", "Unknown declaration type "+r.Type)
	}
	status := entity.TaxStatus(r.Status)
	if !status.IsValid() {
		return usecase.DeclarationInput{}, response.BadRequest(c, "INVALID_INPUT", "Unknown declaration status "+r.Status)
	}

	return usecase.DeclarationInput{
		Type:    taxType,
		Period:  r.Period,
		Amount:  r.Amount,
		Date:    r.Date,
		Status:  status,
		Details: r.Details,
	}, nil
}

// ListTransactions returns the whole sales ledger.
func (h *LedgerHandler) ListTransactions(c echo.Context) error {
	transactions, err := h.uc.ListTransactions(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, transactions, "")
}

// CreateTransaction records a ledger entry.
func (h *LedgerHandler) CreateTransaction(c echo.Context) error {
	var req transactionRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid transaction input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	input, err := req.toInput(c)
	if err != nil {
		return err
	}

	txn, err := h.uc.CreateTransaction(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, txn, "Transaction recorded")
}

// UpdateTransaction rewrites a ledger entry.
func (h *LedgerHandler) UpdateTransaction(c echo.Context) error {
	var req transactionRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid transaction input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	input, err := req.toInput(c)
	if err != nil {
		return err
	}

	txn, err := h.uc.UpdateTransaction(c.Request().Context(), c.Param("id"), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, txn, "Transaction updated")
}

// DeleteTransaction removes a ledger entry.
func (h *LedgerHandler) DeleteTransaction(c echo.Context) error {
	if err := h.uc.DeleteTransaction(c.Request().Context(), c.Param("id")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Transaction deleted")
}

// Summary returns the dashboard totals.
func (h *LedgerHandler) Summary(c echo.Context) error {
	summary, err := h.uc.Summary(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, summary, "")
}

// MonthlyRevenue returns the twelve-month revenue series for a year.
func (h *LedgerHandler) MonthlyRevenue(c echo.Context) error {
	year, err := strconv.Atoi(c.QueryParam("year"))
	if err != nil {
		year = time.Now().UTC().Year()
	}

	series, err := h.uc.MonthlyRevenueSeries(c.Request().Context(), year)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, series, "")
}

// EstimateContribution computes the current month's social contribution.
func (h *LedgerHandler) EstimateContribution(c echo.Context) error {
	estimate, err := h.uc.EstimateSocialContribution(c.Request().Context(), time.Now().UTC())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, estimate, "")
}

// DeclareContribution confirms the current estimate as a paid declaration.
func (h *LedgerHandler) DeclareContribution(c echo.Context) error {
	decl, err := h.uc.DeclareSocialContribution(c.Request().Context(), time.Now().UTC())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, decl, "Contribution declared")
}

// ListDeclarations returns the declaration journal.
func (h *LedgerHandler) ListDeclarations(c echo.Context) error {
	declarations, err := h.uc.ListDeclarations(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, declarations, "")
}

// CreateDeclaration records a manual declaration.
func (h *LedgerHandler) CreateDeclaration(c echo.Context) error {
	var req declarationRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid declaration input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	input, err := req.toInput(c)
	if err != nil {
		return err
	}

	decl, err := h.uc.CreateDeclaration(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, decl, "Declaration recorded")
}

// UpdateDeclaration rewrites a declaration.
func (h *LedgerHandler) UpdateDeclaration(c echo.Context) error {
	var req declarationRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid declaration input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	input, err := req.toInput(c)
	if err != nil {
		return err
	}

	decl, err := h.uc.UpdateDeclaration(c.Request().Context(), c.Param("id"), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, decl, "Declaration updated")
}

// DeleteDeclaration removes a declaration.
func (h *LedgerHandler) DeleteDeclaration(c echo.Context) error {
	if err := h.uc.DeleteDeclaration(c.Request().Context(), c.Param("id")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Declaration deleted")
}

// ExportSalesJournal streams the sales journal as CSV.
func (h *LedgerHandler) ExportSalesJournal(c echo.Context) error {
	raw, err := h.uc.ExportSalesJournalCSV(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="sales-journal.csv"`)

	return c.Blob(http.StatusOK, "text/csv", raw)
}

// ExportTaxJournal streams the declaration journal as CSV.
func (h *LedgerHandler) ExportTaxJournal(c echo.Context) error {
	raw, err := h.uc.ExportTaxJournalCSV(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="tax-journal.csv"`)

	return c.Blob(http.StatusOK, "text/csv", raw)
}

// AnalyzeRevenue returns an AI-written observation on the ledger.
func (h *LedgerHandler) AnalyzeRevenue(c echo.Context) error {
	text, err := h.uc.AnalyzeRevenue(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"analysis": text}, "")
}
