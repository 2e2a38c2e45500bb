package handler

import (
	"net/http"

	"atelier/internal/delivery/http/response"
	"atelier/internal/domain/entity"
	"atelier/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// SupplierHandler holds dependencies for supplier, order and inventory handlers.
type SupplierHandler struct {
	uc usecase.SupplierUsecase
}

// NewSupplierHandler is the constructor for SupplierHandler, injected by Fx.
func NewSupplierHandler(uc usecase.SupplierUsecase) *SupplierHandler {
	return &SupplierHandler{uc: uc}
}

type supplierRequest struct {
	Name     string   `json:"name" validate:"required"`
	Website  string   `json:"website"`
	Email    string   `json:"email"`
	Products []string `json:"products"`
	Notes    string   `json:"notes"`
}

type orderRequest struct {
	SupplierID  string             `json:"supplierId" validate:"required"`
	Items       []entity.OrderItem `json:"items" validate:"required,dive"`
	TotalAmount *decimal.Decimal   `json:"totalAmount"`
}

type inventoryRequest struct {
	ProductName string `json:"productName" validate:"required"`
	Quantity    int    `json:"quantity" validate:"min=0"`
	Threshold   int    `json:"threshold" validate:"min=0"`
}

func (r supplierRequest) toInput() usecase.SupplierInput {
	return usecase.SupplierInput{
		Name:     r.Name,
		Website:  r.Website,
		Email:    r.Email,
		Products: r.Products,
		Notes:    r.Notes,
	}
}

// List returns every supplier.
func (h *SupplierHandler) List(c echo.Context) error {
	suppliers, err := h.uc.ListSuppliers(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, suppliers, "")
}

// Create registers a new supplier.
func (h *SupplierHandler) Create(c echo.Context) error {
	var req supplierRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid supplier input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	supplier, err := h.uc.CreateSupplier(c.Request().Context(), req.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, supplier, "Supplier created")
}

// Update rewrites a supplier.
func (h *SupplierHandler) Update(c echo.Context) error {
	var req supplierRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid supplier input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	supplier, err := h.uc.UpdateSupplier(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, supplier, "Supplier updated")
}

// Delete removes a supplier.
func (h *SupplierHandler) Delete(c echo.Context) error {
	if err := h.uc.DeleteSupplier(c.Request().Context(), c.Param("id")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Supplier deleted")
}

// ListOrders returns every purchase order.
func (h *SupplierHandler) ListOrders(c echo.Context) error {
	orders, err := h.uc.ListOrders(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, orders, "")
}

// PlaceOrder turns a cart into a pending order.
func (h *SupplierHandler) PlaceOrder(c echo.Context) error {
	var req orderRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	order, err := h.uc.PlaceOrder(c.Request().Context(), usecase.OrderInput{
		SupplierID:  req.SupplierID,
		Items:       req.Items,
		TotalAmount: req.TotalAmount,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, order, "Order placed")
}

// MarkDelivered moves an order to delivered.
func (h *SupplierHandler) MarkDelivered(c echo.Context) error {
	order, err := h.uc.MarkOrderDelivered(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "Order delivered")
}

// DeleteOrder removes an order.
func (h *SupplierHandler) DeleteOrder(c echo.Context) error {
	if err := h.uc.DeleteOrder(c.Request().Context(), c.Param("id")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Order deleted")
}

// UpsertInventory writes one stock row.
func (h *SupplierHandler) UpsertInventory(c echo.Context) error {
	var req inventoryRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid inventory input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	item, err := h.uc.UpsertInventoryItem(c.Request().Context(), usecase.InventoryInput{
		ProductName: req.ProductName,
		Quantity:    req.Quantity,
		Threshold:   req.Threshold,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, item, "Inventory updated")
}

// StockReport joins supplier catalogs against inventory rows.
func (h *SupplierHandler) StockReport(c echo.Context) error {
	rows, err := h.uc.StockReport(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, rows, "")
}
