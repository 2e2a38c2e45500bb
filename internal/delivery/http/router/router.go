// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"atelier/internal/delivery/http/middleware"
	"atelier/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	ClientHandler   *handler.ClientHandler
	LedgerHandler   *handler.LedgerHandler
	SupplierHandler *handler.SupplierHandler
	GiftCardHandler *handler.GiftCardHandler
	InboxHandler    *handler.InboxHandler
	SettingsHandler *handler.SettingsHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	clientHandler   *handler.ClientHandler
	ledgerHandler   *handler.LedgerHandler
	supplierHandler *handler.SupplierHandler
	giftCardHandler *handler.GiftCardHandler
	inboxHandler    *handler.InboxHandler
	settingsHandler *handler.SettingsHandler
	authMiddleware  *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		clientHandler:   params.ClientHandler,
		ledgerHandler:   params.LedgerHandler,
		supplierHandler: params.SupplierHandler,
		giftCardHandler: params.GiftCardHandler,
		inboxHandler:    params.InboxHandler,
		settingsHandler: params.SettingsHandler,
		authMiddleware:  params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/pin", r.settingsHandler.VerifyPIN)
	}

	// Public site routes: gift-card purchase and lookup, booking, inbound forms
	{
		e.POST("/gift-cards", r.giftCardHandler.Issue)
		e.GET("/gift-cards/:code", r.giftCardHandler.Lookup)
		e.POST("/booking", r.clientHandler.Book)
		e.POST("/coaching-requests", r.inboxHandler.SubmitCoaching)
		e.POST("/collab-requests", r.inboxHandler.SubmitCollab)
	}

	// Admin routes behind the PIN session token
	admin := e.Group("/admin")
	admin.Use(r.authMiddleware.Authenticate)
	{
		admin.PUT("/settings/pin", r.settingsHandler.ChangePIN)

		admin.GET("/clients", r.clientHandler.List)
		admin.POST("/clients", r.clientHandler.Create)
		admin.PUT("/clients/:id", r.clientHandler.Update)
		admin.DELETE("/clients/:id", r.clientHandler.Delete)
		admin.POST("/clients/:id/visits", r.clientHandler.RecordVisit)
		admin.GET("/clients/:id/loyalty", r.clientHandler.LoyaltyStatus)
		admin.POST("/clients/:id/reminder", r.clientHandler.DraftReminder)

		admin.GET("/transactions", r.ledgerHandler.ListTransactions)
		admin.POST("/transactions", r.ledgerHandler.CreateTransaction)
		admin.PUT("/transactions/:id", r.ledgerHandler.UpdateTransaction)
		admin.DELETE("/transactions/:id", r.ledgerHandler.DeleteTransaction)
		admin.GET("/ledger/summary", r.ledgerHandler.Summary)
		admin.GET("/ledger/monthly", r.ledgerHandler.MonthlyRevenue)
		admin.GET("/ledger/analysis", r.ledgerHandler.AnalyzeRevenue)
		admin.GET("/taxes/estimate", r.ledgerHandler.EstimateContribution)
		admin.POST("/taxes/declare", r.ledgerHandler.DeclareContribution)
		admin.GET("/taxes", r.ledgerHandler.ListDeclarations)
		admin.POST("/taxes", r.ledgerHandler.CreateDeclaration)
		admin.PUT("/taxes/:id", r.ledgerHandler.UpdateDeclaration)
		admin.DELETE("/taxes/:id", r.ledgerHandler.DeleteDeclaration)
		admin.GET("/export/sales", r.ledgerHandler.ExportSalesJournal)
		admin.GET("/export/taxes", r.ledgerHandler.ExportTaxJournal)

		admin.GET("/suppliers", r.supplierHandler.List)
		admin.POST("/suppliers", r.supplierHandler.Create)
		admin.PUT("/suppliers/:id", r.supplierHandler.Update)
		admin.DELETE("/suppliers/:id", r.supplierHandler.Delete)
		admin.GET("/orders", r.supplierHandler.ListOrders)
		admin.POST("/orders", r.supplierHandler.PlaceOrder)
		admin.POST("/orders/:id/delivered", r.supplierHandler.MarkDelivered)
		admin.DELETE("/orders/:id", r.supplierHandler.DeleteOrder)
		admin.PUT("/inventory", r.supplierHandler.UpsertInventory)
		admin.GET("/inventory/report", r.supplierHandler.StockReport)

		admin.GET("/gift-cards", r.giftCardHandler.List)
		admin.POST("/gift-cards/:id/redeem", r.giftCardHandler.Redeem)
		admin.DELETE("/gift-cards/:id", r.giftCardHandler.Delete)
		admin.GET("/gift-cards/:id/qr", r.giftCardHandler.QR)

		admin.GET("/coaching-requests", r.inboxHandler.ListCoaching)
		admin.POST("/coaching-requests/:id/review", r.inboxHandler.ReviewCoaching)
		admin.GET("/collab-requests", r.inboxHandler.ListCollabs)
	}
}
