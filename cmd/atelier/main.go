package main

import (
	"context"
	"log/slog"
	"os"

	"atelier/config"
	"atelier/internal/delivery"
	"atelier/internal/delivery/http"
	"atelier/internal/delivery/http/middleware"
	"atelier/internal/delivery/http/router/handler"
	"atelier/internal/delivery/worker"
	"atelier/internal/infra/ai"
	"atelier/internal/infra/auth"
	logs "atelier/internal/infra/log"
	"atelier/internal/infra/qrcode"
	"atelier/internal/infra/store"
	"atelier/internal/usecase/impl"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	// Local development keeps secrets in a .env file; absence is fine.
	_ = godotenv.Load()

	fx.New(
		injectInfra(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		store.New,
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewJWTService,
			qrcode.NewQRCodeService,
			ai.NewMessenger,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewClientService,
			impl.NewLedgerService,
			impl.NewSupplierService,
			impl.NewGiftCardService,
			impl.NewInboxService,
			impl.NewSettingsService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewClientHandler,
			handler.NewLedgerHandler,
			handler.NewSupplierHandler,
			handler.NewGiftCardHandler,
			handler.NewInboxHandler,
			handler.NewSettingsHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
			fx.Annotate(
				worker.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
