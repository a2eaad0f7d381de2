package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/bizbookhq/bizbook-backend/api/routes"
	"github.com/bizbookhq/bizbook-backend/internal/invoices"
	"github.com/bizbookhq/bizbook-backend/internal/items"
	"github.com/bizbookhq/bizbook-backend/internal/ledger"
	"github.com/bizbookhq/bizbook-backend/internal/parties"
	"github.com/bizbookhq/bizbook-backend/internal/payments"
	"github.com/bizbookhq/bizbook-backend/internal/stock"
	"github.com/bizbookhq/bizbook-backend/pkg/config"
	"github.com/bizbookhq/bizbook-backend/pkg/db"
	"github.com/bizbookhq/bizbook-backend/pkg/logger"
	"github.com/bizbookhq/bizbook-backend/pkg/metrics"
	"github.com/bizbookhq/bizbook-backend/pkg/migrate"
	"github.com/bizbookhq/bizbook-backend/pkg/money"
	"github.com/joho/godotenv"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	mutationMetrics := metrics.NewMutationMetrics()

	itemService, err := items.NewService(items.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create item service", err)
		os.Exit(1)
	}

	partyService, err := parties.NewService(parties.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create party service", err)
		os.Exit(1)
	}

	stockAdjuster := stock.NewAdjuster(cfg.Invoicing.StrictAdjustments)
	ledgerUpdater := ledger.NewUpdater(cfg.Invoicing.StrictAdjustments)
	defaultRates := money.TaxRates{
		CGST: cfg.Invoicing.DefaultCGSTRate,
		SGST: cfg.Invoicing.DefaultSGSTRate,
		IGST: cfg.Invoicing.DefaultIGSTRate,
	}

	invoiceService, err := invoices.NewService(
		invoices.NewRepository(dbClient.DB()),
		dbClient,
		stockAdjuster,
		ledgerUpdater,
		defaultRates,
		mutationMetrics,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create invoice service", err)
		os.Exit(1)
	}

	paymentService, err := payments.NewService(
		payments.NewRepository(dbClient.DB()),
		dbClient,
		ledgerUpdater,
		mutationMetrics,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create payment service", err)
		os.Exit(1)
	}

	handler := routes.NewRouter(
		cfg,
		logg,
		dbClient,
		mutationMetrics,
		itemService,
		partyService,
		invoiceService,
		paymentService,
	)

	server := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx := logg.WithField(context.Background(), "port", cfg.App.Port)
	logg.Info(ctx, "api listening")

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "server stopped", err)
		os.Exit(1)
	}
}
