package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"

	"github.com/nangulu/pos-api/internal/application/auth"
	"github.com/nangulu/pos-api/internal/application/inventory"
	"github.com/nangulu/pos-api/internal/application/sales"
	infrapdf "github.com/nangulu/pos-api/internal/infrastructure/pdf"
	"github.com/nangulu/pos-api/internal/infrastructure/postgres"
	httpRouter "github.com/nangulu/pos-api/internal/interfaces/http"
	"github.com/nangulu/pos-api/pkg/config"
	"github.com/nangulu/pos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	txTimeout := time.Duration(cfg.POS.TxTimeoutSeconds) * time.Second
	pool, err := postgres.NewPool(ctx, cfg.DB, txTimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	purchasePolicy, err := loadPurchasePolicy(cfg.POS)
	if err != nil {
		log.Fatal().Err(err).Msg("política de compras inválida")
	}

	userRepo := postgres.NewUserRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	ledgerRepo := postgres.NewLedgerRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	txRunner := postgres.NewTxRunner(pool)
	retry := inventory.DefaultRetryPolicy(postgres.IsTransient)

	purchaseUC := inventory.NewPurchaseUseCase(txRunner, retry, purchasePolicy)
	stockUC := inventory.NewStockUseCase(itemRepo, ledgerRepo)
	catalogUC := inventory.NewCatalogUseCase(itemRepo)
	saleUC := sales.NewSaleUseCase(txRunner, retry, cfg.POS.SaleNumberPrefix, saleRepo)
	reversalUC := sales.NewReversalUseCase(txRunner, retry)
	receiptGen := infrapdf.NewMarotoReceiptGenerator(cfg.App.Name)
	receiptUC := sales.NewReceiptUseCase(saleRepo, itemRepo, userRepo, receiptGen)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		PurchaseUC: purchaseUC,
		StockUC:    stockUC,
		CatalogUC:  catalogUC,
		SaleUC:     saleUC,
		ReversalUC: reversalUC,
		ReceiptUC:  receiptUC,
		JWTSecret:  cfg.JWT.Secret,
	})

	// Apagado ordenado: esperar señal, cerrar listener, soltar el pool.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info().Msg("apagando servidor")
		_ = app.Shutdown()
	}()

	addr := cfg.HTTP.Addr()
	log.Info().Str("addr", addr).Msg("servidor HTTP escuchando")
	if err := app.Listen(addr); err != nil {
		log.Fatal().Err(err).Msg("servidor HTTP")
	}
}

// loadPurchasePolicy parsea los valores de política desde config (strings de
// env var) a decimales exactos.
func loadPurchasePolicy(pos config.POSConfig) (inventory.PurchasePolicy, error) {
	markup, err := decimal.NewFromString(pos.DefaultMarkup)
	if err != nil {
		return inventory.PurchasePolicy{}, err
	}
	low, err := decimal.NewFromString(pos.DefaultLowKg)
	if err != nil {
		return inventory.PurchasePolicy{}, err
	}
	critical, err := decimal.NewFromString(pos.DefaultCriticalKg)
	if err != nil {
		return inventory.PurchasePolicy{}, err
	}
	return inventory.PurchasePolicy{
		Markup:            markup,
		DefaultLowKg:      low,
		DefaultCriticalKg: critical,
	}, nil
}
