package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/ecommerce-app/storefront/pkg/config"
	"github.com/ecommerce-app/storefront/pkg/idempotency"
	"github.com/ecommerce-app/storefront/pkg/lifecycle"
	"github.com/ecommerce-app/storefront/pkg/logging"
	"github.com/ecommerce-app/storefront/pkg/shutdown"
	"github.com/ecommerce-app/storefront/pkg/tracing"

	cartapp "github.com/ecommerce-app/storefront/internal/cart/application"
	carthttp "github.com/ecommerce-app/storefront/internal/cart/infrastructure/http"
	cartmem "github.com/ecommerce-app/storefront/internal/cart/infrastructure/memory"
	cartredis "github.com/ecommerce-app/storefront/internal/cart/infrastructure/redis"
	catalogapp "github.com/ecommerce-app/storefront/internal/catalog/application"
	cataloghttp "github.com/ecommerce-app/storefront/internal/catalog/infrastructure/http"
	catalogmem "github.com/ecommerce-app/storefront/internal/catalog/infrastructure/memory"
	orderapp "github.com/ecommerce-app/storefront/internal/order/application"
	"github.com/ecommerce-app/storefront/internal/order/domain"
	orderhttp "github.com/ecommerce-app/storefront/internal/order/infrastructure/http"
	orderkafka "github.com/ecommerce-app/storefront/internal/order/infrastructure/kafka"
	ordermem "github.com/ecommerce-app/storefront/internal/order/infrastructure/memory"
	orderpg "github.com/ecommerce-app/storefront/internal/order/infrastructure/postgres"
)

func main() {
	log := logging.New("storefront")

	cfg, err := config.Load()
	if err != nil {
		log.Error("config load failed", "err", err)
		os.Exit(1)
	}

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	if cfg.OTLPEndpoint != "" {
		tp, err := tracing.Init(ctx, "storefront", cfg.OTLPEndpoint, log)
		if err != nil {
			log.Error("otel init failed", "err", err)
			os.Exit(1)
		}
		defer func() { _ = tp.Shutdown(context.Background()) }()
	}

	taxRate, err := decimal.NewFromString(cfg.TaxRate)
	if err != nil {
		log.Error("invalid tax rate", "tax_rate", cfg.TaxRate, "err", err)
		os.Exit(1)
	}

	// Catalog: fixture-seeded in-memory reference data.
	catalogSvc := catalogapp.NewService(log, catalogmem.NewRepository())

	// Redis backs the cart snapshot slot and checkout dedup when configured.
	var rdb *goredis.Client
	if cfg.RedisAddr != "" {
		rdb = goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
	}

	var snapshots cartapp.SnapshotStore = cartmem.NewSnapshotStore()
	if rdb != nil {
		snapshots = cartredis.NewSnapshotStore(rdb)
	}
	cartStore := cartapp.NewStore(log, snapshots)
	if err := cartStore.Load(ctx); err != nil {
		log.Error("cart load failed", "err", err)
		os.Exit(1)
	}

	// Order store: Postgres when configured, process memory otherwise.
	var orderRepo orderapp.Repository = ordermem.NewRepository()
	if cfg.PostgresURL != "" {
		pool, err := pgxpool.New(ctx, cfg.PostgresURL)
		if err != nil {
			log.Error("pg connect failed", "err", err)
			os.Exit(1)
		}
		defer pool.Close()
		orderRepo = orderpg.NewRepository(log, pool)
	}

	var events orderapp.EventPublisher = orderapp.NopPublisher{}
	if cfg.KafkaAddr != "" {
		publisher := orderkafka.NewPublisher([]string{cfg.KafkaAddr}, cfg.KafkaTopic)
		defer publisher.Close()
		events = publisher
	}

	tasks := lifecycle.NewMemoryStore()
	orderSvc := orderapp.NewService(log, orderRepo, catalogSvc, tasks, events, taxRate, cfg.CompletionDelay)

	// Lifecycle worker advances PENDING orders to COMPLETED.
	worker := lifecycle.NewWorker(log, tasks, orderSvc)
	go func() {
		if err := worker.Run(ctx); err != nil {
			log.Error("lifecycle worker stopped with error", "err", err)
		}
	}()

	if cfg.SeedOrder {
		seedInitialOrder(ctx, log, catalogSvc, orderSvc)
	}

	var idemStore *idempotency.Store
	if rdb != nil {
		idemStore = idempotency.NewStore(rdb, cfg.IdempotencyTTL)
	}

	catalogHandler := cataloghttp.NewHandler(log, catalogSvc)
	cartHandler := carthttp.NewHandler(log, cartStore, catalogSvc)
	orderHandler := orderhttp.NewHandler(log, orderSvc)

	r := chi.NewRouter()
	r.Route("/api", func(api chi.Router) {
		catalogHandler.Register(api)
		cartHandler.Register(api)
		api.Group(func(g chi.Router) {
			g.Use(idempotency.Middleware(idemStore, "checkout"))
			orderHandler.Register(g)
		})
	})

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("http listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", "err", err)
			cancel()
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)
	log.Info("storefront shutdown complete")
}

// seedInitialOrder places one demo order over the first three catalog
// products, so a fresh store is never completely empty.
func seedInitialOrder(ctx context.Context, log *slog.Logger, catalog *catalogapp.Service, orders *orderapp.Service) {
	existing, err := orders.ListOrders(ctx)
	if err != nil || len(existing) > 0 {
		return
	}

	products, err := catalog.ListProducts(ctx)
	if err != nil || len(products) < 3 {
		return
	}

	items := make([]domain.CheckoutItem, 0, 3)
	for _, p := range products[:3] {
		items = append(items, domain.CheckoutItem{ID: p.ID})
	}
	if _, err := orders.Checkout(ctx, domain.User{}, items); err != nil {
		log.Error("seed order failed", "err", err)
		return
	}
	log.Info("seed order created")
}
