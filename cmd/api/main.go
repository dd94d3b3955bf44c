package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/stripe/stripe-go/v83"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/contrib/instrumentation/runtime"

	"github.com/stylesphere/storefront/internal/cart"
	"github.com/stylesphere/storefront/internal/catalog"
	"github.com/stylesphere/storefront/internal/config"
	"github.com/stylesphere/storefront/internal/customers"
	"github.com/stylesphere/storefront/internal/inventory"
	"github.com/stylesphere/storefront/internal/messaging"
	"github.com/stylesphere/storefront/internal/orders"
	"github.com/stylesphere/storefront/internal/payments"
	"github.com/stylesphere/storefront/internal/returns"
	"github.com/stylesphere/storefront/internal/telemetry"
	"github.com/stylesphere/storefront/internal/wishlist"
)

func main() {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	cfg := config.Load()

	shutdownTracer, err := telemetry.InitTracerProvider(ctx, "storefront-api", "0.1.0")
	if err != nil {
		logger.Error("failed to initialize tracer", "error", err)
		os.Exit(1)
	}
	defer func() { _ = shutdownTracer(ctx) }()

	metricsHandler, shutdownMeter, err := telemetry.InitMeterProvider("storefront-api", "0.1.0")
	if err != nil {
		logger.Error("failed to initialize meter", "error", err)
		os.Exit(1)
	}
	defer func() { _ = shutdownMeter(ctx) }()

	if err := runtime.Start(); err != nil {
		logger.Error("failed to start runtime metrics", "error", err)
		os.Exit(1)
	}

	db, err := telemetry.OpenDB("postgres", cfg.PostgresURL)
	if err != nil {
		logger.Error("failed to open database connection", "error", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	stripe.Key = cfg.StripeSecretKey
	if stripe.Key == "" {
		logger.Warn("STRIPE_SECRET_KEY not set, payment endpoints will fail")
	}

	var producer *messaging.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = messaging.NewProducer(cfg.KafkaBrokers, cfg.OrderTopic)
		defer func() { _ = producer.Close() }()
	} else {
		logger.Warn("KAFKA_BROKERS not set, order events disabled")
	}

	var catalogStore catalog.Store = catalog.NewRepository(db)
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer func() { _ = redisClient.Close() }()
		catalogStore = catalog.NewCachedStore(catalogStore, redisClient, 5*time.Minute, logger)
	}

	cartRepo := cart.NewRepository(db)

	customersHandler := customers.NewHandler(customers.NewRepository(db), logger)
	catalogHandler := catalog.NewHandler(catalogStore, logger)
	cartHandler := cart.NewHandler(cartRepo, logger)
	wishlistHandler := wishlist.NewHandler(wishlist.NewRepository(db), logger)
	inventoryHandler := inventory.NewHandler(inventory.NewRepository(db), logger)
	ordersHandler := orders.NewHandler(orders.NewRepository(db), producerOrNil(producer), logger)
	returnsHandler := returns.NewHandler(returns.NewRepository(db), logger)
	paymentsHandler := payments.NewHandler(cartRepo, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.Handle("GET /metrics", metricsHandler)

	mux.HandleFunc("POST /auth/register", telemetry.WithHTTPRoute(customersHandler.HandleRegister))
	mux.HandleFunc("POST /auth/login", telemetry.WithHTTPRoute(customersHandler.HandleLogin))
	mux.HandleFunc("POST /user/address", telemetry.WithHTTPRoute(customersHandler.HandleAddAddress))

	mux.HandleFunc("GET /catalog/categories/tree", telemetry.WithHTTPRoute(catalogHandler.HandleCategoryTree))
	mux.HandleFunc("GET /catalog/sizes", telemetry.WithHTTPRoute(catalogHandler.HandleSizes))
	mux.HandleFunc("GET /catalog/products", telemetry.WithHTTPRoute(catalogHandler.HandleListProducts))
	mux.HandleFunc("GET /catalog/products/{productId}", telemetry.WithHTTPRoute(catalogHandler.HandleGetProduct))

	mux.HandleFunc("GET /cart/{customerId}", telemetry.WithHTTPRoute(cartHandler.HandleGetCart))
	mux.HandleFunc("POST /cart", telemetry.WithHTTPRoute(cartHandler.HandleUpdateItem))
	mux.HandleFunc("DELETE /cart/{customerId}/{variantId}", telemetry.WithHTTPRoute(cartHandler.HandleRemoveItem))
	mux.HandleFunc("POST /cart/checkout", telemetry.WithHTTPRoute(ordersHandler.HandleCheckout))

	mux.HandleFunc("GET /wishlist/{customerId}", telemetry.WithHTTPRoute(wishlistHandler.HandleList))
	mux.HandleFunc("POST /wishlist", telemetry.WithHTTPRoute(wishlistHandler.HandleAdd))
	mux.HandleFunc("DELETE /wishlist/{customerId}/{productId}", telemetry.WithHTTPRoute(wishlistHandler.HandleRemove))

	mux.HandleFunc("GET /orders/customer/{customerId}", telemetry.WithHTTPRoute(ordersHandler.HandleListByCustomer))
	mux.HandleFunc("POST /orders/{orderId}/return", telemetry.WithHTTPRoute(returnsHandler.HandleSubmit))

	mux.HandleFunc("GET /inventory/stock/{variantId}", telemetry.WithHTTPRoute(inventoryHandler.HandleGetStock))
	mux.HandleFunc("GET /inventory/stock/product/{productId}", telemetry.WithHTTPRoute(inventoryHandler.HandleGetProductStock))

	mux.HandleFunc("POST /payments/intent", telemetry.WithHTTPRoute(paymentsHandler.HandleCreateIntent))
	mux.HandleFunc("POST /payments/intent/update", telemetry.WithHTTPRoute(paymentsHandler.HandleUpdateIntent))

	server := &http.Server{
		Addr: cfg.HTTPAddr,
		Handler: otelhttp.NewHandler(cors(mux), "storefront-api",
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				if r.Pattern != "" {
					return r.Pattern
				}
				return r.Method + " " + r.URL.Path
			}),
		),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting storefront api", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}

// producerOrNil keeps the handler's nil check working: a typed nil
// *Producer inside the interface would not compare equal to nil.
func producerOrNil(p *messaging.Producer) orders.Publisher {
	if p == nil {
		return nil
	}
	return p
}

func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
