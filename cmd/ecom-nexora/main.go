package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
	_ "github.com/shresthasriv/ecom-nexora/docs"
	"github.com/shresthasriv/ecom-nexora/internal/api/handlers"
	"github.com/shresthasriv/ecom-nexora/internal/api/middleware"
	"github.com/shresthasriv/ecom-nexora/internal/cache"
	"github.com/shresthasriv/ecom-nexora/internal/catalog"
	"github.com/shresthasriv/ecom-nexora/internal/config"
	"github.com/shresthasriv/ecom-nexora/internal/health"
	"github.com/shresthasriv/ecom-nexora/internal/metrics"
	repository "github.com/shresthasriv/ecom-nexora/internal/repositories"
	service "github.com/shresthasriv/ecom-nexora/internal/services"
	"github.com/shresthasriv/ecom-nexora/internal/telemetry"
	"github.com/shresthasriv/ecom-nexora/internal/utils"
	"github.com/shresthasriv/ecom-nexora/pkg/sendgrid"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

//	@title			Nexora Storefront API
//	@version		1.0
//	@description	Catalog proxy, shopping cart and checkout for the Nexora storefront.
//	@host			localhost:5000
//	@BasePath		/api
func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	ctx := context.Background()

	shutdownTracer, err := telemetry.InitTracer(ctx, cfg.Otel, cfg.Env)
	if err != nil {
		slog.Error("❌ Error initialising tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Cart store
	cartRepo, closeStore, err := newCartRepository(ctx, cfg)
	if err != nil {
		slog.Error("❌ Error accessing the cart store", slog.String("driver", cfg.Storage.Driver), slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer closeStore()

	// Redis backs the catalog cache and the rate limiter; without it both are skipped
	var redisClient *redis.Client
	if cfg.RedisConnect.Enabled {
		redisClient, err = repository.NewRedisClient(cfg)
		if err != nil {
			slog.Error("❌ Error accessing the redis instance", slog.String("error", err.Error()))
			os.Exit(1)
		}

		defer func() {
			if err := redisClient.Close(); err != nil {
				slog.Error("⚠️ Error closing redis connection", slog.String("error", err.Error()))
			}
		}()
	}

	gateway := catalog.NewHTTPGateway(cfg.Catalog)
	if redisClient != nil {
		gateway = catalog.NewCachedGateway(gateway, cache.NewRedisCache(redisClient, &cfg.Cache), cfg.Catalog.CacheTTL, cfg.Catalog.Timeout)
	}

	var notifier service.ReceiptSender
	if cfg.SendGrid.APIKey != "" {
		emailService := sendgrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName,
			sendgrid.WithSandbox(cfg.SendGrid.Sandbox))
		notifier = service.NewReceiptNotifier(emailService)
	} else {
		slog.Info("Order confirmation emails disabled, no SendGrid API key configured")
	}

	productService := service.NewProductService(gateway)
	productHandler := handlers.NewProductHandler(productService)
	cartService := service.NewCartService(cartRepo, gateway, cfg.Cart)
	cartHandler := handlers.NewCartHandler(cartService)
	checkoutService := service.NewCheckoutService(cartRepo, cfg.Cart, notifier)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)

	healthHandler, err := health.NewHealthHandler(cfg)
	if err != nil {
		slog.Error("❌ Error creating health checks", slog.String("error", err.Error()))
		os.Exit(1)
	}

	limit := func(scope string, next http.HandlerFunc) http.HandlerFunc { return next }
	if redisClient != nil {
		rateLimiter := middleware.NewRateLimitMiddleware(repository.NewRateLimitRepo(redisClient, &cfg.RateConfig))
		limit = func(scope string, next http.HandlerFunc) http.HandlerFunc { return rateLimiter.Limit(scope, next) }
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("driver", cfg.Storage.Driver), slog.Bool("redis", redisClient != nil))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("GET /api/products", productHandler.ListProducts())
	routerMux.HandleFunc("GET /api/products/{id}", productHandler.GetProduct())
	routerMux.HandleFunc("GET /api/cart", cartHandler.GetCart())
	routerMux.HandleFunc("POST /api/cart", limit("cart", cartHandler.AddItem()))
	routerMux.HandleFunc("DELETE /api/cart/{itemId}", cartHandler.RemoveItem())
	routerMux.HandleFunc("POST /api/checkout", limit("checkout", checkoutHandler.Checkout()))
	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// Middleware chaining, outermost last
	var handler http.Handler = routerMux
	handler = middleware.Logging(handler)
	handler = metrics.Middleware(routerMux, handler)
	handler = cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader, "Retry-After", "X-RateLimit-Remaining"},
		AllowCredentials: false,
		MaxAge:           300,
	})(handler)
	handler = otelhttp.NewHandler(handler, cfg.Otel.ServiceName)

	// Setup http server
	server := http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			slog.Error("❌ Failed to start server", slog.String("error", err.Error()))
			done <- syscall.SIGTERM
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

	if err := shutdownTracer(shutdownCtx); err != nil {
		slog.Error("⚠️ Error flushing traces", slog.String("error", err.Error()))
	}

}

// newCartRepository opens the configured cart store and returns a func that closes it.
func newCartRepository(ctx context.Context, cfg *config.Config) (repository.CartRepository, func(), error) {

	switch cfg.Storage.Driver {
	case config.StorageDriverPostgres:
		db, err := repository.NewPostgres(&cfg.Database)
		if err != nil {
			return nil, nil, err
		}

		if cfg.Storage.AutoMigrate {
			if err := repository.RunMigrations(db); err != nil {
				db.Close()
				return nil, nil, err
			}
			slog.Info("✅ Database migrations applied")
		}

		return repository.NewCartRepo(db), closeDB(db), nil

	case config.StorageDriverMongo:
		connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()

		database, err := repository.ConnectMongoDB(connectCtx, cfg.Mongo.URI, cfg.Mongo.Database)
		if err != nil {
			return nil, nil, err
		}

		closeMongo := func() {
			disconnectCtx, cancel := utils.WithTimeout(context.Background(), utils.DefaultPingTimeout)
			defer cancel()

			if err := database.Client().Disconnect(disconnectCtx); err != nil {
				slog.Error("⚠️ Error closing mongo connection", slog.String("error", err.Error()))
			} else {
				slog.Info("✅ Mongo connection closed")
			}
		}

		repo, err := repository.NewMongoCartRepo(connectCtx, database)
		if err != nil {
			closeMongo()
			return nil, nil, err
		}

		return repo, closeMongo, nil

	case config.StorageDriverMemory:
		slog.Warn("Using the in-memory cart store, carts are lost on restart")
		return repository.NewMemoryCartRepo(), func() {}, nil
	}

	return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}

func closeDB(db *sql.DB) func() {
	return func() {
		if err := db.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}
}
