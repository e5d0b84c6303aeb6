package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/medimart/medimart/internal/api/handlers"
	"github.com/medimart/medimart/internal/api/middleware"
	"github.com/medimart/medimart/internal/config"
	"github.com/medimart/medimart/internal/health"
	"github.com/medimart/medimart/internal/metrics"
	"github.com/medimart/medimart/internal/models"
	repository "github.com/medimart/medimart/internal/repositories"
	service "github.com/medimart/medimart/internal/services"
	"github.com/medimart/medimart/pkg/sendgrid"
	"github.com/medimart/medimart/pkg/stripe"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Database setup
	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}()

	// Redis setup
	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", "error", err.Error())
		os.Exit(1)
	}

	rateLimitRepo := repository.NewRateLimitRepo(redisClient, cfg)

	jwtKey := []byte(cfg.Security.JWTKey)
	stripeClient := stripe.NewStripeClient(cfg.Stripe.APIKey)
	emailService := sendgrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)

	userService := service.NewUserService(repos.User, rateLimitRepo, jwtKey, cfg.Security.TokenTTL)
	userHandler := handlers.NewUserHandler(userService, cfg.Security.CookieName, cfg.Security.SecureCookies)
	catalogService := service.NewCatalogService(repos.Category, repos.Product)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	cartService := service.NewCartService(repos.Cart, repos.Product, repos.User)
	cartHandler := handlers.NewCartHandler(cartService)
	orderService := service.NewOrderService(repos.Order, repos.User, repos.Cart, emailService)
	orderHandler := handlers.NewOrderHandler(orderService)
	paymentService := service.NewPaymentService(stripeClient, cfg.Stripe.Currency)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	salesService := service.NewSalesService(repos.Order, repos.User)
	salesHandler := handlers.NewSalesHandler(salesService)

	authMiddleware := middleware.NewAuthMiddleware(jwtKey, cfg.Security.CookieName, userService)

	healthHandler, err := health.NewHealthHandler(cfg, &health.Endpoints{StripeClient: stripeClient})
	if err != nil {
		slog.Error("❌ Error creating health checks", "error", err.Error())
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("POST /jwt", userHandler.IssueToken())
	routerMux.HandleFunc("POST /logout", userHandler.Logout())
	routerMux.HandleFunc("POST /users", userHandler.Register())
	routerMux.HandleFunc("GET /users", authMiddleware.Authenticate(authMiddleware.RequireRole(models.RoleAdmin, userHandler.ListUsers())))
	routerMux.HandleFunc("GET /users/{role}/{email}", authMiddleware.Authenticate(userHandler.CheckRole()))
	routerMux.HandleFunc("POST /users/change-role", authMiddleware.Authenticate(authMiddleware.RequireRole(models.RoleAdmin, userHandler.ChangeRole())))
	routerMux.HandleFunc("GET /categories", catalogHandler.ListCategories())
	routerMux.HandleFunc("GET /categories/{id}", catalogHandler.GetCategory())
	routerMux.HandleFunc("POST /categories/{id}/rebuild", authMiddleware.Authenticate(authMiddleware.RequireRole(models.RoleAdmin, catalogHandler.RebuildCategory())))
	routerMux.HandleFunc("GET /products", catalogHandler.ListProducts())
	routerMux.HandleFunc("GET /carts", authMiddleware.Authenticate(cartHandler.GetCart()))
	routerMux.HandleFunc("POST /carts", authMiddleware.Authenticate(cartHandler.AddItem()))
	routerMux.HandleFunc("POST /carts/change-quantity/{cartId}/{type}", authMiddleware.Authenticate(cartHandler.ChangeQuantity()))
	routerMux.HandleFunc("DELETE /carts/clear/{cartId}", authMiddleware.Authenticate(cartHandler.ClearCart()))
	routerMux.HandleFunc("POST /create-payment-intent", paymentHandler.CreatePaymentIntent())
	routerMux.HandleFunc("POST /create-order", authMiddleware.Authenticate(orderHandler.CreateOrder()))
	routerMux.HandleFunc("PATCH /update-payment-status/{orderId}", authMiddleware.Authenticate(authMiddleware.RequireRole(models.RoleAdmin, orderHandler.UpdatePaymentStatus())))
	routerMux.HandleFunc("GET /orders", authMiddleware.Authenticate(orderHandler.ListOrders()))
	routerMux.HandleFunc("GET /orders/all", authMiddleware.Authenticate(authMiddleware.RequireRole(models.RoleAdmin, orderHandler.ListAllOrders())))
	routerMux.HandleFunc("GET /total-sales", authMiddleware.Authenticate(authMiddleware.RequireRole(models.RoleAdmin, salesHandler.TotalSales())))
	routerMux.HandleFunc("GET /seller-total-sales", authMiddleware.Authenticate(authMiddleware.RequireRole(models.RoleSeller, salesHandler.SellerTotalSales())))
	routerMux.Handle("GET /healthz", healthHandler.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)
	handler = middleware.CORS(middleware.DefaultCORSOptions(cfg.CORS.AllowedOrigins))(handler)

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

}
