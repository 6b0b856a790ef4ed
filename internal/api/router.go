package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/digiwallet/wallet-console/internal/api/handler"
	"github.com/digiwallet/wallet-console/internal/api/middleware"
	"github.com/digiwallet/wallet-console/internal/core/domain"
	"github.com/digiwallet/wallet-console/internal/core/service"
	"github.com/digiwallet/wallet-console/internal/infrastructure/backend"
	"github.com/digiwallet/wallet-console/internal/infrastructure/config"
	mongodb "github.com/digiwallet/wallet-console/internal/infrastructure/db/mongo"
	redisdb "github.com/digiwallet/wallet-console/internal/infrastructure/db/redis"
)

// NewRouter builds the Echo instance with every console route registered
// under its access policy.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("wallet_console"))

	// --- Dependencies ---
	sessions := redisdb.NewSessionStore(rdb, cfg.Session.TTL)
	audit := mongodb.NewAuditRepository(db)
	wallet := backend.NewClient(backend.Config{
		BaseURL:      cfg.Backend.BaseURL,
		PinSetupPath: cfg.Backend.PinSetupPath,
		Timeout:      cfg.Backend.Timeout,
	}, sessions, audit, log)
	guardService := service.NewGuardService(sessions, audit, log)
	authService := service.NewAuthService(wallet, sessions, audit, log)

	authHandler := handler.NewAuthHandler(authService, sessions, cfg.Session.CookieName, cfg.Session.TTL)
	walletHandler := handler.NewWalletHandler(wallet)
	pinHandler := handler.NewPinHandler(wallet)
	adminHandler := handler.NewAdminHandler(wallet, audit)

	// Session resolution runs on every request; the guard decides per route.
	e.Use(middleware.ResolveSession(sessions, cfg.Session.CookieName))

	public := middleware.Guard(guardService, domain.AccessPublic)
	authed := middleware.Guard(guardService, domain.AccessAuthenticated)
	admin := middleware.Guard(guardService, domain.AccessAdmin)

	// --- Auth routes (public; logout only needs the cookie) ---
	e.GET(domain.PathLogin, authHandler.LoginView, public)
	e.POST(domain.PathLogin, authHandler.Login, public)
	e.POST("/auth/register", authHandler.Register, public)
	e.POST("/auth/logout", authHandler.Logout, public)
	e.GET(domain.PathPendingApproval, authHandler.PendingApproval, public)

	// --- User surface ---
	e.GET(domain.PathUserHome, walletHandler.Dashboard, authed)
	e.POST("/user/transfer", walletHandler.Transfer, authed)
	e.POST("/user/transfer-by-email", walletHandler.TransferByEmail, authed)
	e.POST("/user/deposit", walletHandler.Deposit, authed)
	e.POST("/user/withdraw", walletHandler.Withdraw, authed)
	e.GET("/user/search", walletHandler.Search, authed)
	e.POST("/user/email-transaction-summary", walletHandler.EmailSummary, authed)
	e.POST("/user/setup-pin", pinHandler.SetupPin, authed)
	e.GET("/user/check-pin-status", pinHandler.CheckPinStatus, authed)

	// --- Admin surface ---
	e.GET(domain.PathAdminHome, adminHandler.Dashboard, admin)
	e.GET("/admin/pending-users", adminHandler.PendingUsers, admin)
	e.PUT("/admin/approve/:userID", adminHandler.Approve, admin)
	e.GET("/admin/transactions", adminHandler.Transactions, admin)
	e.GET("/admin/transactions/:userID", adminHandler.TransactionsByUser, admin)
	e.GET("/admin/auth-events", adminHandler.AuthEvents, admin)

	// --- Observability & docs (no auth required) ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e
}
