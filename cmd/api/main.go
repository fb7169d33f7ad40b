package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"gamerverse/internal/adapter/api"
	"gamerverse/internal/adapter/api/handler"
	apimiddleware "gamerverse/internal/adapter/api/middleware"
	"gamerverse/internal/adapter/api/router"
	"gamerverse/internal/adapter/repository"
	"gamerverse/internal/domain/service"
	"gamerverse/internal/infrastructure/cache"
	"gamerverse/internal/infrastructure/firebase"
	"gamerverse/internal/infrastructure/mail"
	"gamerverse/internal/infrastructure/ratelimit"
	"gamerverse/internal/infrastructure/storage"
	"gamerverse/internal/infrastructure/task"
	"gamerverse/internal/infrastructure/websocket"
	"gamerverse/internal/usecase"
	"gamerverse/pkg/config"
	"gamerverse/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.SetLevel(cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clients, err := firebase.NewClients(ctx, cfg.Firebase)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}
	defer clients.Close()

	healthChecks := map[string]handler.HealthCheck{
		"firestore": clients.Ping,
	}

	var roleCache usecase.RoleCache = cache.NewMemoryRoleCache()
	if cfg.Redis.Addr != "" {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		roleCache = cache.NewRedisRoleCache(redisClient)
		healthChecks["redis"] = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}
		logger.Info("Caching admin roles in Redis at %s", cfg.Redis.Addr)
	}

	var images service.ImageStore
	if cfg.Firebase.StorageBucket != "" {
		storageClient, err := storage.NewCloudStorageClient(ctx, cfg.Firebase.StorageBucket, clients.CredentialsPath)
		if err != nil {
			log.Fatalf("Failed to initialize Cloud Storage: %v", err)
		}
		defer storageClient.Close()
		images = storageClient
	} else {
		logger.Warn("STORAGE_BUCKET not set, image uploads are disabled")
	}

	var sender mail.Sender = mail.LogSender{}
	if cfg.MailEnabled() {
		sender = mail.NewSendGridClient(cfg.Mail.SendGridAPIKey, cfg.Mail.From)
	}
	notifier := mail.NewNotifier(sender, cfg.Mail.SupportEmail)

	runner := task.NewRunner(cfg.Limits.TaskTimeout)
	runner.StartJanitor(ctx, time.Minute)

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	gameRepo := repository.NewFirestoreGameRepository(clients.Firestore)
	cartRepo := repository.NewFirestoreCartRepository(clients.Firestore)
	orderRepo := repository.NewFirestoreOrderRepository(clients.Firestore)
	checkoutRepo := repository.NewFirestoreCheckoutRepository(clients.Firestore)
	profileRepo := repository.NewFirestoreUserProfileRepository(clients.Firestore)
	paymentRepo := repository.NewFirestorePaymentConfigRepository(clients.Firestore)
	contactRepo := repository.NewFirestoreContactMessageRepository(clients.Firestore)

	firebaseAuthClient := firebase.NewFirebaseAuthClient(clients.Auth)

	roleUseCase := usecase.NewRoleUseCase(profileRepo, roleCache)
	userUseCase := usecase.NewUserUseCase(profileRepo, roleUseCase, firebaseAuthClient, runner)
	gameUseCase := usecase.NewGameUseCase(gameRepo)
	cartUseCase := usecase.NewCartUseCase(cartRepo, gameRepo)
	checkoutUseCase := usecase.NewCheckoutUseCase(checkoutRepo, cartRepo, paymentRepo, notifier, runner)
	orderUseCase := usecase.NewOrderUseCase(orderRepo, roleUseCase, notifier, runner)
	settingsUseCase := usecase.NewSettingsUseCase(paymentRepo, roleUseCase, runner)
	contactUseCase := usecase.NewContactUseCase(contactRepo, roleUseCase, notifier, runner)
	adminUseCase := usecase.NewAdminUseCase(gameRepo, orderRepo, contactRepo, roleUseCase)

	authMiddleware := apimiddleware.NewAuthMiddleware(firebaseAuthClient)
	adminMiddleware := apimiddleware.NewAdminMiddleware(roleUseCase)

	handler.Setup(
		gameUseCase,
		cartUseCase,
		checkoutUseCase,
		orderUseCase,
		userUseCase,
		roleUseCase,
		settingsUseCase,
		contactUseCase,
		adminUseCase,
		runner,
	)
	handler.SetupHealthHandler(healthChecks)
	handler.SetupUploadHandler(images)
	handler.SetupOrderStreamHandler(wsManager, orderUseCase, authMiddleware, cfg.AllowedOrigins)

	limiters := router.Limiters{
		Checkout: ratelimit.PerMinute(cfg.Limits.CheckoutPerMinute),
		Contact:  ratelimit.PerMinute(cfg.Limits.ContactPerMinute),
	}
	limiters.Checkout.StartCleanupRoutine(ctx)
	limiters.Contact.StartCleanupRoutine(ctx)

	e := echo.New()
	e.HideBanner = true
	e.Debug = cfg.IsDevelopment()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
			echo.HeaderAuthorization,
			handler.IdempotencyKeyHeader,
		},
	}))
	e.Use(middleware.BodyLimit("6M"))

	e.Validator = api.NewValidator()

	router.Setup(e, authMiddleware, adminMiddleware, limiters)

	go func() {
		logger.Info("Starting server on port %s (%s)", cfg.ServerPort, cfg.Environment)
		if err := e.Start(":" + cfg.ServerPort); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown: %v", err)
	}

	// Stops order streams and the janitors.
	cancel()

	if err := runner.Shutdown(shutdownCtx); err != nil {
		logger.Warn("Background tasks still running at shutdown: %v", err)
	}
	logger.Info("Server stopped")
}
