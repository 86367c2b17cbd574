package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"gallery/adminhub/internal/config"
	"gallery/adminhub/internal/handler"
	"gallery/adminhub/internal/model"
	"gallery/adminhub/internal/repository"
	"gallery/adminhub/internal/service"
	"gallery/adminhub/internal/storage"
	jwtpkg "gallery/adminhub/pkg/jwt"
)

func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zcfg zap.Config
	if cfg.Format == "json" {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", cfg.Level, err)
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}

func main() {
	// 1. Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// 2. Initialize logger
	logger, err := newLogger(cfg.Log)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	// 3. Connect to PostgreSQL
	db, err := config.NewPostgresDB(cfg.Database.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect to postgres", zap.Error(err))
	}

	// 4. Auto-migrate if enabled
	if cfg.Database.Postgres.AutoMigrate {
		if err := model.AutoMigrate(db); err != nil {
			logger.Fatal("failed to auto-migrate", zap.Error(err))
		}
		logger.Info("database migration completed")
	}

	// 5. Initialize state store (Redis or in-memory)
	var stateStore repository.StateStore
	switch cfg.State.Backend {
	case "redis":
		redisClient, err := config.NewRedisClient(cfg.Database.Redis)
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		stateStore = repository.NewRedisStateStore(redisClient, "gallery:")
		logger.Info("using Redis state store")
	case "memory":
		stateStore = repository.NewMemoryStateStore()
		logger.Info("using in-memory state store")
	default:
		logger.Fatal("unknown state backend", zap.String("backend", cfg.State.Backend))
	}

	store := repository.NewPGStore(db)

	// 6. Mail and image storage
	mailer, err := service.NewMailSender(cfg.Email, logger)
	if err != nil {
		logger.Fatal("failed to init mail sender", zap.Error(err))
	}
	images, err := storage.New(cfg.Storage)
	if err != nil {
		logger.Fatal("failed to init image storage", zap.Error(err))
	}
	logger.Info("image storage ready", zap.String("backend", cfg.Storage.Backend))

	// 7. Initialize JWT manager
	jwtManager := jwtpkg.NewManager(
		cfg.JWT.SigningKey,
		cfg.JWT.Issuer,
		cfg.JWT.AccessTokenTTL,
		cfg.JWT.RefreshTokenTTL,
	)

	// 8. Initialize services
	galleryName := cfg.Email.GalleryName
	identityService := service.NewIdentityService(store, stateStore, mailer, cfg.PasswordReset, galleryName, logger)
	authService := service.NewAuthService(store, stateStore, identityService, jwtManager, logger)
	invitationService := service.NewInvitationService(store, identityService, authService, mailer, cfg.Invite, galleryName, logger)
	artistService := service.NewArtistService(store, logger)
	artworkService := service.NewArtworkService(store, identityService, mailer, galleryName, logger)
	eventService := service.NewEventService(store)
	displayOrderService := service.NewDisplayOrderService(store, logger)
	auditService := service.NewAuditService(store, logger)
	uploadService := service.NewUploadService(images, cfg.Server.MaxUploadBytes)

	bootstrapCtx, cancelBootstrap := context.WithTimeout(context.Background(), cfg.Server.GracefulShutdownTimeout)
	if err := identityService.EnsureSuperAdmin(bootstrapCtx, cfg.Admin); err != nil {
		logger.Fatal("failed to bootstrap super admin", zap.Error(err))
	}
	cancelBootstrap()

	// 9. Initialize handlers
	handlers := handler.Handlers{
		Auth:       handler.NewAuthHandler(authService, identityService),
		Account:    handler.NewAccountHandler(identityService, auditService),
		Invitation: handler.NewInvitationHandler(invitationService, identityService, auditService),
		Admin:      handler.NewAdminHandler(artistService, artworkService, eventService, displayOrderService, auditService),
		Artist:     handler.NewArtistHandler(artistService, artworkService, displayOrderService),
		Gallery:    handler.NewGalleryHandler(artistService, artworkService, eventService),
		Upload:     handler.NewUploadHandler(uploadService, cfg.Server.MaxUploadBytes),
	}

	// 10. Setup router
	router := handler.SetupRouter(cfg, logger, jwtManager, identityService, handlers)

	// 11. Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 12. Start server with graceful shutdown
	go func() {
		logger.Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}
	logger.Info("server exited gracefully")
}
