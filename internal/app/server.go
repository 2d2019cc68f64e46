// internal/app/server.go
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"showroom-service/internal/config"
	"showroom-service/internal/db"
	authHandler "showroom-service/internal/handlers/auth"
	categoryHandler "showroom-service/internal/handlers/category"
	imageHandler "showroom-service/internal/handlers/image"
	productHandler "showroom-service/internal/handlers/product"
	vignetteHandler "showroom-service/internal/handlers/vignette"
	wsHandler "showroom-service/internal/handlers/websocket"
	"showroom-service/internal/middleware"
	"showroom-service/internal/pkg/session"
	"showroom-service/internal/repository/postgres"
	authUsecase "showroom-service/internal/service/auth"
	categoryUsecase "showroom-service/internal/service/category"
	imageUsecase "showroom-service/internal/service/image"
	productUsecase "showroom-service/internal/service/product"
	vignetteUsecase "showroom-service/internal/service/vignette"
	"showroom-service/internal/storage"
	"showroom-service/internal/websocket"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	logger *zap.Logger

	httpServer *http.Server
	pool       *pgxpool.Pool
	redis      *redis.Client
	stopHub    context.CancelFunc
}

func NewServer(cfg config.AppConfig, logger *zap.Logger) *Server {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	return &Server{cfg: cfg, engine: gin.New(), logger: logger}
}

// Start connects the backing stores, wires the application and serves HTTP
// until Shutdown is called.
func (s *Server) Start(ctx context.Context) error {
	logger := s.logger

	// ----- PostgreSQL -----
	pool, err := db.ConnectDB(ctx, db.PostgresConfig{URL: s.cfg.DatabaseURL, MaxConns: s.cfg.DBMaxConns})
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	s.pool = pool
	logger.Info("connected to PostgreSQL")

	if s.cfg.MigrateOnBoot {
		if err := db.Migrate(ctx, pool); err != nil {
			return err
		}
		logger.Info("migrations applied")
	}

	// ----- Redis -----
	redisClient, err := db.NewRedisClient(db.RedisConfig{
		Address:  s.cfg.RedisAddr,
		Password: s.cfg.RedisPass,
		DB:       s.cfg.RedisDB,
		PoolSize: 10,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	s.redis = redisClient
	logger.Info("connected to Redis", zap.String("addr", s.cfg.RedisAddr))

	// ----- Session Manager & Rate Limiter -----
	sessionManager := session.NewManager(redisClient, s.cfg.SessionTTL)
	rateLimiter := session.NewRateLimiter(redisClient, s.cfg.LoginMaxAttempts, s.cfg.LoginWindow)
	cookie := session.Cookie{
		Name:   s.cfg.CookieName,
		Secure: s.cfg.IsProduction(),
		MaxAge: s.cfg.SessionTTL,
	}

	// ----- Blob store -----
	store, uploadDir, err := s.newBlobStore(ctx)
	if err != nil {
		return err
	}

	// ----- WebSocket Hub -----
	hub := websocket.NewHub(logger)
	hubCtx, stopHub := context.WithCancel(context.Background())
	s.stopHub = stopHub
	go hub.Run(hubCtx)

	// ----- Repositories -----
	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	vignetteRepo := postgres.NewVignetteRepository(pool)
	imageRepo := postgres.NewImageRepository(pool)
	userRepo := postgres.NewUserRepository(pool)

	// ----- Services (Usecases) -----
	authService := authUsecase.NewAuthService(userRepo, sessionManager, rateLimiter, logger)
	categoryService := categoryUsecase.NewCategoryService(categoryRepo)
	productService := productUsecase.NewProductService(productRepo, categoryRepo, imageRepo, hub, s.cfg.LegacyCategorySync, logger)
	vignetteService := vignetteUsecase.NewVignetteService(vignetteRepo, productRepo, imageRepo, hub, logger)
	imageService := imageUsecase.NewImageService(imageRepo, store, hub, s.cfg.UploadMaxBytes, logger)

	// ----- Bootstrap admin -----
	bootCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	if err := authService.EnsureAdminExists(bootCtx, s.cfg.AdminUsername, s.cfg.AdminPassword, s.cfg.AdminEmail); err != nil {
		// Don't fail startup, just log the error
		logger.Error("failed to ensure admin exists", zap.Error(err))
	}
	cancel()

	// ----- Handlers -----
	handlers := &Handlers{
		AuthHandler:     authHandler.NewAuthHandler(authService, cookie, logger),
		CategoryHandler: categoryHandler.NewCategoryHandler(categoryService),
		ProductHandler:  productHandler.NewProductHandler(productService),
		VignetteHandler: vignetteHandler.NewVignetteHandler(vignetteService),
		ImageHandler:    imageHandler.NewImageHandler(imageService),
		WSHandler:       wsHandler.NewWebSocketHandler(hub, logger),
		AuthMiddleware:  middleware.NewAuthMiddleware(authService, cookie, logger),
	}

	// ----- Middlewares -----
	s.engine.Use(
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
		middleware.CORSMiddleware(s.cfg.AllowedOrigins),
	)

	// ----- Router -----
	SetupRouter(s.engine, handlers, StaticConfig{PublicDir: s.cfg.PublicDir, UploadDir: uploadDir})

	// ----- Start HTTP -----
	s.httpServer = &http.Server{
		Addr:              s.cfg.HTTPAddr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("server running",
		zap.String("addr", s.cfg.HTTPAddr),
		zap.String("admin", "/admin.html"),
		zap.String("display", "/display.html"),
	)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and releases every connection.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	if s.httpServer != nil {
		err = s.httpServer.Shutdown(ctx)
	}
	if s.stopHub != nil {
		s.stopHub()
	}
	if s.redis != nil {
		if cerr := s.redis.Close(); cerr != nil {
			s.logger.Warn("failed to close Redis", zap.Error(cerr))
		}
	}
	if s.pool != nil {
		s.pool.Close()
	}
	return err
}

// newBlobStore returns the configured store and, for the disk driver, the
// directory to serve under /uploads.
func (s *Server) newBlobStore(ctx context.Context) (storage.BlobStore, string, error) {
	switch s.cfg.StorageDriver {
	case "s3":
		store, err := storage.NewS3Store(ctx, storage.S3Config{
			Bucket:        s.cfg.S3.Bucket,
			Prefix:        s.cfg.S3.Prefix,
			Region:        s.cfg.S3.Region,
			BaseEndpoint:  s.cfg.S3.BaseEndpoint,
			AccessKey:     s.cfg.S3.AccessKey,
			SecretKey:     s.cfg.S3.SecretKey,
			PublicBaseURL: s.cfg.S3.PublicBaseURL,
		})
		if err != nil {
			return nil, "", err
		}
		s.logger.Info("storing uploads in S3", zap.String("bucket", s.cfg.S3.Bucket))
		return store, "", nil
	case "disk", "":
		store, err := storage.NewDiskStore(s.cfg.UploadDir, "/uploads")
		if err != nil {
			return nil, "", err
		}
		s.logger.Info("storing uploads on disk", zap.String("dir", s.cfg.UploadDir))
		return store, s.cfg.UploadDir, nil
	}
	return nil, "", fmt.Errorf("unknown storage driver %q", s.cfg.StorageDriver)
}
