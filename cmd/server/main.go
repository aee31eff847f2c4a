package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/damacus/iron-gallery/internal/config"
	"github.com/damacus/iron-gallery/internal/handlers"
	"github.com/damacus/iron-gallery/internal/logger"
	customMiddleware "github.com/damacus/iron-gallery/internal/middleware"
	"github.com/damacus/iron-gallery/internal/services"
	"github.com/damacus/iron-gallery/internal/storage"
)

const shutdownTimeout = 10 * time.Second

// backends are the external systems the server talks to.
type backends struct {
	client   services.MinioClient
	admin    services.MinioAdminClient
	metadata storage.FolderMetadataStore
}

func main() {
	cfg := config.MustLoad()

	log := logger.New(&logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, TimeFormat: "rfc3339"})
	logger.SetGlobal(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b, err := connect(ctx, cfg)
	if err != nil {
		log.With().Err(err).Logger().Fatal("failed to connect backends")
	}
	defer b.metadata.Close()

	e := newServer(cfg, log, b)

	if err := services.NewObjectStore(b.client, cfg.MinIO.Bucket, "", cfg.Gallery.MaxObjects).EnsureBucket(ctx); err != nil {
		log.WarnWith("gallery bucket is not reachable", err, map[string]any{"bucket": cfg.MinIO.Bucket})
	}

	go func() {
		log.Infof("listening on %s", cfg.HTTPServer.Address)
		if err := e.Start(cfg.HTTPServer.Address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.With().Err(err).Logger().Fatal("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.With().Err(err).Logger().Error("graceful shutdown failed")
	}
}

func connect(ctx context.Context, cfg *config.Config) (backends, error) {
	creds := credentials(cfg)
	factory := &services.RealMinioFactory{}

	client, err := factory.NewClient(creds)
	if err != nil {
		return backends{}, err
	}
	admin, err := factory.NewAdminClient(creds)
	if err != nil {
		return backends{}, err
	}

	connectCtx, cancel := context.WithTimeout(ctx, cfg.Metadata.ConnectTimeout+5*time.Second)
	defer cancel()
	metadata, err := storage.Open(connectCtx, cfg.Metadata)
	if err != nil {
		return backends{}, err
	}

	return backends{client: client, admin: admin, metadata: metadata}, nil
}

func credentials(cfg *config.Config) services.Credentials {
	return services.Credentials{
		Endpoint:  cfg.MinIO.Endpoint,
		AccessKey: cfg.MinIO.AccessKey,
		SecretKey: cfg.MinIO.SecretKey,
		UseSSL:    cfg.MinIO.UseSSL,
	}
}

func newServer(cfg *config.Config, log *logger.Logger, b backends) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handlers.NewRequestValidator()

	// Services
	baseURL := services.PublicBaseURL(credentials(cfg), cfg.MinIO.Bucket, cfg.MinIO.PublicBaseURL)
	objects := services.NewObjectStore(b.client, cfg.MinIO.Bucket, baseURL, cfg.Gallery.MaxObjects)
	gallerySvc := services.NewGalleryService(objects, b.metadata, services.GalleryOptions{
		RootPrefix:    cfg.Gallery.RootPrefix,
		RecentDefault: cfg.Gallery.RecentDefault,
		RecentMax:     cfg.Gallery.RecentMax,
	})
	deleter := services.NewDeletionCoordinator(objects, b.metadata, cfg.Gallery.RootPrefix)
	galleryHandler := handlers.NewGalleryHandler(gallerySvc, deleter)
	healthHandler := handlers.NewHealthHandler(services.NewHealthService(b.admin, b.metadata, cfg.MinIO.Bucket))

	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(customMiddleware.RequestContext(log))
	e.Use(customMiddleware.RequestLogger(log))
	e.Use(customMiddleware.SecurityHeaders())
	e.Use(customMiddleware.CORS(cfg.HTTPServer.AllowedOrigins))
	if cfg.HTTPServer.RequestTimeout > 0 {
		e.Use(middleware.ContextTimeoutWithConfig(middleware.ContextTimeoutConfig{
			Timeout: cfg.HTTPServer.RequestTimeout,
		}))
	}
	adminOnly := customMiddleware.AdminToken(cfg.AdminToken)

	// Public Routes
	e.GET("/health", healthHandler.Health)
	e.GET("/health/storage", healthHandler.Storage)
	e.GET("/gallery", galleryHandler.ListFolder)
	e.GET("/gallery/recent", galleryHandler.Recent)
	e.GET("/gallery/folder-metadata", galleryHandler.ListFolderMetadata)

	// Admin Routes
	e.DELETE("/gallery/folder/*", galleryHandler.DeleteFolder, adminOnly)
	e.DELETE("/gallery/image/*", galleryHandler.DeleteImage, adminOnly)
	e.POST("/gallery/folder-metadata", galleryHandler.SaveFolderMetadata, adminOnly)
	e.DELETE("/gallery/folder-metadata/:name", galleryHandler.DeleteFolderMetadata, adminOnly)

	return e
}
