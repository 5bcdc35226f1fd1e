package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"nina-movie/internal/apiclient"
	"nina-movie/internal/config"
	apphttp "nina-movie/internal/http"
	"nina-movie/internal/repository"
	redisrepo "nina-movie/internal/repository/redis"
	"nina-movie/internal/repository/sqlite"
	"nina-movie/internal/service"
	"nina-movie/internal/session"
	"nina-movie/internal/storage"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	if !cfg.App.Production {
		logger.SetLevel(logrus.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tokens, closeTokens, err := openTokenStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("open token store: %v", err)
	}
	defer closeTokens()

	if err := tokens.Init(ctx); err != nil {
		logger.Fatalf("init token repository: %v", err)
	}

	timeout := time.Duration(cfg.API.TimeoutSeconds) * time.Second
	store := session.NewStore()

	// The auth gateway talks to the API without the authenticator so a
	// failing refresh never triggers another refresh.
	authAPI, err := apiclient.New(cfg.API.BaseURL, &http.Client{Timeout: timeout}, logger)
	if err != nil {
		logger.Fatalf("build auth client: %v", err)
	}
	authService := service.NewAuthService(ctx, authAPI, tokens, store, logger)

	catalogAPI, err := apiclient.New(cfg.API.BaseURL, &http.Client{
		Timeout:   timeout,
		Transport: apiclient.NewAuthenticator(http.DefaultTransport, authService, logger),
	}, logger)
	if err != nil {
		logger.Fatalf("build catalog client: %v", err)
	}
	movieService := service.NewMovieService(catalogAPI, logger)

	storageSvc, err := buildStorage(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("setup storage: %v", err)
	}
	mediaService := service.NewMediaService(service.MediaConfig{
		Bucket:    cfg.Storage.Bucket,
		KeyPrefix: cfg.Storage.KeyPrefix,
		URLExpiry: time.Duration(cfg.Storage.PresignMinutes) * time.Minute,
		Logger:    logger,
	}, storageSvc)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler := apphttp.NewHandler(authService, store, movieService, mediaService, cfg.App.Name, logger)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		logger.Infof("%s %s listening on %s (api %s)", cfg.App.Name, cfg.App.Version, cfg.Server.Addr, cfg.API.BaseURL)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
}

func openTokenStore(ctx context.Context, cfg config.Config, logger *logrus.Logger) (repository.KeyValueRepository, func(), error) {
	if cfg.Database.Driver == "redis" {
		client, err := redisrepo.Open(ctx, cfg.Redis.URL)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("storing tokens in redis")
		return redisrepo.NewKVRepository(client), func() { client.Close() }, nil
	}

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		return nil, nil, err
	}
	logger.Infof("storing tokens in %s", cfg.Database.Path)
	return sqlite.NewKVRepository(db), func() { db.Close() }, nil
}

// buildStorage returns nil when no bucket is configured; playback then
// falls back to each movie's own video URL.
func buildStorage(ctx context.Context, cfg config.Config, logger *logrus.Logger) (storage.Service, error) {
	if cfg.Storage.Bucket == "" {
		logger.Info("no storage bucket configured, media admin disabled")
		return nil, nil
	}

	loadOpts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(cfg.Storage.Region),
	}
	if cfg.AWS.Profile != "" {
		loadOpts = append(loadOpts, awscfg.WithSharedConfigProfile(cfg.AWS.Profile))
	}

	awsCfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Storage.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Storage.Endpoint)
			o.UsePathStyle = true
		}
	})
	logger.Infof("using s3 bucket %s (region %s)", cfg.Storage.Bucket, cfg.Storage.Region)
	return storage.NewS3Service(client), nil
}
