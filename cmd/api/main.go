package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"brightline/internal/config"
	"brightline/internal/database"
	"brightline/internal/middleware"
	"brightline/internal/notification"
	"brightline/internal/pkg/jwt"
	"brightline/internal/pkg/logger"
	"brightline/internal/pkg/upload"
	"brightline/internal/realtime"
	"brightline/internal/repository"
	"brightline/internal/scheduler"
	"brightline/internal/server"
	"brightline/internal/storage"
)

const (
	shutdownTimeout     = 15 * time.Second
	maintenanceInterval = time.Hour
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := logger.Init(logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		FilePath:   cfg.Log.FilePath,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	}); err != nil {
		log.Fatalf("logger: %v", err)
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := run(cfg); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.Database.URL)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	store, err := newStorage(cfg)
	if err != nil {
		return err
	}
	uploads := upload.NewRouter(store, cfg.Upload.MaxFileSize)
	if err := uploads.EnsureDirs(ctx); err != nil {
		return err
	}

	// Redis backs rate limiting and token revocation when configured.
	var (
		rateStore middleware.RateStore
		denylist  jwt.Denylist
		sweeper   *middleware.MemoryRateStore
	)
	if cfg.Redis.URL != "" {
		rdb, err := newRedis(ctx, cfg.Redis.URL)
		if err != nil {
			return err
		}
		defer rdb.Close()
		rateStore = middleware.NewRedisRateStore(rdb)
		denylist = jwt.NewRedisDenylist(rdb)
		logger.Info("using Redis for rate limits and token revocation")
	} else {
		sweeper = middleware.NewMemoryRateStore()
		rateStore = sweeper
		denylist = jwt.NewMemoryDenylist()
	}

	var sink notification.Sink = notification.LogSink{}
	if cfg.Mail.NATSURL != "" {
		natsSink, err := notification.NewNATSSink(cfg.Mail.NATSURL, cfg.Mail.Subject)
		if err != nil {
			return err
		}
		defer natsSink.Close()
		sink = natsSink
	}
	dispatcher := notification.NewDispatcher(sink, notification.DefaultQueueSize)

	hub := realtime.NewHub()
	defer hub.Close()

	jobs := scheduler.New()
	maintenance := scheduler.Maintenance(repository.NewQuoteRepository(db), repository.NewUserRepository(db))
	for name, task := range maintenance {
		if err := jobs.Every(name, maintenanceInterval, task); err != nil {
			return err
		}
	}
	if sweeper != nil {
		if err := jobs.Every(scheduler.JobSweepRateLimits, cfg.RateLimit.Window, scheduler.SweepRateLimits(sweeper)); err != nil {
			return err
		}
	}
	jobs.Start()
	defer jobs.Stop()

	router := server.NewRouter(server.Deps{
		Config:    cfg,
		DB:        db,
		Tokens:    jwt.New(cfg.JWT.Secret, cfg.JWT.ExpiresIn, denylist),
		Store:     store,
		Uploads:   uploads,
		Notifier:  dispatcher,
		Hub:       hub,
		RateStore: rateStore,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "port", cfg.App.Port, "env", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", "error", err)
	}
	if err := dispatcher.Close(shutdownCtx); err != nil {
		logger.Warn("notification queue not drained", "error", err)
	}
	return nil
}

func newStorage(cfg *config.Config) (storage.Backend, error) {
	if cfg.Storage.Type == "minio" {
		logger.Info("using MinIO storage", "endpoint", cfg.Storage.Endpoint, "bucket", cfg.Storage.Bucket)
		return storage.NewMinIO(storage.MinIOConfig{
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			Bucket:    cfg.Storage.Bucket,
			UseSSL:    cfg.Storage.UseSSL,
			PublicURL: cfg.Storage.PublicURL,
		})
	}
	return storage.NewLocal(cfg.Upload.Dir, "/uploads"), nil
}

func newRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, err
	}
	return rdb, nil
}
