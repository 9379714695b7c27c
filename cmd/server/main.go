package main

import (
	"GophMart/internal/auth"
	"GophMart/internal/config"
	"GophMart/internal/handlers"
	"GophMart/internal/metrics"
	"GophMart/internal/middleware"
	"GophMart/internal/repo"
	"GophMart/internal/service"
	"GophMart/internal/storage"
	"GophMart/internal/storage/fs"
	"GophMart/internal/storage/memory"
	"GophMart/internal/storage/s3"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	repo.SetLogger(sugar)
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	store, err := newObjectStore(ctx, cfg)
	if err != nil {
		sugar.Fatalw("failed to initialize blob storage", "backend", cfg.BlobBackend, "error", err)
	}

	tokens, err := auth.NewTokenService(cfg.AuthSecret, cfg.AuthAlgorithm, cfg.TokenTTL())
	if err != nil {
		sugar.Fatalw("invalid auth settings", "error", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	rec := metrics.NewCollector(reg)

	userRepo := repo.NewUserRepository(gormDB)
	itemRepo := repo.NewItemRepository(gormDB)
	blobRepo := repo.NewBlobRepository(gormDB)

	blobService := service.NewBlobService(blobRepo, store, sugar, rec)
	itemService := service.NewItemService(itemRepo, blobService, sugar, rec, service.ItemOptions{
		VerifyAttachmentOwnershipOnUpdate: cfg.VerifyAttachmentOwnershipOnUpdate,
	})

	h := handlers.NewHandler(handlers.Services{
		Users:       service.NewUserService(userRepo, tokens),
		Identity:    service.NewIdentityResolver(tokens, userRepo),
		Items:       itemService,
		Blobs:       blobService,
		Attachments: service.NewAttachmentService(itemService, itemRepo, blobService, sugar, rec),
	}, rec, reg, sugar, cfg)

	addr := cfg.BaseURL

	sugar.Infow(
		"Starting server",
		"addr", addr,
	)

	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"EnableHTTPS", cfg.EnableHTTPS,
		"DatabaseDSN", cfg.DatabaseDSN,
		"BlobBackend", cfg.BlobBackend,
		"BlobMaxSizeMB", cfg.BlobMaxSizeMB,
		"VerifyAttachmentOwnershipOnUpdate", cfg.VerifyAttachmentOwnershipOnUpdate,
	)

	srv := &http.Server{Addr: addr, Handler: h.Router, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
		defer stop()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			sugar.Errorw("Server shutdown failed", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		sugar.Fatalw("Server failed", "error", err)
	}
	sugar.Infow("Server stopped")
}

// newObjectStore выбирает хранилище байтов файлов по BLOB_BACKEND.
func newObjectStore(ctx context.Context, cfg *config.Config) (storage.ObjectStore, error) {
	switch cfg.BlobBackend {
	case "fs":
		return fs.New(cfg.BlobDir)
	case "s3":
		return s3.New(ctx, s3.Config{
			Region:                 cfg.S3Region,
			Bucket:                 cfg.S3Bucket,
			AccessKeyID:            cfg.S3AccessKeyID,
			SecretAccessKey:        cfg.S3SecretAccessKey,
			Endpoint:               cfg.S3Endpoint,
			UsePathStyle:           cfg.S3UsePathStyle,
			CreateBucketIfNotExist: cfg.S3CreateBucket,
		})
	case "memory":
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown blob backend %q", cfg.BlobBackend)
	}
}
