package cmd

import (
	"Storefront/billing"
	"Storefront/config"
	"Storefront/jwt"
	"Storefront/repository"
	"Storefront/routers"
	"Storefront/services"
	"context"
	"errors"
	"fmt"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "啟動HTTP伺服器與地址同步worker",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			return runServe(cmd.Context(), cfg, logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "監聽位址，覆蓋設定檔")
	return cmd
}

func newBillingProvider(cfg config.Config, logger *slog.Logger) billing.Provider {
	if cfg.Billing.SecretKey == "" {
		logger.Warn("billing secret key not set, billing calls are disabled")
		return billing.NewLogProvider(logger)
	}
	return billing.NewStripeProvider(cfg.Billing.SecretKey)
}

func newMirrorQueue(cfg config.Config, rdb *redis.Client) (billing.MirrorQueue, error) {
	switch cfg.Billing.MirrorQueue {
	case "memory":
		return billing.NewMemoryQueue(cfg.Billing.MirrorBuffer), nil
	case "redis":
		return billing.NewRedisQueue(rdb, cfg.Billing.MirrorQueueKey), nil
	default:
		return nil, fmt.Errorf("unsupported mirror queue %q", cfg.Billing.MirrorQueue)
	}
}

func runServe(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := config.SetupDatabaseConnection(cfg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	rdb, err := config.SetupRedisConnection(ctx, cfg)
	if err != nil {
		return err
	}
	defer rdb.Close()

	signer, err := jwt.LoadSigner(cfg.JWT.PrivateKeyPath, cfg.JWT.PublicKeyPath, cfg.JWT.TTL)
	if err != nil {
		return fmt.Errorf("load signer: %w", err)
	}

	queue, err := newMirrorQueue(cfg, rdb)
	if err != nil {
		return err
	}
	provider := newBillingProvider(cfg, logger)

	users := repository.NewUserRepository(db)
	products := repository.NewProductRepository(db)
	creds := services.NewCredentialService(0)

	gin.SetMode(gin.ReleaseMode)
	router, err := routers.SetupRouters(routers.Dependencies{
		Sessions:     services.NewSessionIssuer(users, creds, signer, provider, cfg.Billing.CreateTimeout, logger),
		Profiles:     services.NewProfileMutator(users, creds, queue, cfg.Billing.DefaultCountry, logger),
		Carts:        services.NewCartReconciler(repository.NewCartRepository(db), products, logger),
		Users:        users,
		Activity:     repository.NewActivityRepository(db),
		Products:     products,
		ProductCache: repository.NewProductCache(rdb, products, cfg.Redis.ProductCacheTTL, logger),
		Verifier:     signer,
		Logger:       logger,
	})
	if err != nil {
		return fmt.Errorf("setup routers: %w", err)
	}

	worker := billing.NewMirrorWorker(queue, provider, logger, billing.WorkerOptions{
		Workers: cfg.Billing.MirrorWorkers,
		Timeout: cfg.Billing.MirrorTimeout,
		Retries: *cfg.Billing.MirrorRetries,
		Backoff: cfg.Billing.MirrorBackoff,
	})
	workerCtx, stopWorker := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		worker.Run(workerCtx)
	}()

	server := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server started", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case serveErr = <-errCh:
		logger.Error("server failure", "error", serveErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown", "error", err)
	}

	//HTTP請求全部結束後才停止worker
	stopWorker()
	wg.Wait()
	logger.Info("server stopped")
	return serveErr
}
