package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/storekit/checkout/internal/adapter/client"
	"github.com/storekit/checkout/internal/adapter/handler"
	"github.com/storekit/checkout/internal/adapter/launcher"
	"github.com/storekit/checkout/internal/adapter/payment"
	"github.com/storekit/checkout/internal/adapter/storage"
	"github.com/storekit/checkout/internal/config"
	"github.com/storekit/checkout/internal/core/domain"
	"github.com/storekit/checkout/internal/core/service"
	"github.com/storekit/checkout/internal/port"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	// Remote commerce API client
	restClient := client.NewRESTClient(cfg.APIBaseURL, cfg.APIKey)
	restClient.SetLogger(logger)

	// Wallet-side collaborators. The simulated authorizer stands in for
	// a platform payment UI.
	authorizer := &payment.Simulated{
		Approve: cfg.WalletApprove,
		Delay:   200 * time.Millisecond,
	}
	capability := payment.StaticCapability{
		Payments: cfg.WalletPayments,
		Cards:    cfg.WalletCards,
	}

	var webLauncher port.WebCheckoutLauncher = launcher.NewLog(logger)
	if cfg.OpenBrowser {
		webLauncher = launcher.NewBrowser(logger)
	}

	checkoutService, err := service.NewCheckoutService(restClient, authorizer, webLauncher, capability, service.Config{
		MerchantID:    cfg.MerchantID,
		CartTokenPath: domain.CheckoutPath(cfg.CartTokenPath),
	})
	if err != nil {
		log.Fatalf("failed to init checkout service: %v", err)
	}
	checkoutService.SetLogger(logger)

	// Optional MySQL attempt journal
	var db *sql.DB
	if cfg.MySQLDSN != "" {
		db, err = sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatalf("failed to connect mysql: %v", err)
		}
		db.SetMaxOpenConns(50)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)

		if err := db.PingContext(ctx); err != nil {
			log.Fatalf("failed to ping mysql: %v", err)
		}
		checkoutService.SetJournal(storage.NewMySQLAdapter(db))
		logger.Info("attempt journal enabled")
	}

	// Optional Redis shop cache and expire guard
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			PoolSize: 100,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("failed to connect redis: %v", err)
		}
		checkoutService.SetCache(storage.NewRedisAdapter(rdb))
		logger.Info("shop cache enabled")
	}

	if shop, err := checkoutService.LoadShop(ctx); err != nil {
		logger.Warn("shop metadata not loaded", zap.Error(err))
	} else {
		logger.Info("shop loaded", zap.String("name", shop.Name), zap.String("currency", shop.Currency))
	}

	httpHandler := handler.NewHTTPHandler(checkoutService)
	mux := http.NewServeMux()
	mux.HandleFunc("/health", httpHandler.HealthCheck)
	mux.HandleFunc("/api/checkout/wallet", httpHandler.StartWalletCheckout)
	mux.HandleFunc("/api/checkout/web", httpHandler.StartWebCheckout)
	mux.HandleFunc("/api/checkout/cart-token", httpHandler.StartCartTokenCheckout)

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: mux,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("http server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	httpServer.Shutdown(shutdownCtx)

	if rdb != nil {
		rdb.Close()
	}
	if db != nil {
		db.Close()
	}
	logger.Info("stopped")
}
