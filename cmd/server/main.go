package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"sellerhub/internal/auth"
	"sellerhub/internal/config"
	"sellerhub/internal/customer"
	"sellerhub/internal/infrastructure/logger"
	"sellerhub/internal/infrastructure/metrics"
	"sellerhub/internal/infrastructure/mysql"
	"sellerhub/internal/infrastructure/tracing"
	"sellerhub/internal/order"
	"sellerhub/internal/product"
	"sellerhub/internal/server"
	"sellerhub/internal/settings"
	"sellerhub/internal/tenant"
	tenantrepo "sellerhub/internal/tenant/repository"
)

const (
	defaultConfigPath = "internal/config/config.yaml"
	shutdownTimeout   = 10 * time.Second
	migrateTimeout    = 30 * time.Second
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("loading .env: %v", err)
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	shutdownTracing, err := tracing.Setup(context.Background(), cfg.Tracing, zapLogger)
	if err != nil {
		zapLogger.Fatal("setting up tracing", zap.Error(err))
	}

	db, err := mysql.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()
	zapLogger.Info("database connected", zap.String("host", cfg.Database.Host), zap.String("name", cfg.Database.Name))

	if cfg.Database.AutoMigrate {
		ctx, cancel := context.WithTimeout(context.Background(), migrateTimeout)
		err := mysql.Migrate(ctx, db)
		cancel()
		if err != nil {
			zapLogger.Fatal("migrating schema", zap.Error(err))
		}
		zapLogger.Info("schema migrated")
	}

	resolver := tenant.NewResolver(tenantrepo.NewMySQLUserRepository(db), zapLogger)
	m := metrics.New()

	productCtrl := product.NewModule(db, resolver, cfg.Order.TxTimeout, zapLogger)
	customerCtrl := customer.NewModule(db, resolver, zapLogger)
	orderCtrl := order.NewModule(db, resolver, m, cfg.Order, zapLogger)
	settingsCtrl := settings.NewModule(db, resolver, zapLogger)

	router := server.NewRouter(server.Routes{
		Products:  productCtrl,
		Customers: customerCtrl,
		Orders:    orderCtrl,
		Settings:  settingsCtrl,
		Verifier:  auth.NewVerifier(cfg.Auth.JWTSecret),
		Registry:  m.Registry,
		DB:        db,
	}, zapLogger)

	srv := server.New(cfg.Server, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	if err := shutdownTracing(ctx); err != nil {
		zapLogger.Warn("flushing traces", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}
