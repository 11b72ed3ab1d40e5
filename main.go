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

	"go.uber.org/zap"

	"github.com/Ayush-478/Veggio/config"
	controller "github.com/Ayush-478/Veggio/controllers"
	middleware "github.com/Ayush-478/Veggio/middlewares"
	"github.com/Ayush-478/Veggio/routes"
	"github.com/Ayush-478/Veggio/services"
	"github.com/Ayush-478/Veggio/store"
)

func main() {
	if err := config.LoadEnv(); err != nil {
		log.Fatalf("Error loading .env file: %v", err)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func openStore(ctx context.Context, cfg config.Config, logger *zap.Logger) (store.Store, error) {
	if cfg.Store == config.StoreMemory {
		logger.Warn("using the in-memory store, data is lost on restart")
		return store.NewMemoryStore(), nil
	}
	client, err := config.DBinstance(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	st := store.NewMongoStore(client, cfg.DBName)
	if err := st.EnsureIndexes(ctx); err != nil {
		_ = st.Close(context.Background())
		return nil, err
	}
	return st, nil
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer st.Close(context.Background())

	hub := services.NewRealtimeHub(logger)
	carts := services.NewCartService(st)
	users := services.NewUserService(st, cfg.SecretKey)

	if cfg.AdminEmail != "" {
		if _, err := users.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			return err
		}
		logger.Info("admin account ready", zap.String("email", cfg.AdminEmail))
	}

	c := &controller.Controller{
		Catalog:  services.NewCatalogService(st),
		Carts:    carts,
		Orders:   services.NewOrderService(st, carts, services.NewLedger(st, logger), hub, logger),
		Chat:     services.NewChatService(st, services.NewAssistant(st, logger)),
		Trackers: services.NewTrackerService(st),
		Users:    users,
		Hub:      hub,
		Logger:   logger,
		Timeout:  cfg.RequestTimeout,
	}

	router := routes.NewRouter(c, middleware.NewAuth(cfg.SecretKey, st, logger), logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server running", zap.String("port", cfg.Port), zap.String("store", cfg.Store))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
