package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"ecommerce-shop/internal/config"
	"ecommerce-shop/internal/db"
	"ecommerce-shop/internal/httpserver"
	"ecommerce-shop/internal/identity"
	"ecommerce-shop/internal/kv"
	"ecommerce-shop/internal/notify"
	cartsvc "ecommerce-shop/internal/service/cart"
	favoritessvc "ecommerce-shop/internal/service/favorites"
	cartstorage "ecommerce-shop/internal/storage/cart"
	favoritesstorage "ecommerce-shop/internal/storage/favorites"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	store, cleanup, err := buildStore(ctx, cfg)
	if err != nil {
		logger.Fatalf("init storage backend %q: %v", cfg.StorageBackend, err)
	}
	defer cleanup()

	notifier := notify.NewLogNotifier(logger)
	cartCodec := cartstorage.NewCodec(store, logger)
	favoritesCodec := favoritesstorage.NewCodec(store, logger)
	cartManager := cartsvc.New(ctx, cartCodec, notifier, logger)
	favoritesManager := favoritessvc.New(favoritesCodec, identity.ContextProvider{}, notifier, logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, store, httpserver.Deps{
		Cart:        cartManager,
		Favorites:   favoritesManager,
		CORSOrigins: cfg.CORSOrigins,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s (storage backend %s)", cfg.HTTPAddr, cfg.StorageBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}

func buildStore(ctx context.Context, cfg config.Config) (kv.Store, func(), error) {
	switch cfg.StorageBackend {
	case "memory":
		return kv.NewMemory(), func() {}, nil
	case "file":
		store, err := kv.NewFile(cfg.StorageDir)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, err
		}
		return kv.NewRedis(client), func() { client.Close() }, nil
	case "postgres":
		pool, err := db.Connect(ctx, cfg.DBConnString)
		if err != nil {
			return nil, nil, err
		}
		return kv.NewPostgres(pool), func() { pool.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
