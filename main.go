package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"publicweb/internal/apiclient"
	"publicweb/internal/cache"
	intconfig "publicweb/internal/config"
	intdb "publicweb/internal/db"
	router "publicweb/internal/http"
	"publicweb/internal/jobs"
	"publicweb/internal/repositories"
	"publicweb/internal/services"

	"github.com/gin-gonic/gin"
)

func main() {
	env, err := intconfig.LoadEnv()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	opts := router.Options{
		PendingRefresh: env.PendingRefresh,
		BookingURL:     env.BookingURL,
		CORSOrigins:    env.CORSOrigins,
		HealthChecks:   map[string]func(ctx context.Context) error{},
	}

	var expireJob *jobs.ExpireOrdersJob
	if env.LocalBackend() {
		db, err := intconfig.ConnectDB(env.DBDSN)
		if err != nil {
			log.Fatalf("Database unavailable: %v", err)
		}
		defer intconfig.CloseDB()
		opts.HealthChecks["db"] = intconfig.PingDB
		opts.HealthChecks["schema"] = func(ctx context.Context) error {
			return intdb.RequireTables(ctx, db, intdb.CheckoutTables...)
		}

		orders := repositories.OrderRepository{DB: db}
		svc := &services.CheckoutService{
			Orders:     orders,
			Signer:     services.PaymentFormSigner{BaseURL: env.PaymentFormURL, Secret: []byte(env.PaymentFormSecret)},
			SessionTTL: env.PaymentSessionTTL,
		}
		if env.RedisAddr != "" {
			rc := cache.NewRedisCache(cache.Options{
				Addr:     env.RedisAddr,
				Password: env.RedisPassword,
				DB:       env.RedisDB,
				TTL:      env.StatusCacheTTL,
			})
			defer rc.Close()
			svc.Cache = rc
			opts.HealthChecks["redis"] = rc.Ping
		}
		opts.Local = svc
		opts.Backend = services.LocalBackend{Service: *svc}

		expireJob = jobs.NewExpireOrdersJob(orders, "")
		if err := expireJob.Start(); err != nil {
			log.Fatalf("Failed to start jobs: %v", err)
		}
		log.Println("Checkout API served from local database")
	} else {
		opts.Backend = apiclient.New(env.BackendAPIURL, env.BackendTimeout)
		log.Printf("Checkout API proxied to %s", env.BackendAPIURL)
	}

	r := router.NewRouter(opts)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server running on http://localhost%s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	if expireJob != nil {
		expireJob.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped cleanly.")
}
