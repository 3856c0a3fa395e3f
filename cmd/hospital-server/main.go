package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caremesh/hospital/pkg/appointments"
	"github.com/caremesh/hospital/pkg/billing"
	"github.com/caremesh/hospital/pkg/common/config"
	"github.com/caremesh/hospital/pkg/common/database"
	"github.com/caremesh/hospital/pkg/common/kafka"
	"github.com/caremesh/hospital/pkg/common/logger"
	"github.com/caremesh/hospital/pkg/common/middleware"
	"github.com/caremesh/hospital/pkg/directory"
	"github.com/caremesh/hospital/pkg/patients"
	"github.com/caremesh/hospital/pkg/rooms"
	"github.com/gorilla/mux"
)

func main() {
	logger.Init()
	cfg := config.Load()

	db, err := database.ConnectPostgres(cfg)
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to connect to postgres")
	}
	defer database.ClosePostgres(db)

	redisClient, err := database.ConnectRedis(cfg)
	if err != nil {
		// The room cache is an optimization; the server runs without it.
		logger.Log.WithError(err).Warn("redis unavailable, room cache disabled")
		redisClient = nil
	}

	roomCache := rooms.NewCache(redisClient, cfg.RoomCacheTTL)
	allocator := rooms.NewAllocator(db, roomCache)

	roomRepo := rooms.NewRepository(db)
	patientRepo := patients.NewRepository(db, allocator)
	billingRepo := billing.NewRepository(db)
	appointmentRepo := appointments.NewRepository(db)
	directoryRepo := directory.NewRepository(db)

	for name, migrate := range map[string]func() error{
		"rooms":        roomRepo.AutoMigrate,
		"patients":     patientRepo.AutoMigrate,
		"billing":      billingRepo.AutoMigrate,
		"appointments": appointmentRepo.AutoMigrate,
		"directory":    directoryRepo.AutoMigrate,
	} {
		if err := migrate(); err != nil {
			logger.Log.WithError(err).WithField("tables", name).Fatal("failed to migrate")
		}
	}

	policy, err := billing.LoadPolicy(cfg.BillingPolicyPath)
	if err != nil {
		logger.Log.WithError(err).Warn("falling back to default billing policy")
		policy = billing.DefaultPolicy()
	}

	producer := kafka.NewProducer(cfg.KafkaBrokers, cfg.EventsTopic)
	defer producer.Close()

	roomService := rooms.NewService(roomRepo, roomCache)
	patientService := patients.NewService(patientRepo, allocator, directoryRepo, producer)
	billingService := billing.NewService(billingRepo, policy, producer)
	appointmentService := appointments.NewService(appointmentRepo, directoryRepo, producer)

	router := mux.NewRouter()
	router.Use(middleware.Recovery)
	router.Use(middleware.Logging)
	router.Use(middleware.CORS)
	router.Use(middleware.BodyLimit(cfg.MaxRequestBody))
	router.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	}).Methods(http.MethodGet)

	router.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ready"}`))
	}).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()
	rooms.NewHandler(roomService).Register(api)
	patients.NewHandler(patientService).Register(api)
	billing.NewHandler(billingService).Register(api)
	appointments.NewHandler(appointmentService).Register(api)
	directory.NewHandler(directoryRepo).Register(api)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		logger.Log.WithFields(map[string]interface{}{
			"host": cfg.ServerHost,
			"port": cfg.ServerPort,
		}).Info("Hospital server started")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.WithError(err).Fatal("failed to start server")
		}
	}()

	go func() {
		ticker := time.NewTicker(cfg.ReconcileInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := roomService.Reconcile(context.Background()); err != nil {
					logger.Log.WithError(err).Warn("room reconcile job failed")
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down hospital server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Log.WithError(err).Error("server forced to shutdown")
	}

	logger.Log.Info("Hospital server stopped")
}
