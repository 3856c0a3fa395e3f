package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/caremesh/hospital/pkg/audit"
	"github.com/caremesh/hospital/pkg/common/config"
	"github.com/caremesh/hospital/pkg/common/database"
	"github.com/caremesh/hospital/pkg/common/kafka"
	"github.com/caremesh/hospital/pkg/common/logger"
)

func main() {
	logger.Init()
	cfg := config.Load()

	db, err := database.ConnectPostgres(cfg)
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to connect to postgres")
	}
	defer database.ClosePostgres(db)

	repo := audit.NewRepository(db)
	if err := repo.AutoMigrate(); err != nil {
		logger.Log.WithError(err).Fatal("failed to migrate audit tables")
	}

	consumer := kafka.NewConsumer(cfg.KafkaBrokers, cfg.EventsTopic, cfg.AuditGroupID)
	defer consumer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		logger.Log.WithField("topic", cfg.EventsTopic).Info("Audit worker started")
		if err := consumer.Consume(ctx, repo.HandleEvent); err != nil && !errors.Is(err, context.Canceled) {
			logger.Log.WithError(err).Error("consumer stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down audit worker...")
	cancel()
	<-done

	logger.Log.Info("Audit worker stopped")
}
