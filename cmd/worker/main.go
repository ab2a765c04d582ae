package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"ai-learndocs-be/internal/bootstrap"
	"ai-learndocs-be/internal/config"
	"ai-learndocs-be/internal/tracer"
	"ai-learndocs-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDB(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container, err := bootstrap.NewContainer(gormDB, cfg)
	if err != nil {
		log.Panicf("Unable to build container: %v", err)
	}
	defer container.Logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 4. Probe the vector store. A failed probe switches the store into
	// its in-process fallback for the lifetime of the worker.
	if err := container.VectorStore.Connect(ctx); err != nil {
		log.Printf("Vector store probe: %v", err)
	}

	// 5. Start the ingestion consumer
	if err := container.ConsumerService.Consume(ctx); err != nil {
		log.Panicf("Unable to start consumer: %v", err)
	}
	container.Logger.Info("worker", "Ingestion worker started", map[string]interface{}{
		"topic":          cfg.Ingestion.TopicName,
		"fallback_store": container.VectorStore.FallbackMode(),
	})

	// 6. Wait for shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	container.Logger.Info("worker", "Shutting down", nil)
	cancel()
	if container.EventPublisher != nil {
		container.EventPublisher.Close()
	}
}
