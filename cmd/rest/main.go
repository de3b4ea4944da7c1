package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"smart-blog-be/internal/bootstrap"
	"smart-blog-be/internal/config"
	"smart-blog-be/internal/model"
	"smart-blog-be/internal/server"
	"smart-blog-be/internal/tracer"
	"smart-blog-be/pkg/database"
)

func main() {
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	cfg := config.Load()

	gormDB, err := database.NewGormDB(cfg.Database.Driver, cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// SQLite is the zero-setup default; create its tables on boot. Postgres
	// deployments run cmd/migrate.
	if cfg.Database.Driver == database.DriverSQLite {
		if err := gormDB.AutoMigrate(model.All()...); err != nil {
			log.Panicf("AutoMigrate failed: %v", err)
		}
	}

	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Println("Background: Starting Consumer Service...")
	if err := container.ConsumerService.Consume(ctx); err != nil {
		log.Printf("Background Consumer Error: %v", err)
	}
	if container.AuditService != nil {
		if err := container.AuditService.Start(); err != nil {
			log.Printf("[WARN] Audit subscriber not started: %v", err)
		}
	}

	srv := server.New(cfg, container)

	go func() {
		<-ctx.Done()
		log.Println("Shutting down...")
		if err := srv.Shutdown(); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	if err := srv.Run(); err != nil {
		log.Printf("Server stopped: %v", err)
	}
}
