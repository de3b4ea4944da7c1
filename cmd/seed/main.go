package main

import (
	"context"
	"log"

	"smart-blog-be/internal/config"
	"smart-blog-be/internal/model"
	"smart-blog-be/internal/pkg/logger"
	"smart-blog-be/internal/repository/unitofwork"
	"smart-blog-be/internal/service"
	"smart-blog-be/pkg/database"
)

func main() {
	cfg := config.Load()

	db, err := database.NewGormDB(cfg.Database.Driver, cfg.Database.Connection)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}
	if err := db.AutoMigrate(model.All()...); err != nil {
		log.Fatal("Error: Failed to migrate:", err)
	}

	uowFactory := unitofwork.NewRepositoryFactory(db)
	ctx := context.Background()

	log.Println("Seeding demo author...")
	authService := service.NewAuthService(uowFactory, cfg.Auth.JwtSecret, cfg.Auth.JwtExpiry)
	authorId := SeedDemoUser(ctx, authService)

	log.Println("Seeding demo posts...")
	// No bus here: the API is not running, so there is nothing to notify.
	postService := service.NewPostService(uowFactory, nil, nil, logger.NewNopLogger())
	SeedDemoPosts(ctx, postService, authorId)

	log.Println("Seeding completed!")
}
