package main

import (
	"log"
	"os"

	"smart-blog-be/internal/model"
	"smart-blog-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	driver := os.Getenv("DB_DRIVER")
	if driver == "" {
		driver = database.DriverSQLite
	}
	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		if driver != database.DriverSQLite {
			log.Fatal("Error: DB_CONNECTION_STRING is not set")
		}
		dsn = "blog.db"
	}

	db, err := database.NewGormDB(driver, dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Printf("Running AutoMigrate (%s)...", driver)
	if err := db.AutoMigrate(model.All()...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	if driver == database.DriverPostgres {
		// Serves the public feed: newest published posts first.
		sql := `CREATE INDEX IF NOT EXISTS idx_posts_status_updated_at ON posts (status, updated_at DESC);`
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to create feed index: %v", err)
		}
	}

	log.Println("✅ Success: Database migration completed successfully via GORM.")
}
