package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

func getLogger(level logger.LogLevel) logger.Interface {
	return logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true, // keep post bodies out of the SQL log
			Colorful:                  true,
		},
	)
}

func configureConnectionPool(db *gorm.DB, maxOpen int) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return nil
}

// NewGormDB opens the database for the given driver. SQLite takes a file
// path or a file: URI as dsn, postgres a libpq connection string or URL.
func NewGormDB(driver, dsn string) (*gorm.DB, error) {
	return open(driver, dsn, logger.Warn)
}

// NewGormDBFromDSN opens a postgres database.
func NewGormDBFromDSN(dsn string) (*gorm.DB, error) {
	return open(DriverPostgres, dsn, logger.Warn)
}

// NewSilentGormDB is NewGormDB without SQL logging, for tests and tools.
func NewSilentGormDB(driver, dsn string) (*gorm.DB, error) {
	return open(driver, dsn, logger.Silent)
}

func open(driver, dsn string, level logger.LogLevel) (*gorm.DB, error) {
	var (
		dialector gorm.Dialector
		maxOpen   = 100
	)
	switch driver {
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	case DriverSQLite, "":
		dialector = sqlite.Open(dsn)
		// SQLite allows a single writer.
		maxOpen = 1
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: getLogger(level),
	})
	if err != nil {
		return nil, err
	}

	if err := configureConnectionPool(db, maxOpen); err != nil {
		return nil, err
	}

	return db, nil
}
