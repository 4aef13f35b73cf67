package database

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"Stowed/internal/config"
	"Stowed/internal/models"
)

// SetupDatabase opens the configured database and migrates the schema.
// sqlite with an empty DSN runs fully in memory, which is what the
// development server and the integration tests use.
func SetupDatabase(cfg *config.Configuration) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)
	gormConfig := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)}

	switch cfg.Server.Database.Driver {
	case "postgres":
		db, err = gorm.Open(postgres.Open(cfg.Server.Database.DSN), gormConfig)
	case "sqlite", "":
		dsn := cfg.Server.Database.DSN
		if dsn == "" {
			dsn = "file::memory:?cache=shared"
		}
		db, err = gorm.Open(sqlite.Open(dsn), gormConfig)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Server.Database.Driver)
	}
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&models.Folder{},
		&models.File{},
		&models.ShareGrant{},
		&models.DownloadTicket{},
		&models.ClipboardEntry{},
	)
	if err != nil {
		return nil, err
	}
	return db, nil
}

func CloseDatabase(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Could not get DB instance: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	}
}
