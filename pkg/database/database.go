package database

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// MemoryDSN names a private in-memory sqlite database. The random name keeps
// separate stores in one process apart.
func MemoryDSN() string {
	return fmt.Sprintf("file:pm-%s?mode=memory&cache=shared&_busy_timeout=5000", uuid.NewString())
}

// Open connects gorm to sqlite. now, when set, becomes gorm's clock so
// autoUpdateTime agrees with the caller's timestamps.
func Open(dsn string, now func() time.Time) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger:      logger.Default.LogMode(logger.Error),
		PrepareStmt: false,
	}
	if now != nil {
		gormConfig.NowFunc = now
	}

	db, err := gorm.Open(sqlite.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	// one connection: the in-memory database lives as long as it does, and
	// sqlite serializes writers anyway
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(0)
	sqlDB.SetConnMaxIdleTime(0)

	log.Println("[database] sqlite in-memory database opened")
	return db, nil
}

func MigrateDatabase(db *gorm.DB, models ...interface{}) error {
	for _, model := range models {
		if !db.Migrator().HasTable(model) {
			if err := db.Migrator().CreateTable(model); err != nil {
				return err
			}
			log.Printf("[database] created table for %T", model)
		} else {
			if err := db.Migrator().AutoMigrate(model); err != nil {
				return err
			}
			log.Printf("[database] updated table for %T", model)
		}
	}
	return nil
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
