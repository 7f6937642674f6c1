package db

import (
	"log"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/IvanBondariev/telegram-bot/internal/domain"
)

// MustConnect opens the file-backed store and brings the schema up to date.
// The store is a single sqlite file; exclusivity is guaranteed by the
// process-level lock acquired before this runs.
func MustConnect(path string) *gorm.DB {
	gormLogger := logger.New(
		log.New(log.Writer(), "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		log.Fatalf("sqlite: %v", err)
	}

	if err := gdb.AutoMigrate(&domain.Profit{}, &domain.User{}, &domain.Session{}); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	return gdb
}
