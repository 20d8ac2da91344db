package utils

import (
	"fmt"

	"github.com/vamsidulam/aiprofessor-hub/backend/config"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB opens the configured database. It returns nil without error when
// DB_DRIVER is "none".
func InitDB(cfg *config.Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}

	switch cfg.DBDriver {
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)
		return gorm.Open(postgres.Open(dsn), gormCfg)
	case "sqlite":
		return gorm.Open(sqlite.Open(cfg.DBPath), gormCfg)
	case "none", "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}
}
