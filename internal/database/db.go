package database

import (
	"fmt"
	"log/slog"

	"hackafrica-web/internal/config"
	"hackafrica-web/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Init connects to the session database and runs auto-migrations.
func Init(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	gormCfg := &gorm.Config{}
	if cfg.IsProduction() {
		gormCfg.Logger = logger.Default.LogMode(logger.Silent)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err, "driver", cfg.DBDriver)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	slog.Info("Successfully connected to session store", "driver", cfg.DBDriver)
	return db, Migrate(db)
}

// Migrate synchronizes the session schema.
func Migrate(db *gorm.DB) error {
	slog.Info("Running auto-migrations")
	if err := db.AutoMigrate(&models.SessionValue{}); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	slog.Info("Database schema synchronized")
	return nil
}

func dialectorFor(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			cfg.DBHost, cfg.DBUser, cfg.DBPass, cfg.DBName, cfg.DBPort)
		return postgres.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(cfg.SQLitePath), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}
