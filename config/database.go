package config

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Santiago26009/blog-challenge/models"
)

// likeIndexes are partial unique indexes; gorm tags cannot carry the WHERE clause.
var likeIndexes = []string{
	fmt.Sprintf(`CREATE UNIQUE INDEX IF NOT EXISTS %s ON likes (user_id, post_id) WHERE post_id IS NOT NULL`, models.LikeUserPostIndex),
	fmt.Sprintf(`CREATE UNIQUE INDEX IF NOT EXISTS %s ON likes (user_id, comment_id) WHERE comment_id IS NOT NULL`, models.LikeUserCommentIndex),
}

// InitDB opens the connection pool and migrates the schema.
func InitDB(cfg *Config, log *slog.Logger) (*gorm.DB, error) {
	logLevel := logger.Warn
	if cfg.Environment == "dev" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Info("database connected", "max_conns", 25, "min_conns", 5)
	return db, nil
}

// Migrate creates or updates every table, then the partial like indexes.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.RefreshToken{},
		&models.ActivityLog{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	for _, stmt := range likeIndexes {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create like index: %w", err)
		}
	}
	return nil
}

func CloseDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
