package database

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/config"
	"github.com/pranshuj91/fleetwiseai-production-sub004/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func Connect(cfg *config.Config) error {
	var err error
	DB, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	slog.Info("database connected")
	return nil
}

// Migrate runs AutoMigrate for all models. The pgvector extension must
// exist before the document_chunks table migrates its vector column.
func Migrate() error {
	if err := DB.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		return fmt.Errorf("failed to create vector extension: %w", err)
	}

	if err := DB.AutoMigrate(
		&models.Company{},
		&models.User{},
		&models.UserRole{},
		&models.RefreshToken{},
		&models.InviteToken{},
		&models.Customer{},
		&models.Truck{},
		&models.TruckNote{},
		&models.WorkOrder{},
		&models.WorkOrderLineItem{},
		&models.Invoice{},
		&models.PMTemplate{},
		&models.Document{},
		&models.DocumentChunk{},
		&models.ChatSession{},
		&models.ChatMessage{},
		&models.SystemLog{},
	); err != nil {
		return err
	}

	// ivfflat needs rows to train on, so failure here is non-fatal on an
	// empty corpus.
	if err := DB.Exec(
		"CREATE INDEX IF NOT EXISTS idx_document_chunks_embedding ON document_chunks USING ivfflat (embedding vector_cosine_ops) WITH (lists = 100)",
	).Error; err != nil {
		slog.Warn("embedding index creation skipped", "error", err)
	}

	return nil
}

func Ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
