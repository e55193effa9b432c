package database

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/cramr/cramr-backend/internal/config"
	"github.com/cramr/cramr-backend/internal/models"
)

// NewDatabase opens the pooled connection. The returned cleanup closes it.
func NewDatabase(cfg *config.Config, logger *zap.Logger) (*gorm.DB, func(), error) {
	logLevel := gormlogger.Warn
	if cfg.Debug {
		logLevel = gormlogger.Info
	}

	dsn := WithStatementTimeout(cfg.Database.URL, cfg.Database.StatementTimeout)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	logger.Info("database connected",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Duration("statement_timeout", cfg.Database.StatementTimeout),
	)

	cleanup := func() {
		if err := sqlDB.Close(); err != nil {
			logger.Error("failed to close database", zap.Error(err))
		}
	}
	return db, cleanup, nil
}

// WithStatementTimeout appends a postgres statement_timeout runtime parameter
// to either a URL or a keyword/value DSN.
func WithStatementTimeout(dsn string, timeout time.Duration) string {
	if timeout <= 0 || strings.Contains(dsn, "statement_timeout") {
		return dsn
	}
	ms := timeout.Milliseconds()
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		return fmt.Sprintf("%s%sstatement_timeout=%d", dsn, sep, ms)
	}
	return fmt.Sprintf("%s statement_timeout=%d", strings.TrimSpace(dsn), ms)
}

func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Block{},
		&models.Event{},
		&models.EventAttendee{},
		&models.SavedEvent{},
		&models.Notification{},
		&models.Message{},
		&models.FlashcardSet{},
		&models.Flashcard{},
		&models.StudyMaterial{},
	)
}
