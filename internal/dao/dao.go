// Package dao implements the data access layer over gorm.
package dao

import (
	"time"

	"github.com/spacekeep/capture-service/internal/model"
	"github.com/spacekeep/capture-service/pkg/fileurl"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DatabaseConfig is the subset of configuration the dao needs.
type DatabaseConfig struct {
	Path            string
	AutoMigrate     bool
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	RunMode         string
}

// Dao bundles the database handle for the repositories.
type Dao struct {
	db     *gorm.DB
	logger *zap.Logger
}

func New(db *gorm.DB, logger *zap.Logger) *Dao {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dao{db: db, logger: logger}
}

func (d *Dao) DB() *gorm.DB {
	return d.db
}

// NewDBEngine opens the sqlite database and runs migrations.
func NewDBEngine(cfg *DatabaseConfig, logger *zap.Logger) (*gorm.DB, error) {
	if err := fileurl.CreatePath(cfg.Path, 0o755); err != nil {
		return nil, errors.Wrap(err, "create database directory")
	}

	logLevel := gormlogger.Warn
	if cfg.RunMode == "debug" {
		logLevel = gormlogger.Info
	}
	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "get sql.DB")
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if cfg.AutoMigrate {
		if err := model.AutoMigrate(db); err != nil {
			return nil, errors.Wrap(err, "auto migrate")
		}
	}

	if logger != nil {
		logger.Info("database ready", zap.String("path", cfg.Path))
	}
	return db, nil
}
