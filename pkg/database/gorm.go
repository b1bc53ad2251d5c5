package database

import (
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func parseLogLevel(level string) logger.LogLevel {
	switch level {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

func getLogger(level string) logger.Interface {
	return logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags), // io writer
		logger.Config{
			SlowThreshold:             time.Second, // Slow SQL threshold
			LogLevel:                  parseLogLevel(level),
			IgnoreRecordNotFoundError: true, // Ignore ErrRecordNotFound error for logger
			ParameterizedQueries:      true, // Don't include params in the SQL log
			Colorful:                  false,
		},
	)
}

// Pool sizes the sql.DB behind gorm. Zero fields keep the defaults.
type Pool struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

var defaultPool = Pool{MaxOpenConns: 100, MaxIdleConns: 10, ConnMaxLifetime: time.Hour}

type Option func(*Pool)

func WithPool(p Pool) Option {
	return func(dst *Pool) {
		if p.MaxOpenConns > 0 {
			dst.MaxOpenConns = p.MaxOpenConns
		}
		if p.MaxIdleConns > 0 {
			dst.MaxIdleConns = p.MaxIdleConns
		}
		if p.ConnMaxLifetime > 0 {
			dst.ConnMaxLifetime = p.ConnMaxLifetime
		}
	}
}

func configureConnectionPool(db *gorm.DB, pool Pool) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(pool.ConnMaxLifetime)
	return nil
}

// NewGormDBFromDSN opens Postgres with error translation on, so unique and
// foreign-key violations surface as gorm.ErrDuplicatedKey and gorm.ErrForeignKeyViolated.
func NewGormDBFromDSN(dsn string, logLevel string, opts ...Option) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         getLogger(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	pool := defaultPool
	for _, opt := range opts {
		opt(&pool)
	}
	if err := configureConnectionPool(db, pool); err != nil {
		return nil, err
	}
	return db, nil
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
