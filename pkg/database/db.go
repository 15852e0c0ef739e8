package database

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Options struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     string
	SSLMode  string
	Debug    bool
}

var (
	db      *gorm.DB
	once    sync.Once
	openErr error
)

// Connect opens the shared PostgreSQL pool once per process.
func Connect(opts Options) (*gorm.DB, error) {
	once.Do(func() {
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
			opts.Host, opts.User, opts.Password, opts.Name, opts.Port, opts.SSLMode,
		)

		conn, err := gorm.Open(postgres.Open(dsn), GormConfig(opts.Debug))
		if err != nil {
			openErr = fmt.Errorf("failed to connect database: %w", err)
			return
		}

		sqlDB, err := conn.DB()
		if err != nil {
			openErr = fmt.Errorf("failed to get sql.DB: %w", err)
			return
		}
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)

		log.Info().Str("host", opts.Host).Str("database", opts.Name).Msg("database connected")
		db = conn
	})

	return db, openErr
}

// GormConfig is shared with the test harness so both translate driver errors
// (duplicate keys become gorm.ErrDuplicatedKey).
func GormConfig(debug bool) *gorm.Config {
	level := logger.Warn
	if debug {
		level = logger.Info
	}
	return &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}
