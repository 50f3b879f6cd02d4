package database

import (
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"igym-app/internal/config"
)

// Значения пула соединений, если в конфигурации заданы нули.
const (
	fallbackMaxOpenConns    = 25
	fallbackMaxIdleConns    = 5
	fallbackConnMaxLifetime = 5 * time.Minute
	fallbackConnMaxIdleTime = 10 * time.Minute
)

// DB оборачивает gorm-подключение к базе данных.
type DB struct {
	*gorm.DB
}

// NewConnection открывает подключение к Postgres, настраивает пул соединений
// и проверяет доступность базы данных одним ping-ом. В development-окружении
// GORM логирует каждый SQL-запрос.
func NewConnection(cfg *config.DatabaseConfig, appEnv string) (*DB, error) {
	if cfg == nil {
		return nil, fmt.Errorf("конфигурация базы данных не может быть nil")
	}

	log.Println("Инициализация подключения к базе данных...")

	gormLogger := logger.Default
	if strings.ToLower(appEnv) == "development" {
		gormLogger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к базе данных: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("ошибка получения sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(orInt(cfg.MaxOpenConns, fallbackMaxOpenConns))
	sqlDB.SetMaxIdleConns(orInt(cfg.MaxIdleConns, fallbackMaxIdleConns))
	sqlDB.SetConnMaxLifetime(orDuration(cfg.ConnMaxLifetime, fallbackConnMaxLifetime))
	sqlDB.SetConnMaxIdleTime(orDuration(cfg.ConnMaxIdleTime, fallbackConnMaxIdleTime))

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ошибка проверки подключения к базе данных: %w", err)
	}

	log.Println("Подключение к базе данных установлено успешно")
	return &DB{DB: db}, nil
}

// Close закрывает подключение и освобождает пул соединений.
func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("ошибка получения sql.DB для закрытия: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("ошибка закрытия подключения к базе данных: %w", err)
	}
	log.Println("Подключение к базе данных закрыто")
	return nil
}

// Ping проверяет доступность базы данных. Используется health-check-ом.
func (db *DB) Ping() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("ошибка получения sql.DB: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("ошибка ping базы данных: %w", err)
	}
	return nil
}

func orInt(v, fallback int) int {
	if v == 0 {
		return fallback
	}
	return v
}

func orDuration(v, fallback time.Duration) time.Duration {
	if v == 0 {
		return fallback
	}
	return v
}
