package main

import (
	"log"
	"os"
	"time"

	"igym-app/internal/config"
	"igym-app/internal/database"
)

// Скрипт диагностики подключения к базе данных: поднимает подключение
// по текущей конфигурации, делает ping и печатает версию схемы.
func main() {
	log.Println("Проверка подключения к базе данных...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	// При запуске на хосте docker-хостнейм postgres недостижим
	if cfg.Database.Host == "postgres" && !insideDocker() {
		log.Println("Хост 'postgres' вне Docker недоступен, подменяю DB_HOST на 'localhost'")
		cfg.Database.Host = "localhost"
	}

	if cfg.Database.Host == "postgres" {
		log.Println("Docker режим (DB_HOST=postgres): убедитесь, что контейнер с PostgreSQL запущен")
		time.Sleep(2 * time.Second)
	}

	log.Printf("Параметры подключения: %s@%s:%s/%s sslmode=%s",
		cfg.Database.User, cfg.Database.Host, cfg.Database.Port,
		cfg.Database.DBName, cfg.Database.SSLMode)

	db, err := database.NewConnection(&cfg.Database, cfg.AppEnv)
	if err != nil {
		log.Fatalf("Ошибка подключения к базе данных: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Ошибка закрытия подключения: %v", err)
		}
	}()

	if err := db.Ping(); err != nil {
		log.Fatalf("База данных недоступна: %v", err)
	}
	log.Println("База данных доступна")

	migrator, err := database.NewMigrator(db)
	if err != nil {
		log.Fatalf("Ошибка создания мигратора: %v", err)
	}
	defer migrator.Close()

	version, dirty, err := migrator.Version()
	if err != nil {
		log.Fatalf("Ошибка получения версии схемы: %v", err)
	}
	switch {
	case dirty:
		log.Printf("Версия схемы: %d (грязное состояние, требуется ручное вмешательство)", version)
		os.Exit(1)
	case version == 0:
		log.Println("Версия схемы: миграции ещё не применялись")
	default:
		log.Printf("Версия схемы: %d", version)
	}
}

// insideDocker определяет, запущен ли процесс внутри контейнера.
func insideDocker() bool {
	if os.Getenv("container") != "" {
		return true
	}
	_, err := os.Stat("/.dockerenv")
	return err == nil
}
