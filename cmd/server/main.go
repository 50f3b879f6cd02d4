package main

import (
	"log"

	"igym-app/internal/config"
	"igym-app/internal/database"
	"igym-app/internal/server"
)

func main() {
	log.Println("iGym Server Starting...")

	// Загружаем конфигурацию
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	log.Printf("Конфигурация загружена успешно")
	log.Printf("Сервер будет запущен на %s", cfg.Server.Address())
	log.Printf("База данных: %s@%s:%s/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем подключение к базе данных
	db, err := database.NewConnection(&cfg.Database, cfg.AppEnv)
	if err != nil {
		log.Fatalf("Ошибка подключения к базе данных: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Ошибка закрытия подключения к базе данных: %v", err)
		}
	}()

	// Применяем миграции перед запуском сервера
	migrator, err := database.NewMigrator(db)
	if err != nil {
		log.Fatalf("Ошибка создания мигратора: %v", err)
	}
	if err := migrator.Up(); err != nil && err != database.ErrNoChange {
		log.Fatalf("Ошибка применения миграций: %v", err)
	}
	if err := migrator.Close(); err != nil {
		log.Printf("Ошибка закрытия мигратора: %v", err)
	}

	// Запускаем HTTP сервер (блокирует до сигнала остановки)
	srv := server.NewServer(cfg, db)
	if err := srv.Start(); err != nil {
		log.Fatalf("Ошибка работы сервера: %v", err)
	}
}
