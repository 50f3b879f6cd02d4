package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"igym-app/internal/config"
	"igym-app/internal/database"
)

func main() {
	var (
		up      = flag.Bool("up", false, "Применить все доступные миграции (действие по умолчанию)")
		down    = flag.Bool("down", false, "Откатить последнюю миграцию")
		steps   = flag.String("steps", "", "Применить/откатить N миграций (отрицательное значение откатывает)")
		version = flag.Bool("version", false, "Показать текущую версию схемы")
		force   = flag.Int("force", -1, "Принудительно выставить версию схемы (восстановление после сбоя)")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Использование: %s [опции]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Опции:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nПримеры:\n")
		fmt.Fprintf(os.Stderr, "  %s              # Применить все миграции\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -down        # Откатить последнюю миграцию\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -steps -2    # Откатить 2 миграции\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -version     # Показать текущую версию\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -force 3     # Выставить версию 3 без выполнения миграций\n", os.Args[0])
	}

	flag.Parse()

	log.Println("Запуск миграции базы данных...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	db, err := database.NewConnection(&cfg.Database, cfg.AppEnv)
	if err != nil {
		log.Fatalf("Ошибка подключения к базе данных: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Ошибка закрытия подключения к базе данных: %v", err)
		}
	}()

	migrator, err := database.NewMigrator(db)
	if err != nil {
		log.Fatalf("Ошибка создания мигратора: %v", err)
	}
	defer func() {
		if err := migrator.Close(); err != nil {
			log.Printf("Ошибка закрытия мигратора: %v", err)
		}
	}()

	// Ровно одно действие за запуск; без флагов применяем всё
	actions := 0
	for _, set := range []bool{*up, *down, *steps != "", *version, *force >= 0} {
		if set {
			actions++
		}
	}
	switch {
	case actions == 0:
		*up = true
	case actions > 1:
		log.Fatal("Ошибка: можно указать только одно действие за раз")
	}

	switch {
	case *version:
		showVersion(migrator)
	case *force >= 0:
		if err := migrator.Force(*force); err != nil {
			log.Fatalf("Ошибка принудительной установки версии: %v", err)
		}
	case *down:
		runMigration(migrator.Down, "Нет миграций для отката. База данных уже в базовом состоянии.")
	case *steps != "":
		runSteps(migrator, *steps)
	case *up:
		runMigration(migrator.Up, "Нет миграций для применения. База данных уже актуальна.")
	}
}

// runMigration выполняет действие мигратора, трактуя ErrNoChange как успех.
func runMigration(do func() error, noChangeMsg string) {
	if err := do(); err != nil {
		if err == database.ErrNoChange {
			log.Println(noChangeMsg)
			return
		}
		log.Fatalf("Ошибка выполнения миграции: %v", err)
	}
}

// runSteps применяет или откатывает N миграций.
func runSteps(migrator *database.Migrator, stepsStr string) {
	n, err := strconv.Atoi(stepsStr)
	if err != nil {
		log.Fatalf("Ошибка: неверный формат числа для -steps: %v", err)
	}
	if n == 0 {
		log.Println("Ноль миграций для применения/отката")
		return
	}

	if err := migrator.Steps(n); err != nil {
		if err == database.ErrNoChange {
			log.Println("Нет миграций в запрошенном направлении.")
			return
		}
		log.Fatalf("Ошибка применения миграций: %v", err)
	}
}

// showVersion печатает текущую версию схемы.
func showVersion(migrator *database.Migrator) {
	version, dirty, err := migrator.Version()
	if err != nil {
		log.Fatalf("Ошибка получения версии: %v", err)
	}

	if version == 0 {
		log.Println("Версия: нет примененных миграций")
		return
	}
	if dirty {
		log.Printf("Версия: %d (ГРЯЗНОЕ СОСТОЯНИЕ - требуется ручное вмешательство!)\n", version)
		os.Exit(1)
	}
	log.Printf("Версия: %d\n", version)
}
