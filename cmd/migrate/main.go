package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"

	"github.com/yourusername/quiz-srs/internal/config"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "путь к файлу конфигурации")
	sourceURL := flag.String("path", "file://migrations", "источник миграций")
	down := flag.Bool("down", false, "откатить последнюю миграцию")
	force := flag.Int("force", -1, "принудительно выставить версию (снимает dirty-состояние)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}
	if cfg.Database.Driver != config.DriverPostgres {
		log.Fatalf("SQL-миграции применяются только к PostgreSQL (driver=%s); SQLite создаёт схему при старте", cfg.Database.Driver)
	}

	db, err := sql.Open("postgres", cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("База данных недоступна: %v", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		log.Fatal(err)
	}

	m, err := migrate.NewWithDatabaseInstance(*sourceURL, "postgres", driver)
	if err != nil {
		log.Fatal(err)
	}

	switch {
	case *force >= 0:
		fmt.Printf("Принудительно выставляем версию миграций %d...\n", *force)
		if err := m.Force(*force); err != nil {
			log.Fatalf("Failed to force version: %v", err)
		}
	case *down:
		if err := m.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("Ошибка отката миграции: %v", err)
		}
	default:
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("Ошибка применения миграций: %v", err)
		}
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		log.Fatal(err)
	}
	fmt.Printf("Готово. Версия схемы: %d, dirty: %t\n", version, dirty)
}
