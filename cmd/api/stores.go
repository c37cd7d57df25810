package main

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yourusername/quiz-srs/internal/config"
	"github.com/yourusername/quiz-srs/internal/domain/repository"
	memRepo "github.com/yourusername/quiz-srs/internal/repository/memory"
	pgRepo "github.com/yourusername/quiz-srs/internal/repository/postgres"
	redisRepo "github.com/yourusername/quiz-srs/internal/repository/redis"
	"github.com/yourusername/quiz-srs/pkg/database"
)

// stores — хранилища сервиса. Любое поле может быть nil: недоступная БД или Redis
// не останавливают запуск, планировщик переходит в упрощённый режим.
type stores struct {
	db          *gorm.DB
	redisClient redis.UniversalClient
	cache       repository.CacheRepository
	questions   repository.QuestionRepository
	states      repository.SchedulingStateStore
	cursor      repository.CursorStore
	answers     repository.AnswerRepository
	stats       repository.UserStatsRepository
}

// buildStores открывает БД и Redis по конфигурации и собирает репозитории
func buildStores(cfg *config.Config, logLevel logger.LogLevel) *stores {
	st := &stores{}

	db, err := openDatabase(cfg.Database, logLevel)
	if err != nil {
		log.Printf("[Stores] WARNING: база данных недоступна, работаем без неё (корпус из файлов, без истории): %v", err)
	} else {
		st.db = db
	}

	if cfg.Redis.Enabled {
		client, err := database.NewUniversalRedisClient(cfg.Redis)
		if err != nil {
			log.Printf("[Stores] WARNING: Redis недоступен, работаем без кеша и rate limiting: %v", err)
		} else if cache, err := redisRepo.NewCacheRepo(client); err != nil {
			log.Printf("[Stores] WARNING: не удалось создать CacheRepo: %v", err)
			client.Close()
		} else {
			log.Println("[Stores] Successfully connected to Redis")
			st.redisClient = client
			st.cache = cache
		}
	}

	if st.db != nil {
		st.questions = pgRepo.NewQuestionRepo(st.db)
		st.answers = pgRepo.NewAnswerRepo(st.db)
		st.stats = pgRepo.NewUserStatsRepo(st.db)
		st.logQuestionCount()
	}

	switch cfg.Scheduling.Store {
	case config.StoreDatabase:
		if st.db != nil {
			st.states = pgRepo.NewSchedulingStateRepo(st.db)
		} else {
			log.Println("[Stores] WARNING: хранилище состояний в БД недоступно: упрощённый режим выбора вопросов")
		}
	case config.StoreMemory:
		st.states = memRepo.NewSchedulingStateRepo()
	default:
		log.Println("[Stores] Хранилище состояний отключено: упрощённый режим выбора вопросов")
	}

	if cfg.Scheduling.Cursor == config.CursorRedis && st.cache != nil {
		st.cursor = redisRepo.NewCursorRepo(st.cache)
	} else {
		if cfg.Scheduling.Cursor == config.CursorRedis {
			log.Println("[Stores] WARNING: курсор в Redis недоступен, используем курсор в памяти процесса")
		}
		st.cursor = memRepo.NewCursorRepo()
	}
	return st
}

func (st *stores) logQuestionCount() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	count, err := st.questions.Count(ctx)
	if err != nil {
		log.Printf("[Stores] WARNING: не удалось посчитать вопросы в БД: %v", err)
		return
	}
	if count == 0 {
		log.Println("[Stores] В БД нет вопросов, корпус будет загружен из файлов")
		return
	}
	log.Printf("[Stores] В БД %d вопросов", count)
}

// Close закрывает соединения с Redis и БД
func (st *stores) Close() {
	if st.redisClient != nil {
		if err := st.redisClient.Close(); err != nil {
			log.Printf("Error closing Redis client: %v", err)
		}
	}
	if st.db != nil {
		if sqlDB, err := database.GetSQLDB(st.db); err == nil {
			sqlDB.Close()
		}
	}
}

// openDatabase открывает БД по драйверу из конфигурации; для driver=none возвращает nil
func openDatabase(cfg config.DatabaseConfig, logLevel logger.LogLevel) (*gorm.DB, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		db, err := database.NewPostgresDB(cfg.PostgresConnectionString(), logLevel)
		if err != nil {
			return nil, err
		}
		if err := database.MigrateDB(db, database.DefaultMigrationsURL); err != nil {
			if sqlDB, dbErr := database.GetSQLDB(db); dbErr == nil {
				sqlDB.Close()
			}
			return nil, err
		}
		return db, nil
	case config.DriverSQLite:
		log.Printf("Локальный режим: SQLite %s", cfg.SQLitePath)
		return database.NewSQLiteDB(cfg.SQLitePath, logLevel)
	default:
		log.Println("База данных отключена: корпус только из файлов, история ответов не сохраняется")
		return nil, nil
	}
}
