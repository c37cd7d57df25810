package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config хранит все настройки приложения
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Scheduling SchedulingConfig
	Corpus     CorpusConfig
	RateLimit  RateLimitConfig `mapstructure:"rate_limit"`
	SRS        SRSConfig
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Port         string
	ReadTimeout  int      `mapstructure:"read_timeout"`  // секунды
	WriteTimeout int      `mapstructure:"write_timeout"` // секунды
	StaticDir    string   `mapstructure:"static_dir"`    // Каталог фронтенда, пусто — не раздаём
	CORSOrigins  []string `mapstructure:"cors_origins"`
}

// Драйверы базы данных
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverNone     = "none"
)

// DatabaseConfig содержит настройки подключения к базе данных
type DatabaseConfig struct {
	Driver     string // postgres | sqlite | none
	Host       string
	Port       string
	User       string
	Password   string
	DBName     string
	SSLMode    string
	SQLitePath string `mapstructure:"sqlite_path"`
}

// RedisConfig содержит унифицированные настройки подключения к Redis
// Поддерживает режимы: single, sentinel, cluster
type RedisConfig struct {
	// Enabled: Redis опционален — без него нет кеша корпуса, общего курсора и rate limiting
	Enabled bool `mapstructure:"enabled"`

	// Mode: Режим работы Redis ("single", "sentinel", "cluster"). По умолчанию "single".
	Mode string `mapstructure:"mode"`

	// Addrs: Список адресов Redis (хост:порт). Используется для всех режимов.
	Addrs []string `mapstructure:"addrs"`

	// Addr: Альтернативный адрес для режима 'single'.
	Addr string `mapstructure:"addr"`

	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`

	// MasterName: Имя мастер-сервера Redis (только для режима "sentinel")
	MasterName string `mapstructure:"master_name"`

	MaxRetries      int `mapstructure:"max_retries"`
	MinRetryBackoff int `mapstructure:"min_retry_backoff"` // мс
	MaxRetryBackoff int `mapstructure:"max_retry_backoff"` // мс
}

// Хранилища состояний повторения
const (
	StoreDatabase = "database"
	StoreMemory   = "memory"
	StoreNone     = "none"
)

// Хранилища курсора round-robin
const (
	CursorMemory = "memory"
	CursorRedis  = "redis"
)

// SchedulingConfig выбирает хранилища планировщика
type SchedulingConfig struct {
	Store  string // database | memory | none
	Cursor string // memory | redis
}

// CategoryRuleConfig назначает категорию по подстроке имени файла корпуса
type CategoryRuleConfig struct {
	Contains string `mapstructure:"contains"`
	Category string `mapstructure:"category"`
}

// CorpusConfig содержит настройки загрузки корпуса вопросов
type CorpusConfig struct {
	DataDir         string               `mapstructure:"data_dir"`
	DefaultCategory string               `mapstructure:"default_category"`
	CategoryRules   []CategoryRuleConfig `mapstructure:"category_rules"`
	CacheTTL        time.Duration        `mapstructure:"cache_ttl"`
}

// RateLimitConfig включает ограничение частоты запросов (требует Redis)
type RateLimitConfig struct {
	Enabled bool
}

// SRSConfig — пороги модели памяти
type SRSConfig struct {
	FastAnswerMs     int64   `mapstructure:"fast_answer_ms"`
	HesitantAnswerMs int64   `mapstructure:"hesitant_answer_ms"`
	MinEase          float64 `mapstructure:"min_ease"`
	InitialEase      float64 `mapstructure:"initial_ease"`
	MaxIntervalDays  int     `mapstructure:"max_interval_days"`
}

// PostgresConnectionString формирует строку подключения к PostgreSQL
func (d *DatabaseConfig) PostgresConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// setDefaults задаёт значения, при которых сервис запускается локально без внешних зависимостей
func setDefaults(vip *viper.Viper) {
	vip.SetDefault("server.port", "8000")
	vip.SetDefault("server.read_timeout", 15)
	vip.SetDefault("server.write_timeout", 30)
	vip.SetDefault("server.cors_origins", []string{"*"})

	vip.SetDefault("database.driver", DriverSQLite)
	vip.SetDefault("database.port", "5432")
	vip.SetDefault("database.sslmode", "disable")
	vip.SetDefault("database.sqlite_path", "quiz.db")

	vip.SetDefault("redis.enabled", false)
	vip.SetDefault("redis.mode", "single")

	vip.SetDefault("scheduling.store", StoreDatabase)
	vip.SetDefault("scheduling.cursor", CursorMemory)

	vip.SetDefault("corpus.data_dir", "data")
	vip.SetDefault("corpus.default_category", "基本情報")
	vip.SetDefault("corpus.category_rules", []map[string]string{
		{"contains": "passpo", "category": "ITパスポート"},
	})
	vip.SetDefault("corpus.cache_ttl", "5m")

	vip.SetDefault("srs.fast_answer_ms", 5000)
	vip.SetDefault("srs.hesitant_answer_ms", 12000)
	vip.SetDefault("srs.min_ease", 1.3)
	vip.SetDefault("srs.initial_ease", 2.5)
	vip.SetDefault("srs.max_interval_days", 36500)
}

// Load загружает конфигурацию из файла
func Load(configPath string) (*Config, error) {
	vip := viper.New() // Используем новый экземпляр Viper, чтобы избежать глобального состояния

	// 1. Значения по умолчанию
	setDefaults(vip)

	// 2. Привязываем переменные окружения ЯВНО
	vip.BindEnv("server.port", "SERVER_PORT")
	vip.BindEnv("server.static_dir", "SERVER_STATIC_DIR")

	vip.BindEnv("database.driver", "DATABASE_DRIVER")
	vip.BindEnv("database.host", "DATABASE_HOST")
	vip.BindEnv("database.port", "DATABASE_PORT")
	vip.BindEnv("database.user", "DATABASE_USER")
	vip.BindEnv("database.password", "DATABASE_PASSWORD")
	vip.BindEnv("database.dbname", "DATABASE_DBNAME")
	vip.BindEnv("database.sslmode", "DATABASE_SSLMODE")
	vip.BindEnv("database.sqlite_path", "DATABASE_SQLITE_PATH")

	vip.BindEnv("redis.enabled", "REDIS_ENABLED")
	vip.BindEnv("redis.mode", "REDIS_MODE")
	vip.BindEnv("redis.addrs", "REDIS_ADDRS")
	vip.BindEnv("redis.addr", "REDIS_ADDR")
	vip.BindEnv("redis.password", "REDIS_PASSWORD")
	vip.BindEnv("redis.db", "REDIS_DB")
	vip.BindEnv("redis.master_name", "REDIS_MASTER_NAME")

	vip.BindEnv("scheduling.store", "SCHEDULING_STORE")
	vip.BindEnv("scheduling.cursor", "SCHEDULING_CURSOR")

	vip.BindEnv("corpus.data_dir", "CORPUS_DATA_DIR")
	vip.BindEnv("corpus.default_category", "CORPUS_DEFAULT_CATEGORY")
	vip.BindEnv("corpus.cache_ttl", "CORPUS_CACHE_TTL")

	vip.BindEnv("rate_limit.enabled", "RATE_LIMIT_ENABLED")

	// 3. Файл конфигурации (не страшно, если его нет)
	if configPath != "" {
		vip.SetConfigFile(configPath)
		if err := vip.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); ok || os.IsNotExist(err) {
				log.Printf("Файл конфигурации '%s' не найден, используются переменные окружения/умолчания.", configPath)
			} else {
				log.Printf("Предупреждение: не удалось прочитать файл конфигурации '%s': %v", configPath, err)
			}
		}
	}

	// 4. Анмаршалим конфигурацию (Viper объединит значения из файла и привязанных env vars)
	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if os.Getenv("GIN_MODE") != "release" {
		log.Printf("--- Загруженные значения конфигурации ---")
		log.Printf("Database Driver: %s", cfg.Database.Driver)
		log.Printf("Database Host: %s", cfg.Database.Host)
		log.Printf("SQLite Path: %s", cfg.Database.SQLitePath)
		log.Printf("Redis Enabled: %t (mode: %s)", cfg.Redis.Enabled, cfg.Redis.Mode)
		log.Printf("Scheduling Store: %s, Cursor: %s", cfg.Scheduling.Store, cfg.Scheduling.Cursor)
		log.Printf("Corpus Dir: %s", cfg.Corpus.DataDir)
		log.Printf("Server Port: %s", cfg.Server.Port)
		log.Printf("-----------------------------------------")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" || c.Database.User == "" {
			return fmt.Errorf("database configuration (host, dbname, user) is incomplete in config (check DATABASE_HOST, DATABASE_DBNAME, DATABASE_USER env vars)")
		}
	case DriverSQLite:
		if c.Database.SQLitePath == "" {
			return fmt.Errorf("sqlite path is required (check DATABASE_SQLITE_PATH env var)")
		}
	case DriverNone:
	default:
		return fmt.Errorf("unsupported database driver: %q", c.Database.Driver)
	}

	switch c.Scheduling.Store {
	case StoreDatabase:
		if c.Database.Driver == DriverNone {
			return fmt.Errorf("scheduling store %q requires a database driver", StoreDatabase)
		}
	case StoreMemory, StoreNone:
	default:
		return fmt.Errorf("unsupported scheduling store: %q", c.Scheduling.Store)
	}

	switch c.Scheduling.Cursor {
	case CursorMemory:
	case CursorRedis:
		if !c.Redis.Enabled {
			return fmt.Errorf("scheduling cursor %q requires redis.enabled", CursorRedis)
		}
	default:
		return fmt.Errorf("unsupported scheduling cursor: %q", c.Scheduling.Cursor)
	}

	if c.RateLimit.Enabled && !c.Redis.Enabled {
		return fmt.Errorf("rate limiting requires redis.enabled")
	}
	if c.SRS.HesitantAnswerMs > 0 && c.SRS.FastAnswerMs > c.SRS.HesitantAnswerMs {
		return fmt.Errorf("srs.fast_answer_ms must not exceed srs.hesitant_answer_ms")
	}
	if c.SRS.MaxIntervalDays < 0 || c.SRS.MaxIntervalDays > 36500 {
		return fmt.Errorf("srs.max_interval_days must be within 0..36500")
	}
	return nil
}
