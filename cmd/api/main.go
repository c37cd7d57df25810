package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm/logger"

	"github.com/yourusername/quiz-srs/internal/config"
	"github.com/yourusername/quiz-srs/internal/handler"
	"github.com/yourusername/quiz-srs/internal/middleware"
	fileRepo "github.com/yourusername/quiz-srs/internal/repository/file"
	"github.com/yourusername/quiz-srs/internal/service"
	"github.com/yourusername/quiz-srs/internal/service/srs"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	isProduction := os.Getenv("GIN_MODE") == "release"
	gormLogLevel := logger.Info
	if isProduction {
		gormLogLevel = logger.Warn
	}

	// Хранилища: недоступные БД и Redis не останавливают запуск
	st := buildStores(cfg, gormLogLevel)

	rules := make([]fileRepo.CategoryRule, 0, len(cfg.Corpus.CategoryRules))
	for _, r := range cfg.Corpus.CategoryRules {
		rules = append(rules, fileRepo.CategoryRule{Contains: r.Contains, Category: r.Category})
	}
	questionLoader := fileRepo.NewQuestionLoader(cfg.Corpus.DataDir, cfg.Corpus.DefaultCategory, rules)

	// Инициализируем сервисы
	srsConfig := &srs.Config{
		FastAnswerMs:     cfg.SRS.FastAnswerMs,
		HesitantAnswerMs: cfg.SRS.HesitantAnswerMs,
		MinEase:          cfg.SRS.MinEase,
		InitialEase:      cfg.SRS.InitialEase,
		MaxInterval:      cfg.SRS.MaxIntervalDays,
	}
	questionService := service.NewQuestionService(st.questions, questionLoader, st.cache, cfg.Corpus.CacheTTL)
	studyService := service.NewStudyService(questionService, st.states, st.cursor, st.answers, st.stats, srsConfig, nil)
	exportService := service.NewExportService(studyService, questionService)

	// Прогреваем корпус, чтобы ошибки источников были видны при старте
	if meta, err := questionService.GetMeta(context.Background()); err != nil {
		log.Printf("Warning: failed to load questions on startup: %v", err)
	} else {
		log.Printf("Корпус: %d вопросов, %d категорий", meta.TotalQuestions, len(meta.Categories))
	}

	// Инициализируем обработчики
	studyHandler := handler.NewStudyHandler(studyService)
	exportHandler := handler.NewExportHandler(exportService)

	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		if st.redisClient != nil {
			rateLimiter = middleware.NewRateLimiter(st.redisClient)
		} else {
			log.Println("Warning: rate limiting отключён: Redis недоступен")
		}
	}

	// Инициализируем роутер Gin
	router := gin.Default()

	// Настройка доверенных прокси для корректной работы c.ClientIP()
	if isProduction {
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	// Настройка CORS
	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	if len(cfg.Server.CORSOrigins) == 0 || slices.Contains(cfg.Server.CORSOrigins, "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.Server.CORSOrigins
	}
	router.Use(cors.New(corsConfig))

	// Настраиваем маршруты API
	handler.RegisterRoutes(router, studyHandler, exportHandler, rateLimiter)

	// Фронтенд раздаётся для всех путей, не занятых API
	if cfg.Server.StaticDir != "" {
		router.NoRoute(gin.WrapH(http.FileServer(http.Dir(cfg.Server.StaticDir))))
		log.Printf("Статические файлы из %s", cfg.Server.StaticDir)
	}

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Запускаем сервер в горутине
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Создаем контекст с таймаутом для graceful shutdown сервера
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	st.Close()

	log.Println("Server exited properly")
}
