package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/yourusername/quiz-srs/internal/domain/entity"
	"github.com/yourusername/quiz-srs/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-srs/internal/pkg/errors"
)

const questionsCacheKey = "srs:questions:all"

// CategoryCount — количество вопросов в категории
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Meta — сводка по корпусу вопросов
type Meta struct {
	TotalQuestions int             `json:"totalQuestions"`
	Categories     []CategoryCount `json:"categories"`
}

// QuestionService отвечает за загрузку корпуса: сначала БД, затем файлы каталога данных.
// Любой из источников и кеш могут отсутствовать (nil).
type QuestionService struct {
	questionRepo repository.QuestionRepository
	fileSource   repository.QuestionSource
	cacheRepo    repository.CacheRepository
	cacheTTL     time.Duration
}

// NewQuestionService создает сервис корпуса вопросов
func NewQuestionService(
	questionRepo repository.QuestionRepository,
	fileSource repository.QuestionSource,
	cacheRepo repository.CacheRepository,
	cacheTTL time.Duration,
) *QuestionService {
	return &QuestionService{
		questionRepo: questionRepo,
		fileSource:   fileSource,
		cacheRepo:    cacheRepo,
		cacheTTL:     cacheTTL,
	}
}

// LoadAll возвращает весь корпус. Пустой корпус — не ошибка.
func (s *QuestionService) LoadAll(ctx context.Context) ([]entity.Question, error) {
	if cached, ok := s.fromCache(); ok {
		return cached, nil
	}

	questions, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	if s.cacheRepo != nil && s.cacheTTL > 0 && len(questions) > 0 {
		if err := s.cacheRepo.SetJSON(questionsCacheKey, questions, s.cacheTTL); err != nil {
			log.Printf("[QuestionService] WARNING: не удалось закешировать корпус: %v", err)
		}
	}
	return questions, nil
}

func (s *QuestionService) load(ctx context.Context) ([]entity.Question, error) {
	if s.questionRepo != nil {
		questions, err := s.questionRepo.ListAll(ctx)
		switch {
		case err != nil:
			log.Printf("[QuestionService] WARNING: ошибка загрузки вопросов из БД, используем файлы: %v", err)
		case len(questions) > 0:
			log.Printf("[QuestionService] Загружено %d вопросов из БД", len(questions))
			return questions, nil
		}
	}

	if s.fileSource == nil {
		return []entity.Question{}, nil
	}
	questions, err := s.fileSource.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load questions from files: %w", err)
	}
	return questions, nil
}

func (s *QuestionService) fromCache() ([]entity.Question, bool) {
	if s.cacheRepo == nil || s.cacheTTL <= 0 {
		return nil, false
	}
	var questions []entity.Question
	if err := s.cacheRepo.GetJSON(questionsCacheKey, &questions); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("[QuestionService] WARNING: ошибка чтения кеша корпуса: %v", err)
		}
		return nil, false
	}
	return questions, len(questions) > 0
}

// GetMeta возвращает количество вопросов и категории, отсортированные по имени
func (s *QuestionService) GetMeta(ctx context.Context) (*Meta, error) {
	questions, err := s.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	return buildMeta(questions), nil
}

func buildMeta(questions []entity.Question) *Meta {
	counts := make(map[string]int)
	for _, q := range questions {
		counts[q.Category]++
	}

	categories := make([]CategoryCount, 0, len(counts))
	for name, count := range counts {
		categories = append(categories, CategoryCount{Name: name, Count: count})
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})

	return &Meta{
		TotalQuestions: len(questions),
		Categories:     categories,
	}
}

// findQuestion ищет вопрос в загруженном наборе
func findQuestion(questions []entity.Question, id string) (*entity.Question, bool) {
	for i := range questions {
		if questions[i].ID == id {
			return &questions[i], true
		}
	}
	return nil, false
}
