package repository

import (
	"context"

	"github.com/yourusername/quiz-srs/internal/domain/entity"
)

// QuestionRepository определяет методы для работы с корпусом вопросов в БД
type QuestionRepository interface {
	// ListAll возвращает все валидные вопросы в стабильном порядке (по id).
	// Невалидные записи пропускаются с предупреждением.
	ListAll(ctx context.Context) ([]entity.Question, error)
	Count(ctx context.Context) (int64, error)
}

// QuestionSource — любой источник корпуса (БД, файлы, кеш)
type QuestionSource interface {
	LoadAll(ctx context.Context) ([]entity.Question, error)
}
