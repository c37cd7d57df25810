package repository

import (
	"context"

	"github.com/yourusername/quiz-srs/internal/domain/entity"
)

// AnswerRepository хранит журнал ответов (только добавление)
type AnswerRepository interface {
	AppendAnswer(ctx context.Context, answer *entity.AnswerEvent) error
	GetUserAnswers(ctx context.Context, userID string) ([]entity.AnswerEvent, error)
}

// UserStatsRepository хранит агрегированную статистику пользователей
type UserStatsRepository interface {
	// GetStats возвращает (nil, nil), если агрегата ещё нет
	GetStats(ctx context.Context, userID string) (*entity.UserStats, error)
	SaveStats(ctx context.Context, stats *entity.UserStats) error
}
