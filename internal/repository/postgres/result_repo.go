package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/quiz-srs/internal/domain/entity"
)

// AnswerRepo реализует repository.AnswerRepository
type AnswerRepo struct {
	db *gorm.DB
}

// NewAnswerRepo создает новый репозиторий ответов
func NewAnswerRepo(db *gorm.DB) *AnswerRepo {
	return &AnswerRepo{db: db}
}

// AppendAnswer сохраняет ответ пользователя
func (r *AnswerRepo) AppendAnswer(ctx context.Context, answer *entity.AnswerEvent) error {
	return wrapStoreError("append answer", r.db.WithContext(ctx).Create(answer).Error)
}

// GetUserAnswers возвращает все ответы пользователя в хронологическом порядке
func (r *AnswerRepo) GetUserAnswers(ctx context.Context, userID string) ([]entity.AnswerEvent, error) {
	var answers []entity.AnswerEvent
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at").
		Find(&answers).Error
	if err != nil {
		return nil, wrapStoreError("get user answers", err)
	}
	return answers, nil
}

// UserStatsRepo реализует repository.UserStatsRepository
type UserStatsRepo struct {
	db *gorm.DB
}

// NewUserStatsRepo создает новый репозиторий статистики
func NewUserStatsRepo(db *gorm.DB) *UserStatsRepo {
	return &UserStatsRepo{db: db}
}

// GetStats возвращает агрегат пользователя или (nil, nil), если его ещё нет
func (r *UserStatsRepo) GetStats(ctx context.Context, userID string) (*entity.UserStats, error) {
	var stats entity.UserStats
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&stats).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapStoreError("get user stats", err)
	}
	return &stats, nil
}

// SaveStats создаёт или обновляет агрегат пользователя
func (r *UserStatsRepo) SaveStats(ctx context.Context, stats *entity.UserStats) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"total_answers",
			"correct_count",
			"total_elapsed_ms",
			"accuracy",
			"last_answered_at",
			"updated_at",
		}),
	}).Create(stats).Error
	return wrapStoreError("save user stats", err)
}
