package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/quiz-srs/internal/domain/entity"
)

// SchedulingStateRepo реализует repository.SchedulingStateStore поверх GORM
type SchedulingStateRepo struct {
	db *gorm.DB
}

// NewSchedulingStateRepo создает новый репозиторий состояний повторения
func NewSchedulingStateRepo(db *gorm.DB) *SchedulingStateRepo {
	return &SchedulingStateRepo{db: db}
}

// LoadStates возвращает все состояния пользователя, ключ — ID вопроса
func (r *SchedulingStateRepo) LoadStates(ctx context.Context, userID string) (map[string]entity.SchedulingState, error) {
	var states []entity.SchedulingState
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&states).Error; err != nil {
		return nil, wrapStoreError("load scheduling states", err)
	}

	result := make(map[string]entity.SchedulingState, len(states))
	for _, s := range states {
		if s.QuestionID == "" {
			continue
		}
		result[s.QuestionID] = s
	}
	return result, nil
}

// GetState возвращает состояние пары или (nil, nil), если записи нет
func (r *SchedulingStateRepo) GetState(ctx context.Context, userID, questionID string) (*entity.SchedulingState, error) {
	var state entity.SchedulingState
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND question_id = ?", userID, questionID).
		First(&state).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapStoreError("get scheduling state", err)
	}
	return &state, nil
}

// SaveState создаёт или обновляет состояние (upsert по составному ключу)
func (r *SchedulingStateRepo) SaveState(ctx context.Context, state *entity.SchedulingState) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "question_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"repetitions",
			"interval_days",
			"ease",
			"next_review_at",
			"updated_at",
		}),
	}).Create(state).Error
	return wrapStoreError("save scheduling state", err)
}
