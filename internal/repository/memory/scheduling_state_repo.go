// Package memory содержит хранилища в памяти процесса для локального режима и тестов.
package memory

import (
	"context"
	"sync"

	"github.com/yourusername/quiz-srs/internal/domain/entity"
)

// SchedulingStateRepo хранит состояния повторения в памяти
type SchedulingStateRepo struct {
	mu     sync.RWMutex
	states map[string]map[string]entity.SchedulingState // userID → questionID → состояние
}

// NewSchedulingStateRepo создает пустое хранилище
func NewSchedulingStateRepo() *SchedulingStateRepo {
	return &SchedulingStateRepo{states: make(map[string]map[string]entity.SchedulingState)}
}

// LoadStates возвращает копию состояний пользователя
func (r *SchedulingStateRepo) LoadStates(_ context.Context, userID string) (map[string]entity.SchedulingState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byQuestion := r.states[userID]
	result := make(map[string]entity.SchedulingState, len(byQuestion))
	for id, s := range byQuestion {
		result[id] = s
	}
	return result, nil
}

// GetState возвращает (nil, nil), если записи нет
func (r *SchedulingStateRepo) GetState(_ context.Context, userID, questionID string) (*entity.SchedulingState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.states[userID][questionID]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

// SaveState создаёт или перезаписывает состояние
func (r *SchedulingStateRepo) SaveState(_ context.Context, state *entity.SchedulingState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	byQuestion, ok := r.states[state.UserID]
	if !ok {
		byQuestion = make(map[string]entity.SchedulingState)
		r.states[state.UserID] = byQuestion
	}
	byQuestion[state.QuestionID] = *state
	return nil
}
