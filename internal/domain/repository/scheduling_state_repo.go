package repository

import (
	"context"

	"github.com/yourusername/quiz-srs/internal/domain/entity"
)

// SchedulingStateStore хранит состояние повторения для пар (пользователь, вопрос).
// Отсутствие хранилища (nil) означает упрощённый режим выбора вопросов.
type SchedulingStateStore interface {
	// LoadStates возвращает состояния пользователя, ключ — ID вопроса
	LoadStates(ctx context.Context, userID string) (map[string]entity.SchedulingState, error)
	// GetState возвращает (nil, nil), если пользователь ещё не отвечал на вопрос
	GetState(ctx context.Context, userID, questionID string) (*entity.SchedulingState, error)
	// SaveState создаёт или обновляет состояние
	SaveState(ctx context.Context, state *entity.SchedulingState) error
}

// CursorStore — указатель для упрощённого режима (round-robin) по пользователю.
// Указатель монотонно растёт; Next возвращает позицию по модулю size.
type CursorStore interface {
	Next(ctx context.Context, userID string, size int) (int, error)
}
