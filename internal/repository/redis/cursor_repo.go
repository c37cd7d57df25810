package redis

import (
	"context"
	"fmt"

	"github.com/yourusername/quiz-srs/internal/domain/repository"
)

const cursorKeyPrefix = "srs:cursor:"

// CursorRepo хранит указатель round-robin в Redis, общий для всех инстансов API
type CursorRepo struct {
	cache repository.CacheRepository
}

// NewCursorRepo создает курсор поверх репозитория кеша
func NewCursorRepo(cache repository.CacheRepository) *CursorRepo {
	return &CursorRepo{cache: cache}
}

// Next атомарно сдвигает указатель пользователя и возвращает позицию до сдвига по модулю size
func (r *CursorRepo) Next(_ context.Context, userID string, size int) (int, error) {
	if size <= 0 {
		return 0, nil
	}
	val, err := r.cache.Increment(cursorKeyPrefix + userID)
	if err != nil {
		return 0, fmt.Errorf("failed to increment cursor: %w", err)
	}
	// INCR возвращает значение после увеличения, первая выдача — позиция 0
	return int((val - 1) % int64(size)), nil
}
