package memory

import (
	"context"
	"sync"
)

// CursorRepo — указатель round-robin в памяти процесса
type CursorRepo struct {
	mu  sync.Mutex
	pos map[string]int64
}

// NewCursorRepo создает пустой курсор
func NewCursorRepo() *CursorRepo {
	return &CursorRepo{pos: make(map[string]int64)}
}

// Next возвращает текущую позицию по модулю size и сдвигает указатель
func (r *CursorRepo) Next(_ context.Context, userID string, size int) (int, error) {
	if size <= 0 {
		return 0, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.pos[userID]
	r.pos[userID] = p + 1
	return int(p % int64(size)), nil
}
