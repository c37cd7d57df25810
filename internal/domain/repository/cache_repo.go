package repository

import (
	"time"
)

// CacheRepository определяет методы для работы с кешем: корпус в JSON и счётчики
type CacheRepository interface {
	Increment(key string) (int64, error)
	SetJSON(key string, value interface{}, expiration time.Duration) error
	GetJSON(key string, dest interface{}) error
}
