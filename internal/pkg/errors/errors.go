package errors

import "errors"

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись или ресурс не найдены.
	ErrNotFound = errors.New("record not found")

	// ErrStoreUnavailable означает, что внешнее хранилище (PostgreSQL, Redis) недоступно.
	// Планировщик в этом случае деградирует к упрощённому выбору вопросов, а не падает.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrMalformedRecord означает, что сохранённая запись (вопрос, состояние) не прошла валидацию.
	// Такие записи пропускаются по одной с предупреждением в логе.
	ErrMalformedRecord = errors.New("malformed record")
)
