package postgres

import (
	"context"
	"log"

	"gorm.io/gorm"

	"github.com/yourusername/quiz-srs/internal/domain/entity"
)

// QuestionRepo реализует repository.QuestionRepository
type QuestionRepo struct {
	db *gorm.DB
}

// NewQuestionRepo создает новый репозиторий вопросов
func NewQuestionRepo(db *gorm.DB) *QuestionRepo {
	return &QuestionRepo{db: db}
}

// ListAll возвращает все вопросы, упорядоченные по id.
// Строки, которые не удалось прочитать или не прошедшие валидацию, пропускаются по одной.
func (r *QuestionRepo) ListAll(ctx context.Context) ([]entity.Question, error) {
	rows, err := r.db.WithContext(ctx).Model(&entity.Question{}).Order("id").Rows()
	if err != nil {
		return nil, wrapStoreError("list questions", err)
	}
	defer rows.Close()

	questions := make([]entity.Question, 0)
	for rows.Next() {
		var q entity.Question
		if err := r.db.ScanRows(rows, &q); err != nil {
			log.Printf("[QuestionRepo] WARNING: пропущена нечитаемая запись вопроса: %v", err)
			continue
		}
		if err := q.Validate(); err != nil {
			log.Printf("[QuestionRepo] WARNING: пропущен невалидный вопрос: %v", err)
			continue
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStoreError("iterate questions", err)
	}
	return questions, nil
}

// Count возвращает количество вопросов в таблице
func (r *QuestionRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Question{}).Count(&count).Error
	return count, wrapStoreError("count questions", err)
}
