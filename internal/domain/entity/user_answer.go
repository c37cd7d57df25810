package entity

import (
	"time"
)

// AnswerEvent представляет один ответ пользователя. Записывается один раз и не изменяется.
type AnswerEvent struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	UserID     string    `gorm:"size:191;not null;index" json:"userId"`
	QuestionID string    `gorm:"size:191;not null;index" json:"questionId"`
	Choice     int       `gorm:"not null" json:"choice"`
	Correct    bool      `gorm:"not null" json:"correct"`
	ElapsedMs  int64     `gorm:"not null;default:0" json:"elapsedMs"`
	CreatedAt  time.Time `gorm:"index" json:"createdAt"`
}

// TableName определяет имя таблицы для GORM
func (AnswerEvent) TableName() string {
	return "answers"
}
