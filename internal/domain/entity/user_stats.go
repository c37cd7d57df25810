package entity

import (
	"time"
)

// UserStats — агрегированная статистика ответов пользователя.
// Счётчики только растут.
type UserStats struct {
	UserID         string    `gorm:"primaryKey;size:191" json:"userId"`
	TotalAnswers   int64     `gorm:"not null;default:0" json:"totalAnswers"`
	CorrectCount   int64     `gorm:"not null;default:0" json:"correctCount"`
	TotalElapsedMs int64     `gorm:"not null;default:0" json:"totalElapsedMs"`
	Accuracy       float64   `gorm:"not null;default:0" json:"accuracy"`
	LastAnsweredAt time.Time `json:"lastAnsweredAt"`
	UpdatedAt      time.Time `json:"-"`
}

// TableName определяет имя таблицы для GORM
func (UserStats) TableName() string {
	return "user_stats"
}

// Apply добавляет один ответ к агрегату
func (s *UserStats) Apply(correct bool, elapsedMs int64, at time.Time) {
	s.TotalAnswers++
	if correct {
		s.CorrectCount++
	}
	if elapsedMs > 0 {
		s.TotalElapsedMs += elapsedMs
	}
	s.Accuracy = CalculateAccuracy(s.CorrectCount, s.TotalAnswers)
	s.LastAnsweredAt = at
}

// CalculateAccuracy возвращает долю правильных ответов, 0 при отсутствии ответов
func CalculateAccuracy(correct, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return float64(correct) / float64(total)
}
