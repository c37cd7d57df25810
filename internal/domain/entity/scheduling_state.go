package entity

import (
	"time"
)

// Начальные параметры интервального повторения для пары (пользователь, вопрос),
// на которую ещё не было ответа.
const (
	DefaultRepetitions = 0
	DefaultInterval    = 1
	DefaultEase        = 2.5
)

// SchedulingState хранит состояние интервального повторения для пары (пользователь, вопрос).
// Отсутствие записи означает «вопрос ещё ни разу не отвечен» и не равно Repetitions=0.
type SchedulingState struct {
	UserID       string    `gorm:"primaryKey;size:191" json:"userId"`
	QuestionID   string    `gorm:"primaryKey;size:191" json:"questionId"`
	Repetitions  int       `gorm:"not null;default:0" json:"repetitions"`
	Interval     int       `gorm:"column:interval_days;not null;default:1" json:"interval"` // В днях
	Ease         float64   `gorm:"not null;default:2.5" json:"ease"`
	NextReviewAt time.Time `gorm:"not null;index" json:"nextReviewAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// TableName определяет имя таблицы для GORM
func (SchedulingState) TableName() string {
	return "user_question_states"
}

// NewSchedulingState возвращает состояние по умолчанию для ещё не отвеченного вопроса
func NewSchedulingState(userID, questionID string) SchedulingState {
	return SchedulingState{
		UserID:      userID,
		QuestionID:  questionID,
		Repetitions: DefaultRepetitions,
		Interval:    DefaultInterval,
		Ease:        DefaultEase,
	}
}

// HasReviewTime сообщает, известно ли время следующего повторения.
// Нулевое время (отсутствующее или нераспознанное значение) считается «не пора».
func (s *SchedulingState) HasReviewTime() bool {
	return !s.NextReviewAt.IsZero()
}

// IsDue сообщает, наступило ли время повторения к моменту now
func (s *SchedulingState) IsDue(now time.Time) bool {
	return s.HasReviewTime() && !s.NextReviewAt.After(now)
}
