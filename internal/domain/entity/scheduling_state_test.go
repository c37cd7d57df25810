package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewSchedulingState_Defaults(t *testing.T) {
	s := NewSchedulingState("u1", "q1")

	assert.Equal(t, "u1", s.UserID)
	assert.Equal(t, "q1", s.QuestionID)
	assert.Equal(t, 0, s.Repetitions)
	assert.Equal(t, 1, s.Interval)
	assert.Equal(t, 2.5, s.Ease)
	assert.False(t, s.HasReviewTime(), "У нового состояния нет времени повторения")
}

func TestSchedulingState_IsDue(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		next     time.Time
		expected bool
	}{
		{"в прошлом", now.Add(-time.Hour), true},
		{"ровно сейчас", now, true},
		{"в будущем", now.Add(time.Second), false},
		{"нулевое время", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := SchedulingState{NextReviewAt: tt.next}
			assert.Equal(t, tt.expected, s.IsDue(now))
		})
	}
}
