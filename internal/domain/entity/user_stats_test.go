package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUserStats_Apply(t *testing.T) {
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	stats := &UserStats{UserID: "u1"}

	stats.Apply(true, 4000, at)
	stats.Apply(false, 6000, at.Add(time.Minute))
	stats.Apply(true, -50, at.Add(2*time.Minute)) // отрицательное время не уменьшает сумму

	assert.Equal(t, int64(3), stats.TotalAnswers)
	assert.Equal(t, int64(2), stats.CorrectCount)
	assert.Equal(t, int64(10000), stats.TotalElapsedMs)
	assert.InDelta(t, 2.0/3.0, stats.Accuracy, 1e-9)
	assert.Equal(t, at.Add(2*time.Minute), stats.LastAnsweredAt)
}

func TestCalculateAccuracy(t *testing.T) {
	assert.Equal(t, 0.0, CalculateAccuracy(0, 0), "Без ответов точность 0")
	assert.Equal(t, 0.5, CalculateAccuracy(1, 2))
	assert.Equal(t, 1.0, CalculateAccuracy(4, 4))
}
