package srs

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/quiz-srs/internal/domain/entity"
)

func makeQuestions(n int) []entity.Question {
	qs := make([]entity.Question, n)
	for i := range qs {
		qs[i] = entity.Question{
			ID:       fmt.Sprintf("q%d", i+1),
			Category: "基本情報",
			Text:     fmt.Sprintf("Вопрос %d", i+1),
			Options:  entity.StringArray{"A", "B", "C", "D"},
			Answer:   i % 4,
		}
	}
	return qs
}

func ids(qs []entity.Question) []string {
	out := make([]string, len(qs))
	for i, q := range qs {
		out[i] = q.ID
	}
	return out
}

func TestClassify_Buckets(t *testing.T) {
	now := testNow
	questions := makeQuestions(6)
	states := map[string]entity.SchedulingState{
		// q1 — нет состояния → new
		"q2": {Repetitions: 3, NextReviewAt: now.Add(-time.Hour)},   // due
		"q3": {Repetitions: 0, NextReviewAt: now.Add(-time.Minute)}, // due важнее свежей ошибки
		"q4": {Repetitions: 0, NextReviewAt: now.Add(24 * time.Hour)},
		"q5": {Repetitions: 2, NextReviewAt: now.Add(6 * 24 * time.Hour)},
		"q6": {Repetitions: 4}, // нулевое время → не due
	}

	b := Classify(questions, states, now)

	assert.Equal(t, []string{"q2", "q3"}, ids(b.Due))
	assert.Equal(t, []string{"q4"}, ids(b.Hard))
	assert.Equal(t, []string{"q1"}, ids(b.New))
	assert.Equal(t, []string{"q5", "q6"}, ids(b.Others))
}

func TestClassify_DueAtExactInstant(t *testing.T) {
	questions := makeQuestions(1)
	states := map[string]entity.SchedulingState{"q1": {Repetitions: 1, NextReviewAt: testNow}}

	b := Classify(questions, states, testNow)

	assert.Equal(t, []string{"q1"}, ids(b.Due), "nextReviewAt == now считается due")
}

func TestClassify_MissingReviewTimeFallsThrough(t *testing.T) {
	questions := makeQuestions(2)
	states := map[string]entity.SchedulingState{
		"q1": {Repetitions: 0},
		"q2": {Repetitions: 1},
	}

	b := Classify(questions, states, testNow)

	assert.Empty(t, b.Due)
	assert.Equal(t, []string{"q1"}, ids(b.Hard))
	assert.Equal(t, []string{"q2"}, ids(b.Others))
}

func TestClassify_EmptyInputs(t *testing.T) {
	b := Classify(nil, nil, testNow)
	assert.Equal(t, 0, b.Len())

	b = Classify(makeQuestions(3), nil, testNow)
	assert.Equal(t, []string{"q1", "q2", "q3"}, ids(b.New), "Без состояний все вопросы новые")
}

// Разбиение: корзины не пересекаются, а их объединение совпадает с входом
func TestClassify_Partition(t *testing.T) {
	questions := makeQuestions(40)
	states := make(map[string]entity.SchedulingState)
	for i, q := range questions {
		switch i % 5 {
		case 0:
			continue
		case 1:
			states[q.ID] = entity.SchedulingState{Repetitions: 0, NextReviewAt: testNow.Add(-time.Duration(i) * time.Hour)}
		case 2:
			states[q.ID] = entity.SchedulingState{Repetitions: 0, NextReviewAt: testNow.Add(time.Duration(i) * time.Hour)}
		case 3:
			states[q.ID] = entity.SchedulingState{Repetitions: i, NextReviewAt: testNow.Add(time.Duration(i) * time.Hour)}
		case 4:
			states[q.ID] = entity.SchedulingState{Repetitions: i}
		}
	}

	b := Classify(questions, states, testNow)

	seen := make(map[string]int)
	for kind := BucketDue; kind < bucketCount; kind++ {
		for _, q := range b.Get(kind) {
			seen[q.ID]++
		}
	}
	require.Len(t, seen, len(questions))
	for id, n := range seen {
		assert.Equal(t, 1, n, "вопрос %s попал в несколько корзин", id)
	}
	assert.Equal(t, len(questions), b.Len())
}

func TestClassify_Idempotent(t *testing.T) {
	questions := makeQuestions(10)
	states := map[string]entity.SchedulingState{
		"q1": {Repetitions: 0, NextReviewAt: testNow.Add(time.Hour)},
		"q2": {Repetitions: 2, NextReviewAt: testNow.Add(-time.Hour)},
		"q7": {Repetitions: 5, NextReviewAt: testNow.Add(time.Hour)},
	}

	first := Classify(questions, states, testNow)
	second := Classify(questions, states, testNow)

	assert.Equal(t, first, second)
	assert.Equal(t, makeQuestions(10), questions, "Входной слайс не изменяется")
}

func TestBucketKind_String(t *testing.T) {
	assert.Equal(t, "due", BucketDue.String())
	assert.Equal(t, "hard", BucketHard.String())
	assert.Equal(t, "new", BucketNew.String())
	assert.Equal(t, "others", BucketOthers.String())
	assert.Equal(t, "unknown", BucketKind(42).String())
}
