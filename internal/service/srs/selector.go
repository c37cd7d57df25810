package srs

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/yourusername/quiz-srs/internal/domain/entity"
	"github.com/yourusername/quiz-srs/internal/domain/repository"
)

// Mode — режим выбора вопросов. Флаги независимы.
type Mode struct {
	WrongOnly    bool // Приоритет вопросам с ошибками
	AvoidCorrect bool // Не показывать выученное, пока есть что-то другое
	RandomMode   bool // Случайный выбор внутри корзины
}

// Randomized сообщает, выбирается ли вопрос внутри корзины случайно
func (m Mode) Randomized() bool {
	return m.RandomMode || m.WrongOnly || m.AvoidCorrect
}

// chain возвращает порядок обхода корзин: берётся первая непустая
func (m Mode) chain(hasDue bool) []BucketKind {
	switch {
	case m.WrongOnly:
		return []BucketKind{BucketHard, BucketDue, BucketNew, BucketOthers}
	case hasDue:
		return []BucketKind{BucketDue}
	case m.AvoidCorrect:
		return []BucketKind{BucketHard, BucketNew, BucketOthers, BucketDue}
	default:
		return []BucketKind{BucketNew, BucketDue, BucketOthers, BucketHard}
	}
}

// Selector выбирает вопросы из корзин
type Selector struct {
	intN func(n int) int
}

// NewSelector создаёт селектор. rng == nil — глобальный генератор math/rand/v2.
func NewSelector(rng *rand.Rand) *Selector {
	if rng == nil {
		return &Selector{intN: rand.IntN}
	}
	return &Selector{intN: rng.IntN}
}

// pickIndex выбирает позицию внутри непустого пула
func (s *Selector) pickIndex(n int, mode Mode) int {
	if mode.Randomized() {
		return s.intN(n)
	}
	return 0
}

// poolFor находит корзину по цепочке режима
func poolFor(work *[bucketCount][]entity.Question, mode Mode) (BucketKind, bool) {
	for _, kind := range mode.chain(len(work[BucketDue]) > 0) {
		if len(work[kind]) > 0 {
			return kind, true
		}
	}
	return 0, false
}

// SelectOne выбирает один вопрос. false — корзины пусты.
func (s *Selector) SelectOne(b Buckets, mode Mode) (*entity.Question, BucketKind, bool) {
	work := [bucketCount][]entity.Question{b.Due, b.Hard, b.New, b.Others}
	kind, ok := poolFor(&work, mode)
	if !ok {
		return nil, 0, false
	}
	pool := work[kind]
	q := pool[s.pickIndex(len(pool), mode)]
	return &q, kind, true
}

// SelectBatch выбирает до limit различных вопросов.
// Выбранный вопрос удаляется из своей корзины перед следующей итерацией,
// поэтому цепочка корзин пересчитывается на каждом шаге.
// Корзины вызывающего не изменяются.
func (s *Selector) SelectBatch(b Buckets, mode Mode, limit int) []entity.Question {
	if limit <= 0 {
		return []entity.Question{}
	}
	work := [bucketCount][]entity.Question{
		slices.Clone(b.Due),
		slices.Clone(b.Hard),
		slices.Clone(b.New),
		slices.Clone(b.Others),
	}

	selected := make([]entity.Question, 0, min(limit, b.Len()))
	for len(selected) < limit {
		kind, ok := poolFor(&work, mode)
		if !ok {
			break
		}
		pool := work[kind]
		idx := s.pickIndex(len(pool), mode)
		selected = append(selected, pool[idx])
		work[kind] = slices.Delete(pool, idx, idx+1)
	}
	return selected
}

// FallbackBatch — выбор без истории пользователя: случайная выборка (или полное
// перемешивание, если limit не меньше корпуса) в случайных режимах, иначе префикс.
func (s *Selector) FallbackBatch(questions []entity.Question, mode Mode, limit int) []entity.Question {
	if limit <= 0 || len(questions) == 0 {
		return []entity.Question{}
	}
	if !mode.Randomized() {
		return slices.Clone(questions[:min(limit, len(questions))])
	}

	shuffled := slices.Clone(questions)
	s.shuffle(shuffled)
	if limit >= len(shuffled) {
		return shuffled
	}
	return shuffled[:limit]
}

// shuffle — тасование Фишера-Йетса на генераторе селектора
func (s *Selector) shuffle(qs []entity.Question) {
	for i := len(qs) - 1; i > 0; i-- {
		j := s.intN(i + 1)
		qs[i], qs[j] = qs[j], qs[i]
	}
}

// NextRoundRobin выдаёт следующий вопрос по кругу для пользователя без истории
func (s *Selector) NextRoundRobin(ctx context.Context, cursor repository.CursorStore, userID string, questions []entity.Question) (*entity.Question, error) {
	if len(questions) == 0 {
		return nil, nil
	}
	idx, err := cursor.Next(ctx, userID, len(questions))
	if err != nil {
		return nil, fmt.Errorf("failed to advance cursor for user %s: %w", userID, err)
	}
	if idx < 0 || idx >= len(questions) {
		idx = 0
	}
	q := questions[idx]
	return &q, nil
}
