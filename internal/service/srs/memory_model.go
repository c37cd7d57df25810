package srs

import (
	"math"
	"time"

	"github.com/yourusername/quiz-srs/internal/domain/entity"
)

// Quality — оценка качества ответа по шкале SM-2.
// Оценка выводится из правильности и времени ответа; значение 2 не выдаётся никогда.
type Quality int

const (
	QualityLapse    Quality = 1 // Неверный ответ
	QualitySlow     Quality = 3 // Верно, но долго
	QualityHesitant Quality = 4 // Верно, с заминкой
	QualityPerfect  Quality = 5 // Верно и быстро
)

// Review — результат пересчёта состояния после одного ответа
type Review struct {
	Quality      Quality
	Repetitions  int
	Interval     int
	Ease         float64
	NextReviewAt time.Time
}

// QualityFor выводит оценку из правильности ответа и затраченного времени
func (c *Config) QualityFor(correct bool, elapsedMs int64) Quality {
	cfg := c.withDefaults()
	if !correct {
		return QualityLapse
	}
	if elapsedMs < 0 {
		elapsedMs = 0
	}
	switch {
	case elapsedMs <= cfg.FastAnswerMs:
		return QualityPerfect
	case elapsedMs <= cfg.HesitantAnswerMs:
		return QualityHesitant
	default:
		return QualitySlow
	}
}

// Update пересчитывает состояние повторения по ответу.
// Функция чистая: сохранение результата — забота вызывающего.
func (c *Config) Update(prev entity.SchedulingState, correct bool, elapsedMs int64, now time.Time) Review {
	cfg := c.withDefaults()

	repetitions := max(prev.Repetitions, 0)
	interval := min(max(prev.Interval, 1), cfg.MaxInterval)
	ease := prev.Ease
	if math.IsNaN(ease) || ease < cfg.MinEase {
		ease = cfg.MinEase
	}

	q := cfg.QualityFor(correct, elapsedMs)
	miss := float64(5 - q)
	ease += 0.1 - miss*(0.08+miss*0.02)
	if ease < cfg.MinEase {
		ease = cfg.MinEase
	}

	if q < QualitySlow {
		// Ошибка: цепочка повторений начинается заново, ease сохраняется
		repetitions = 0
		interval = cfg.FirstInterval
	} else {
		repetitions++
		switch repetitions {
		case 1:
			interval = cfg.FirstInterval
		case 2:
			interval = cfg.SecondInterval
		default:
			// Отбрасываем дробную часть, а не округляем
			next := math.Floor(float64(interval) * ease)
			if next >= float64(cfg.MaxInterval) {
				interval = cfg.MaxInterval
			} else {
				interval = int(next)
			}
		}
	}
	interval = min(interval, cfg.MaxInterval)

	return Review{
		Quality:      q,
		Repetitions:  repetitions,
		Interval:     interval,
		Ease:         ease,
		NextReviewAt: now.UTC().AddDate(0, 0, interval),
	}
}

// Apply переносит результат пересчёта в состояние
func (r Review) Apply(state *entity.SchedulingState, now time.Time) {
	state.Repetitions = r.Repetitions
	state.Interval = r.Interval
	state.Ease = r.Ease
	state.NextReviewAt = r.NextReviewAt
	state.UpdatedAt = now.UTC()
}
