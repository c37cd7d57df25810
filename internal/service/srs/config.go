package srs

import "github.com/yourusername/quiz-srs/internal/domain/entity"

// Config содержит настройки модели интервального повторения
type Config struct {
	// FastAnswerMs — верхняя граница времени ответа для качества 5
	FastAnswerMs int64

	// HesitantAnswerMs — верхняя граница времени ответа для качества 4; медленнее — качество 3
	HesitantAnswerMs int64

	// MinEase — нижняя граница коэффициента лёгкости (верхней нет)
	MinEase float64

	// InitialEase — коэффициент лёгкости для ещё не отвеченного вопроса
	InitialEase float64

	// FirstInterval и SecondInterval — интервалы (в днях) после первого и второго успешного повторения
	FirstInterval  int
	SecondInterval int

	// MaxInterval — верхняя граница интервала в днях. Держит nextReviewAt в пределах
	// сериализуемого времени и interval_days в пределах INTEGER.
	MaxInterval int
}

// DefaultMaxInterval — сто лет
const DefaultMaxInterval = 36500

// DefaultConfig возвращает классические параметры SM-2
func DefaultConfig() *Config {
	return &Config{
		FastAnswerMs:     5000,
		HesitantAnswerMs: 12000,
		MinEase:          1.3,
		InitialEase:      entity.DefaultEase,
		FirstInterval:    1,
		SecondInterval:   6,
		MaxInterval:      DefaultMaxInterval,
	}
}

// withDefaults заполняет нулевые поля значениями по умолчанию
func (c *Config) withDefaults() *Config {
	d := DefaultConfig()
	if c == nil {
		return d
	}
	cfg := *c
	if cfg.FastAnswerMs <= 0 {
		cfg.FastAnswerMs = d.FastAnswerMs
	}
	if cfg.HesitantAnswerMs <= 0 {
		cfg.HesitantAnswerMs = d.HesitantAnswerMs
	}
	if cfg.MinEase <= 0 {
		cfg.MinEase = d.MinEase
	}
	if cfg.InitialEase <= 0 {
		cfg.InitialEase = d.InitialEase
	}
	if cfg.FirstInterval <= 0 {
		cfg.FirstInterval = d.FirstInterval
	}
	if cfg.SecondInterval <= 0 {
		cfg.SecondInterval = d.SecondInterval
	}
	if cfg.MaxInterval <= 0 || cfg.MaxInterval > d.MaxInterval {
		cfg.MaxInterval = d.MaxInterval
	}
	return &cfg
}

// InitialState возвращает состояние для пары, на которую ещё не было ответа
func (c *Config) InitialState(userID, questionID string) entity.SchedulingState {
	state := entity.NewSchedulingState(userID, questionID)
	state.Ease = c.withDefaults().InitialEase
	return state
}
