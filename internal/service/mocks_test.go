package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/yourusername/quiz-srs/internal/domain/entity"
)

// ============================================================================
// Моки репозиториев для тестов сервисов
// ============================================================================

// MockQuestionSource реализует repository.QuestionSource
type MockQuestionSource struct {
	mock.Mock
}

func (m *MockQuestionSource) LoadAll(ctx context.Context) ([]entity.Question, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Question), args.Error(1)
}

// MockQuestionRepository реализует repository.QuestionRepository
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) ListAll(ctx context.Context) ([]entity.Question, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Question), args.Error(1)
}

func (m *MockQuestionRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockStateStore реализует repository.SchedulingStateStore
type MockStateStore struct {
	mock.Mock
}

func (m *MockStateStore) LoadStates(ctx context.Context, userID string) (map[string]entity.SchedulingState, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]entity.SchedulingState), args.Error(1)
}

func (m *MockStateStore) GetState(ctx context.Context, userID, questionID string) (*entity.SchedulingState, error) {
	args := m.Called(ctx, userID, questionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.SchedulingState), args.Error(1)
}

func (m *MockStateStore) SaveState(ctx context.Context, state *entity.SchedulingState) error {
	return m.Called(ctx, state).Error(0)
}

// MockAnswerRepository реализует repository.AnswerRepository
type MockAnswerRepository struct {
	mock.Mock
}

func (m *MockAnswerRepository) AppendAnswer(ctx context.Context, answer *entity.AnswerEvent) error {
	return m.Called(ctx, answer).Error(0)
}

func (m *MockAnswerRepository) GetUserAnswers(ctx context.Context, userID string) ([]entity.AnswerEvent, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.AnswerEvent), args.Error(1)
}

// MockUserStatsRepository реализует repository.UserStatsRepository
type MockUserStatsRepository struct {
	mock.Mock
}

func (m *MockUserStatsRepository) GetStats(ctx context.Context, userID string) (*entity.UserStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.UserStats), args.Error(1)
}

func (m *MockUserStatsRepository) SaveStats(ctx context.Context, stats *entity.UserStats) error {
	return m.Called(ctx, stats).Error(0)
}

// MockCursorStore реализует repository.CursorStore
type MockCursorStore struct {
	mock.Mock
}

func (m *MockCursorStore) Next(ctx context.Context, userID string, size int) (int, error) {
	args := m.Called(ctx, userID, size)
	return args.Int(0), args.Error(1)
}

// MockCacheRepository реализует repository.CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Increment(key string) (int64, error) {
	args := m.Called(key)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCacheRepository) SetJSON(key string, value interface{}, expiration time.Duration) error {
	return m.Called(key, value, expiration).Error(0)
}

func (m *MockCacheRepository) GetJSON(key string, dest interface{}) error {
	args := m.Called(key, dest)
	return args.Error(0)
}
