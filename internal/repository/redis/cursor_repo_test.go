package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCache мок для repository.CacheRepository
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Increment(key string) (int64, error) {
	args := m.Called(key)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCache) SetJSON(key string, value interface{}, expiration time.Duration) error {
	return m.Called(key, value, expiration).Error(0)
}

func (m *MockCache) GetJSON(key string, dest interface{}) error {
	return m.Called(key, dest).Error(0)
}

func TestCursorRepo_Next_Modulo(t *testing.T) {
	cache := new(MockCache)
	cache.On("Increment", "srs:cursor:u1").Return(int64(1), nil).Once()
	cache.On("Increment", "srs:cursor:u1").Return(int64(4), nil).Once()
	cache.On("Increment", "srs:cursor:u1").Return(int64(5), nil).Once()

	repo := NewCursorRepo(cache)
	ctx := context.Background()

	for _, want := range []int{0, 0, 1} {
		idx, err := repo.Next(ctx, "u1", 3)
		require.NoError(t, err)
		assert.Equal(t, want, idx)
	}
	cache.AssertExpectations(t)
}

func TestCursorRepo_Next_Error(t *testing.T) {
	cache := new(MockCache)
	cache.On("Increment", "srs:cursor:u1").Return(int64(0), errors.New("connection refused"))

	_, err := NewCursorRepo(cache).Next(context.Background(), "u1", 3)
	assert.Error(t, err)
}

func TestCursorRepo_Next_EmptyCorpus(t *testing.T) {
	cache := new(MockCache)

	idx, err := NewCursorRepo(cache).Next(context.Background(), "u1", 0)
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
	cache.AssertNotCalled(t, "Increment", mock.Anything)
}
