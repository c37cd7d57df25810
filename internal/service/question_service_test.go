package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/quiz-srs/internal/domain/entity"
	apperrors "github.com/yourusername/quiz-srs/internal/pkg/errors"
)

func TestQuestionService_PrefersDatabase(t *testing.T) {
	repo := new(MockQuestionRepository)
	repo.On("ListAll", mock.Anything).Return(testCorpus(), nil)
	files := new(MockQuestionSource)

	svc := NewQuestionService(repo, files, nil, 0)
	questions, err := svc.LoadAll(context.Background())

	require.NoError(t, err)
	assert.Len(t, questions, 3)
	files.AssertNotCalled(t, "LoadAll", mock.Anything)
}

func TestQuestionService_FallsBackToFiles(t *testing.T) {
	tests := []struct {
		name    string
		dbRows  []entity.Question
		dbError error
	}{
		{"пустая БД", []entity.Question{}, nil},
		{"ошибка БД", nil, apperrors.ErrStoreUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockQuestionRepository)
			repo.On("ListAll", mock.Anything).Return(tt.dbRows, tt.dbError)
			files := corpusSource(testCorpus()[:1])

			questions, err := NewQuestionService(repo, files, nil, 0).LoadAll(context.Background())

			require.NoError(t, err)
			assert.Equal(t, []string{"q1"}, questionIDs(questions))
		})
	}
}

func TestQuestionService_NoSources(t *testing.T) {
	questions, err := NewQuestionService(nil, nil, nil, 0).LoadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, questions)
}

func TestQuestionService_FileError(t *testing.T) {
	files := new(MockQuestionSource)
	files.On("LoadAll", mock.Anything).Return(nil, errors.New("permission denied"))

	_, err := NewQuestionService(nil, files, nil, 0).LoadAll(context.Background())
	assert.Error(t, err)
}

func TestQuestionService_CacheHit(t *testing.T) {
	cache := new(MockCacheRepository)
	cache.On("GetJSON", questionsCacheKey, mock.Anything).Run(func(args mock.Arguments) {
		dest := args.Get(1).(*[]entity.Question)
		*dest = testCorpus()
	}).Return(nil)
	repo := new(MockQuestionRepository)

	questions, err := NewQuestionService(repo, nil, cache, time.Minute).LoadAll(context.Background())

	require.NoError(t, err)
	assert.Len(t, questions, 3)
	repo.AssertNotCalled(t, "ListAll", mock.Anything)
}

func TestQuestionService_CacheMissStores(t *testing.T) {
	cache := new(MockCacheRepository)
	cache.On("GetJSON", questionsCacheKey, mock.Anything).Return(apperrors.ErrNotFound)
	cache.On("SetJSON", questionsCacheKey, mock.Anything, time.Minute).Return(nil)
	repo := new(MockQuestionRepository)
	repo.On("ListAll", mock.Anything).Return(testCorpus(), nil)

	questions, err := NewQuestionService(repo, nil, cache, time.Minute).LoadAll(context.Background())

	require.NoError(t, err)
	assert.Len(t, questions, 3)
	cache.AssertExpectations(t)
}

func TestQuestionService_CacheFailureIgnored(t *testing.T) {
	cache := new(MockCacheRepository)
	cache.On("GetJSON", questionsCacheKey, mock.Anything).Return(apperrors.ErrStoreUnavailable)
	cache.On("SetJSON", questionsCacheKey, mock.Anything, time.Minute).Return(apperrors.ErrStoreUnavailable)

	questions, err := NewQuestionService(nil, corpusSource(testCorpus()), cache, time.Minute).LoadAll(context.Background())

	require.NoError(t, err)
	assert.Len(t, questions, 3)
}

func TestQuestionService_GetMeta(t *testing.T) {
	meta, err := NewQuestionService(nil, corpusSource(testCorpus()), nil, 0).GetMeta(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, meta.TotalQuestions)
	assert.Equal(t, "ITパスポート", meta.Categories[0].Name)

	empty, err := NewQuestionService(nil, nil, nil, 0).GetMeta(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, empty.TotalQuestions)
	assert.Empty(t, empty.Categories)
}

func TestExportService_AnswerHistory(t *testing.T) {
	answers := new(MockAnswerRepository)
	answers.On("GetUserAnswers", mock.Anything, "u1").Return([]entity.AnswerEvent{
		{QuestionID: "q2", Choice: 1, Correct: true, ElapsedMs: 800, CreatedAt: studyNow},
		{QuestionID: "gone", Choice: 0, CreatedAt: studyNow.Add(time.Minute)},
	}, nil)
	corpus := corpusSource(testCorpus())

	study := newTestStudyService(corpus, nil, answers, nil)
	rows, err := NewExportService(study, corpus).AnswerHistory(context.Background(), "u1")

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Q2", rows[0].Question)
	assert.Equal(t, 1, rows[0].Answer)
	assert.Equal(t, "ITパスポート", rows[0].Category)
	assert.Equal(t, "", rows[1].Question, "Удалённый вопрос выгружается без текста")
	assert.Equal(t, -1, rows[1].Answer)
}
