package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/quiz-srs/internal/domain/entity"
	"github.com/yourusername/quiz-srs/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-srs/internal/pkg/errors"
	"github.com/yourusername/quiz-srs/internal/repository/memory"
	"github.com/yourusername/quiz-srs/internal/service/srs"
)

// Границы размера пакета вопросов
const (
	MinBatchLimit     = 1
	MaxBatchLimit     = 100
	DefaultBatchLimit = 30
)

// AnswerResult — результат проверки одного ответа
type AnswerResult struct {
	Correct      bool      `json:"correct"`
	NextReviewAt time.Time `json:"nextReviewAt"`
}

// SessionItem — один ответ из офлайн-сессии
type SessionItem struct {
	QuestionID string `json:"questionId"`
	Choice     int    `json:"choice"`
	ElapsedMs  int64  `json:"elapsedMs"`
}

// SessionResult — итог сессии
type SessionResult struct {
	TotalAnswers int `json:"totalAnswers"`
	CorrectCount int `json:"correctCount"`
}

// StatsSummary — статистика пользователя для клиента
type StatsSummary struct {
	TotalAnswers int64   `json:"totalAnswers"`
	CorrectCount int64   `json:"correctCount"`
	Accuracy     float64 `json:"accuracy"`
}

// StudyService реализует адаптивную выдачу вопросов и приём ответов.
// Хранилища состояний, ответов и статистики опциональны: при nil сервис работает
// в упрощённом режиме (round-robin / случайная выборка, без записи истории).
type StudyService struct {
	questions repository.QuestionSource
	states    repository.SchedulingStateStore
	cursor    repository.CursorStore
	answers   repository.AnswerRepository
	stats     repository.UserStatsRepository
	srsConfig *srs.Config
	selector  *srs.Selector
	now       func() time.Time
}

// NewStudyService создает сервис обучения.
// cursor == nil — курсор в памяти процесса; selector == nil — глобальный генератор.
func NewStudyService(
	questions repository.QuestionSource,
	states repository.SchedulingStateStore,
	cursor repository.CursorStore,
	answers repository.AnswerRepository,
	stats repository.UserStatsRepository,
	srsConfig *srs.Config,
	selector *srs.Selector,
) *StudyService {
	if cursor == nil {
		cursor = memory.NewCursorRepo()
	}
	if selector == nil {
		selector = srs.NewSelector(nil)
	}
	if srsConfig == nil {
		srsConfig = srs.DefaultConfig()
	}
	return &StudyService{
		questions: questions,
		states:    states,
		cursor:    cursor,
		answers:   answers,
		stats:     stats,
		srsConfig: srsConfig,
		selector:  selector,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// loadStates загружает состояния пользователя. false — хранилища нет или оно недоступно,
// вызывающий переходит в упрощённый режим.
func (s *StudyService) loadStates(ctx context.Context, userID string) (map[string]entity.SchedulingState, bool) {
	if s.states == nil {
		return nil, false
	}
	states, err := s.states.LoadStates(ctx, userID)
	if err != nil {
		log.Printf("[StudyService] WARNING: хранилище состояний недоступно для пользователя %s, упрощённый режим: %v", userID, err)
		return nil, false
	}
	return states, true
}

// GetNextQuestion выбирает следующий вопрос. Пустой корпус — (nil, nil).
func (s *StudyService) GetNextQuestion(ctx context.Context, userID string, mode srs.Mode) (*entity.Question, error) {
	questions, err := s.questions.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, nil
	}

	states, ok := s.loadStates(ctx, userID)
	if !ok {
		q, err := s.selector.NextRoundRobin(ctx, s.cursor, userID, questions)
		if err != nil {
			log.Printf("[StudyService] WARNING: курсор недоступен для пользователя %s: %v", userID, err)
			fallback := s.selector.FallbackBatch(questions, mode, 1)
			return &fallback[0], nil
		}
		return q, nil
	}

	buckets := srs.Classify(questions, states, s.now())
	q, kind, found := s.selector.SelectOne(buckets, mode)
	if !found {
		return nil, nil
	}
	log.Printf("[StudyService] Пользователь %s: вопрос %s из корзины %s", userID, q.ID, kind)
	return q, nil
}

// ClampBatchLimit приводит размер пакета к допустимому диапазону
func ClampBatchLimit(limit int) int {
	return min(max(limit, MinBatchLimit), MaxBatchLimit)
}

// GetQuestionBatch выбирает до limit различных вопросов
func (s *StudyService) GetQuestionBatch(ctx context.Context, userID string, limit int, mode srs.Mode) ([]entity.Question, error) {
	limit = ClampBatchLimit(limit)

	questions, err := s.questions.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return []entity.Question{}, nil
	}

	states, ok := s.loadStates(ctx, userID)
	if !ok {
		return s.selector.FallbackBatch(questions, mode, limit), nil
	}

	buckets := srs.Classify(questions, states, s.now())
	return s.selector.SelectBatch(buckets, mode, limit), nil
}

// SubmitAnswer проверяет ответ и обновляет расписание повторения.
// Неизвестный вопрос — ErrNotFound, без каких-либо записей.
// Запись состояния, ответа и статистики независимы: ошибки логируются и не возвращаются.
func (s *StudyService) SubmitAnswer(ctx context.Context, userID, questionID string, choice int, elapsedMs int64) (*AnswerResult, error) {
	questions, err := s.questions.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	q, found := findQuestion(questions, questionID)
	if !found {
		log.Printf("[StudyService] WARNING: вопрос не найден userId=%s questionId=%s", userID, questionID)
		return nil, fmt.Errorf("question %s: %w", questionID, apperrors.ErrNotFound)
	}

	now := s.now()
	correct := q.IsCorrect(choice)

	state, canSave := s.previousState(ctx, userID, questionID)
	review := s.srsConfig.Update(state, correct, elapsedMs, now)
	review.Apply(&state, now)

	if canSave {
		if err := s.states.SaveState(ctx, &state); err != nil {
			log.Printf("[StudyService] ERROR: не удалось сохранить состояние %s/%s: %v", userID, questionID, err)
		}
	}
	s.recordAnswer(ctx, userID, questionID, choice, correct, elapsedMs, now)
	s.updateStats(ctx, userID, correct, elapsedMs, now)

	return &AnswerResult{Correct: correct, NextReviewAt: review.NextReviewAt}, nil
}

// previousState возвращает сохранённое состояние или начальное.
// false — состояние не удалось прочитать, и перезаписывать его нельзя.
func (s *StudyService) previousState(ctx context.Context, userID, questionID string) (entity.SchedulingState, bool) {
	initial := s.srsConfig.InitialState(userID, questionID)
	if s.states == nil {
		return initial, false
	}
	prev, err := s.states.GetState(ctx, userID, questionID)
	if err != nil {
		log.Printf("[StudyService] WARNING: не удалось прочитать состояние %s/%s: %v", userID, questionID, err)
		return initial, false
	}
	if prev == nil {
		return initial, true
	}
	return *prev, true
}

func (s *StudyService) recordAnswer(ctx context.Context, userID, questionID string, choice int, correct bool, elapsedMs int64, at time.Time) {
	if s.answers == nil {
		return
	}
	event := &entity.AnswerEvent{
		ID:         uuid.NewString(),
		UserID:     userID,
		QuestionID: questionID,
		Choice:     choice,
		Correct:    correct,
		ElapsedMs:  elapsedMs,
		CreatedAt:  at,
	}
	if err := s.answers.AppendAnswer(ctx, event); err != nil {
		log.Printf("[StudyService] ERROR: не удалось записать ответ %s/%s: %v", userID, questionID, err)
	}
}

func (s *StudyService) updateStats(ctx context.Context, userID string, correct bool, elapsedMs int64, at time.Time) {
	if s.stats == nil {
		return
	}
	current, err := s.stats.GetStats(ctx, userID)
	if err != nil {
		log.Printf("[StudyService] ERROR: не удалось прочитать статистику %s: %v", userID, err)
		return
	}
	if current == nil {
		current = &entity.UserStats{UserID: userID}
	}
	current.Apply(correct, elapsedMs, at)
	if err := s.stats.SaveStats(ctx, current); err != nil {
		log.Printf("[StudyService] ERROR: не удалось сохранить статистику %s: %v", userID, err)
	}
}

// SubmitSessionResults применяет ответы по порядку. Неизвестный вопрос прерывает сессию
// с ErrNotFound; уже применённые ответы остаются записанными.
func (s *StudyService) SubmitSessionResults(ctx context.Context, userID string, items []SessionItem) (*SessionResult, error) {
	result := &SessionResult{}
	for i, item := range items {
		res, err := s.SubmitAnswer(ctx, userID, item.QuestionID, item.Choice, item.ElapsedMs)
		if err != nil {
			return result, fmt.Errorf("session item %d: %w", i+1, err)
		}
		result.TotalAnswers++
		if res.Correct {
			result.CorrectCount++
		}
	}
	log.Printf("[StudyService] Сессия пользователя %s: %d ответов, %d верных", userID, result.TotalAnswers, result.CorrectCount)
	return result, nil
}

// GetStats возвращает агрегированную статистику, при её отсутствии или недоступности
// пересчитывает по журналу ответов. Недоступное хранилище не приводит к ошибке.
func (s *StudyService) GetStats(ctx context.Context, userID string) (*StatsSummary, error) {
	if s.stats != nil {
		stats, err := s.stats.GetStats(ctx, userID)
		if err != nil {
			log.Printf("[StudyService] WARNING: статистика %s недоступна, пересчитываем по ответам: %v", userID, err)
		}
		if err == nil && stats != nil {
			return &StatsSummary{
				TotalAnswers: stats.TotalAnswers,
				CorrectCount: stats.CorrectCount,
				Accuracy:     stats.Accuracy,
			}, nil
		}
	}

	if s.answers == nil {
		return &StatsSummary{}, nil
	}
	answers, err := s.answers.GetUserAnswers(ctx, userID)
	if err != nil {
		log.Printf("[StudyService] WARNING: журнал ответов %s недоступен, статистика пустая: %v", userID, err)
		return &StatsSummary{}, nil
	}
	summary := &StatsSummary{TotalAnswers: int64(len(answers))}
	for _, a := range answers {
		if a.Correct {
			summary.CorrectCount++
		}
	}
	summary.Accuracy = entity.CalculateAccuracy(summary.CorrectCount, summary.TotalAnswers)
	return summary, nil
}

// GetUserAnswers возвращает журнал ответов пользователя (для экспорта)
func (s *StudyService) GetUserAnswers(ctx context.Context, userID string) ([]entity.AnswerEvent, error) {
	if s.answers == nil {
		return []entity.AnswerEvent{}, nil
	}
	answers, err := s.answers.GetUserAnswers(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get answers for user %s: %w", userID, err)
	}
	return answers, nil
}

// GetMeta возвращает сводку по корпусу
func (s *StudyService) GetMeta(ctx context.Context) (*Meta, error) {
	questions, err := s.questions.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	return buildMeta(questions), nil
}

// ListQuestions возвращает весь корпус
func (s *StudyService) ListQuestions(ctx context.Context) ([]entity.Question, error) {
	return s.questions.LoadAll(ctx)
}
