package service

import (
	"context"
	"time"

	"github.com/yourusername/quiz-srs/internal/domain/repository"
)

// AnswerExportRow — строка выгрузки истории ответов
type AnswerExportRow struct {
	AnsweredAt time.Time
	QuestionID string
	Category   string
	Question   string
	Choice     int
	Answer     int
	Correct    bool
	ElapsedMs  int64
}

// ExportService готовит историю ответов пользователя к выгрузке в CSV/XLSX
type ExportService struct {
	study     *StudyService
	questions repository.QuestionSource
}

// NewExportService создает сервис выгрузки
func NewExportService(study *StudyService, questions repository.QuestionSource) *ExportService {
	return &ExportService{study: study, questions: questions}
}

// AnswerHistory возвращает ответы пользователя в хронологическом порядке вместе с текстами вопросов.
// Ответы на вопросы, которых больше нет в корпусе, выгружаются без текста.
func (s *ExportService) AnswerHistory(ctx context.Context, userID string) ([]AnswerExportRow, error) {
	answers, err := s.study.GetUserAnswers(ctx, userID)
	if err != nil {
		return nil, err
	}
	questions, err := s.questions.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]AnswerExportRow, 0, len(answers))
	for _, a := range answers {
		row := AnswerExportRow{
			AnsweredAt: a.CreatedAt,
			QuestionID: a.QuestionID,
			Choice:     a.Choice,
			Answer:     -1,
			Correct:    a.Correct,
			ElapsedMs:  a.ElapsedMs,
		}
		if q, ok := findQuestion(questions, a.QuestionID); ok {
			row.Category = q.Category
			row.Question = q.Text
			row.Answer = q.Answer
		}
		rows = append(rows, row)
	}
	return rows, nil
}
