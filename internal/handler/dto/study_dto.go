package dto

import (
	"time"

	"github.com/yourusername/quiz-srs/internal/domain/entity"
	"github.com/yourusername/quiz-srs/internal/service"
)

// QuestionResponse — вопрос в формате клиента (поле answer клиент использует для проверки офлайн)
type QuestionResponse struct {
	ID          string   `json:"id"`
	Category    string   `json:"category"`
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      int      `json:"answer"`
	Explanation *string  `json:"explanation"`
}

// NextQuestionResponse — ответ /questions/next; question == null при пустом корпусе
type NextQuestionResponse struct {
	Question *QuestionResponse `json:"question"`
}

// QuestionBatchResponse — ответ /questions/batch
type QuestionBatchResponse struct {
	Questions []QuestionResponse `json:"questions"`
}

// AnswerRequest — тело POST /answers
type AnswerRequest struct {
	UserID     string `json:"userId" binding:"required"`
	QuestionID string `json:"questionId" binding:"required"`
	Choice     *int   `json:"choice" binding:"required"`
	ElapsedMs  int64  `json:"elapsedMs"`
}

// AnswerResponse — результат проверки ответа
type AnswerResponse struct {
	Correct      bool      `json:"correct"`
	NextReviewAt time.Time `json:"nextReviewAt"`
}

// SessionResultItem — один ответ в теле POST /session/results
type SessionResultItem struct {
	QuestionID string `json:"questionId" binding:"required"`
	Choice     *int   `json:"choice" binding:"required"`
	ElapsedMs  int64  `json:"elapsedMs"`
}

// SessionResultsRequest — тело POST /session/results
type SessionResultsRequest struct {
	UserID  string              `json:"userId" binding:"required"`
	Results []SessionResultItem `json:"results" binding:"dive"`
}

// NewQuestionResponse создает DTO для вопроса
func NewQuestionResponse(q *entity.Question) *QuestionResponse {
	if q == nil {
		return nil
	}
	options := []string(q.Options)
	if options == nil {
		options = []string{}
	}
	return &QuestionResponse{
		ID:          q.ID,
		Category:    q.Category,
		Question:    q.Text,
		Options:     options,
		Answer:      q.Answer,
		Explanation: q.Explanation,
	}
}

// NewQuestionListResponse создает DTO для списка вопросов
func NewQuestionListResponse(questions []entity.Question) []QuestionResponse {
	out := make([]QuestionResponse, 0, len(questions))
	for i := range questions {
		out = append(out, *NewQuestionResponse(&questions[i]))
	}
	return out
}

// ToSessionItems переводит тело запроса в элементы сессии
func (r *SessionResultsRequest) ToSessionItems() []service.SessionItem {
	items := make([]service.SessionItem, 0, len(r.Results))
	for _, it := range r.Results {
		items = append(items, service.SessionItem{
			QuestionID: it.QuestionID,
			Choice:     *it.Choice,
			ElapsedMs:  it.ElapsedMs,
		})
	}
	return items
}
