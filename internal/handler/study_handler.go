package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quiz-srs/internal/handler/dto"
	"github.com/yourusername/quiz-srs/internal/handler/helper"
	"github.com/yourusername/quiz-srs/internal/middleware"
	apperrors "github.com/yourusername/quiz-srs/internal/pkg/errors"
	"github.com/yourusername/quiz-srs/internal/service"
	"github.com/yourusername/quiz-srs/internal/service/srs"
)

// StudyHandler обрабатывает запросы адаптивной тренировки
type StudyHandler struct {
	studyService *service.StudyService
}

// NewStudyHandler создает новый обработчик
func NewStudyHandler(studyService *service.StudyService) *StudyHandler {
	return &StudyHandler{studyService: studyService}
}

// parseMode читает флаги режима выбора; randomDefault — значение randomMode по умолчанию
func parseMode(c *gin.Context, randomDefault bool) (srs.Mode, error) {
	var mode srs.Mode
	var err error
	if mode.WrongOnly, err = helper.QueryBool(c, "wrongOnly", false); err != nil {
		return mode, err
	}
	if mode.AvoidCorrect, err = helper.QueryBool(c, "avoidCorrect", false); err != nil {
		return mode, err
	}
	if mode.RandomMode, err = helper.QueryBool(c, "randomMode", randomDefault); err != nil {
		return mode, err
	}
	return mode, nil
}

// GetNextQuestion возвращает следующий вопрос
// GET /api/v1/questions/next?userId=&wrongOnly=&avoidCorrect=&randomMode=
func (h *StudyHandler) GetNextQuestion(c *gin.Context) {
	userID := c.GetString(middleware.UserIDKey)
	mode, err := parseMode(c, false)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	q, err := h.studyService.GetNextQuestion(c.Request.Context(), userID, mode)
	if err != nil {
		h.handleStudyError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NextQuestionResponse{Question: dto.NewQuestionResponse(q)})
}

// GetQuestionBatch возвращает пакет вопросов для офлайн-сессии
// GET /api/v1/questions/batch?userId=&limit=30&randomMode=true
func (h *StudyHandler) GetQuestionBatch(c *gin.Context) {
	userID := c.GetString(middleware.UserIDKey)
	mode, err := parseMode(c, true)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	limit, err := helper.QueryInt(c, "limit", service.DefaultBatchLimit)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	questions, err := h.studyService.GetQuestionBatch(c.Request.Context(), userID, limit, mode)
	if err != nil {
		h.handleStudyError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.QuestionBatchResponse{Questions: dto.NewQuestionListResponse(questions)})
}

// ListQuestions возвращает весь корпус
// GET /api/v1/questions
func (h *StudyHandler) ListQuestions(c *gin.Context) {
	questions, err := h.studyService.ListQuestions(c.Request.Context())
	if err != nil {
		h.handleStudyError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewQuestionListResponse(questions))
}

// GetMeta возвращает сводку по корпусу
// GET /api/v1/meta
func (h *StudyHandler) GetMeta(c *gin.Context) {
	meta, err := h.studyService.GetMeta(c.Request.Context())
	if err != nil {
		h.handleStudyError(c, err)
		return
	}
	log.Printf("[StudyHandler] Meta: вопросов=%d, категорий=%d", meta.TotalQuestions, len(meta.Categories))
	c.JSON(http.StatusOK, meta)
}

// SubmitAnswer принимает ответ на вопрос
// POST /api/v1/answers
func (h *StudyHandler) SubmitAnswer(c *gin.Context) {
	var req dto.AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	res, err := h.studyService.SubmitAnswer(c.Request.Context(), req.UserID, req.QuestionID, *req.Choice, req.ElapsedMs)
	if err != nil {
		h.handleStudyError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AnswerResponse{Correct: res.Correct, NextReviewAt: res.NextReviewAt})
}

// SubmitSessionResults принимает ответы офлайн-сессии
// POST /api/v1/session/results
func (h *StudyHandler) SubmitSessionResults(c *gin.Context) {
	var req dto.SessionResultsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	res, err := h.studyService.SubmitSessionResults(c.Request.Context(), req.UserID, req.ToSessionItems())
	if err != nil {
		h.handleStudyError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// GetStats возвращает статистику пользователя
// GET /api/v1/stats?userId=
func (h *StudyHandler) GetStats(c *gin.Context) {
	userID := c.GetString(middleware.UserIDKey)

	stats, err := h.studyService.GetStats(c.Request.Context(), userID)
	if err != nil {
		h.handleStudyError(c, err)
		return
	}

	log.Printf("[StudyHandler] Stats: userId=%s total=%d correct=%d accuracy=%.4f",
		userID, stats.TotalAnswers, stats.CorrectCount, stats.Accuracy)
	c.JSON(http.StatusOK, stats)
}

// Health — проверка живости
// GET /health
func (h *StudyHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleStudyError — обработка ошибок сервисов
func (h *StudyHandler) handleStudyError(c *gin.Context, err error) {
	handleServiceError(c, "StudyHandler", err)
}

func handleServiceError(c *gin.Context, component string, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrMalformedRecord) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrStoreUnavailable) {
		log.Printf("[%s] WARNING: хранилище недоступно: %v", component, err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Storage temporarily unavailable"})
	} else {
		log.Printf("ERROR: Internal server error in %s: %v", component, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
