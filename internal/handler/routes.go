package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/yourusername/quiz-srs/internal/middleware"
)

// RegisterRoutes регистрирует маршруты API. limiter == nil — без rate limiting (Redis отключён).
func RegisterRoutes(router *gin.Engine, study *StudyHandler, export *ExportHandler, limiter *middleware.RateLimiter) {
	router.GET("/health", study.Health)

	api := router.Group("/api/v1")
	submit := []gin.HandlerFunc{}
	if limiter != nil {
		api.Use(limiter.LimitByIP(middleware.DefaultAPIRateLimitConfig()))
		submit = append(submit, limiter.Limit(middleware.DefaultSubmitRateLimitConfig()))
	}
	{
		api.GET("/meta", study.GetMeta)
		api.GET("/questions", study.ListQuestions)

		// Эндпоинты, требующие userId в query
		withUser := api.Group("")
		withUser.Use(middleware.RequireUserID())
		{
			withUser.GET("/questions/next", study.GetNextQuestion)
			withUser.GET("/questions/batch", study.GetQuestionBatch)
			withUser.GET("/stats", study.GetStats)
			if export != nil {
				withUser.GET("/stats/export", export.ExportAnswers)
			}
		}

		// userId передаётся в теле запроса
		api.POST("/answers", append(submit, study.SubmitAnswer)...)
		api.POST("/session/results", append(submit, study.SubmitSessionResults)...)
	}
}
