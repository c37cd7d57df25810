package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// UserIDKey — ключ контекста Gin с идентификатором пользователя
const UserIDKey = "userID"

// maxUserIDLength совпадает с размером колонки user_id
const maxUserIDLength = 191

// RequireQueryParam создает middleware для извлечения обязательного строкового query-параметра.
// paramName - имя параметра (например, "userId").
// contextKey - ключ, под которым значение будет сохранено в контексте Gin.
func RequireQueryParam(paramName, contextKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		value := strings.TrimSpace(c.Query(paramName))
		if value == "" || len(value) > maxUserIDLength {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": fmt.Sprintf("Invalid %s", paramName)})
			c.Abort()
			return
		}
		c.Set(contextKey, value)
		c.Next()
	}
}

// RequireUserID — RequireQueryParam для параметра userId
func RequireUserID() gin.HandlerFunc {
	return RequireQueryParam("userId", UserIDKey)
}
