package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRequireUserID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantUser   string
	}{
		{"есть userId", "?userId=u1", http.StatusOK, "u1"},
		{"пробелы обрезаются", "?userId=%20u2%20", http.StatusOK, "u2"},
		{"нет userId", "", http.StatusUnprocessableEntity, ""},
		{"пустой userId", "?userId=", http.StatusUnprocessableEntity, ""},
		{"слишком длинный", "?userId=" + strings.Repeat("x", 192), http.StatusUnprocessableEntity, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			var gotUser string
			router.GET("/x", RequireUserID(), func(c *gin.Context) {
				gotUser = c.GetString(UserIDKey)
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/x"+tt.query, nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantUser, gotUser)
		})
	}
}
