package helper

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newContext(query string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/x"+query, nil)
	return c
}

func TestQueryBool(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		def     bool
		want    bool
		wantErr bool
	}{
		{"нет параметра", "", true, true, false},
		{"пустое значение", "?flag=", false, false, false},
		{"true", "?flag=true", false, true, false},
		{"1", "?flag=1", false, true, false},
		{"false", "?flag=false", true, false, false},
		{"мусор", "?flag=yes", true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := QueryBool(newContext(tt.query), "flag", tt.def)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQueryInt(t *testing.T) {
	got, err := QueryInt(newContext(""), "limit", 30)
	assert.NoError(t, err)
	assert.Equal(t, 30, got)

	got, err = QueryInt(newContext("?limit=7"), "limit", 30)
	assert.NoError(t, err)
	assert.Equal(t, 7, got)

	got, err = QueryInt(newContext("?limit=abc"), "limit", 30)
	assert.Error(t, err)
	assert.Equal(t, 30, got)
}
