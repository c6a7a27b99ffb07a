package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/yigit/timetabler/internal/app/models/dto"
)

func bindRouter(limit int64) *gin.Engine {
	r := gin.New()
	r.Use(BodyLimit(limit))
	r.POST("/preview", func(c *gin.Context) {
		var req dto.PreviewRequest
		if !BindAndValidate(c, &req) {
			return
		}
		c.JSON(http.StatusOK, req)
	})
	return r
}

func TestBindAndValidate(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		want   string
	}{
		{"valid", `{"text":"ACC321 03/11/2025 09:00"}`, http.StatusOK, `"text":"ACC321 03/11/2025 09:00"`},
		{"malformed", `{"text":`, http.StatusBadRequest, `"VAL_001"`},
		{"missing text", `{"format":"auto"}`, http.StatusBadRequest, `text is required`},
		{"bad format", `{"text":"x","format":"csv"}`, http.StatusBadRequest, `format must be one of: auto tabular heuristic`},
		{"too large", `{"text":"` + strings.Repeat("x", 200) + `"}`, http.StatusRequestEntityTooLarge, `"IMP_003"`},
	}

	r := bindRouter(128)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/preview", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.want)
		})
	}
}
