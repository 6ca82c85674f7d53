package auth

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami", UserIDRequired(), func(c *gin.Context) {
		c.String(http.StatusOK, strconv.FormatInt(GetUserID(c), 10))
	})
	return r
}

func TestUserIDRequired(t *testing.T) {
	r := newTestRouter()

	tests := []struct {
		name   string
		header string
		code   int
		body   string
	}{
		{name: "valid", header: "42", code: http.StatusOK, body: "42"},
		{name: "padded", header: " 7 ", code: http.StatusOK, body: "7"},
		{name: "missing", header: "", code: http.StatusBadRequest, body: `{"error":"missing X-Sharer-User-Id header"}`},
		{name: "not a number", header: "abc", code: http.StatusBadRequest, body: `{"error":"invalid X-Sharer-User-Id header"}`},
		{name: "zero", header: "0", code: http.StatusBadRequest},
		{name: "negative", header: "-3", code: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set(UserIDHeader, tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.code, w.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, w.Body.String())
			}
		})
	}
}

func TestGetUserIDWithoutMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, int64(0), GetUserID(c))
}
