package auth

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shareit-go/shareit/internal/pkg/response"
)

// UserIDHeader carries the caller identity. It is trusted as-is.
const UserIDHeader = "X-Sharer-User-Id"

// UserIDRequired is a Gin middleware that reads the caller from X-Sharer-User-Id.
// The header must hold a positive integer.
func UserIDRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader(UserIDHeader))
		if header == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, response.ErrorResponse{
				Error: "missing " + UserIDHeader + " header",
			})
			return
		}

		id, err := strconv.ParseInt(header, 10, 64)
		if err != nil || id <= 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, response.ErrorResponse{
				Error: "invalid " + UserIDHeader + " header",
			})
			return
		}

		// Store caller into Gin context for later handlers.
		c.Set(userIDKey, id)

		c.Next()
	}
}
