package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// ExtractUintQuery создает middleware для извлечения и валидации числового query-параметра.
// queryName - имя параметра (например, "userId").
// contextKey - ключ, под которым значение будет сохранено в контексте Gin.
// Клиенты передают ID строкой, поэтому допускаются пробелы вокруг числа.
func ExtractUintQuery(queryName, contextKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.Query(queryName))
		if raw == "" {
			msg := fmt.Sprintf("%s is required", queryName)
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": msg, "message": msg})
			return
		}
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || id == 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid request data",
				"message": fmt.Sprintf("Invalid %s", queryName),
			})
			return
		}
		c.Set(contextKey, uint(id))
		c.Next()
	}
}
