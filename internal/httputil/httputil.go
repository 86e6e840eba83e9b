package httputil

import "github.com/gin-gonic/gin"

// RespondError отправляет сообщение об ошибке в едином формате и прекращает обработку запроса.
// AbortWithStatusJSON гарантирует, что последующие обработчики не выполнятся.
func RespondError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"message": msg})
}

// RespondValidationError дополняет ответ списком ошибок схемы.
func RespondValidationError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(400, gin.H{"message": "Invalid data", "errors": []string{err.Error()}})
}

// RespondOperationError — формат необработанной ошибки массовой операции.
func RespondOperationError(c *gin.Context, msg string, err error) {
	c.AbortWithStatusJSON(500, gin.H{"message": msg, "error": err.Error()})
}
