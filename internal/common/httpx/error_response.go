package httpx

import (
	"net/http"

	"image-management-server/internal/common"

	"github.com/gin-gonic/gin"
)

// WriteServiceError writes a standardized HTTP error response for service-layer errors.
func WriteServiceError(c *gin.Context, err error, fallbackMessage string) {
	if serviceErr, ok := common.AsServiceError(err); ok {
		c.JSON(ServiceErrorStatus(serviceErr.Code), gin.H{"error": serviceErr.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": fallbackMessage})
}

// WriteBadRequest 参数绑定或解析失败时使用
func WriteBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}

func ServiceErrorStatus(code common.ErrorCode) int {
	switch code {
	case common.ErrorCodeValidation:
		return http.StatusBadRequest
	case common.ErrorCodeUnauthorized:
		return http.StatusUnauthorized
	case common.ErrorCodeForbidden:
		return http.StatusForbidden
	case common.ErrorCodeConflict:
		return http.StatusConflict
	case common.ErrorCodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
