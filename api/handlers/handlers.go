package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"glana/repositories"
	"glana/services"
)

// respondError는 서비스 레이어 에러를 상태 코드로 매핑해 에러 응답을 보낸다.
// - 검증 실패 400, 미존재 404, 중복 409, 추출 불가 422, 그 외 500
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, repositories.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, repositories.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": "duplicate name"})
	case errors.Is(err, services.ErrUnprocessable):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
