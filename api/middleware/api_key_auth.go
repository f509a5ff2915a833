package middleware

import (
	"github.com/gin-gonic/gin"

	"glana/api/auth"
)

// APIKeyAuthMiddleware 는 변경성 라우트에 대해 공유 시크릿 Bearer 토큰을 검증한다.
// 조회 라우트는 이 미들웨어를 거치지 않는다.
func APIKeyAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractBearerToken(c)
		if err != nil {
			auth.AbortWithUnauthorized(c, err)
			return
		}

		if err := auth.ValidateAPIKey(token); err != nil {
			auth.AbortWithUnauthorized(c, err)
			return
		}

		c.Next()
	}
}
