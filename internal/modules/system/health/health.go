package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
	pkgredis "github.com/sheetbrief/core/internal/pkg/redis"
)

func RegisterRoutes(rg *gin.RouterGroup, rc *pkgredis.Client) {
	rg.GET("/health", func(c *gin.Context) {
		redisOK := rc.Ping(c.Request.Context()) == nil

		status := "ok"
		code := http.StatusOK
		if !redisOK {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		c.JSON(code, gin.H{
			"status": status,
			"redis":  redisOK,
		})
	})
}
