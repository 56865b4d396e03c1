package api

import (
	"Flicker/internal/api/middleware"
	"Flicker/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		// 兼容旧客户端的信封协议：操作名与载荷都在表单参数里，
		// 非 GET/POST 的方法在 Dispatch 内部统一拦截
		opsGroup := apiGroup.Group("")
		opsGroup.Use(middleware.AuthOptionalMiddleware())
		{
			opsGroup.Any("/posts", group.PostOpsHandler.Dispatch)
			opsGroup.Any("/users", group.UserOpsHandler.Dispatch)
		}
	}

	return r
}
