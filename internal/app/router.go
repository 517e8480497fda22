package app

import (
	"github.com/avash81/mindmeter-iq-app/docs"
	"github.com/avash81/mindmeter-iq-app/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")
	{
		api.GET("/health", c.health.HealthCheck)
		api.GET("/stats", c.stats.Snapshot)

		test := api.Group("/test")
		{
			test.POST("/start", c.test.Start)
			test.GET("/:sessionId/question", c.test.CurrentQuestion)
			test.POST("/:sessionId/answer", c.test.SubmitAnswer)
			test.GET("/:sessionId/result", c.test.Result)
		}

		api.POST("/certificate/download", c.certificate.Download)

		admin := api.Group("/admin")
		{
			admin.POST("/questions", c.question.Create)
			admin.GET("/questions", c.question.List)
			admin.GET("/questions/:id", c.question.Get)
			admin.PUT("/questions/:id", c.question.Update)
			admin.DELETE("/questions/:id", c.question.Delete)
		}
	}
}
