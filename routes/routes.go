package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-textlens/handlers"
	"go-textlens/middleware"
	"go-textlens/nlp"
)

func SetupRouter(analyzer *nlp.Analyzer) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.RequestID())

	// 405 instead of 404 for a known path with the wrong method
	r.HandleMethodNotAllowed = true
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})

	r.GET("/", handlers.Home)
	r.GET("/health", handlers.HealthCheck)

	// Inject the analyzer into the handler
	r.POST("/analyze", func(c *gin.Context) {
		handlers.AnalyzeText(c, analyzer)
	})

	return r
}
