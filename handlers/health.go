package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthCheck always reports ok; it does not touch the NLP backend.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
