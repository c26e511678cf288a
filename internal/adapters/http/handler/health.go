package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health は死活監視用エンドポイントです。
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
