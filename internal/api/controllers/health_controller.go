package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"edupath/pkg/utils"
)

type HealthController struct {
	startedAt time.Time
}

func NewHealthController() *HealthController {
	return &HealthController{startedAt: time.Now()}
}

func (h *HealthController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"message":   "Server is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(h.startedAt).Round(time.Second).String(),
	})
}

func (h *HealthController) Welcome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to the EduPath API",
		"version": "1.0.0",
		"endpoints": gin.H{
			"auth":     "/api/auth",
			"quiz":     "/api/quiz",
			"colleges": "/api/colleges",
			"chat":     "/api/ask",
			"health":   "/api/health",
		},
	})
}

func (h *HealthController) NotFound(c *gin.Context) {
	utils.RespondError(c, http.StatusNotFound, "Route "+c.Request.URL.Path+" not found")
}
