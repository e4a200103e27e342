package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stocksim/internal/db"
)

type HealthHandler struct {
	DB *db.DB
}

func (h *HealthHandler) Register(r *gin.Engine) {
	r.GET("/healthz", h.healthz)
	r.GET("/readyz", h.readyz)
}

func (h *HealthHandler) healthz(c *gin.Context) {
	Ok(c, gin.H{"status": "up"}, nil)
}

func (h *HealthHandler) readyz(c *gin.Context) {
	if err := db.PingContext(c.Request.Context(), h.DB); err != nil {
		Error(c, http.StatusServiceUnavailable, err.Error(), nil)
		return
	}
	Ok(c, gin.H{"status": "ready"}, nil)
}
