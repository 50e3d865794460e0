package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GenerationStatus reports how the relay resolved its provider at startup
type GenerationStatus interface {
	Ready() bool
	ProviderName() string
	Model() string
}

type HealthHandler struct {
	status GenerationStatus
}

func NewHealthHandler(status GenerationStatus) *HealthHandler {
	return &HealthHandler{status: status}
}

// HealthCheck returns the health status of the API. A missing credential does
// not make the process unhealthy; it is reported so operators can spot it.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"generation": gin.H{
			"provider":              h.status.ProviderName(),
			"model":                 h.status.Model(),
			"credential_configured": h.status.Ready(),
		},
	})
}
