package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/Conceptual-Machines/relist-api/internal/logger"
	"github.com/Conceptual-Machines/relist-api/internal/models"
	"github.com/Conceptual-Machines/relist-api/internal/services"
	"github.com/gin-gonic/gin"
)

// ListingGenerator produces listings for all platforms
type ListingGenerator interface {
	Generate(ctx context.Context, req *models.GenerationRequest) (*models.GenerationResult, error)
}

type GenerateHandler struct {
	generator ListingGenerator
}

func NewGenerateHandler(generator ListingGenerator) *GenerateHandler {
	return &GenerateHandler{generator: generator}
}

// Generate relays one listing request and returns the four platform blocks
func (h *GenerateHandler) Generate(c *gin.Context) {
	var req models.GenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		// An unreadable body fails the same way the relay does
		respondError(c, &services.RelayError{Kind: services.UnknownError, Message: err.Error(), Err: err})
		return
	}

	result, err := h.generator.Generate(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func respondError(c *gin.Context, err error) {
	relayErr := services.AsRelayError(err)

	fields := logger.WithContext(c)
	fields["error_kind"] = string(relayErr.Kind)
	logger.Error("Listing generation failed", err, fields)

	c.Header(services.ErrorKindHeader, string(relayErr.Kind))
	c.JSON(http.StatusInternalServerError, models.ErrorResult{Error: relayErr.Message})
}
