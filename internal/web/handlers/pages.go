package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/Conceptual-Machines/relist-api/internal/logger"
	"github.com/Conceptual-Machines/relist-api/internal/models"
	"github.com/Conceptual-Machines/relist-api/internal/services"
	"github.com/Conceptual-Machines/relist-api/internal/web/templates"
	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
)

// ListingGenerator produces listings for all platforms
type ListingGenerator interface {
	Generate(ctx context.Context, req *models.GenerationRequest) (*models.GenerationResult, error)
}

type WebHandler struct {
	generator ListingGenerator
}

func NewWebHandler(generator ListingGenerator) *WebHandler {
	return &WebHandler{generator: generator}
}

// Home renders the generator form
func (h *WebHandler) Home(c *gin.Context) {
	h.render(c, http.StatusOK, templates.Home())
}

// Generate handles the HTMX form post and renders either the platform blocks or the error text
func (h *WebHandler) Generate(c *gin.Context) {
	req := &models.GenerationRequest{
		ItemNotes: c.PostForm("itemNotes"),
		ImageURLs: SplitImageURLs(c.PostForm("imageUrls")),
	}

	result, err := h.generator.Generate(c.Request.Context(), req)
	if err != nil {
		relayErr := services.AsRelayError(err)
		c.Header(services.ErrorKindHeader, string(relayErr.Kind))
		// HTMX only swaps 2xx responses by default, so errors are rendered with 200
		h.render(c, http.StatusOK, templates.ErrorMessage(relayErr.Message))
		return
	}

	h.render(c, http.StatusOK, templates.Listings(result))
}

// SplitImageURLs splits the textarea value on newlines, trims each line and drops blanks
func SplitImageURLs(raw string) []string {
	urls := []string{}
	for _, line := range strings.Split(raw, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			urls = append(urls, trimmed)
		}
	}
	return urls
}

func (h *WebHandler) render(c *gin.Context, status int, component templ.Component) {
	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := component.Render(c.Request.Context(), c.Writer); err != nil {
		logger.Error("Failed to render template", err, logger.WithContext(c))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render template"})
	}
}
