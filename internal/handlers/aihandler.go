package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jobdeck/jobdeck/internal/dtos"
	"github.com/jobdeck/jobdeck/internal/models"
	"github.com/jobdeck/jobdeck/internal/services"
)

// AIHandler fronts the resume review collaborator. Review may be nil when no
// API key is configured; the endpoint then reports failure instead of the
// whole server refusing to start.
type AIHandler struct {
	Review *services.ReviewService
}

func NewAIHandler(r *services.ReviewService) *AIHandler {
	return &AIHandler{Review: r}
}

// ReviewResume is POST /api/ai/review.
func (h *AIHandler) ReviewResume(c *gin.Context) {
	var req dtos.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid JSON format: " + err.Error()})
		return
	}

	if h.Review == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "AI request failed"})
		return
	}

	text, err := h.Review.ReviewResume(c.Request.Context(), req.Resume, req.Job)
	if err != nil {
		if errors.Is(err, models.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Resume text is required"})
			return
		}
		log.Printf("AI review error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "AI request failed"})
		return
	}
	c.JSON(http.StatusOK, dtos.ReviewResponse{Text: text})
}
