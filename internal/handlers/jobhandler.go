package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jobdeck/jobdeck/internal/dtos"
	"github.com/jobdeck/jobdeck/internal/models"
	"github.com/jobdeck/jobdeck/internal/query"
	"github.com/jobdeck/jobdeck/internal/services"
)

// JobHandler exposes the five job operations over HTTP.
type JobHandler struct {
	Jobs *services.JobService
}

func NewJobHandler(j *services.JobService) *JobHandler {
	return &JobHandler{Jobs: j}
}

// ListJobs is GET /api/jobs.
func (h *JobHandler) ListJobs(c *gin.Context) {
	p := query.Params{
		Search:   c.Query("search"),
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		Location: c.Query("location"),
		Sort:     c.Query("sort"),
		Page:     c.Query("page"),
		Limit:    c.Query("limit"),
	}

	resp, err := h.Jobs.List(c.Request.Context(), p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetJob is GET /api/jobs/:id.
func (h *JobHandler) GetJob(c *gin.Context) {
	job, err := h.Jobs.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// CreateJob is POST /api/jobs.
func (h *JobHandler) CreateJob(c *gin.Context) {
	var req dtos.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid JSON format: " + err.Error()})
		return
	}

	job, err := h.Jobs.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

// UpdateJob is PUT /api/jobs/:id.
func (h *JobHandler) UpdateJob(c *gin.Context) {
	var patch dtos.JobPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid JSON format: " + err.Error()})
		return
	}

	job, err := h.Jobs.Update(c.Request.Context(), c.Param("id"), &patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// DeleteJob is DELETE /api/jobs/:id.
func (h *JobHandler) DeleteJob(c *gin.Context) {
	if err := h.Jobs.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job deleted successfully"})
}

// respondError maps the service error taxonomy to status codes: validation →
// 400, not found → 404, anything else → 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrValidation), errors.Is(err, models.ErrMalformedQuery):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Job not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
	}
}
