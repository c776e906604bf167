package interfaces

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"jobboard/domain"
	"jobboard/infrastructure"
)

type JobService interface {
	Create(ctx context.Context, data domain.JobCreate) (*domain.Job, error)
	FindAll(ctx context.Context) ([]*domain.Job, error)
	FindFiltered(ctx context.Context, filterBy map[string]any) ([]*domain.Job, error)
	Get(ctx context.Context, id int) (*domain.Job, error)
	Update(ctx context.Context, id int, data domain.JobUpdate) (*domain.Job, error)
	Remove(ctx context.Context, id int) error
}

type CompanyService interface {
	FindAll(ctx context.Context) ([]domain.Company, error)
	Get(ctx context.Context, handle string) (*domain.Company, error)
}

type HTTPHandler struct {
	Jobs      JobService
	Companies CompanyService
	Events    infrastructure.JobEventPublisher
	Log       *zap.Logger
}

func NewHTTPHandler(router *gin.Engine, log *zap.Logger, jobs JobService, companies CompanyService, events infrastructure.JobEventPublisher) *HTTPHandler {
	h := &HTTPHandler{Jobs: jobs, Companies: companies, Events: events, Log: log}

	router.GET("/healthz", h.Healthz)

	router.POST("/jobs", h.CreateJob)
	router.GET("/jobs", h.ListJobs)
	router.GET("/jobs/:id", h.GetJob)
	router.PATCH("/jobs/:id", h.UpdateJob)
	router.DELETE("/jobs/:id", h.DeleteJob)

	router.GET("/companies", h.ListCompanies)
	router.GET("/companies/:handle", h.GetCompany)

	return h
}

func (h *HTTPHandler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// CreateJob inserts a job; title and companyHandle are required.
func (h *HTTPHandler) CreateJob(c *gin.Context) {
	var req domain.JobCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, domain.BadRequest("%s", err.Error()))
		return
	}

	job, err := h.Jobs.Create(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.publish(c, infrastructure.JobCreated, job.ID, job)
	c.JSON(http.StatusCreated, gin.H{"job": job})
}

// ListJobs returns every job, or the filtered subset when minSalary,
// hasEquity or title are given in the query string.
func (h *HTTPHandler) ListJobs(c *gin.Context) {
	query := c.Request.URL.Query()

	var (
		jobs []*domain.Job
		err  error
	)
	if len(query) == 0 {
		jobs, err = h.Jobs.FindAll(c.Request.Context())
	} else {
		filterBy := make(map[string]any, len(query))
		for key := range query {
			filterBy[key] = query.Get(key)
		}
		jobs, err = h.Jobs.FindFiltered(c.Request.Context(), filterBy)
	}
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

func (h *HTTPHandler) GetJob(c *gin.Context) {
	id, ok := h.jobID(c)
	if !ok {
		return
	}

	job, err := h.Jobs.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"job": job})
}

// UpdateJob applies a partial update of title, salary and equity. Any other
// key in the body is rejected.
func (h *HTTPHandler) UpdateJob(c *gin.Context) {
	id, ok := h.jobID(c)
	if !ok {
		return
	}

	var req domain.JobUpdate
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.respondError(c, domain.BadRequest("%s", err.Error()))
		return
	}
	if dec.More() {
		h.respondError(c, domain.BadRequest("request body must hold a single JSON object"))
		return
	}
	if err := req.Validate(); err != nil {
		h.respondError(c, err)
		return
	}

	job, err := h.Jobs.Update(c.Request.Context(), id, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.publish(c, infrastructure.JobUpdated, job.ID, job)
	c.JSON(http.StatusOK, gin.H{"job": job})
}

func (h *HTTPHandler) DeleteJob(c *gin.Context) {
	id, ok := h.jobID(c)
	if !ok {
		return
	}

	if err := h.Jobs.Remove(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}

	h.publish(c, infrastructure.JobRemoved, id, nil)
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func (h *HTTPHandler) ListCompanies(c *gin.Context) {
	companies, err := h.Companies.FindAll(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"companies": companies})
}

func (h *HTTPHandler) GetCompany(c *gin.Context) {
	company, err := h.Companies.Get(c.Request.Context(), c.Param("handle"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"company": company})
}

func (h *HTTPHandler) jobID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(strings.TrimSpace(c.Param("id")))
	if err != nil {
		h.respondError(c, domain.BadRequest("invalid job id: %s", c.Param("id")))
		return 0, false
	}
	return id, true
}

// publish is best effort: the mutation is already committed.
func (h *HTTPHandler) publish(c *gin.Context, typ infrastructure.JobEventType, id int, job *domain.Job) {
	event := infrastructure.JobEvent{
		Type:       typ,
		JobID:      id,
		Job:        job,
		OccurredAt: time.Now().UTC(),
	}
	if err := h.Events.Publish(c.Request.Context(), event); err != nil {
		h.Log.Warn("Failed to publish job event",
			zap.String("type", string(typ)),
			zap.Int("job_id", id),
			zap.Error(err))
	}
}

func (h *HTTPHandler) respondError(c *gin.Context, err error) {
	var appErr *domain.Error
	if errors.As(err, &appErr) {
		status := http.StatusBadRequest
		if appErr.Kind == domain.KindNotFound {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": gin.H{"message": appErr.Error(), "status": status}})
		return
	}

	h.Log.Error("Request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{
		"message": "internal server error",
		"status":  http.StatusInternalServerError,
	}})
}
