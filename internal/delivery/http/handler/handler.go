package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/remotework/jobnexus/internal/delivery/http/request"
	"github.com/remotework/jobnexus/internal/delivery/http/response"
	"github.com/remotework/jobnexus/internal/entity"
	"github.com/remotework/jobnexus/internal/repository"
	"github.com/remotework/jobnexus/internal/usecase"
	"go.uber.org/zap"
)

// Pinger is a dependency the health check can probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

type Handler struct {
	extractor usecase.Extractor
	jobBoard  usecase.JobBoard
	deps      map[string]Pinger
	logger    *zap.Logger
}

// NewHandler wires the use cases. deps are probed by the health check, keyed
// by the name reported in its response.
func NewHandler(extractor usecase.Extractor, jobBoard usecase.JobBoard, deps map[string]Pinger, logger *zap.Logger) *Handler {
	return &Handler{
		extractor: extractor,
		jobBoard:  jobBoard,
		deps:      deps,
		logger:    logger,
	}
}

func (h *Handler) HandleExtractJob(w http.ResponseWriter, r *http.Request) {
	var req request.ExtractJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == nil {
		h.respondWithError(w, http.StatusBadRequest, "No URL provided")
		return
	}

	if req.Refresh {
		if err := h.extractor.Invalidate(r.Context(), *req.URL); err != nil && !errors.Is(err, usecase.ErrInvalidURL) {
			h.logger.Warn("Failed to drop cached extraction", zap.String("url", *req.URL), zap.Error(err))
		}
	}

	result, err := h.extractor.Extract(r.Context(), *req.URL)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidURL) {
			h.respondWithError(w, http.StatusBadRequest, "Invalid URL format")
			return
		}
		h.logger.Error("Job extraction failed", zap.String("url", *req.URL), zap.Error(err))
		h.respondWithError(w, http.StatusInternalServerError, "Could not extract job details: "+err.Error())
		return
	}

	h.respondWithJSON(w, http.StatusOK, result)
}

func (h *Handler) HandleListFailures(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			h.respondWithError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	failures, err := h.extractor.RecentFailures(r.Context(), limit)
	if err != nil {
		h.logger.Error("Failed to list extraction failures", zap.Error(err))
		h.respondWithError(w, http.StatusInternalServerError, "Could not retrieve extraction failures")
		return
	}
	if failures == nil {
		failures = []*entity.ExtractionFailure{}
	}
	h.respondWithJSON(w, http.StatusOK, response.FailureListResponse{Failures: failures, Count: len(failures)})
}

func (h *Handler) HandleListJobs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	jobs, err := h.jobBoard.Search(r.Context(), query)
	if err != nil {
		h.logger.Error("Failed to list jobs", zap.String("query", query), zap.Error(err))
		h.respondWithError(w, http.StatusInternalServerError, "Could not retrieve jobs")
		return
	}
	if jobs == nil {
		jobs = []*entity.Job{}
	}

	h.respondWithJSON(w, http.StatusOK, response.JobListResponse{Jobs: jobs, Count: len(jobs), Query: query})
}

func (h *Handler) HandleCreateJob(w http.ResponseWriter, r *http.Request) {
	var req request.CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	job, err := h.jobBoard.Post(r.Context(), req.ToEntity())
	if err != nil {
		var verr *usecase.ValidationError
		if errors.As(err, &verr) {
			h.respondWithJSON(w, http.StatusBadRequest, response.ErrorResponse{Error: verr.Error(), Fields: verr.Fields})
			return
		}
		h.logger.Error("Failed to post job", zap.Error(err))
		h.respondWithError(w, http.StatusInternalServerError, "Could not save job")
		return
	}

	h.respondWithJSON(w, http.StatusCreated, job)
}

func (h *Handler) HandleGetJob(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		h.respondWithError(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	job, err := h.jobBoard.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			h.respondWithError(w, http.StatusNotFound, "Job not found")
			return
		}
		h.logger.Error("Failed to get job", zap.Int64("id", id), zap.Error(err))
		h.respondWithError(w, http.StatusInternalServerError, "Could not retrieve job")
		return
	}

	h.respondWithJSON(w, http.StatusOK, job)
}

func (h *Handler) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := response.HealthResponse{Status: "ok"}
	if len(h.deps) > 0 {
		resp.Dependencies = make(map[string]string, len(h.deps))
	}
	for name, dep := range h.deps {
		if err := dep.Ping(ctx); err != nil {
			h.logger.Error("Health check failed", zap.String("dependency", name), zap.Error(err))
			resp.Dependencies[name] = "unhealthy"
			resp.Status = "degraded"
			continue
		}
		resp.Dependencies[name] = "healthy"
	}

	if resp.Status != "ok" {
		h.respondWithJSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	h.respondWithJSON(w, http.StatusOK, resp)
}

func (h *Handler) respondWithJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to write JSON response", zap.Error(err))
	}
}

func (h *Handler) respondWithError(w http.ResponseWriter, status int, message string) {
	h.respondWithJSON(w, status, response.ErrorResponse{Error: message})
}
