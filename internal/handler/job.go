package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/becopy/becopy-api/internal/model"
	"github.com/becopy/becopy-api/internal/payload"
	"github.com/becopy/becopy-api/internal/repository"
	"github.com/becopy/becopy-api/internal/usecase"
	"github.com/becopy/becopy-api/internal/validate"
	"github.com/becopy/becopy-api/shared/utilities"
)

// JobHandler handles job posting requests.
type JobHandler struct {
	jobUsecase usecase.JobUsecase
	validator  *validate.Validator
	logger     *zerolog.Logger
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(
	jobUsecase usecase.JobUsecase,
	validator *validate.Validator,
	logger *zerolog.Logger,
) *JobHandler {
	return &JobHandler{
		jobUsecase: jobUsecase,
		validator:  validator,
		logger:     logger,
	}
}

func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req payload.CreateJobRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	claims := ClaimsFromContext(r.Context())

	job, err := h.jobUsecase.CreateJob(r.Context(), claims.UserID, usecase.CreateJobParams{
		Title:   req.Title,
		Company: req.Company,
		Location: model.JobLocation{
			Name:      req.Location.Name,
			Latitude:  req.Location.Latitude,
			Longitude: req.Location.Longitude,
		},
		Description:  req.Description,
		Requirements: req.Requirements,
		Salary:       req.Salary,
		JobType:      req.JobType,
	})
	if err != nil {
		respondUsecaseError(w, h.logger, err)
		return
	}

	respondSuccess(w, http.StatusCreated, map[string]any{"job": job})
}

func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	job, err := h.jobUsecase.GetJob(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondUsecaseError(w, h.logger, err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]any{"job": job})
}

func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	params := repository.FilterJobsParams{}

	if jobType := query.Get("type"); jobType != "" {
		params.JobType = &jobType
	}
	if company := query.Get("company"); company != "" {
		params.Company = &company
	}
	if limit, err := strconv.ParseUint(query.Get("limit"), 10, 64); err == nil {
		params.Limit = limit
	}
	if offset, err := strconv.ParseUint(query.Get("offset"), 10, 64); err == nil {
		params.Offset = offset
	}

	jobs, err := h.jobUsecase.ListJobs(r.Context(), params)
	if err != nil {
		respondUsecaseError(w, h.logger, err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]any{"jobs": jobs})
}

func (h *JobHandler) Nearby(w http.ResponseWriter, r *http.Request) {
	var radiusKM float64
	if radius, err := strconv.ParseFloat(r.URL.Query().Get("radius"), 64); err == nil {
		radiusKM = radius
	}

	result, err := h.jobUsecase.NearbyJobs(r.Context(), utilities.ClientIP(r), radiusKM)
	if err != nil {
		respondUsecaseError(w, h.logger, err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]any{
		"jobs":     result.Jobs,
		"location": result.Location,
		"radiusKm": result.RadiusKM,
	})
}
