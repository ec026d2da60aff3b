package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/becopy/becopy-api/internal/model"
	"github.com/becopy/becopy-api/internal/payload"
	"github.com/becopy/becopy-api/internal/usecase"
	"github.com/becopy/becopy-api/internal/validate"
)

// SettingHandler handles the singleton site settings.
type SettingHandler struct {
	settingUsecase usecase.SettingUsecase
	validator      *validate.Validator
	logger         *zerolog.Logger
}

// NewSettingHandler creates a new SettingHandler.
func NewSettingHandler(
	settingUsecase usecase.SettingUsecase,
	validator *validate.Validator,
	logger *zerolog.Logger,
) *SettingHandler {
	return &SettingHandler{
		settingUsecase: settingUsecase,
		validator:      validator,
		logger:         logger,
	}
}

func (h *SettingHandler) Get(w http.ResponseWriter, r *http.Request) {
	setting, err := h.settingUsecase.Get(r.Context())
	if err != nil {
		respondUsecaseError(w, h.logger, err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]any{"setting": setting})
}

func (h *SettingHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req payload.UpdateSettingRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	setting, err := h.settingUsecase.Update(r.Context(), &model.Setting{
		IsAddCode:  req.IsAddCode,
		IsPostJob:  req.IsPostJob,
		IsApplyJob: req.IsApplyJob,
		IsJobs:     req.IsJobs,
		Languages:  req.Languages,
	})
	if err != nil {
		respondUsecaseError(w, h.logger, err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]any{"setting": setting})
}
