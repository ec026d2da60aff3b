package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/becopy/becopy-api/internal/payload"
	"github.com/becopy/becopy-api/internal/usecase"
	"github.com/becopy/becopy-api/internal/validate"
)

// AdminHandler handles admin-panel authentication requests.
type AdminHandler struct {
	adminUsecase usecase.AdminUsecase
	validator    *validate.Validator
	logger       *zerolog.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(
	adminUsecase usecase.AdminUsecase,
	validator *validate.Validator,
	logger *zerolog.Logger,
) *AdminHandler {
	return &AdminHandler{
		adminUsecase: adminUsecase,
		validator:    validator,
		logger:       logger,
	}
}

func (h *AdminHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req payload.AdminRegisterRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	admin, token, err := h.adminUsecase.Register(r.Context(), usecase.RegisterAdminParams{
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		SecretKey: req.SecretKey,
	})
	if err != nil {
		respondUsecaseError(w, h.logger, err)
		return
	}

	respondSuccess(w, http.StatusCreated, map[string]any{
		"admin": admin,
		"token": token,
	})
}

func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req payload.AdminLoginRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	admin, token, err := h.adminUsecase.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondUsecaseError(w, h.logger, err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]any{
		"admin": admin,
		"token": token,
	})
}

func (h *AdminHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req payload.AdminUpdateProfileRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	claims := ClaimsFromContext(r.Context())

	admin, err := h.adminUsecase.UpdateProfile(r.Context(), claims.UserID, usecase.UpdateAdminProfileParams{
		Name:            req.Name,
		Email:           req.Email,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		respondUsecaseError(w, h.logger, err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]any{"admin": admin})
}
