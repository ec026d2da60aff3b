package handler

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/becopy/becopy-api/internal/payload"
	"github.com/becopy/becopy-api/internal/repository"
	"github.com/becopy/becopy-api/internal/usecase"
	"github.com/becopy/becopy-api/internal/validate"
)

// UserHandler handles user profile and directory requests.
type UserHandler struct {
	userUsecase usecase.UserUsecase
	validator   *validate.Validator
	logger      *zerolog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(
	userUsecase usecase.UserUsecase,
	validator *validate.Validator,
	logger *zerolog.Logger,
) *UserHandler {
	return &UserHandler{
		userUsecase: userUsecase,
		validator:   validator,
		logger:      logger,
	}
}

func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	user, err := h.userUsecase.GetProfile(r.Context(), claims.UserID)
	if err != nil {
		respondUsecaseError(w, h.logger, err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]any{"user": user})
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req payload.UpdateProfileRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	claims := ClaimsFromContext(r.Context())

	user, err := h.userUsecase.UpdateProfile(r.Context(), claims.UserID, usecase.UpdateProfileParams{
		Name:           req.Name,
		Country:        req.Country,
		AdditionalInfo: req.AdditionalInfo,
	})
	if err != nil {
		respondUsecaseError(w, h.logger, err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]any{"user": user})
}

func (h *UserHandler) Directory(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	query := r.URL.Query()
	params := repository.FilterUsersParams{}

	if userType := query.Get("userType"); userType != "" {
		params.UserType = &userType
	}
	if country := query.Get("country"); country != "" {
		params.Country = &country
	}
	if limit, err := strconv.ParseUint(query.Get("limit"), 10, 64); err == nil {
		params.Limit = limit
	}
	if offset, err := strconv.ParseUint(query.Get("offset"), 10, 64); err == nil {
		params.Offset = offset
	}

	users, err := h.userUsecase.Directory(r.Context(), claims.UserID, params)
	if err != nil {
		respondUsecaseError(w, h.logger, err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]any{"users": users})
}
