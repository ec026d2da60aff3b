package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/becopy/becopy-api/internal/model"
	"github.com/becopy/becopy-api/internal/openai"
	"github.com/becopy/becopy-api/internal/usecase"
	"github.com/becopy/becopy-api/internal/validate"
)

func respondSuccess(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, map[string]any{
		"success": true,
		"data":    data,
	})
}

func respondError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{
		"success": false,
		"error":   message,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// decodeAndValidate reads the JSON request body into dst and validates it
// against its struct tags. A false return means a response was already sent.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v *validate.Validator, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			respondError(w, http.StatusBadRequest, "request body is required")
			return false
		}
		respondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}

	if err := v.Struct(dst); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return false
	}

	return true
}

// respondUsecaseError translates a usecase error into an HTTP response.
// Unknown errors are logged and masked as a generic 500.
func respondUsecaseError(w http.ResponseWriter, logger *zerolog.Logger, err error) {
	var upstreamErr *openai.UpstreamError
	if errors.As(err, &upstreamErr) {
		respondError(w, http.StatusBadGateway, upstreamErr.Body)
		return
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidCredentials):
		// The frontend matches on this exact message.
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, usecase.ErrInvalidSecretKey),
		errors.Is(err, usecase.ErrInvalidProviderToken),
		errors.Is(err, usecase.ErrEmailNotVerified),
		errors.Is(err, usecase.ErrInvalidCode),
		errors.Is(err, usecase.ErrCodeExpired),
		errors.Is(err, usecase.ErrTooManyAttempts):
		respondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, usecase.ErrNotRecipient),
		errors.Is(err, usecase.ErrNotRecruiter):
		respondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, usecase.ErrUserNotFound),
		errors.Is(err, usecase.ErrAdminNotFound),
		errors.Is(err, usecase.ErrJobNotFound),
		errors.Is(err, usecase.ErrInviteNotFound),
		errors.Is(err, usecase.ErrFlowNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, usecase.ErrEmailTaken),
		errors.Is(err, usecase.ErrInvitePending),
		errors.Is(err, usecase.ErrInviteResolved),
		errors.Is(err, usecase.ErrCodeAlreadyUsed):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, usecase.ErrFlowExpired),
		errors.Is(err, usecase.ErrInvalidUserType),
		errors.Is(err, usecase.ErrSelfInvite),
		errors.Is(err, model.ErrInvalidTransition):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		logger.Error().Err(err).Msg("request failed")
		respondError(w, http.StatusInternalServerError, "something went wrong")
	}
}
