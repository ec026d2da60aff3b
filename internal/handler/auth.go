package handler

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/becopy/becopy-api/internal/model"
	"github.com/becopy/becopy-api/internal/payload"
	"github.com/becopy/becopy-api/internal/usecase"
	"github.com/becopy/becopy-api/internal/validate"
)

// AuthHandler handles public registration and login requests.
type AuthHandler struct {
	authUsecase          usecase.AuthUsecase
	passwordResetUsecase usecase.PasswordResetUsecase
	validator            *validate.Validator
	logger               *zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(
	authUsecase usecase.AuthUsecase,
	passwordResetUsecase usecase.PasswordResetUsecase,
	validator *validate.Validator,
	logger *zerolog.Logger,
) *AuthHandler {
	return &AuthHandler{
		authUsecase:          authUsecase,
		passwordResetUsecase: passwordResetUsecase,
		validator:            validator,
		logger:               logger,
	}
}

func (h *AuthHandler) StartOAuth(w http.ResponseWriter, r *http.Request) {
	var req payload.StartOAuthRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	flow, err := h.authUsecase.StartOAuth(r.Context(), usecase.StartOAuthParams{
		UserType: req.UserType,
		Country:  req.Country,
	})
	if err != nil {
		respondUsecaseError(w, h.logger, err)
		return
	}

	respondSuccess(w, http.StatusCreated, payload.StartOAuthResponse{
		Nonce:     flow.Nonce,
		State:     string(flow.State),
		ExpiresAt: flow.ExpiresAt.Format(time.RFC3339),
	})
}

func (h *AuthHandler) OAuthLogin(w http.ResponseWriter, r *http.Request) {
	var req payload.OAuthLoginRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	result, err := h.authUsecase.OAuthLogin(r.Context(), usecase.OAuthLoginParams{
		Nonce:    req.Nonce,
		Provider: req.Provider,
		Token:    req.Token,
	})
	if err != nil {
		respondUsecaseError(w, h.logger, err)
		return
	}

	respondSuccess(w, http.StatusOK, result)
}

func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req payload.VerifyOTPRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	if req.Nonce == "" && req.UserID == "" {
		respondError(w, http.StatusBadRequest, "either nonce or userId is required")
		return
	}

	result, err := h.authUsecase.VerifyOTP(r.Context(), usecase.VerifyOTPParams{
		Nonce:  req.Nonce,
		UserID: req.UserID,
		Code:   req.Code,
	})
	if err != nil {
		respondUsecaseError(w, h.logger, err)
		return
	}

	respondSuccess(w, http.StatusOK, result)
}

func (h *AuthHandler) ResendOTP(w http.ResponseWriter, r *http.Request) {
	var req payload.ResendOTPRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	if err := h.authUsecase.ResendOTP(r.Context(), req.Nonce); err != nil {
		respondUsecaseError(w, h.logger, err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]any{"message": "verification code sent"})
}

func (h *AuthHandler) QueueAction(w http.ResponseWriter, r *http.Request) {
	var req payload.QueueActionRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	err := h.authUsecase.QueueAction(r.Context(), req.Nonce, model.QueuedAction{
		Kind:    req.Kind,
		Payload: req.Payload,
	})
	if err != nil {
		respondUsecaseError(w, h.logger, err)
		return
	}

	respondSuccess(w, http.StatusAccepted, map[string]any{"message": "action queued"})
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req payload.RegisterRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	result, err := h.authUsecase.Register(r.Context(), usecase.RegisterUserParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		UserType: req.UserType,
		Country:  req.Country,
	})
	if err != nil {
		respondUsecaseError(w, h.logger, err)
		return
	}

	respondSuccess(w, http.StatusCreated, result)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req payload.LoginRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	user, token, err := h.authUsecase.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondUsecaseError(w, h.logger, err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]any{
		"user":  user,
		"token": token,
	})
}

func (h *AuthHandler) ForgotPasswordSend(w http.ResponseWriter, r *http.Request) {
	var req payload.ForgotPasswordSendRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	if err := h.passwordResetUsecase.SendCode(r.Context(), req.Email); err != nil {
		respondUsecaseError(w, h.logger, err)
		return
	}

	// Same response whether or not the address exists.
	respondSuccess(w, http.StatusOK, map[string]any{
		"message": "if the email exists, a reset code has been sent",
	})
}

func (h *AuthHandler) ForgotPasswordVerify(w http.ResponseWriter, r *http.Request) {
	var req payload.ForgotPasswordVerifyRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	if err := h.passwordResetUsecase.MatchCode(r.Context(), req.Email, req.Code); err != nil {
		respondUsecaseError(w, h.logger, err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]any{"message": "code verified"})
}

func (h *AuthHandler) ForgotPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req payload.ForgotPasswordResetRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	err := h.passwordResetUsecase.ChangePassword(r.Context(), req.Email, req.Code, req.NewPassword)
	if err != nil {
		respondUsecaseError(w, h.logger, err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]any{"message": "password updated"})
}
