package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/becopy/becopy-api/internal/payload"
	"github.com/becopy/becopy-api/internal/usecase"
	"github.com/becopy/becopy-api/internal/validate"
)

// InviteHandler handles chat invite requests.
type InviteHandler struct {
	inviteUsecase usecase.InviteUsecase
	validator     *validate.Validator
	logger        *zerolog.Logger
}

// NewInviteHandler creates a new InviteHandler.
func NewInviteHandler(
	inviteUsecase usecase.InviteUsecase,
	validator *validate.Validator,
	logger *zerolog.Logger,
) *InviteHandler {
	return &InviteHandler{
		inviteUsecase: inviteUsecase,
		validator:     validator,
		logger:        logger,
	}
}

func (h *InviteHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req payload.SendInviteRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	claims := ClaimsFromContext(r.Context())

	invite, err := h.inviteUsecase.SendInvite(r.Context(), claims.UserID, req.RecipientID, req.Message)
	if err != nil {
		respondUsecaseError(w, h.logger, err)
		return
	}

	respondSuccess(w, http.StatusCreated, map[string]any{"invite": invite})
}

func (h *InviteHandler) ListReceived(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	invites, err := h.inviteUsecase.ListReceived(r.Context(), claims.UserID)
	if err != nil {
		respondUsecaseError(w, h.logger, err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]any{"invites": invites})
}

func (h *InviteHandler) ListSent(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	invites, err := h.inviteUsecase.ListSent(r.Context(), claims.UserID)
	if err != nil {
		respondUsecaseError(w, h.logger, err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]any{"invites": invites})
}

func (h *InviteHandler) Accept(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	invite, err := h.inviteUsecase.Accept(r.Context(), chi.URLParam(r, "id"), claims.UserID)
	if err != nil {
		respondUsecaseError(w, h.logger, err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]any{"invite": invite})
}

func (h *InviteHandler) Decline(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	invite, err := h.inviteUsecase.Decline(r.Context(), chi.URLParam(r, "id"), claims.UserID)
	if err != nil {
		respondUsecaseError(w, h.logger, err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]any{"invite": invite})
}
