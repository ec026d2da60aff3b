package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/becopy/becopy-api/internal/usecase"
)

// ChatHandler mints chat widget sessions.
type ChatHandler struct {
	chatUsecase usecase.ChatUsecase
	logger      *zerolog.Logger
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chatUsecase usecase.ChatUsecase, logger *zerolog.Logger) *ChatHandler {
	return &ChatHandler{
		chatUsecase: chatUsecase,
		logger:      logger,
	}
}

func (h *ChatHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	session, err := h.chatUsecase.CreateSession(r.Context(), claims.UserID)
	if err != nil {
		respondUsecaseError(w, h.logger, err)
		return
	}

	respondSuccess(w, http.StatusOK, session)
}
