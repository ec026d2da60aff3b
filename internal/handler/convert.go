package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/becopy/becopy-api/internal/openai"
	"github.com/becopy/becopy-api/internal/payload"
	"github.com/becopy/becopy-api/internal/usecase"
	"github.com/becopy/becopy-api/internal/validate"
)

// ConvertHandler proxies code conversion and assistant chat requests.
type ConvertHandler struct {
	convertUsecase usecase.ConvertUsecase
	validator      *validate.Validator
	logger         *zerolog.Logger
}

// NewConvertHandler creates a new ConvertHandler.
func NewConvertHandler(
	convertUsecase usecase.ConvertUsecase,
	validator *validate.Validator,
	logger *zerolog.Logger,
) *ConvertHandler {
	return &ConvertHandler{
		convertUsecase: convertUsecase,
		validator:      validator,
		logger:         logger,
	}
}

func (h *ConvertHandler) ConvertCode(w http.ResponseWriter, r *http.Request) {
	var req payload.ConvertCodeRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	converted, err := h.convertUsecase.ConvertCode(r.Context(), req.Code, req.FromLanguage, req.ToLanguage)
	if err != nil {
		respondUsecaseError(w, h.logger, err)
		return
	}

	respondSuccess(w, http.StatusOK, payload.ConvertCodeResponse{ConvertedCode: converted})
}

func (h *ConvertHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req payload.ChatRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	messages := make([]openai.Message, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, openai.Message{Role: m.Role, Content: m.Content})
	}

	reply, err := h.convertUsecase.Chat(r.Context(), messages)
	if err != nil {
		respondUsecaseError(w, h.logger, err)
		return
	}

	respondSuccess(w, http.StatusOK, payload.ChatResponse{Reply: reply})
}
