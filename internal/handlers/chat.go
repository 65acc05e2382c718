package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"gemini-chat-backend/internal/middleware"
	"gemini-chat-backend/internal/models"
)

const maxChatBodyBytes = 1 << 20

type chatService interface {
	Handle(ctx context.Context, req models.ChatRequest) (models.ChatResponse, error)
}

type ChatHandler struct {
	chatService chatService
	log         *zap.Logger
}

func NewChatHandler(chatService chatService, log *zap.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		log:         log,
	}
}

func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxChatBodyBytes)

	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResp("PAYLOAD_TOO_LARGE", "Request body too large", r))
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	resp, err := h.chatService.Handle(r.Context(), req)
	if err != nil {
		h.log.Error("chat failed",
			zap.Error(err),
			zap.Int("history_len", len(req.ChatHistory)),
			zap.String("request_id", middleware.GetRequestID(r.Context())),
		)
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
