package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/store-assistant-bot/internal/domain/repository"
	"github.com/yourusername/store-assistant-bot/internal/usecase"
	"github.com/yourusername/store-assistant-bot/pkg/logger"
)

// ChatHandler exposes the dialogue engine over HTTP.
type ChatHandler struct {
	dialog usecase.DialogUseCase
}

func NewChatHandler(dialog usecase.DialogUseCase) *ChatHandler {
	return &ChatHandler{dialog: dialog}
}

type startChatResponse struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type sendMessageRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type sendMessageResponse struct {
	Message       string `json:"message"`
	OrderComplete bool   `json:"order_complete,omitempty"`
}

// StartChat opens a new session and returns its id with the greeting.
func (h *ChatHandler) StartChat(c *gin.Context) {
	sessionID, greeting, err := h.dialog.StartSession(c.Request.Context())
	if err != nil {
		logger.ErrorLogger.Printf("Не удалось создать сессию: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, startChatResponse{SessionID: sessionID, Message: greeting})
}

// SendMessage runs one dialogue turn for an existing session.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.SessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session"})
		return
	}

	result, err := h.dialog.HandleTurn(c.Request.Context(), req.SessionID, req.Message)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session"})
			return
		}
		logger.ErrorLogger.Printf("Ошибка обработки сообщения (сессия %s): %v", req.SessionID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, sendMessageResponse{
		Message:       result.Reply,
		OrderComplete: result.OrderComplete,
	})
}

// Health is the liveness probe.
func (h *ChatHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
