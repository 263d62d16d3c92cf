package telegram

import (
	"context"
	"errors"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/yourusername/store-assistant-bot/internal/domain/repository"
	"github.com/yourusername/store-assistant-bot/internal/usecase"
	"github.com/yourusername/store-assistant-bot/pkg/logger"
)

// BotHandler bridges Telegram chats onto dialogue sessions. Each chat id
// maps to one session; expired sessions are recreated transparently.
type BotHandler struct {
	bot    *tgbotapi.BotAPI
	dialog usecase.DialogUseCase

	mu       sync.Mutex
	sessions map[int64]string
}

func NewBotHandler(token string, dialog usecase.DialogUseCase) (*BotHandler, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	logger.InfoLogger.Printf("Telegram бот авторизован: @%s", bot.Self.UserName)

	return &BotHandler{
		bot:      bot,
		dialog:   dialog,
		sessions: make(map[int64]string),
	}, nil
}

// Start consumes the update long-poll until ctx is cancelled.
func (h *BotHandler) Start(ctx context.Context) {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = 30
	updates := h.bot.GetUpdatesChan(cfg)

	for {
		select {
		case <-ctx.Done():
			h.bot.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil || update.Message.Text == "" {
				continue
			}
			h.handleMessage(ctx, update.Message)
		}
	}
}

func (h *BotHandler) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	if msg.IsCommand() {
		if msg.Command() == "start" {
			h.forgetSession(chatID)
			greeting, err := h.openSession(ctx, chatID)
			if err != nil {
				logger.ErrorLogger.Printf("Не удалось создать сессию для чата %d: %v", chatID, err)
				return
			}
			h.send(chatID, greeting)
		}
		return
	}

	sessionID, ok := h.sessionFor(chatID)
	if !ok {
		greeting, err := h.openSession(ctx, chatID)
		if err != nil {
			logger.ErrorLogger.Printf("Не удалось создать сессию для чата %d: %v", chatID, err)
			return
		}
		h.send(chatID, greeting)
		sessionID, _ = h.sessionFor(chatID)
	}

	result, err := h.dialog.HandleTurn(ctx, sessionID, msg.Text)
	if errors.Is(err, repository.ErrSessionNotFound) {
		// The session idled out; start over and replay the message.
		h.forgetSession(chatID)
		if _, err := h.openSession(ctx, chatID); err != nil {
			logger.ErrorLogger.Printf("Не удалось создать сессию для чата %d: %v", chatID, err)
			return
		}
		sessionID, _ = h.sessionFor(chatID)
		result, err = h.dialog.HandleTurn(ctx, sessionID, msg.Text)
		if err != nil {
			logger.ErrorLogger.Printf("Ошибка обработки сообщения (чат %d): %v", chatID, err)
			return
		}
	} else if err != nil {
		logger.ErrorLogger.Printf("Ошибка обработки сообщения (чат %d): %v", chatID, err)
		return
	}

	h.send(chatID, result.Reply)
}

func (h *BotHandler) openSession(ctx context.Context, chatID int64) (string, error) {
	sessionID, greeting, err := h.dialog.StartSession(ctx)
	if err != nil {
		return "", err
	}
	h.mu.Lock()
	h.sessions[chatID] = sessionID
	h.mu.Unlock()
	return greeting, nil
}

func (h *BotHandler) sessionFor(chatID int64) (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id, ok := h.sessions[chatID]
	return id, ok
}

func (h *BotHandler) forgetSession(chatID int64) {
	h.mu.Lock()
	delete(h.sessions, chatID)
	h.mu.Unlock()
}

func (h *BotHandler) send(chatID int64, text string) {
	if text == "" {
		return
	}
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		logger.ErrorLogger.Printf("Не удалось отправить сообщение в чат %d: %v", chatID, err)
	}
}
