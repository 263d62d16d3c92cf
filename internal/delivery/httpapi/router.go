package httpapi

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/store-assistant-bot/internal/usecase"
)

// NewRouter builds the gin engine with CORS for the shop widget origin.
// An empty origin allows any.
func NewRouter(dialog usecase.DialogUseCase, corsOrigin string) *gin.Engine {
	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	if corsOrigin == "" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = []string{corsOrigin}
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	r.Use(cors.New(corsCfg))

	h := NewChatHandler(dialog)
	r.GET("/health", h.Health)
	r.POST("/start_chat", h.StartChat)
	r.POST("/send_message", h.SendMessage)

	return r
}
