package handler

import (
	"net/http"

	"agribot/internal/model"
	"agribot/internal/service"

	"github.com/gin-gonic/gin"
)

// ChatHandler handles chat-related HTTP requests
type ChatHandler struct {
	chatService *service.ChatService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// Chat handles POST /api/v1/chat. Accepts a JSON body or the "input" form
// field of the web page.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	response, err := h.chatService.HandleMessage(c.Request.Context(), SessionID(c), req.Message)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Chat failed: " + err.Error()})
		return
	}

	if response == nil {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Reset handles DELETE /api/v1/chat and POST /api/v1/chat/reset
func (h *ChatHandler) Reset(c *gin.Context) {
	h.chatService.Reset(SessionID(c))
	c.JSON(http.StatusOK, gin.H{"status": "reset"})
}

// History handles GET /api/v1/chat/history
func (h *ChatHandler) History(c *gin.Context) {
	c.JSON(http.StatusOK, h.chatService.History(SessionID(c)))
}

// Stats handles GET /api/v1/chat/stats
func (h *ChatHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.chatService.Stats(SessionID(c)))
}
