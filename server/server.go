// Package server exposes the chat runtime over HTTP.
package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medassist/fieldchat/chat"
)

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

type chatResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
	RAGUsed   bool   `json:"rag_used"`
}

// Handler serves the chat API backed by a chat runtime.
type Handler struct {
	runtime *chat.Chat
}

// New creates a Handler for the given runtime.
func New(runtime *chat.Chat) *Handler {
	return &Handler{runtime: runtime}
}

// Router builds the gin engine with all routes registered.
func (h *Handler) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.POST("/chat", h.handleChat)
	r.GET("/health", h.handleHealth)

	return r
}

func (h *Handler) handleChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No message provided"})
		return
	}

	result, err := h.runtime.Turn(c.Request.Context(), chat.Request{
		SessionID: req.SessionID,
		Message:   req.Message,
	})
	if err != nil {
		if errors.Is(err, chat.ErrEmptyMessage) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No message provided"})
			return
		}

		var upstream *chat.UpstreamError
		if errors.As(err, &upstream) {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Failed to get response from AI service",
				"details": upstream.Unwrap().Error(),
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, chatResponse{
		Response:  result.Response,
		SessionID: result.SessionID,
		RAGUsed:   result.RAGUsed,
	})
}

func (h *Handler) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
