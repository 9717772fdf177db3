package ginserver

import (
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"stayhub/internal/app/dto"
	"stayhub/internal/app/services/chat"
)

type ChatHandler struct {
	Service *chat.Service
	Logger  *slog.Logger
}

type startConversationRequest struct {
	UserID string `json:"user_id"`
}

// Start opens a thread with another user, or returns the existing one
// when the pair already talked.
func (h *ChatHandler) Start(c *gin.Context) {
	p, ok := requireAuth(c)
	if !ok {
		return
	}
	var req startConversationRequest
	if !bindJSON(c, &req) {
		return
	}
	conv, err := h.Service.StartOrGet(c.Request.Context(), p.ID, req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, dto.NewConversation(conv))
}

func (h *ChatHandler) ListMine(c *gin.Context) {
	p, ok := requireAuth(c)
	if !ok {
		return
	}
	items, err := h.Service.ListMine(c.Request.Context(), p.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, dto.NewConversations(items))
}

func (h *ChatHandler) Get(c *gin.Context) {
	p, ok := requireAuth(c)
	if !ok {
		return
	}
	conv, err := h.Service.Get(c.Request.Context(), c.Param("id"), p.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, dto.NewConversation(conv))
}

type sendMessageRequest struct {
	Text string `json:"text"`
}

func (h *ChatHandler) Send(c *gin.Context) {
	p, ok := requireAuth(c)
	if !ok {
		return
	}
	var req sendMessageRequest
	if !bindJSON(c, &req) {
		return
	}
	conv, err := h.Service.Send(c.Request.Context(), c.Param("id"), p.ID, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, dto.NewConversation(conv))
}
