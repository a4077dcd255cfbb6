package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/venturedeck/venturedeck-backend/internal/services"
	"github.com/venturedeck/venturedeck-backend/internal/types"
)

type ChatHandler struct {
	chatService services.ChatService
}

func NewChatHandler(chatService services.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

func (ch *ChatHandler) CreateThread(c *gin.Context) {
	ventureID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		Title string `json:"title"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", errors.New("invalid request body"))
		return
	}
	thread, err := ch.chatService.CreateThread(c.Request.Context(), &types.ChatThread{
		VentureID: ventureID,
		Title:     req.Title,
	})
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, thread)
}

func (ch *ChatHandler) ListThreads(c *gin.Context) {
	ventureID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	threads, err := ch.chatService.ListThreads(c.Request.Context(), ventureID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"threads": threads})
}

func (ch *ChatHandler) PostMessage(c *gin.Context) {
	threadID, ok := parseIDParam(c, "threadID")
	if !ok {
		return
	}
	var req struct {
		Body string `json:"body"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", errors.New("invalid request body"))
		return
	}
	message, err := ch.chatService.PostMessage(c.Request.Context(), threadID, req.Body)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, message)
}

func (ch *ChatHandler) ListMessages(c *gin.Context) {
	threadID, ok := parseIDParam(c, "threadID")
	if !ok {
		return
	}
	messages, err := ch.chatService.ListMessages(c.Request.Context(), threadID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"messages": messages})
}
