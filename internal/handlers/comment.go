package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/venturedeck/venturedeck-backend/internal/services"
	"github.com/venturedeck/venturedeck-backend/internal/types"
)

type CommentHandler struct {
	commentService services.CommentService
}

func NewCommentHandler(commentService services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

func (ch *CommentHandler) Create(c *gin.Context) {
	ventureID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		ParentID *uuid.UUID `json:"parent_id"`
		Body     string     `json:"body"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", errors.New("invalid request body"))
		return
	}
	comment, err := ch.commentService.CreateComment(c.Request.Context(), &types.VentureComment{
		VentureID: ventureID,
		ParentID:  req.ParentID,
		Body:      req.Body,
	})
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, comment)
}

func (ch *CommentHandler) List(c *gin.Context) {
	ventureID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	comments, err := ch.commentService.ListComments(c.Request.Context(), ventureID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"comments": comments})
}

func (ch *CommentHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "commentID")
	if !ok {
		return
	}
	if err := ch.commentService.DeleteComment(c.Request.Context(), id); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}
