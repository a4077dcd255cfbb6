package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/venturedeck/venturedeck-backend/internal/services"
)

type EntityQueryHandler struct {
	entityQueryService services.EntityQueryService
}

func NewEntityQueryHandler(entityQueryService services.EntityQueryService) *EntityQueryHandler {
	return &EntityQueryHandler{entityQueryService: entityQueryService}
}

// Query is the generic entity RPC: POST /api/entities/query.
func (eh *EntityQueryHandler) Query(c *gin.Context) {
	var req services.EntityQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", errors.New("invalid request body"))
		return
	}
	result, err := eh.entityQueryService.Execute(c.Request.Context(), req)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"data": result})
}
