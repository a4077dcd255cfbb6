package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/venturedeck/venturedeck-backend/internal/permissions"
	"github.com/venturedeck/venturedeck-backend/internal/requestdata"
	"github.com/venturedeck/venturedeck-backend/internal/services"
	"github.com/venturedeck/venturedeck-backend/internal/sse"
)

type SSEHandler struct {
	hub            *sse.Hub
	ventureService services.VentureService
}

func NewSSEHandler(hub *sse.Hub, ventureService services.VentureService) *SSEHandler {
	return &SSEHandler{hub: hub, ventureService: ventureService}
}

// Subscribe streams a venture's collaboration events over SSE. The caller
// must hold at least view access on the venture.
func (sh *SSEHandler) Subscribe(c *gin.Context) {
	ventureID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	access, err := sh.ventureService.GetAccess(ctx, ventureID, permissions.TypeVenture)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	if !access.CanView {
		RespondError(c, http.StatusForbidden, "forbidden", services.ErrForbidden)
		return
	}

	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", services.ErrForbidden)
		return
	}
	client := sh.hub.NewClient(rd.UserID)
	sh.hub.AddChannel(client, sse.VentureChannel(ventureID))
	defer sh.hub.CloseClient(client)

	sh.hub.ServeHTTP(c.Writer, c.Request, client)
}
