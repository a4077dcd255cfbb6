package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/venturedeck/venturedeck-backend/internal/repos"
	"github.com/venturedeck/venturedeck-backend/internal/services"
	"github.com/venturedeck/venturedeck-backend/internal/types"
)

type VentureHandler struct {
	ventureService services.VentureService
}

func NewVentureHandler(ventureService services.VentureService) *VentureHandler {
	return &VentureHandler{ventureService: ventureService}
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", errors.New("invalid id"))
		return uuid.Nil, false
	}
	return id, true
}

func (vh *VentureHandler) Create(c *gin.Context) {
	var req struct {
		Name        string         `json:"name"`
		Description string         `json:"description"`
		Layer       string         `json:"layer"`
		Status      string         `json:"status"`
		Category    string         `json:"category"`
		Tags        datatypes.JSON `json:"tags"`
		TeamSize    int            `json:"team_size"`
		Website     string         `json:"website"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", errors.New("invalid request body"))
		return
	}
	venture := &types.Venture{
		Name:        req.Name,
		Description: req.Description,
		Layer:       req.Layer,
		Status:      req.Status,
		Category:    req.Category,
		Tags:        req.Tags,
		TeamSize:    req.TeamSize,
		Website:     req.Website,
	}
	created, err := vh.ventureService.CreateVenture(c.Request.Context(), venture)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, created)
}

func (vh *VentureHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	venture, access, err := vh.ventureService.GetVenture(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"venture": venture, "access": access})
}

func (vh *VentureHandler) List(c *gin.Context) {
	filter := repos.VentureFilter{
		Layer:    c.Query("layer"),
		Status:   c.Query("status"),
		Category: c.Query("category"),
	}
	ventures, err := vh.ventureService.ListVentures(c.Request.Context(), filter)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"ventures": ventures})
}

func (vh *VentureHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", errors.New("invalid request body"))
		return
	}
	venture, err := vh.ventureService.UpdateVenture(c.Request.Context(), id, updates)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, venture)
}

func (vh *VentureHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := vh.ventureService.DeleteVenture(c.Request.Context(), id); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}

// Access reports what the caller may do on this venture for a feature gate,
// e.g. GET /api/ventures/:id/access?type=financials.
func (vh *VentureHandler) Access(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	access, err := vh.ventureService.GetAccess(c.Request.Context(), id, c.Query("type"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, access)
}
