package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/venturedeck/venturedeck-backend/internal/services"
	"github.com/venturedeck/venturedeck-backend/internal/types"
)

type ResourceHandler struct {
	resourceService services.ResourceService
}

func NewResourceHandler(resourceService services.ResourceService) *ResourceHandler {
	return &ResourceHandler{resourceService: resourceService}
}

func (rh *ResourceHandler) CreateListing(c *gin.Context) {
	var req struct {
		VentureID    uuid.UUID      `json:"venture_id"`
		Title        string         `json:"title"`
		Description  string         `json:"description"`
		ResourceType string         `json:"resource_type"`
		Availability string         `json:"availability"`
		Tags         datatypes.JSON `json:"tags"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", errors.New("invalid request body"))
		return
	}
	listing, err := rh.resourceService.CreateListing(c.Request.Context(), &types.ResourceListing{
		VentureID:    req.VentureID,
		Title:        req.Title,
		Description:  req.Description,
		ResourceType: req.ResourceType,
		Availability: req.Availability,
		Tags:         req.Tags,
	})
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, listing)
}

func (rh *ResourceHandler) ListListings(c *gin.Context) {
	listings, err := rh.resourceService.ListListings(c.Request.Context(), c.Query("status"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"listings": listings})
}

func (rh *ResourceHandler) UpdateListing(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", errors.New("invalid request body"))
		return
	}
	listing, err := rh.resourceService.UpdateListing(c.Request.Context(), id, updates)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, listing)
}

func (rh *ResourceHandler) DeleteListing(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := rh.resourceService.DeleteListing(c.Request.Context(), id); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}

func (rh *ResourceHandler) CreateRequest(c *gin.Context) {
	var req struct {
		ListingID   *uuid.UUID `json:"listing_id"`
		VentureID   uuid.UUID  `json:"venture_id"`
		Description string     `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", errors.New("invalid request body"))
		return
	}
	request, err := rh.resourceService.CreateRequest(c.Request.Context(), &types.ResourceRequest{
		ListingID:   req.ListingID,
		VentureID:   req.VentureID,
		Description: req.Description,
	})
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, request)
}

func (rh *ResourceHandler) ListRequests(c *gin.Context) {
	ventureID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	requests, err := rh.resourceService.ListRequests(c.Request.Context(), ventureID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"requests": requests})
}

func (rh *ResourceHandler) UpdateRequestStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "requestID")
	if !ok {
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", errors.New("invalid request body"))
		return
	}
	if err := rh.resourceService.UpdateRequestStatus(c.Request.Context(), id, req.Status); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"updated": true})
}
