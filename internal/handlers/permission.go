package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/venturedeck/venturedeck-backend/internal/services"
	"github.com/venturedeck/venturedeck-backend/internal/types"
)

type PermissionHandler struct {
	permissionService services.PermissionService
}

func NewPermissionHandler(permissionService services.PermissionService) *PermissionHandler {
	return &PermissionHandler{permissionService: permissionService}
}

func (ph *PermissionHandler) Grant(c *gin.Context) {
	ventureID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		UserEmail      string     `json:"user_email"`
		PermissionType string     `json:"permission_type"`
		AccessLevel    string     `json:"access_level"`
		ExpiresAt      *time.Time `json:"expires_at"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", errors.New("invalid request body"))
		return
	}
	grant := &types.VenturePermission{
		VentureID:      ventureID,
		UserEmail:      req.UserEmail,
		PermissionType: req.PermissionType,
		AccessLevel:    req.AccessLevel,
		ExpiresAt:      req.ExpiresAt,
	}
	created, err := ph.permissionService.GrantPermission(c.Request.Context(), grant)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, created)
}

func (ph *PermissionHandler) List(c *gin.Context) {
	ventureID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	grants, err := ph.permissionService.ListPermissions(c.Request.Context(), ventureID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"permissions": grants})
}

func (ph *PermissionHandler) Revoke(c *gin.Context) {
	id, ok := parseIDParam(c, "permissionID")
	if !ok {
		return
	}
	if err := ph.permissionService.RevokePermission(c.Request.Context(), id); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"revoked": true})
}
