package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/venturedeck/venturedeck-backend/internal/repos"
	"github.com/venturedeck/venturedeck-backend/internal/services"
	"github.com/venturedeck/venturedeck-backend/internal/types"
)

type TalentHandler struct {
	talentService services.TalentService
}

func NewTalentHandler(talentService services.TalentService) *TalentHandler {
	return &TalentHandler{talentService: talentService}
}

func (th *TalentHandler) Create(c *gin.Context) {
	var req struct {
		FullName       string         `json:"full_name"`
		Email          string         `json:"email"`
		Skills         datatypes.JSON `json:"skills"`
		SeniorityLevel string         `json:"seniority_level"`
		Status         string         `json:"status"`
		Rating         float64        `json:"rating"`
		Source         string         `json:"source"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", errors.New("invalid request body"))
		return
	}
	talent := &types.Talent{
		FullName:       req.FullName,
		Email:          req.Email,
		Skills:         req.Skills,
		SeniorityLevel: req.SeniorityLevel,
		Status:         req.Status,
		Rating:         req.Rating,
		Source:         req.Source,
	}
	created, err := th.talentService.CreateTalent(c.Request.Context(), talent)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, created)
}

func (th *TalentHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	talent, err := th.talentService.GetTalent(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, talent)
}

func (th *TalentHandler) List(c *gin.Context) {
	filter := repos.TalentFilter{
		Status:         c.Query("status"),
		SeniorityLevel: c.Query("seniority_level"),
	}
	talents, err := th.talentService.ListTalents(c.Request.Context(), filter)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"talents": talents})
}

func (th *TalentHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", errors.New("invalid request body"))
		return
	}
	talent, err := th.talentService.UpdateTalent(c.Request.Context(), id, updates)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, talent)
}

func (th *TalentHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := th.talentService.DeleteTalent(c.Request.Context(), id); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}

func (th *TalentHandler) ListSkills(c *gin.Context) {
	skills, err := th.talentService.ListSkills(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"skills": skills})
}

func (th *TalentHandler) CreateSkill(c *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		Category string `json:"category"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", errors.New("invalid request body"))
		return
	}
	skill, err := th.talentService.CreateSkill(c.Request.Context(), &types.Skill{Name: req.Name, Category: req.Category})
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, skill)
}

func (th *TalentHandler) Coverage(c *gin.Context) {
	coverage, gaps, err := th.talentService.Coverage(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"coverage": coverage, "gaps": gaps})
}
