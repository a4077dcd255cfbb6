package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/venturedeck/venturedeck-backend/internal/services"
)

type InsightHandler struct {
	insightService services.InsightService
}

func NewInsightHandler(insightService services.InsightService) *InsightHandler {
	return &InsightHandler{insightService: insightService}
}

func (ih *InsightHandler) SuggestKPIs(c *gin.Context) {
	ventureID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	out, err := ih.insightService.SuggestKPIs(c.Request.Context(), ventureID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, out)
}

func (ih *InsightHandler) ProjectFinancials(c *gin.Context) {
	ventureID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	periods, _ := strconv.Atoi(c.DefaultQuery("periods", "6"))
	out, err := ih.insightService.ProjectFinancials(c.Request.Context(), ventureID, periods)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, out)
}

func (ih *InsightHandler) CompareBenchmarks(c *gin.Context) {
	ventureID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	out, err := ih.insightService.CompareBenchmarks(c.Request.Context(), ventureID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, out)
}

func (ih *InsightHandler) AnalyzeSkills(c *gin.Context) {
	out, err := ih.insightService.AnalyzeSkills(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, out)
}
