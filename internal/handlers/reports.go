package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/venturedeck/venturedeck-backend/internal/analytics"
	"github.com/venturedeck/venturedeck-backend/internal/services"
)

type ReportHandler struct {
	reportService services.ReportService
	scoreService  services.ScoreService
}

func NewReportHandler(reportService services.ReportService, scoreService services.ScoreService) *ReportHandler {
	return &ReportHandler{reportService: reportService, scoreService: scoreService}
}

func (rh *ReportHandler) PortfolioOverview(c *gin.Context) {
	overview, err := rh.reportService.PortfolioOverview(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, overview)
}

func (rh *ReportHandler) FinancialReport(c *gin.Context) {
	ventureID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	granularity := analytics.Granularity(c.DefaultQuery("granularity", string(analytics.GranularityMonth)))
	report, err := rh.reportService.FinancialReport(c.Request.Context(), ventureID, granularity)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, report)
}

func (rh *ReportHandler) SkillsReport(c *gin.Context) {
	report, err := rh.reportService.SkillsReport(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, report)
}

func (rh *ReportHandler) ComputeScore(c *gin.Context) {
	ventureID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	score, err := rh.scoreService.ComputeScore(c.Request.Context(), ventureID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, score)
}

func (rh *ReportHandler) LatestScore(c *gin.Context) {
	ventureID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	score, err := rh.scoreService.GetLatestScore(c.Request.Context(), ventureID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, score)
}
