package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/venturedeck/venturedeck-backend/internal/analytics"
	"github.com/venturedeck/venturedeck-backend/internal/services"
	"github.com/venturedeck/venturedeck-backend/internal/types"
)

type KPIHandler struct {
	kpiService services.KPIService
}

func NewKPIHandler(kpiService services.KPIService) *KPIHandler {
	return &KPIHandler{kpiService: kpiService}
}

func (kh *KPIHandler) List(c *gin.Context) {
	ventureID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	kpis, err := kh.kpiService.ListKPIs(c.Request.Context(), ventureID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"kpis": kpis})
}

func (kh *KPIHandler) Create(c *gin.Context) {
	ventureID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		KPIName         string     `json:"kpi_name"`
		KPIType         string     `json:"kpi_type"`
		CurrentValue    float64    `json:"current_value"`
		TargetValue     float64    `json:"target_value"`
		Unit            string     `json:"unit"`
		Period          string     `json:"period"`
		MeasurementDate *time.Time `json:"measurement_date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", errors.New("invalid request body"))
		return
	}
	kpi := &types.VentureKPI{
		VentureID:       ventureID,
		KPIName:         req.KPIName,
		KPIType:         req.KPIType,
		CurrentValue:    req.CurrentValue,
		TargetValue:     req.TargetValue,
		Unit:            req.Unit,
		Period:          req.Period,
		MeasurementDate: req.MeasurementDate,
	}
	created, err := kh.kpiService.CreateKPI(c.Request.Context(), kpi)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, created)
}

func (kh *KPIHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "kpiID")
	if !ok {
		return
	}
	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", errors.New("invalid request body"))
		return
	}
	kpi, err := kh.kpiService.UpdateKPI(c.Request.Context(), id, updates)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, kpi)
}

func (kh *KPIHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "kpiID")
	if !ok {
		return
	}
	if err := kh.kpiService.DeleteKPI(c.Request.Context(), id); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}

func (kh *KPIHandler) Trend(c *gin.Context) {
	ventureID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	granularity := analytics.Granularity(c.DefaultQuery("granularity", string(analytics.GranularityMonth)))
	if !analytics.ValidGranularity(granularity) {
		RespondError(c, http.StatusBadRequest, "bad_request", errors.New("unknown granularity"))
		return
	}
	buckets, err := kh.kpiService.KPITrend(c.Request.Context(), ventureID, granularity)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"granularity": granularity, "buckets": buckets})
}
