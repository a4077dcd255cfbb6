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

type FinancialHandler struct {
	financialService services.FinancialService
}

func NewFinancialHandler(financialService services.FinancialService) *FinancialHandler {
	return &FinancialHandler{financialService: financialService}
}

func (fh *FinancialHandler) List(c *gin.Context) {
	ventureID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	records, err := fh.financialService.ListRecords(c.Request.Context(), ventureID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"records": records})
}

func (fh *FinancialHandler) Create(c *gin.Context) {
	ventureID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		RecordDate  *time.Time `json:"record_date"`
		Revenue     float64    `json:"revenue"`
		Expenses    float64    `json:"expenses"`
		Investment  float64    `json:"investment"`
		CashBalance float64    `json:"cash_balance"`
		PeriodType  string     `json:"period_type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", errors.New("invalid request body"))
		return
	}
	record := &types.FinancialRecord{
		VentureID:   ventureID,
		RecordDate:  req.RecordDate,
		Revenue:     req.Revenue,
		Expenses:    req.Expenses,
		Investment:  req.Investment,
		CashBalance: req.CashBalance,
		PeriodType:  req.PeriodType,
	}
	created, err := fh.financialService.CreateRecord(c.Request.Context(), record)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, created)
}

func (fh *FinancialHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "recordID")
	if !ok {
		return
	}
	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", errors.New("invalid request body"))
		return
	}
	record, err := fh.financialService.UpdateRecord(c.Request.Context(), id, updates)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, record)
}

func (fh *FinancialHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "recordID")
	if !ok {
		return
	}
	if err := fh.financialService.DeleteRecord(c.Request.Context(), id); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}

func (fh *FinancialHandler) Series(c *gin.Context) {
	ventureID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	granularity := analytics.Granularity(c.DefaultQuery("granularity", string(analytics.GranularityMonth)))
	buckets, err := fh.financialService.Series(c.Request.Context(), ventureID, granularity)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"granularity": granularity, "buckets": buckets})
}
