package app

import (
	"github.com/venturedeck/venturedeck-backend/internal/handlers"
	"github.com/venturedeck/venturedeck-backend/internal/logger"
	"github.com/venturedeck/venturedeck-backend/internal/sse"
)

type Handlers struct {
	Auth        *handlers.AuthHandler
	User        *handlers.UserHandler
	Venture     *handlers.VentureHandler
	KPI         *handlers.KPIHandler
	Financial   *handlers.FinancialHandler
	Talent      *handlers.TalentHandler
	Permission  *handlers.PermissionHandler
	Document    *handlers.DocumentHandler
	Chat        *handlers.ChatHandler
	Comment     *handlers.CommentHandler
	Resource    *handlers.ResourceHandler
	Task        *handlers.TaskHandler
	Insight     *handlers.InsightHandler
	Report      *handlers.ReportHandler
	Activity    *handlers.ActivityHandler
	EntityQuery *handlers.EntityQueryHandler
	SSE         *handlers.SSEHandler
}

func wireHandlers(log *logger.Logger, s Services, hub *sse.Hub) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:        handlers.NewAuthHandler(s.Auth),
		User:        handlers.NewUserHandler(s.User),
		Venture:     handlers.NewVentureHandler(s.Venture),
		KPI:         handlers.NewKPIHandler(s.KPI),
		Financial:   handlers.NewFinancialHandler(s.Financial),
		Talent:      handlers.NewTalentHandler(s.Talent),
		Permission:  handlers.NewPermissionHandler(s.Permission),
		Document:    handlers.NewDocumentHandler(s.Document),
		Chat:        handlers.NewChatHandler(s.Chat),
		Comment:     handlers.NewCommentHandler(s.Comment),
		Resource:    handlers.NewResourceHandler(s.Resource),
		Task:        handlers.NewTaskHandler(s.Task),
		Insight:     handlers.NewInsightHandler(s.Insight),
		Report:      handlers.NewReportHandler(s.Report, s.Score),
		Activity:    handlers.NewActivityHandler(s.Activity),
		EntityQuery: handlers.NewEntityQueryHandler(s.EntityQuery),
		SSE:         handlers.NewSSEHandler(hub, s.Venture),
	}
}
