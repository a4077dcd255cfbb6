package app

import (
	"github.com/gin-gonic/gin"

	"github.com/venturedeck/venturedeck-backend/internal/server"
)

func wireRouter(cfg Config, h Handlers, m Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		AllowedOrigins: cfg.AllowedOrigins,

		AuthMiddleware: m.Auth,

		AuthHandler:        h.Auth,
		UserHandler:        h.User,
		VentureHandler:     h.Venture,
		KPIHandler:         h.KPI,
		FinancialHandler:   h.Financial,
		TalentHandler:      h.Talent,
		PermissionHandler:  h.Permission,
		DocumentHandler:    h.Document,
		ChatHandler:        h.Chat,
		CommentHandler:     h.Comment,
		ResourceHandler:    h.Resource,
		TaskHandler:        h.Task,
		InsightHandler:     h.Insight,
		ReportHandler:      h.Report,
		ActivityHandler:    h.Activity,
		EntityQueryHandler: h.EntityQuery,
		SSEHandler:         h.SSE,
	})
}
