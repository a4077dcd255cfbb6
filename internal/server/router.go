package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/venturedeck/venturedeck-backend/internal/handlers"
	"github.com/venturedeck/venturedeck-backend/internal/middleware"
)

type RouterConfig struct {
	AllowedOrigins []string

	AuthMiddleware *middleware.AuthMiddleware

	AuthHandler        *handlers.AuthHandler
	UserHandler        *handlers.UserHandler
	VentureHandler     *handlers.VentureHandler
	KPIHandler         *handlers.KPIHandler
	FinancialHandler   *handlers.FinancialHandler
	TalentHandler      *handlers.TalentHandler
	PermissionHandler  *handlers.PermissionHandler
	DocumentHandler    *handlers.DocumentHandler
	ChatHandler        *handlers.ChatHandler
	CommentHandler     *handlers.CommentHandler
	ResourceHandler    *handlers.ResourceHandler
	TaskHandler        *handlers.TaskHandler
	InsightHandler     *handlers.InsightHandler
	ReportHandler      *handlers.ReportHandler
	ActivityHandler    *handlers.ActivityHandler
	EntityQueryHandler *handlers.EntityQueryHandler
	SSEHandler         *handlers.SSEHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", cfg.AuthHandler.Register)
		auth.POST("/login", cfg.AuthHandler.Login)
		auth.POST("/refresh", cfg.AuthHandler.Refresh)
	}

	protected := api.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())

	protected.POST("/auth/logout", cfg.AuthHandler.Logout)

	// Current user
	protected.GET("/me", cfg.UserHandler.Me)
	protected.PUT("/me", cfg.UserHandler.UpdateProfile)
	protected.POST("/me/avatar", cfg.UserHandler.UploadAvatar)

	// Ventures
	protected.POST("/ventures", cfg.VentureHandler.Create)
	protected.GET("/ventures", cfg.VentureHandler.List)
	protected.GET("/ventures/:id", cfg.VentureHandler.Get)
	protected.PUT("/ventures/:id", cfg.VentureHandler.Update)
	protected.DELETE("/ventures/:id", cfg.VentureHandler.Delete)
	protected.GET("/ventures/:id/access", cfg.VentureHandler.Access)

	// KPIs
	protected.GET("/ventures/:id/kpis", cfg.KPIHandler.List)
	protected.POST("/ventures/:id/kpis", cfg.KPIHandler.Create)
	protected.GET("/ventures/:id/kpis/trend", cfg.KPIHandler.Trend)
	protected.PUT("/kpis/:kpiID", cfg.KPIHandler.Update)
	protected.DELETE("/kpis/:kpiID", cfg.KPIHandler.Delete)

	// Financial records
	protected.GET("/ventures/:id/financials", cfg.FinancialHandler.List)
	protected.POST("/ventures/:id/financials", cfg.FinancialHandler.Create)
	protected.GET("/ventures/:id/financials/series", cfg.FinancialHandler.Series)
	protected.PUT("/financials/:recordID", cfg.FinancialHandler.Update)
	protected.DELETE("/financials/:recordID", cfg.FinancialHandler.Delete)

	// Talent pool and skills catalog
	protected.POST("/talents", cfg.TalentHandler.Create)
	protected.GET("/talents", cfg.TalentHandler.List)
	protected.GET("/talents/:id", cfg.TalentHandler.Get)
	protected.PUT("/talents/:id", cfg.TalentHandler.Update)
	protected.DELETE("/talents/:id", cfg.TalentHandler.Delete)
	protected.GET("/skills", cfg.TalentHandler.ListSkills)
	protected.POST("/skills", cfg.TalentHandler.CreateSkill)
	protected.GET("/skills/coverage", cfg.TalentHandler.Coverage)

	// Venture permissions
	protected.POST("/ventures/:id/permissions", cfg.PermissionHandler.Grant)
	protected.GET("/ventures/:id/permissions", cfg.PermissionHandler.List)
	protected.DELETE("/permissions/:permissionID", cfg.PermissionHandler.Revoke)

	// Documents
	protected.POST("/ventures/:id/documents", cfg.DocumentHandler.Upload)
	protected.GET("/ventures/:id/documents", cfg.DocumentHandler.List)
	protected.DELETE("/documents/:documentID", cfg.DocumentHandler.Delete)
	protected.POST("/documents/:documentID/extract", cfg.DocumentHandler.Extract)

	// Chat
	protected.POST("/ventures/:id/threads", cfg.ChatHandler.CreateThread)
	protected.GET("/ventures/:id/threads", cfg.ChatHandler.ListThreads)
	protected.POST("/threads/:threadID/messages", cfg.ChatHandler.PostMessage)
	protected.GET("/threads/:threadID/messages", cfg.ChatHandler.ListMessages)

	// Comments
	protected.POST("/ventures/:id/comments", cfg.CommentHandler.Create)
	protected.GET("/ventures/:id/comments", cfg.CommentHandler.List)
	protected.DELETE("/comments/:commentID", cfg.CommentHandler.Delete)

	// Resource exchange
	protected.POST("/resources/listings", cfg.ResourceHandler.CreateListing)
	protected.GET("/resources/listings", cfg.ResourceHandler.ListListings)
	protected.PUT("/resources/listings/:id", cfg.ResourceHandler.UpdateListing)
	protected.DELETE("/resources/listings/:id", cfg.ResourceHandler.DeleteListing)
	protected.POST("/resources/requests", cfg.ResourceHandler.CreateRequest)
	protected.GET("/ventures/:id/resource-requests", cfg.ResourceHandler.ListRequests)
	protected.PUT("/resources/requests/:requestID/status", cfg.ResourceHandler.UpdateRequestStatus)

	// Tasks
	protected.POST("/ventures/:id/tasks", cfg.TaskHandler.Create)
	protected.GET("/ventures/:id/tasks", cfg.TaskHandler.List)
	protected.PUT("/tasks/:taskID", cfg.TaskHandler.Update)
	protected.DELETE("/tasks/:taskID", cfg.TaskHandler.Delete)

	// AI insights
	protected.POST("/ventures/:id/insights/kpis", cfg.InsightHandler.SuggestKPIs)
	protected.POST("/ventures/:id/insights/projection", cfg.InsightHandler.ProjectFinancials)
	protected.POST("/ventures/:id/insights/benchmarks", cfg.InsightHandler.CompareBenchmarks)
	protected.POST("/insights/skills", cfg.InsightHandler.AnalyzeSkills)

	// Reports and scores
	protected.GET("/reports/portfolio", cfg.ReportHandler.PortfolioOverview)
	protected.GET("/reports/skills", cfg.ReportHandler.SkillsReport)
	protected.GET("/ventures/:id/reports/financial", cfg.ReportHandler.FinancialReport)
	protected.POST("/ventures/:id/score", cfg.ReportHandler.ComputeScore)
	protected.GET("/ventures/:id/score", cfg.ReportHandler.LatestScore)

	// Activity feeds
	protected.GET("/ventures/:id/activity", cfg.ActivityHandler.VentureFeed)
	protected.GET("/activity", cfg.AuthMiddleware.RequireAdmin(), cfg.ActivityHandler.StudioFeed)

	// Generic entity access
	protected.POST("/entities/query", cfg.EntityQueryHandler.Query)

	// SSE
	protected.GET("/ventures/:id/events", cfg.SSEHandler.Subscribe)

	return router
}
