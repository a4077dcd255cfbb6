package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/venturedeck/venturedeck-backend/internal/benchmarks"
	"github.com/venturedeck/venturedeck-backend/internal/clients/sendgrid"
	"github.com/venturedeck/venturedeck-backend/internal/logger"
	"github.com/venturedeck/venturedeck-backend/internal/permissions"
	"github.com/venturedeck/venturedeck-backend/internal/services"
	"github.com/venturedeck/venturedeck-backend/internal/sse"
)

type Services struct {
	Auth        services.AuthService
	Avatar      services.AvatarService
	Bucket      services.BucketService
	User        services.UserService
	Venture     services.VentureService
	KPI         services.KPIService
	Financial   services.FinancialService
	Talent      services.TalentService
	Permission  services.PermissionService
	Document    services.DocumentService
	Chat        services.ChatService
	Comment     services.CommentService
	Resource    services.ResourceService
	Task        services.TaskService
	Activity    services.ActivityService
	Score       services.ScoreService
	Insight     services.InsightService
	Report      services.ReportService
	EntityQuery services.EntityQueryService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos, hub *sse.Hub) (Services, error) {
	log.Info("Wiring services...")

	bucketService, err := services.NewBucketService(log)
	if err != nil {
		return Services{}, fmt.Errorf("init bucket service: %w", err)
	}
	avatarService, err := services.NewAvatarService(db, log, bucketService)
	if err != nil {
		return Services{}, fmt.Errorf("init avatar service: %w", err)
	}
	llmClient, err := services.NewLLMClient(log)
	if err != nil {
		return Services{}, fmt.Errorf("init llm client: %w", err)
	}

	// Invite mail degrades gracefully when SendGrid is not configured.
	mailClient, err := sendgrid.NewFromEnv(log)
	if err != nil {
		log.Warn("SendGrid unavailable; invite mail disabled", "error", err)
		mailClient = nil
	}

	catalog, err := benchmarks.Load(cfg.BenchmarksPath)
	if err != nil {
		return Services{}, fmt.Errorf("load benchmarks catalog: %w", err)
	}

	resolver := permissions.NewResolver(log, r.VenturePermission)

	authService := services.NewAuthService(
		db, log, r.User, r.UserToken, avatarService,
		cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL,
	)
	userService := services.NewUserService(db, log, r.User, avatarService)
	ventureService := services.NewVentureService(db, log, r.Venture, r.VenturePermission, r.ActivityLog, resolver, avatarService, hub)
	kpiService := services.NewKPIService(db, log, r.VentureKPI, r.ActivityLog, resolver, hub)
	financialService := services.NewFinancialService(db, log, r.FinancialRecord, r.ActivityLog, resolver)
	talentService := services.NewTalentService(db, log, r.Talent, r.Skill, r.ActivityLog)
	permissionService := services.NewPermissionService(db, log, r.VenturePermission, r.Venture, r.ActivityLog, resolver, mailClient, hub)
	documentService := services.NewDocumentService(db, log, r.VentureDocument, r.ActivityLog, r.AICallLog, resolver, bucketService, llmClient, hub)
	chatService := services.NewChatService(db, log, r.Chat, r.ActivityLog, resolver, hub)
	commentService := services.NewCommentService(db, log, r.VentureComment, r.ActivityLog, resolver, hub)
	resourceService := services.NewResourceService(db, log, r.Resource, r.ActivityLog, resolver)
	taskService := services.NewTaskService(db, log, r.VentureTask, r.ActivityLog, resolver)
	activityService := services.NewActivityService(log, r.ActivityLog, resolver)
	scoreService := services.NewScoreService(db, log, r.VentureScore, r.VentureKPI, r.FinancialRecord, resolver)
	insightService := services.NewInsightService(db, log, r.Venture, r.VentureKPI, r.FinancialRecord, r.AICallLog, resolver, llmClient, talentService, catalog)
	reportService := services.NewReportService(db, log, r.Venture, r.VentureKPI, r.FinancialRecord, r.Talent, r.ActivityLog, resolver, talentService)
	entityQueryService := services.NewEntityQueryService(db, log, r.Registry, r.VenturePermission, resolver)

	return Services{
		Auth:        authService,
		Avatar:      avatarService,
		Bucket:      bucketService,
		User:        userService,
		Venture:     ventureService,
		KPI:         kpiService,
		Financial:   financialService,
		Talent:      talentService,
		Permission:  permissionService,
		Document:    documentService,
		Chat:        chatService,
		Comment:     commentService,
		Resource:    resourceService,
		Task:        taskService,
		Activity:    activityService,
		Score:       scoreService,
		Insight:     insightService,
		Report:      reportService,
		EntityQuery: entityQueryService,
	}, nil
}
