package app

import (
	"gorm.io/gorm"

	"github.com/venturedeck/venturedeck-backend/internal/logger"
	"github.com/venturedeck/venturedeck-backend/internal/repos"
)

type Repos struct {
	User              repos.UserRepo
	UserToken         repos.UserTokenRepo
	Venture           repos.VentureRepo
	VentureKPI        repos.VentureKPIRepo
	FinancialRecord   repos.FinancialRecordRepo
	Talent            repos.TalentRepo
	Skill             repos.SkillRepo
	VenturePermission repos.VenturePermissionRepo
	VentureDocument   repos.VentureDocumentRepo
	Chat              repos.ChatRepo
	VentureComment    repos.VentureCommentRepo
	Resource          repos.ResourceRepo
	VentureTask       repos.VentureTaskRepo
	ActivityLog       repos.ActivityLogRepo
	VentureScore      repos.VentureScoreRepo
	AICallLog         repos.AICallLogRepo
	Registry          *repos.Registry
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:              repos.NewUserRepo(db, log),
		UserToken:         repos.NewUserTokenRepo(db, log),
		Venture:           repos.NewVentureRepo(db, log),
		VentureKPI:        repos.NewVentureKPIRepo(db, log),
		FinancialRecord:   repos.NewFinancialRecordRepo(db, log),
		Talent:            repos.NewTalentRepo(db, log),
		Skill:             repos.NewSkillRepo(db, log),
		VenturePermission: repos.NewVenturePermissionRepo(db, log),
		VentureDocument:   repos.NewVentureDocumentRepo(db, log),
		Chat:              repos.NewChatRepo(db, log),
		VentureComment:    repos.NewVentureCommentRepo(db, log),
		Resource:          repos.NewResourceRepo(db, log),
		VentureTask:       repos.NewVentureTaskRepo(db, log),
		ActivityLog:       repos.NewActivityLogRepo(db, log),
		VentureScore:      repos.NewVentureScoreRepo(db, log),
		AICallLog:         repos.NewAICallLogRepo(db, log),
		Registry:          repos.NewRegistry(),
	}
}
