package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/venturedeck/venturedeck-backend/internal/logger"
	"github.com/venturedeck/venturedeck-backend/internal/types"
	"github.com/venturedeck/venturedeck-backend/internal/utils"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
	postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
	postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
	postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
	postgresName := utils.GetEnv("POSTGRES_NAME", "venturedeck", log)

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

	serviceLog.Info("Connecting to Postgres...")
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		serviceLog.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	if err := gdb.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		serviceLog.Error("Failed to enable uuid-ossp extension", "error", err)
		return nil, fmt.Errorf("failed to enable uuid-ossp extension: %w", err)
	}

	return &PostgresService{db: gdb, log: serviceLog}, nil
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	if err := s.db.AutoMigrate(
		&types.User{},
		&types.UserToken{},
		&types.Venture{},
		&types.VentureKPI{},
		&types.FinancialRecord{},
		&types.Talent{},
		&types.Skill{},
		&types.VenturePermission{},
		&types.VentureDocument{},
		&types.ChatThread{},
		&types.ChatMessage{},
		&types.VentureComment{},
		&types.ResourceListing{},
		&types.ResourceRequest{},
		&types.VentureTask{},
		&types.ActivityLog{},
		&types.VentureScore{},
		&types.AICallLog{},
	); err != nil {
		s.log.Error("Auto migration failed for postgres tables", "error", err)
		return err
	}

	s.log.Info("Configuring foreign key relationships for postgres tables...")
	constraints := []struct {
		name string
		ddl  string
	}{
		{"fk_user_token_user_id", `ALTER TABLE "user_token" ADD CONSTRAINT "fk_user_token_user_id" FOREIGN KEY ("user_id") REFERENCES "user"("id") ON DELETE CASCADE`},
		{"fk_venture_kpi_venture_id", `ALTER TABLE "venture_kpi" ADD CONSTRAINT "fk_venture_kpi_venture_id" FOREIGN KEY ("venture_id") REFERENCES "venture"("id") ON DELETE CASCADE`},
		{"fk_financial_record_venture_id", `ALTER TABLE "financial_record" ADD CONSTRAINT "fk_financial_record_venture_id" FOREIGN KEY ("venture_id") REFERENCES "venture"("id") ON DELETE CASCADE`},
		{"fk_venture_permission_venture_id", `ALTER TABLE "venture_permission" ADD CONSTRAINT "fk_venture_permission_venture_id" FOREIGN KEY ("venture_id") REFERENCES "venture"("id") ON DELETE CASCADE`},
		{"fk_venture_document_venture_id", `ALTER TABLE "venture_document" ADD CONSTRAINT "fk_venture_document_venture_id" FOREIGN KEY ("venture_id") REFERENCES "venture"("id") ON DELETE CASCADE`},
		{"fk_chat_thread_venture_id", `ALTER TABLE "chat_thread" ADD CONSTRAINT "fk_chat_thread_venture_id" FOREIGN KEY ("venture_id") REFERENCES "venture"("id") ON DELETE CASCADE`},
		{"fk_chat_message_thread_id", `ALTER TABLE "chat_message" ADD CONSTRAINT "fk_chat_message_thread_id" FOREIGN KEY ("thread_id") REFERENCES "chat_thread"("id") ON DELETE CASCADE`},
		{"fk_venture_comment_venture_id", `ALTER TABLE "venture_comment" ADD CONSTRAINT "fk_venture_comment_venture_id" FOREIGN KEY ("venture_id") REFERENCES "venture"("id") ON DELETE CASCADE`},
		{"fk_resource_listing_venture_id", `ALTER TABLE "resource_listing" ADD CONSTRAINT "fk_resource_listing_venture_id" FOREIGN KEY ("venture_id") REFERENCES "venture"("id") ON DELETE CASCADE`},
		{"fk_resource_request_venture_id", `ALTER TABLE "resource_request" ADD CONSTRAINT "fk_resource_request_venture_id" FOREIGN KEY ("venture_id") REFERENCES "venture"("id") ON DELETE CASCADE`},
		{"fk_venture_task_venture_id", `ALTER TABLE "venture_task" ADD CONSTRAINT "fk_venture_task_venture_id" FOREIGN KEY ("venture_id") REFERENCES "venture"("id") ON DELETE CASCADE`},
		{"fk_venture_score_venture_id", `ALTER TABLE "venture_score" ADD CONSTRAINT "fk_venture_score_venture_id" FOREIGN KEY ("venture_id") REFERENCES "venture"("id") ON DELETE CASCADE`},
	}
	for _, c := range constraints {
		var exists bool
		if err := s.db.Raw(`SELECT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = ?)`, c.name).Scan(&exists).Error; err != nil {
			return err
		}
		if exists {
			continue
		}
		if err := s.db.Exec(c.ddl).Error; err != nil {
			s.log.Error("Failed to add foreign key constraint", "constraint", c.name, "error", err)
			return err
		}
	}
	return nil
}
