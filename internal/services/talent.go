package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/venturedeck/venturedeck-backend/internal/analytics"
	"github.com/venturedeck/venturedeck-backend/internal/logger"
	"github.com/venturedeck/venturedeck-backend/internal/repos"
	"github.com/venturedeck/venturedeck-backend/internal/requestdata"
	"github.com/venturedeck/venturedeck-backend/internal/types"
)

type TalentService interface {
	CreateTalent(ctx context.Context, talent *types.Talent) (*types.Talent, error)
	GetTalent(ctx context.Context, id uuid.UUID) (*types.Talent, error)
	ListTalents(ctx context.Context, filter repos.TalentFilter) ([]*types.Talent, error)
	UpdateTalent(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*types.Talent, error)
	DeleteTalent(ctx context.Context, id uuid.UUID) error
	ListSkills(ctx context.Context) ([]*types.Skill, error)
	CreateSkill(ctx context.Context, skill *types.Skill) (*types.Skill, error)
	// Coverage matches the tracked skill catalog against the talent pool.
	Coverage(ctx context.Context) ([]analytics.Coverage, []analytics.Gap, error)
}

type talentService struct {
	db              *gorm.DB
	log             *logger.Logger
	talentRepo      repos.TalentRepo
	skillRepo       repos.SkillRepo
	activityLogRepo repos.ActivityLogRepo
}

func NewTalentService(
	db *gorm.DB,
	log *logger.Logger,
	talentRepo repos.TalentRepo,
	skillRepo repos.SkillRepo,
	activityLogRepo repos.ActivityLogRepo,
) TalentService {
	return &talentService{
		db:              db,
		log:             log.With("service", "TalentService"),
		talentRepo:      talentRepo,
		skillRepo:       skillRepo,
		activityLogRepo: activityLogRepo,
	}
}

var talentUpdatableColumns = map[string]bool{
	"full_name":       true,
	"email":           true,
	"skills":          true,
	"seniority_level": true,
	"status":          true,
	"rating":          true,
	"source":          true,
}

func validTalentStatus(status string) bool {
	switch status {
	case types.TalentStatusSourced, types.TalentStatusScreening, types.TalentStatusInterviewed,
		types.TalentStatusOffered, types.TalentStatusPlaced, types.TalentStatusRejected:
		return true
	}
	return false
}

func (ts *talentService) CreateTalent(ctx context.Context, talent *types.Talent) (*types.Talent, error) {
	talent.FullName = strings.TrimSpace(talent.FullName)
	if talent.FullName == "" {
		return nil, fmt.Errorf("%w: full_name is required", ErrBadInput)
	}
	if talent.Status == "" {
		talent.Status = types.TalentStatusSourced
	}
	if !validTalentStatus(talent.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrBadInput, talent.Status)
	}

	err := ts.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := ts.talentRepo.Create(ctx, tx, []*types.Talent{talent}); err != nil {
			return fmt.Errorf("failed to create talent: %w", err)
		}
		logActivity(ctx, tx, ts.activityLogRepo, ts.log, "talent.created", "Talent", &talent.ID, nil,
			map[string]interface{}{"full_name": talent.FullName})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return talent, nil
}

func (ts *talentService) GetTalent(ctx context.Context, id uuid.UUID) (*types.Talent, error) {
	talents, err := ts.talentRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch talent: %w", err)
	}
	if len(talents) == 0 {
		return nil, ErrNotFound
	}
	return talents[0], nil
}

func (ts *talentService) ListTalents(ctx context.Context, filter repos.TalentFilter) ([]*types.Talent, error) {
	if filter.Status != "" && !validTalentStatus(filter.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrBadInput, filter.Status)
	}
	return ts.talentRepo.List(ctx, nil, filter)
}

func (ts *talentService) UpdateTalent(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*types.Talent, error) {
	filtered := make(map[string]interface{}, len(updates))
	for k, v := range updates {
		if talentUpdatableColumns[k] {
			filtered[k] = v
		}
	}
	if status, ok := filtered["status"].(string); ok && !validTalentStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrBadInput, status)
	}
	if len(filtered) == 0 {
		return nil, fmt.Errorf("%w: no updatable fields", ErrBadInput)
	}

	err := ts.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ts.talentRepo.UpdateFields(ctx, tx, id, filtered); err != nil {
			return fmt.Errorf("failed to update talent: %w", err)
		}
		logActivity(ctx, tx, ts.activityLogRepo, ts.log, "talent.updated", "Talent", &id, nil, filtered)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ts.GetTalent(ctx, id)
}

func (ts *talentService) DeleteTalent(ctx context.Context, id uuid.UUID) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || !rd.IsAdmin() {
		return ErrForbidden
	}
	return ts.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ts.talentRepo.DeleteByIDs(ctx, tx, []uuid.UUID{id}); err != nil {
			return fmt.Errorf("failed to delete talent: %w", err)
		}
		logActivity(ctx, tx, ts.activityLogRepo, ts.log, "talent.deleted", "Talent", &id, nil, nil)
		return nil
	})
}

func (ts *talentService) ListSkills(ctx context.Context) ([]*types.Skill, error) {
	return ts.skillRepo.List(ctx, nil)
}

func (ts *talentService) CreateSkill(ctx context.Context, skill *types.Skill) (*types.Skill, error) {
	skill.Name = strings.TrimSpace(skill.Name)
	if skill.Name == "" {
		return nil, fmt.Errorf("%w: skill name is required", ErrBadInput)
	}
	if _, err := ts.skillRepo.Create(ctx, nil, []*types.Skill{skill}); err != nil {
		return nil, fmt.Errorf("failed to create skill: %w", err)
	}
	return skill, nil
}

func (ts *talentService) Coverage(ctx context.Context) ([]analytics.Coverage, []analytics.Gap, error) {
	skills, err := ts.skillRepo.List(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list skills: %w", err)
	}
	talents, err := ts.talentRepo.List(ctx, nil, repos.TalentFilter{})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list talents: %w", err)
	}

	names := make([]string, 0, len(skills))
	for _, s := range skills {
		names = append(names, s.Name)
	}
	pool := make([]analytics.TalentSkills, 0, len(talents))
	for _, t := range talents {
		pool = append(pool, analytics.TalentSkills{
			FullName: t.FullName,
			Skills:   ParseTalentSkills(t.Skills),
		})
	}
	coverage, gaps := analytics.SkillCoverage(names, pool)
	return coverage, gaps, nil
}

// ParseTalentSkills decodes the skills jsonb column. Entries are either bare
// strings or {"name": ..., "proficiency": ...} objects; anything else is
// skipped.
func ParseTalentSkills(raw datatypes.JSON) []analytics.SkillEntry {
	if len(raw) == 0 {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	entries := make([]analytics.SkillEntry, 0, len(items))
	for _, item := range items {
		var name string
		if err := json.Unmarshal(item, &name); err == nil {
			if name = strings.TrimSpace(name); name != "" {
				entries = append(entries, analytics.SkillEntry{Name: name})
			}
			continue
		}
		var obj struct {
			Name        string `json:"name"`
			Proficiency string `json:"proficiency"`
		}
		if err := json.Unmarshal(item, &obj); err == nil && strings.TrimSpace(obj.Name) != "" {
			entries = append(entries, analytics.SkillEntry{
				Name:        strings.TrimSpace(obj.Name),
				Proficiency: obj.Proficiency,
			})
		}
	}
	return entries
}
