package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venturedeck/venturedeck-backend/internal/logger"
	"github.com/venturedeck/venturedeck-backend/internal/permissions"
	"github.com/venturedeck/venturedeck-backend/internal/repos"
	"github.com/venturedeck/venturedeck-backend/internal/requestdata"
	"github.com/venturedeck/venturedeck-backend/internal/types"
)

type TaskService interface {
	CreateTask(ctx context.Context, task *types.VentureTask) (*types.VentureTask, error)
	ListTasks(ctx context.Context, ventureID uuid.UUID) ([]*types.VentureTask, error)
	UpdateTask(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*types.VentureTask, error)
	DeleteTask(ctx context.Context, id uuid.UUID) error
}

type taskService struct {
	db              *gorm.DB
	log             *logger.Logger
	taskRepo        repos.VentureTaskRepo
	activityLogRepo repos.ActivityLogRepo
	resolver        permissions.Resolver
}

func NewTaskService(
	db *gorm.DB,
	log *logger.Logger,
	taskRepo repos.VentureTaskRepo,
	activityLogRepo repos.ActivityLogRepo,
	resolver permissions.Resolver,
) TaskService {
	return &taskService{
		db:              db,
		log:             log.With("service", "TaskService"),
		taskRepo:        taskRepo,
		activityLogRepo: activityLogRepo,
		resolver:        resolver,
	}
}

var taskUpdatableColumns = map[string]bool{
	"title":          true,
	"description":    true,
	"status":         true,
	"priority":       true,
	"assignee_email": true,
	"due_date":       true,
}

func validTaskStatus(status string) bool {
	switch status {
	case "todo", "in_progress", "blocked", "done":
		return true
	}
	return false
}

func (ts *taskService) CreateTask(ctx context.Context, task *types.VentureTask) (*types.VentureTask, error) {
	access, err := ts.resolver.Resolve(ctx, task.VentureID, permissions.TypeTasks)
	if err != nil {
		return nil, err
	}
	if !access.CanEdit {
		return nil, ErrForbidden
	}
	task.Title = strings.TrimSpace(task.Title)
	if task.Title == "" {
		return nil, fmt.Errorf("%w: task title is required", ErrBadInput)
	}
	if task.Status == "" {
		task.Status = "todo"
	}
	if !validTaskStatus(task.Status) {
		return nil, fmt.Errorf("%w: unknown task status %q", ErrBadInput, task.Status)
	}
	if rd := requestdata.GetRequestData(ctx); rd != nil {
		task.CreatedBy = rd.UserEmail
	}

	err = ts.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := ts.taskRepo.Create(ctx, tx, []*types.VentureTask{task}); err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}
		logActivity(ctx, tx, ts.activityLogRepo, ts.log, "task.created", "VentureTask", &task.ID, &task.VentureID,
			map[string]interface{}{"title": task.Title})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (ts *taskService) ListTasks(ctx context.Context, ventureID uuid.UUID) ([]*types.VentureTask, error) {
	access, err := ts.resolver.Resolve(ctx, ventureID, permissions.TypeTasks)
	if err != nil {
		return nil, err
	}
	if !access.CanView {
		return nil, ErrForbidden
	}
	return ts.taskRepo.ListByVentureIDs(ctx, nil, []uuid.UUID{ventureID})
}

func (ts *taskService) UpdateTask(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*types.VentureTask, error) {
	tasks, err := ts.taskRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch task: %w", err)
	}
	if len(tasks) == 0 {
		return nil, ErrNotFound
	}
	task := tasks[0]

	access, err := ts.resolver.Resolve(ctx, task.VentureID, permissions.TypeTasks)
	if err != nil {
		return nil, err
	}
	if !access.CanEdit {
		return nil, ErrForbidden
	}

	filtered := make(map[string]interface{}, len(updates))
	for k, v := range updates {
		if taskUpdatableColumns[k] {
			filtered[k] = v
		}
	}
	if status, ok := filtered["status"].(string); ok && !validTaskStatus(status) {
		return nil, fmt.Errorf("%w: unknown task status %q", ErrBadInput, status)
	}
	if len(filtered) == 0 {
		return nil, fmt.Errorf("%w: no updatable fields", ErrBadInput)
	}

	err = ts.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ts.taskRepo.UpdateFields(ctx, tx, id, filtered); err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}
		logActivity(ctx, tx, ts.activityLogRepo, ts.log, "task.updated", "VentureTask", &id, &task.VentureID, filtered)
		return nil
	})
	if err != nil {
		return nil, err
	}

	tasks, err = ts.taskRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil || len(tasks) == 0 {
		return nil, fmt.Errorf("failed to re-fetch task: %w", err)
	}
	return tasks[0], nil
}

func (ts *taskService) DeleteTask(ctx context.Context, id uuid.UUID) error {
	tasks, err := ts.taskRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return fmt.Errorf("failed to fetch task: %w", err)
	}
	if len(tasks) == 0 {
		return ErrNotFound
	}
	task := tasks[0]

	access, err := ts.resolver.Resolve(ctx, task.VentureID, permissions.TypeTasks)
	if err != nil {
		return err
	}
	if !access.CanEdit {
		return ErrForbidden
	}

	return ts.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ts.taskRepo.DeleteByIDs(ctx, tx, []uuid.UUID{id}); err != nil {
			return fmt.Errorf("failed to delete task: %w", err)
		}
		logActivity(ctx, tx, ts.activityLogRepo, ts.log, "task.deleted", "VentureTask", &id, &task.VentureID, nil)
		return nil
	})
}
