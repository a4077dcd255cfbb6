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
	"github.com/venturedeck/venturedeck-backend/internal/sse"
	"github.com/venturedeck/venturedeck-backend/internal/types"
)

type ChatService interface {
	CreateThread(ctx context.Context, thread *types.ChatThread) (*types.ChatThread, error)
	ListThreads(ctx context.Context, ventureID uuid.UUID) ([]*types.ChatThread, error)
	PostMessage(ctx context.Context, threadID uuid.UUID, body string) (*types.ChatMessage, error)
	ListMessages(ctx context.Context, threadID uuid.UUID) ([]*types.ChatMessage, error)
}

type chatService struct {
	db              *gorm.DB
	log             *logger.Logger
	chatRepo        repos.ChatRepo
	activityLogRepo repos.ActivityLogRepo
	resolver        permissions.Resolver
	hub             *sse.Hub
}

func NewChatService(
	db *gorm.DB,
	log *logger.Logger,
	chatRepo repos.ChatRepo,
	activityLogRepo repos.ActivityLogRepo,
	resolver permissions.Resolver,
	hub *sse.Hub,
) ChatService {
	return &chatService{
		db:              db,
		log:             log.With("service", "ChatService"),
		chatRepo:        chatRepo,
		activityLogRepo: activityLogRepo,
		resolver:        resolver,
		hub:             hub,
	}
}

func (cs *chatService) CreateThread(ctx context.Context, thread *types.ChatThread) (*types.ChatThread, error) {
	access, err := cs.resolver.Resolve(ctx, thread.VentureID, permissions.TypeChat)
	if err != nil {
		return nil, err
	}
	if !access.CanEdit {
		return nil, ErrForbidden
	}
	thread.Title = strings.TrimSpace(thread.Title)
	if thread.Title == "" {
		return nil, fmt.Errorf("%w: thread title is required", ErrBadInput)
	}
	if rd := requestdata.GetRequestData(ctx); rd != nil {
		thread.CreatedBy = rd.UserEmail
	}

	err = cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := cs.chatRepo.CreateThreads(ctx, tx, []*types.ChatThread{thread}); err != nil {
			return fmt.Errorf("failed to create thread: %w", err)
		}
		logActivity(ctx, tx, cs.activityLogRepo, cs.log, "chat.thread_created", "ChatThread", &thread.ID, &thread.VentureID,
			map[string]interface{}{"title": thread.Title})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return thread, nil
}

func (cs *chatService) ListThreads(ctx context.Context, ventureID uuid.UUID) ([]*types.ChatThread, error) {
	access, err := cs.resolver.Resolve(ctx, ventureID, permissions.TypeChat)
	if err != nil {
		return nil, err
	}
	if !access.CanView {
		return nil, ErrForbidden
	}
	return cs.chatRepo.ListThreadsByVentureIDs(ctx, nil, []uuid.UUID{ventureID})
}

func (cs *chatService) PostMessage(ctx context.Context, threadID uuid.UUID, body string) (*types.ChatMessage, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf("%w: message body is required", ErrBadInput)
	}
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, ErrForbidden
	}

	threads, err := cs.chatRepo.GetThreadsByIDs(ctx, nil, []uuid.UUID{threadID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch thread: %w", err)
	}
	if len(threads) == 0 {
		return nil, ErrNotFound
	}
	thread := threads[0]

	access, err := cs.resolver.Resolve(ctx, thread.VentureID, permissions.TypeChat)
	if err != nil {
		return nil, err
	}
	if !access.CanEdit {
		return nil, ErrForbidden
	}

	message := &types.ChatMessage{
		ThreadID:    threadID,
		AuthorEmail: rd.UserEmail,
		Body:        body,
	}
	if _, err := cs.chatRepo.CreateMessages(ctx, nil, []*types.ChatMessage{message}); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	cs.hub.Broadcast(sse.Message{Channel: sse.VentureChannel(thread.VentureID), Event: sse.EventChatMessageCreated, Data: message})
	return message, nil
}

func (cs *chatService) ListMessages(ctx context.Context, threadID uuid.UUID) ([]*types.ChatMessage, error) {
	threads, err := cs.chatRepo.GetThreadsByIDs(ctx, nil, []uuid.UUID{threadID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch thread: %w", err)
	}
	if len(threads) == 0 {
		return nil, ErrNotFound
	}
	access, err := cs.resolver.Resolve(ctx, threads[0].VentureID, permissions.TypeChat)
	if err != nil {
		return nil, err
	}
	if !access.CanView {
		return nil, ErrForbidden
	}
	return cs.chatRepo.ListMessagesByThreadID(ctx, nil, threadID)
}
