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

type CommentService interface {
	CreateComment(ctx context.Context, comment *types.VentureComment) (*types.VentureComment, error)
	ListComments(ctx context.Context, ventureID uuid.UUID) ([]*types.VentureComment, error)
	DeleteComment(ctx context.Context, id uuid.UUID) error
}

type commentService struct {
	db              *gorm.DB
	log             *logger.Logger
	commentRepo     repos.VentureCommentRepo
	activityLogRepo repos.ActivityLogRepo
	resolver        permissions.Resolver
	hub             *sse.Hub
}

func NewCommentService(
	db *gorm.DB,
	log *logger.Logger,
	commentRepo repos.VentureCommentRepo,
	activityLogRepo repos.ActivityLogRepo,
	resolver permissions.Resolver,
	hub *sse.Hub,
) CommentService {
	return &commentService{
		db:              db,
		log:             log.With("service", "CommentService"),
		commentRepo:     commentRepo,
		activityLogRepo: activityLogRepo,
		resolver:        resolver,
		hub:             hub,
	}
}

func (cs *commentService) CreateComment(ctx context.Context, comment *types.VentureComment) (*types.VentureComment, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, ErrForbidden
	}
	access, err := cs.resolver.Resolve(ctx, comment.VentureID, permissions.TypeComments)
	if err != nil {
		return nil, err
	}
	if !access.CanEdit {
		return nil, ErrForbidden
	}
	comment.Body = strings.TrimSpace(comment.Body)
	if comment.Body == "" {
		return nil, fmt.Errorf("%w: comment body is required", ErrBadInput)
	}
	comment.AuthorEmail = rd.UserEmail

	if _, err := cs.commentRepo.Create(ctx, nil, []*types.VentureComment{comment}); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	cs.hub.Broadcast(sse.Message{Channel: sse.VentureChannel(comment.VentureID), Event: sse.EventCommentCreated, Data: comment})
	return comment, nil
}

func (cs *commentService) ListComments(ctx context.Context, ventureID uuid.UUID) ([]*types.VentureComment, error) {
	access, err := cs.resolver.Resolve(ctx, ventureID, permissions.TypeComments)
	if err != nil {
		return nil, err
	}
	if !access.CanView {
		return nil, ErrForbidden
	}
	return cs.commentRepo.ListByVentureIDs(ctx, nil, []uuid.UUID{ventureID})
}

func (cs *commentService) DeleteComment(ctx context.Context, id uuid.UUID) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return ErrForbidden
	}

	comments, err := cs.commentRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return fmt.Errorf("failed to fetch comment: %w", err)
	}
	if len(comments) == 0 {
		return ErrNotFound
	}
	comment := comments[0]

	// Authors delete their own comments; venture admins delete anything.
	if comment.AuthorEmail != rd.UserEmail {
		access, err := cs.resolver.Resolve(ctx, comment.VentureID, permissions.TypeComments)
		if err != nil {
			return err
		}
		if !access.CanAdmin {
			return ErrForbidden
		}
	}

	return cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := cs.commentRepo.DeleteByIDs(ctx, tx, []uuid.UUID{id}); err != nil {
			return fmt.Errorf("failed to delete comment: %w", err)
		}
		logActivity(ctx, tx, cs.activityLogRepo, cs.log, "comment.deleted", "VentureComment", &id, &comment.VentureID, nil)
		return nil
	})
}
