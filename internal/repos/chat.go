package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venturedeck/venturedeck-backend/internal/logger"
	"github.com/venturedeck/venturedeck-backend/internal/types"
)

type ChatRepo interface {
	CreateThreads(ctx context.Context, tx *gorm.DB, threads []*types.ChatThread) ([]*types.ChatThread, error)
	GetThreadsByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.ChatThread, error)
	ListThreadsByVentureIDs(ctx context.Context, tx *gorm.DB, ventureIDs []uuid.UUID) ([]*types.ChatThread, error)
	DeleteThreadsByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error

	CreateMessages(ctx context.Context, tx *gorm.DB, messages []*types.ChatMessage) ([]*types.ChatMessage, error)
	ListMessagesByThreadID(ctx context.Context, tx *gorm.DB, threadID uuid.UUID) ([]*types.ChatMessage, error)
}

type chatRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewChatRepo(db *gorm.DB, baseLog *logger.Logger) ChatRepo {
	return &chatRepo{db: db, log: baseLog.With("repo", "ChatRepo")}
}

func (r *chatRepo) CreateThreads(ctx context.Context, tx *gorm.DB, threads []*types.ChatThread) ([]*types.ChatThread, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(threads) == 0 {
		return []*types.ChatThread{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&threads).Error; err != nil {
		return nil, err
	}
	return threads, nil
}

func (r *chatRepo) GetThreadsByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.ChatThread, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.ChatThread
	if len(ids) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *chatRepo) ListThreadsByVentureIDs(ctx context.Context, tx *gorm.DB, ventureIDs []uuid.UUID) ([]*types.ChatThread, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.ChatThread
	if len(ventureIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("venture_id IN ?", ventureIDs).
		Order("updated_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *chatRepo) DeleteThreadsByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(ids) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&types.ChatThread{}).Error
}

func (r *chatRepo) CreateMessages(ctx context.Context, tx *gorm.DB, messages []*types.ChatMessage) ([]*types.ChatMessage, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(messages) == 0 {
		return []*types.ChatMessage{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *chatRepo) ListMessagesByThreadID(ctx context.Context, tx *gorm.DB, threadID uuid.UUID) ([]*types.ChatMessage, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.ChatMessage
	if threadID == uuid.Nil {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("thread_id = ?", threadID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
