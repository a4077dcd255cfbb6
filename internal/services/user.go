package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venturedeck/venturedeck-backend/internal/logger"
	"github.com/venturedeck/venturedeck-backend/internal/repos"
	"github.com/venturedeck/venturedeck-backend/internal/requestdata"
	"github.com/venturedeck/venturedeck-backend/internal/types"
)

type UserService interface {
	GetCurrentUser(ctx context.Context) (*types.User, error)
	UpdateProfile(ctx context.Context, updates map[string]interface{}) (*types.User, error)
	UploadAvatar(ctx context.Context, raw []byte) (*types.User, error)
}

type userService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	avatarService AvatarService
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, avatarService AvatarService) UserService {
	return &userService{
		db:            db,
		log:           log.With("service", "UserService"),
		userRepo:      userRepo,
		avatarService: avatarService,
	}
}

var userUpdatableColumns = map[string]bool{
	"full_name": true,
	"language":  true,
}

func (us *userService) GetCurrentUser(ctx context.Context) (*types.User, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, ErrForbidden
	}
	users, err := us.userRepo.GetByIDs(ctx, nil, []uuid.UUID{rd.UserID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if len(users) == 0 {
		return nil, ErrNotFound
	}
	return users[0], nil
}

func (us *userService) UpdateProfile(ctx context.Context, updates map[string]interface{}) (*types.User, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, ErrForbidden
	}

	filtered := make(map[string]interface{}, len(updates))
	for k, v := range updates {
		if userUpdatableColumns[k] {
			filtered[k] = v
		}
	}
	if len(filtered) == 0 {
		return nil, fmt.Errorf("%w: no updatable fields", ErrBadInput)
	}

	if err := us.userRepo.UpdateFields(ctx, nil, rd.UserID, filtered); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return us.GetCurrentUser(ctx)
}

func (us *userService) UploadAvatar(ctx context.Context, raw []byte) (*types.User, error) {
	user, err := us.GetCurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty image", ErrBadInput)
	}

	err = us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := us.avatarService.CreateAndUploadUserAvatarFromImage(ctx, tx, user, raw); err != nil {
			return fmt.Errorf("failed to process avatar: %w", err)
		}
		return us.userRepo.UpdateFields(ctx, tx, user.ID, map[string]interface{}{
			"avatar_bucket_key": user.AvatarBucketKey,
			"avatar_url":        user.AvatarURL,
		})
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}
