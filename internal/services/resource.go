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

type ResourceService interface {
	CreateListing(ctx context.Context, listing *types.ResourceListing) (*types.ResourceListing, error)
	ListListings(ctx context.Context, status string) ([]*types.ResourceListing, error)
	UpdateListing(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*types.ResourceListing, error)
	DeleteListing(ctx context.Context, id uuid.UUID) error
	CreateRequest(ctx context.Context, request *types.ResourceRequest) (*types.ResourceRequest, error)
	ListRequests(ctx context.Context, ventureID uuid.UUID) ([]*types.ResourceRequest, error)
	UpdateRequestStatus(ctx context.Context, id uuid.UUID, status string) error
}

type resourceService struct {
	db              *gorm.DB
	log             *logger.Logger
	resourceRepo    repos.ResourceRepo
	activityLogRepo repos.ActivityLogRepo
	resolver        permissions.Resolver
}

func NewResourceService(
	db *gorm.DB,
	log *logger.Logger,
	resourceRepo repos.ResourceRepo,
	activityLogRepo repos.ActivityLogRepo,
	resolver permissions.Resolver,
) ResourceService {
	return &resourceService{
		db:              db,
		log:             log.With("service", "ResourceService"),
		resourceRepo:    resourceRepo,
		activityLogRepo: activityLogRepo,
		resolver:        resolver,
	}
}

var listingUpdatableColumns = map[string]bool{
	"title":         true,
	"description":   true,
	"resource_type": true,
	"availability":  true,
	"tags":          true,
	"status":        true,
}

func validRequestStatus(status string) bool {
	switch status {
	case "pending", "approved", "declined", "fulfilled":
		return true
	}
	return false
}

func (rs *resourceService) CreateListing(ctx context.Context, listing *types.ResourceListing) (*types.ResourceListing, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, ErrForbidden
	}
	// Publishing on behalf of a venture needs edit rights there.
	access, err := rs.resolver.Resolve(ctx, listing.VentureID, permissions.TypeVenture)
	if err != nil {
		return nil, err
	}
	if !access.CanEdit {
		return nil, ErrForbidden
	}
	listing.Title = strings.TrimSpace(listing.Title)
	if listing.Title == "" {
		return nil, fmt.Errorf("%w: listing title is required", ErrBadInput)
	}
	if listing.Status == "" {
		listing.Status = "open"
	}
	listing.CreatedBy = rd.UserEmail

	err = rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := rs.resourceRepo.CreateListings(ctx, tx, []*types.ResourceListing{listing}); err != nil {
			return fmt.Errorf("failed to create listing: %w", err)
		}
		logActivity(ctx, tx, rs.activityLogRepo, rs.log, "resource.listing_created", "ResourceListing", &listing.ID, &listing.VentureID,
			map[string]interface{}{"title": listing.Title})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return listing, nil
}

// ListListings is the studio-wide marketplace feed; any signed-in user sees it.
func (rs *resourceService) ListListings(ctx context.Context, status string) ([]*types.ResourceListing, error) {
	return rs.resourceRepo.ListListings(ctx, nil, status)
}

func (rs *resourceService) UpdateListing(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*types.ResourceListing, error) {
	listings, err := rs.resourceRepo.GetListingsByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch listing: %w", err)
	}
	if len(listings) == 0 {
		return nil, ErrNotFound
	}
	listing := listings[0]

	access, err := rs.resolver.Resolve(ctx, listing.VentureID, permissions.TypeVenture)
	if err != nil {
		return nil, err
	}
	if !access.CanEdit {
		return nil, ErrForbidden
	}

	filtered := make(map[string]interface{}, len(updates))
	for k, v := range updates {
		if listingUpdatableColumns[k] {
			filtered[k] = v
		}
	}
	if len(filtered) == 0 {
		return nil, fmt.Errorf("%w: no updatable fields", ErrBadInput)
	}
	if err := rs.resourceRepo.UpdateListingFields(ctx, nil, id, filtered); err != nil {
		return nil, fmt.Errorf("failed to update listing: %w", err)
	}

	listings, err = rs.resourceRepo.GetListingsByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil || len(listings) == 0 {
		return nil, fmt.Errorf("failed to re-fetch listing: %w", err)
	}
	return listings[0], nil
}

func (rs *resourceService) DeleteListing(ctx context.Context, id uuid.UUID) error {
	listings, err := rs.resourceRepo.GetListingsByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return fmt.Errorf("failed to fetch listing: %w", err)
	}
	if len(listings) == 0 {
		return ErrNotFound
	}
	listing := listings[0]

	access, err := rs.resolver.Resolve(ctx, listing.VentureID, permissions.TypeVenture)
	if err != nil {
		return err
	}
	if !access.CanEdit {
		return ErrForbidden
	}

	return rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := rs.resourceRepo.DeleteListingsByIDs(ctx, tx, []uuid.UUID{id}); err != nil {
			return fmt.Errorf("failed to delete listing: %w", err)
		}
		logActivity(ctx, tx, rs.activityLogRepo, rs.log, "resource.listing_deleted", "ResourceListing", &id, &listing.VentureID, nil)
		return nil
	})
}

func (rs *resourceService) CreateRequest(ctx context.Context, request *types.ResourceRequest) (*types.ResourceRequest, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, ErrForbidden
	}
	access, err := rs.resolver.Resolve(ctx, request.VentureID, permissions.TypeVenture)
	if err != nil {
		return nil, err
	}
	if !access.CanEdit {
		return nil, ErrForbidden
	}
	request.Description = strings.TrimSpace(request.Description)
	if request.Description == "" {
		return nil, fmt.Errorf("%w: request description is required", ErrBadInput)
	}
	if request.Status == "" {
		request.Status = "pending"
	}
	request.RequestedBy = rd.UserEmail

	if _, err := rs.resourceRepo.CreateRequests(ctx, nil, []*types.ResourceRequest{request}); err != nil {
		return nil, fmt.Errorf("failed to create resource request: %w", err)
	}
	return request, nil
}

func (rs *resourceService) ListRequests(ctx context.Context, ventureID uuid.UUID) ([]*types.ResourceRequest, error) {
	access, err := rs.resolver.Resolve(ctx, ventureID, permissions.TypeVenture)
	if err != nil {
		return nil, err
	}
	if !access.CanView {
		return nil, ErrForbidden
	}
	return rs.resourceRepo.ListRequestsByVentureIDs(ctx, nil, []uuid.UUID{ventureID})
}

func (rs *resourceService) UpdateRequestStatus(ctx context.Context, id uuid.UUID, status string) error {
	if !validRequestStatus(status) {
		return fmt.Errorf("%w: unknown request status %q", ErrBadInput, status)
	}
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return ErrForbidden
	}
	return rs.resourceRepo.UpdateRequestFields(ctx, nil, id, map[string]interface{}{"status": status})
}
