package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venturedeck/venturedeck-backend/internal/logger"
	"github.com/venturedeck/venturedeck-backend/internal/permissions"
	"github.com/venturedeck/venturedeck-backend/internal/repos"
	"github.com/venturedeck/venturedeck-backend/internal/requestdata"
	"github.com/venturedeck/venturedeck-backend/internal/types"
)

// EntityQueryRequest is the generic RPC shape the dashboard speaks: one
// endpoint, entity name plus operation, instead of a route per entity.
type EntityQueryRequest struct {
	EntityName string                 `json:"entity_name"`
	Operation  string                 `json:"operation"`
	Query      map[string]interface{} `json:"query,omitempty"`
	Data       map[string]interface{} `json:"data,omitempty"`
	ID         string                 `json:"id,omitempty"`
	Sort       string                 `json:"sort,omitempty"`
	Limit      int                    `json:"limit,omitempty"`
}

const entityQueryMaxLimit = 500

// entityPolicy ties a registry entity to the permission model the typed
// routes enforce, so the generic endpoint cannot be used to route around
// them.
type entityPolicy struct {
	// gate is the feature permission type resolved per venture.
	gate string
	// ventureColumn names the column carrying the owning venture id
	// ("id" for the venture table itself, "" for studio-wide entities).
	ventureColumn string
	// threadScoped entities reach their venture through chat_thread.
	threadScoped bool
	// studioRead entities are readable by any authenticated user without
	// venture scoping (the marketplace and talent pool).
	studioRead bool
	// adminRead restricts reads to ventures where the caller holds admin.
	adminRead bool
	// sealed entities take no writes here at all; their rows are only
	// created through the dedicated service that owns their side effects.
	sealed bool
	// createSealed blocks only create (update/delete stay gated as usual).
	createSealed bool
	// deleteAdmin raises delete from edit to admin.
	deleteAdmin bool
}

var entityPolicies = map[string]entityPolicy{
	// Venture creation seeds the founding grant and logo; that flow lives in
	// VentureService, so generic create is off.
	"Venture":         {gate: permissions.TypeVenture, ventureColumn: "id", createSealed: true, deleteAdmin: true},
	"VentureKPI":      {gate: permissions.TypeKPIs, ventureColumn: "venture_id"},
	"FinancialRecord": {gate: permissions.TypeFinancials, ventureColumn: "venture_id"},
	"Talent":          {deleteAdmin: true},
	"Skill":           {deleteAdmin: true},
	// Grants and audit rows are written only by their services; exposing
	// them to generic writes would let callers mint their own access.
	"VenturePermission": {gate: permissions.TypeVenture, ventureColumn: "venture_id", adminRead: true, sealed: true},
	"VentureDocument":   {gate: permissions.TypeDocuments, ventureColumn: "venture_id"},
	"ChatThread":        {gate: permissions.TypeChat, ventureColumn: "venture_id"},
	"ChatMessage":       {gate: permissions.TypeChat, threadScoped: true, sealed: true},
	"VentureComment":    {gate: permissions.TypeComments, ventureColumn: "venture_id"},
	"ResourceListing":   {gate: permissions.TypeVenture, ventureColumn: "venture_id", studioRead: true},
	"ResourceRequest":   {gate: permissions.TypeVenture, ventureColumn: "venture_id", studioRead: true},
	"VentureTask":       {gate: permissions.TypeTasks, ventureColumn: "venture_id"},
	"ActivityLog":       {gate: permissions.TypeVenture, ventureColumn: "venture_id", sealed: true},
	"VentureScore":      {gate: permissions.TypeInsights, ventureColumn: "venture_id", sealed: true},
}

type EntityQueryService interface {
	Execute(ctx context.Context, req EntityQueryRequest) (interface{}, error)
}

type entityQueryService struct {
	db             *gorm.DB
	log            *logger.Logger
	registry       *repos.Registry
	permissionRepo repos.VenturePermissionRepo
	resolver       permissions.Resolver
}

func NewEntityQueryService(
	db *gorm.DB,
	log *logger.Logger,
	registry *repos.Registry,
	permissionRepo repos.VenturePermissionRepo,
	resolver permissions.Resolver,
) EntityQueryService {
	return &entityQueryService{
		db:             db,
		log:            log.With("service", "EntityQueryService"),
		registry:       registry,
		permissionRepo: permissionRepo,
		resolver:       resolver,
	}
}

// column aliases kept for clients that still send the old field names.
var entityColumnAliases = map[string]string{
	"created_date": "created_at",
	"updated_date": "updated_at",
}

func canonicalColumn(name string) (string, error) {
	name = strings.TrimSpace(name)
	if alias, ok := entityColumnAliases[name]; ok {
		name = alias
	}
	if !repos.ValidColumnName(name) {
		return "", fmt.Errorf("%w: invalid column %q", ErrBadInput, name)
	}
	return name, nil
}

func (es *entityQueryService) Execute(ctx context.Context, req EntityQueryRequest) (interface{}, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, ErrForbidden
	}

	model, err := es.registry.Model(req.EntityName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadInput, err)
	}
	policy, ok := entityPolicies[req.EntityName]
	if !ok {
		return nil, fmt.Errorf("%w: entity %q is not queryable", ErrBadInput, req.EntityName)
	}

	switch req.Operation {
	case "list":
		return es.list(ctx, model, policy, nil, req.Sort, req.Limit)
	case "filter":
		return es.list(ctx, model, policy, req.Query, req.Sort, req.Limit)
	case "create":
		if policy.sealed || policy.createSealed {
			return nil, fmt.Errorf("%w: %s rows are created through their dedicated endpoint", ErrForbidden, req.EntityName)
		}
		return es.create(ctx, model, policy, req.Data)
	case "update":
		if policy.sealed {
			return nil, fmt.Errorf("%w: %s rows are managed by their dedicated endpoint", ErrForbidden, req.EntityName)
		}
		return es.update(ctx, model, policy, req.ID, req.Data)
	case "delete":
		if policy.sealed {
			return nil, fmt.Errorf("%w: %s rows are managed by their dedicated endpoint", ErrForbidden, req.EntityName)
		}
		return es.delete(ctx, model, policy, req.ID)
	default:
		return nil, fmt.Errorf("%w: unknown operation %q", ErrBadInput, req.Operation)
	}
}

// viewableVentureIDs reduces the caller's grants to the ventures where they
// hold the policy's gate (or "all") at the required level.
func (es *entityQueryService) viewableVentureIDs(ctx context.Context, policy entityPolicy) ([]uuid.UUID, error) {
	rd := requestdata.GetRequestData(ctx)
	grants, err := es.permissionRepo.ListByUserEmail(ctx, nil, rd.UserEmail)
	if err != nil {
		return nil, fmt.Errorf("list caller grants: %w", err)
	}

	byVenture := make(map[uuid.UUID][]*types.VenturePermission)
	for _, grant := range grants {
		if grant.PermissionType != policy.gate && grant.PermissionType != types.PermissionTypeAll {
			continue
		}
		byVenture[grant.VentureID] = append(byVenture[grant.VentureID], grant)
	}

	now := time.Now()
	ids := make([]uuid.UUID, 0, len(byVenture))
	for ventureID, ventureGrants := range byVenture {
		access := permissions.ResolveGrants(ventureGrants, now)
		allowed := access.CanView
		if policy.adminRead {
			allowed = access.CanAdmin
		}
		if allowed {
			ids = append(ids, ventureID)
		}
	}
	return ids, nil
}

func (es *entityQueryService) list(ctx context.Context, model interface{}, policy entityPolicy, query map[string]interface{}, sort string, limit int) (interface{}, error) {
	rd := requestdata.GetRequestData(ctx)

	// Results need a typed slice; build []*T from the registry's *T.
	slicePtr := reflect.New(reflect.SliceOf(reflect.TypeOf(model)))

	scoped := !rd.IsAdmin() && !policy.studioRead && (policy.ventureColumn != "" || policy.threadScoped)
	var ventureIDs []uuid.UUID
	if scoped {
		ids, err := es.viewableVentureIDs(ctx, policy)
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return slicePtr.Elem().Interface(), nil
		}
		ventureIDs = ids
	}

	tx := es.db.WithContext(ctx).Model(model)
	if scoped {
		if policy.threadScoped {
			threadIDs := es.db.Model(&types.ChatThread{}).Select("id").Where("venture_id IN ?", ventureIDs)
			tx = tx.Where("thread_id IN (?)", threadIDs)
		} else {
			tx = tx.Where(fmt.Sprintf("%s IN ?", policy.ventureColumn), ventureIDs)
		}
	}

	for col, val := range query {
		name, err := canonicalColumn(col)
		if err != nil {
			return nil, err
		}
		tx = tx.Where(fmt.Sprintf("%s = ?", name), val)
	}

	if sort = strings.TrimSpace(sort); sort != "" {
		desc := strings.HasPrefix(sort, "-")
		name, err := canonicalColumn(strings.TrimPrefix(sort, "-"))
		if err != nil {
			return nil, err
		}
		if desc {
			tx = tx.Order(name + " DESC")
		} else {
			tx = tx.Order(name + " ASC")
		}
	}

	if limit <= 0 || limit > entityQueryMaxLimit {
		limit = entityQueryMaxLimit
	}
	tx = tx.Limit(limit)

	if err := tx.Find(slicePtr.Interface()).Error; err != nil {
		return nil, fmt.Errorf("entity query failed: %w", err)
	}
	return slicePtr.Elem().Interface(), nil
}

// requireWriteAccess gates one write against the row's venture. Studio-wide
// entities only distinguish admin deletes.
func (es *entityQueryService) requireWriteAccess(ctx context.Context, policy entityPolicy, ventureID uuid.UUID, needAdmin bool) error {
	if policy.ventureColumn == "" && !policy.threadScoped {
		if needAdmin && !requestdata.GetRequestData(ctx).IsAdmin() {
			return fmt.Errorf("%w: admin role required", ErrForbidden)
		}
		return nil
	}
	access, err := es.resolver.Resolve(ctx, ventureID, policy.gate)
	if err != nil {
		return err
	}
	if needAdmin && !access.CanAdmin {
		return ErrForbidden
	}
	if !access.CanEdit {
		return ErrForbidden
	}
	return nil
}

func (es *entityQueryService) create(ctx context.Context, model interface{}, policy entityPolicy, data map[string]interface{}) (interface{}, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: data is required for create", ErrBadInput)
	}

	if policy.ventureColumn != "" {
		raw, _ := data[policy.ventureColumn].(string)
		ventureID, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s is required for create", ErrBadInput, policy.ventureColumn)
		}
		if err := es.requireWriteAccess(ctx, policy, ventureID, false); err != nil {
			return nil, err
		}
	} else if err := es.requireWriteAccess(ctx, policy, uuid.Nil, false); err != nil {
		return nil, err
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadInput, err)
	}
	if err := json.Unmarshal(raw, model); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadInput, err)
	}
	if err := es.db.WithContext(ctx).Create(model).Error; err != nil {
		return nil, fmt.Errorf("entity create failed: %w", err)
	}
	return model, nil
}

func (es *entityQueryService) update(ctx context.Context, model interface{}, policy entityPolicy, id string, data map[string]interface{}) (interface{}, error) {
	entityID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid id %q", ErrBadInput, id)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: data is required for update", ErrBadInput)
	}
	if err := es.gateExistingRow(ctx, model, policy, entityID, false); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{}, len(data))
	for col, val := range data {
		name, err := canonicalColumn(col)
		if err != nil {
			return nil, err
		}
		// Rows never change identity or move between ventures here.
		if name == "id" || name == policy.ventureColumn {
			continue
		}
		updates[name] = val
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("%w: no updatable fields", ErrBadInput)
	}

	result := es.db.WithContext(ctx).Model(model).Where("id = ?", entityID).Updates(updates)
	if result.Error != nil {
		return nil, fmt.Errorf("entity update failed: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	if err := es.db.WithContext(ctx).Where("id = ?", entityID).First(model).Error; err != nil {
		return nil, fmt.Errorf("entity re-fetch failed: %w", err)
	}
	return model, nil
}

func (es *entityQueryService) delete(ctx context.Context, model interface{}, policy entityPolicy, id string) (interface{}, error) {
	entityID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid id %q", ErrBadInput, id)
	}
	if err := es.gateExistingRow(ctx, model, policy, entityID, policy.deleteAdmin); err != nil {
		return nil, err
	}
	result := es.db.WithContext(ctx).Where("id = ?", entityID).Delete(model)
	if result.Error != nil {
		return nil, fmt.Errorf("entity delete failed: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return map[string]interface{}{"deleted": true, "id": entityID}, nil
}

// gateExistingRow loads the target row to learn which venture it belongs to,
// then runs the write gate against it.
func (es *entityQueryService) gateExistingRow(ctx context.Context, model interface{}, policy entityPolicy, entityID uuid.UUID, needAdmin bool) error {
	if err := es.db.WithContext(ctx).Where("id = ?", entityID).First(model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("entity fetch failed: %w", err)
	}

	var ventureID uuid.UUID
	switch {
	case policy.ventureColumn == "id":
		ventureID = entityID
	case policy.ventureColumn != "":
		field := reflect.ValueOf(model).Elem().FieldByName("VentureID")
		if !field.IsValid() {
			return fmt.Errorf("entity %T has no venture reference", model)
		}
		id, ok := field.Interface().(uuid.UUID)
		if !ok {
			return fmt.Errorf("entity %T has no venture reference", model)
		}
		ventureID = id
	}
	return es.requireWriteAccess(ctx, policy, ventureID, needAdmin)
}
