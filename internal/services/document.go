package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venturedeck/venturedeck-backend/internal/logger"
	"github.com/venturedeck/venturedeck-backend/internal/permissions"
	"github.com/venturedeck/venturedeck-backend/internal/repos"
	"github.com/venturedeck/venturedeck-backend/internal/requestdata"
	"github.com/venturedeck/venturedeck-backend/internal/sse"
	"github.com/venturedeck/venturedeck-backend/internal/types"
)

// ExtractionResult mirrors the shape the dashboard consumes: status is
// "completed" with output, or "failed" with details.
type ExtractionResult struct {
	Status  string                 `json:"status"`
	Output  map[string]interface{} `json:"output,omitempty"`
	Details string                 `json:"details,omitempty"`
}

type DocumentService interface {
	UploadDocument(ctx context.Context, ventureID uuid.UUID, title, filename, contentType string, size int64, file io.Reader) (*types.VentureDocument, error)
	ListDocuments(ctx context.Context, ventureID uuid.UUID) ([]*types.VentureDocument, error)
	DeleteDocument(ctx context.Context, id uuid.UUID) error
	ExtractDocumentData(ctx context.Context, id uuid.UUID, schema map[string]interface{}) (*ExtractionResult, error)
}

type documentService struct {
	db              *gorm.DB
	log             *logger.Logger
	documentRepo    repos.VentureDocumentRepo
	activityLogRepo repos.ActivityLogRepo
	aiCallLogRepo   repos.AICallLogRepo
	resolver        permissions.Resolver
	bucketService   BucketService
	llmClient       LLMClient
	hub             *sse.Hub
}

func NewDocumentService(
	db *gorm.DB,
	log *logger.Logger,
	documentRepo repos.VentureDocumentRepo,
	activityLogRepo repos.ActivityLogRepo,
	aiCallLogRepo repos.AICallLogRepo,
	resolver permissions.Resolver,
	bucketService BucketService,
	llmClient LLMClient,
	hub *sse.Hub,
) DocumentService {
	return &documentService{
		db:              db,
		log:             log.With("service", "DocumentService"),
		documentRepo:    documentRepo,
		activityLogRepo: activityLogRepo,
		aiCallLogRepo:   aiCallLogRepo,
		resolver:        resolver,
		bucketService:   bucketService,
		llmClient:       llmClient,
		hub:             hub,
	}
}

func (ds *documentService) UploadDocument(ctx context.Context, ventureID uuid.UUID, title, filename, contentType string, size int64, file io.Reader) (*types.VentureDocument, error) {
	access, err := ds.resolver.Resolve(ctx, ventureID, permissions.TypeDocuments)
	if err != nil {
		return nil, err
	}
	if !access.CanEdit {
		return nil, ErrForbidden
	}

	title = strings.TrimSpace(title)
	if title == "" {
		title = strings.TrimSpace(filename)
	}
	if title == "" {
		return nil, fmt.Errorf("%w: document title is required", ErrBadInput)
	}

	ext := path.Ext(filename)
	key := fmt.Sprintf("venture_document/%s/%d%s", ventureID.String(), time.Now().UnixNano(), ext)
	if err := ds.bucketService.UploadFile(ctx, key, file); err != nil {
		return nil, fmt.Errorf("failed to upload document: %w", err)
	}

	doc := &types.VentureDocument{
		VentureID:   ventureID,
		Title:       title,
		BucketKey:   key,
		FileURL:     ds.bucketService.GetPublicURL(key),
		ContentType: contentType,
		SizeBytes:   size,
	}
	if rd := requestdata.GetRequestData(ctx); rd != nil {
		doc.UploadedBy = rd.UserEmail
	}

	err = ds.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := ds.documentRepo.Create(ctx, tx, []*types.VentureDocument{doc}); err != nil {
			return fmt.Errorf("failed to create document row: %w", err)
		}
		logActivity(ctx, tx, ds.activityLogRepo, ds.log, "document.uploaded", "VentureDocument", &doc.ID, &ventureID,
			map[string]interface{}{"title": doc.Title})
		return nil
	})
	if err != nil {
		// The object is orphaned if the row fails; drop it.
		if delErr := ds.bucketService.DeleteFile(ctx, key); delErr != nil {
			ds.log.Warn("Could not clean up orphaned document object", "key", key, "error", delErr)
		}
		return nil, err
	}

	ds.hub.Broadcast(sse.Message{Channel: sse.VentureChannel(ventureID), Event: sse.EventDocumentUploaded, Data: doc})
	return doc, nil
}

func (ds *documentService) ListDocuments(ctx context.Context, ventureID uuid.UUID) ([]*types.VentureDocument, error) {
	access, err := ds.resolver.Resolve(ctx, ventureID, permissions.TypeDocuments)
	if err != nil {
		return nil, err
	}
	if !access.CanView {
		return nil, ErrForbidden
	}
	return ds.documentRepo.ListByVentureIDs(ctx, nil, []uuid.UUID{ventureID})
}

func (ds *documentService) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	docs, err := ds.documentRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return fmt.Errorf("failed to fetch document: %w", err)
	}
	if len(docs) == 0 {
		return ErrNotFound
	}
	doc := docs[0]

	access, err := ds.resolver.Resolve(ctx, doc.VentureID, permissions.TypeDocuments)
	if err != nil {
		return err
	}
	if !access.CanEdit {
		return ErrForbidden
	}

	err = ds.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ds.documentRepo.DeleteByIDs(ctx, tx, []uuid.UUID{id}); err != nil {
			return fmt.Errorf("failed to delete document row: %w", err)
		}
		logActivity(ctx, tx, ds.activityLogRepo, ds.log, "document.deleted", "VentureDocument", &id, &doc.VentureID,
			map[string]interface{}{"title": doc.Title})
		return nil
	})
	if err != nil {
		return err
	}
	if err := ds.bucketService.DeleteFile(ctx, doc.BucketKey); err != nil {
		ds.log.Warn("Could not delete document object (ignored)", "key", doc.BucketKey, "error", err)
	}
	return nil
}

func (ds *documentService) ExtractDocumentData(ctx context.Context, id uuid.UUID, schema map[string]interface{}) (*ExtractionResult, error) {
	if len(schema) == 0 {
		return nil, fmt.Errorf("%w: json_schema is required", ErrBadInput)
	}

	docs, err := ds.documentRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch document: %w", err)
	}
	if len(docs) == 0 {
		return nil, ErrNotFound
	}
	doc := docs[0]

	access, err := ds.resolver.Resolve(ctx, doc.VentureID, permissions.TypeDocuments)
	if err != nil {
		return nil, err
	}
	if !access.CanEdit {
		return nil, ErrForbidden
	}

	system := "You extract structured data from business documents. " +
		"Return only fields supported by the document; use null for anything absent."
	user := fmt.Sprintf("Document title: %s\nContent type: %s\nFile URL: %s\nExtract the fields described by the schema.",
		doc.Title, doc.ContentType, doc.FileURL)

	start := time.Now()
	output, llmErr := ds.llmClient.GenerateJSON(ctx, system, user, "document_extraction", schema)
	ds.auditCall(ctx, doc.VentureID, "document_extraction", llmErr, time.Since(start))

	if llmErr != nil {
		ds.log.Warn("Document extraction failed", "document_id", id, "error", llmErr)
		return &ExtractionResult{Status: "failed", Details: llmErr.Error()}, nil
	}

	if raw, err := json.Marshal(output); err == nil {
		if err := ds.documentRepo.UpdateFields(ctx, nil, id, map[string]interface{}{"extracted": raw}); err != nil {
			ds.log.Warn("Could not persist extraction output", "document_id", id, "error", err)
		}
	}
	return &ExtractionResult{Status: "completed", Output: output}, nil
}

func (ds *documentService) auditCall(ctx context.Context, ventureID uuid.UUID, feature string, callErr error, took time.Duration) {
	entry := &types.AICallLog{
		VentureID:  &ventureID,
		Feature:    feature,
		Model:      ds.llmClient.Model(),
		Success:    callErr == nil,
		DurationMS: took.Milliseconds(),
	}
	if callErr != nil {
		entry.Error = callErr.Error()
	}
	if rd := requestdata.GetRequestData(ctx); rd != nil && rd.UserID != uuid.Nil {
		userID := rd.UserID
		entry.UserID = &userID
	}
	if _, err := ds.aiCallLogRepo.Create(ctx, nil, []*types.AICallLog{entry}); err != nil {
		ds.log.Warn("Could not write AI call log", "feature", feature, "error", err)
	}
}
