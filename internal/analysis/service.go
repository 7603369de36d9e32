package analysis

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"admit-backend/internal/documents"
	"admit-backend/internal/extract"
	"admit-backend/internal/quota"
	"admit-backend/internal/shared/metrics"
	"admit-backend/internal/shared/storage/object"
	"admit-backend/internal/shared/telemetry"
)

// Service runs document analyses and persists the outcome.
type Service struct {
	Repo         Repo
	DocRepo      documents.DocumentsRepo
	Store        object.ObjectStore
	Orchestrator *Orchestrator
	Quota        *quota.Service
}

// RunInput carries the caller's analysis request.
type RunInput struct {
	DocumentID   string
	DocumentType string
	WebsiteHint  string
	Nationality  string
}

// Run analyzes one document synchronously and persists the record. Quota is
// consumed only after the pipeline reaches a terminal result, and only for
// runs that actually executed the pipeline; cache hits stay free.
func (s *Service) Run(ctx context.Context, userID string, in RunInput) (Record, error) {
	if userID == "" || in.DocumentID == "" {
		return Record{}, errors.New("userID and documentID are required")
	}

	doc, err := s.DocRepo.GetByID(ctx, userID, in.DocumentID)
	if err != nil {
		return Record{}, err
	}

	documentType := strings.ToLower(strings.TrimSpace(in.DocumentType))
	if documentType == "" {
		documentType = doc.DocumentType
	}

	text, err := s.extractedText(ctx, doc)
	if err != nil {
		telemetry.Error("analysis.extract_failed", map[string]any{
			"user_id":     userID,
			"document_id": doc.ID,
			"error":       err.Error(),
		})
		return Record{}, ErrDocumentUnreadable
	}

	result, meta, err := s.Orchestrator.Analyze(ctx, AnalyzeRequest{
		UserID:       userID,
		DocumentType: documentType,
		Text:         text,
		WebsiteHint:  in.WebsiteHint,
		Nationality:  in.Nationality,
	})
	if err != nil {
		if errors.Is(err, ErrQuotaExceeded) || errors.Is(err, ErrDocumentUnreadable) {
			return Record{}, err
		}
		metrics.IncAnalysisFailed()
		record := s.failedRecord(userID, doc.ID, documentType, err)
		if createErr := s.Repo.Create(ctx, record); createErr != nil {
			return Record{}, createErr
		}
		return record, nil
	}

	if s.Quota != nil && !meta.CacheHit {
		if _, err := s.Quota.Consume(ctx, userID, 1); err != nil && !errors.Is(err, quota.ErrLimitReached) {
			return Record{}, err
		}
	}

	now := time.Now().UTC()
	record := Record{
		ID:           uuid.NewString(),
		DocumentID:   doc.ID,
		UserID:       userID,
		DocumentType: documentType,
		Status:       StatusCompleted,
		Result:       &result,
		Metadata:     &meta,
		CreatedAt:    now,
		CompletedAt:  &now,
	}
	if err := s.Repo.Create(ctx, record); err != nil {
		return Record{}, err
	}
	return record, nil
}

// Get returns a record by ID.
func (s *Service) Get(ctx context.Context, recordID string) (Record, error) {
	if recordID == "" {
		return Record{}, errors.New("recordID is required")
	}
	return s.Repo.GetByID(ctx, recordID)
}

// List returns records for a user ordered newest-first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Record, error) {
	if userID == "" {
		return nil, errors.New("userID is required")
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

func (s *Service) failedRecord(userID, documentID, documentType string, cause error) Record {
	now := time.Now().UTC()
	return Record{
		ID:           uuid.NewString(),
		DocumentID:   documentID,
		UserID:       userID,
		DocumentType: documentType,
		Status:       StatusFailed,
		ErrorCode:    ErrorCodeInternal,
		ErrorMessage: sanitizeError(cause),
		CreatedAt:    now,
		CompletedAt:  &now,
	}
}

// extractedText returns the document's text, extracting and persisting the
// derived copy on first use.
func (s *Service) extractedText(ctx context.Context, doc documents.Document) (string, error) {
	if doc.ExtractedTextKey != "" {
		return s.loadText(ctx, doc.ExtractedTextKey)
	}

	text, err := extract.ExtractText(ctx, s.Store, doc.StorageKey, doc.MimeType, doc.FileName)
	if err != nil {
		return "", fmt.Errorf("document %s mime %s: %w", doc.ID, doc.MimeType, err)
	}
	extractedKey := doc.StorageKey + ".extracted.txt"
	if err := s.DocRepo.UpdateExtraction(ctx, doc.UserID, doc.ID, extractedKey, time.Now().UTC()); err != nil {
		return "", fmt.Errorf("document %s: update extraction: %w", doc.ID, err)
	}
	return text, nil
}

func (s *Service) loadText(ctx context.Context, key string) (string, error) {
	body, err := s.Store.Open(ctx, key)
	if err != nil {
		return "", err
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.ReplaceAll(err.Error(), "\n", " ")
	msg = strings.ReplaceAll(msg, "\r", " ")
	msg = strings.TrimSpace(msg)
	const maxLen = 500
	if len(msg) > maxLen {
		msg = msg[:maxLen]
	}
	return msg
}
