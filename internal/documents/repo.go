package documents

import (
	"context"
	"time"
)

// DocumentsRepo defines persistence operations for documents.
type DocumentsRepo interface {
	Create(ctx context.Context, doc Document) error
	GetCurrentByUser(ctx context.Context, userID string) (Document, error)
	GetByID(ctx context.Context, userID, documentID string) (Document, error)
	UpdateExtraction(ctx context.Context, userID, documentID, extractedKey string, extractedAt time.Time) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Document, error)
}
