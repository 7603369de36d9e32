package analysis

import "context"

// Repo defines persistence operations for analysis records.
type Repo interface {
	Create(ctx context.Context, record Record) error
	GetByID(ctx context.Context, recordID string) (Record, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Record, error)
}
