package analysis

import "time"

const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

const (
	ErrorCodeQuotaExceeded = "QUOTA_EXCEEDED"
	ErrorCodeUnreadable    = "DOCUMENT_UNREADABLE"
	ErrorCodeInternal      = "INTERNAL_ERROR"
)

// Record is a persisted analysis run for one document.
type Record struct {
	ID           string     `json:"id"`
	DocumentID   string     `json:"documentId"`
	UserID       string     `json:"userId"`
	DocumentType string     `json:"documentType"`
	Status       string     `json:"status"`
	Result       *Result    `json:"result,omitempty"`
	Metadata     *Metadata  `json:"metadata,omitempty"`
	ErrorCode    string     `json:"errorCode,omitempty"`
	ErrorMessage string     `json:"errorMessage,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
}
