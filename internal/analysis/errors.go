package analysis

import "errors"

var (
	// ErrQuotaExceeded rejects a run before any paid call is made.
	ErrQuotaExceeded = errors.New("analysis quota exceeded")
	// ErrDocumentUnreadable rejects documents whose extracted text is too
	// short to analyze.
	ErrDocumentUnreadable = errors.New("document text unreadable")
	// ErrNotFound indicates a missing analysis record.
	ErrNotFound = errors.New("analysis not found")
)
