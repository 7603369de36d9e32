package documents

import "errors"

var (
	// ErrNotFound indicates the document does not exist or is not visible to the user.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput indicates the upload request was malformed.
	ErrInvalidInput = errors.New("invalid input")
)
