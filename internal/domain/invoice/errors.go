package invoice

import "errors"

var (
	// ErrInvalidStatus indicates a status outside the storable set.
	ErrInvalidStatus = errors.New("invalid invoice status")
	// ErrInvalidMonth indicates a month outside 0-11.
	ErrInvalidMonth = errors.New("month must be between 0 and 11")
)
