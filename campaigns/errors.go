package campaigns

import "errors"

var (
	ErrMessageRequired     = errors.New("campaigns: message is required")
	ErrRecipientsRequired  = errors.New("campaigns: email list is required")
	ErrSingleFieldsMissing = errors.New("campaigns: message and email are required")
	ErrRelayUnavailable    = errors.New("campaigns: email service not available")
	ErrCountMismatch       = errors.New("campaigns: outcome counts do not add up")
	ErrRecordNotFound      = errors.New("campaigns: email record not found")
	ErrStorageUnavailable  = errors.New("campaigns: database unavailable")
	ErrSaveFailed          = errors.New("campaigns: failed to save campaign record")
	ErrComposeFailed       = errors.New("campaigns: failed to compose message")
)
