package credentials

import "errors"

var (
	ErrNoCredentials = errors.New("credentials: no mail credentials configured")
	ErrIncomplete    = errors.New("credentials: username or password is empty")
	ErrLoadFailed    = errors.New("credentials: failed to load mail credentials")
)
