package accounts

import "errors"

var (
	ErrMissingFields      = errors.New("accounts: username, password, and email are required")
	ErrMissingLogin       = errors.New("accounts: username and password are required")
	ErrUsernameTaken      = errors.New("accounts: admin already exists")
	ErrInvalidCredentials = errors.New("accounts: invalid credentials")
	ErrAdminNotFound      = errors.New("accounts: admin not found")
	ErrStorageUnavailable = errors.New("accounts: database unavailable")
	ErrHashPassword       = errors.New("accounts: failed to hash password")
	ErrIssueToken         = errors.New("accounts: failed to issue token")
)
