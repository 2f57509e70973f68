// Package handlers exposes the MailBlaster HTTP API on top of the kernel in
// internal. Each handler depends on a narrow interface so it can be tested
// without a database or mail relay.
//
// ErrorHandler translates the domain sentinels of accounts, campaigns, and
// relay into HTTP statuses and the {error, message, details, requestId} body.
package handlers
