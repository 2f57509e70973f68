// Package logger builds the service's slog loggers.
//
// Records are written as JSON to stdout. A [LogHandlerDecorator] enriches each
// record with request-scoped attributes produced by [ContextExtractor] funcs,
// such as the request id and the authenticated admin:
//
//	log := logger.NewWithSentry(cfg.Sentry,
//	    middlewares.RequestIDExtractor(),
//	    middlewares.AdminExtractor(),
//	)
//
// When a Sentry DSN is configured, [NewWithSentry] fans records out to Sentry
// as well. Errors become issues; warnings are kept as searchable logs.
package logger
