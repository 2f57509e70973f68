// Package internal is the HTTP kernel of the MailBlaster API.
//
// Import "github.com/ragavan2104/mailblaster" instead; the root package re-exports
// the types handlers and middlewares are written against.
//
// # Core Types
//
//   - App: owns the chi router, global middleware, error rendering and the server lifecycle
//   - Context: request/response access plus JSON helpers; it is also a context.Context
//   - Router: the interface handlers use to declare routes and route groups
//   - Handler: implemented by types that declare routes
//   - HandlerFunc: a route handler that returns an error instead of writing one
//   - Middleware: wraps a HandlerFunc
//   - ErrorHandler: renders errors returned from handlers and middleware
//   - HTTPError: an error that carries the status code and client-facing message
//
// # Context as context.Context
//
// Context delegates Deadline, Done, Err and Value to the request context, so it can be
// handed straight to repositories and the mail relay:
//
//	func (h *History) show(c internal.Context) error {
//	    rec, err := h.store.GetByID(c, c.Param("id"))
//	    if err != nil {
//	        return err
//	    }
//	    return c.JSON(http.StatusOK, rec)
//	}
//
// # Application Structure
//
//	app := internal.New(
//	    internal.WithMiddleware(middlewares.RequestID(), middlewares.Recover()),
//	    internal.WithHandlers(authHandler, campaignHandler),
//	    internal.WithErrorHandler(handlers.ErrorHandler(true)),
//	    internal.WithHealthChecks(internal.WithReadinessCheck("db", db.Healthcheck(pool))),
//	)
//	err := app.Run(":3000", internal.Logger(log), internal.ShutdownHook(db.Shutdown(pool)))
//
// Handlers receive dependencies through their constructors, never through the context.
package internal
