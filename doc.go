// Package mailblaster is the HTTP surface of MailBlaster Pro, a bulk-email
// service for a small team of administrators.
//
// The package re-exports the request kernel from internal (App, Router,
// Context, Middleware, options) and assembles the full API with NewAPI.
//
// # Quick Start
//
//	app := mailblaster.NewAPI(mailblaster.APIConfig{
//	    Logger:      log,
//	    Environment: cfg.AppEnv,
//	    CORSOrigin:  cfg.CORSOrigin,
//	    Development: cfg.Development(),
//	}, mailblaster.Services{
//	    Accounts:   accountsSvc,
//	    Dispatcher: dispatcher,
//	    History:    store,
//	    Tokens:     tokens,
//	})
//
//	err := app.Run(cfg.Addr(),
//	    mailblaster.Logger(log),
//	    mailblaster.StartupHook(mailRelay.Init),
//	    mailblaster.ShutdownHook(db.Shutdown(pool)),
//	)
//
// # Handlers
//
// Handlers implement [Handler] and declare their routes:
//
//	type History struct{ store HistoryStore }
//
//	func (h *History) Routes(r mailblaster.Router) {
//	    r.GET("/email-history", h.list)
//	}
//
// A handler returns an error instead of writing one. The app's
// [ErrorHandler] turns it into a JSON body.
//
// # Lifecycle
//
// Run executes startup hooks before listening and shutdown hooks after the
// server has drained in-flight requests. SIGINT and SIGTERM trigger shutdown.
package mailblaster
