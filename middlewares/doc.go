// Package middlewares provides the HTTP middleware used by the MailBlaster API.
//
// Global middleware, in the order the server installs it:
//
//	internal.WithMiddleware(
//	    middlewares.CORS(middlewares.CORSFromOrigins(cfg.CORSOrigin)...),
//	    middlewares.RequestID(),
//	    middlewares.AccessLog("/health/live", "/health/ready", "/metrics"),
//	    middlewares.Recover(),
//	)
//
// CORS runs first so preflight requests are answered before anything else.
// RequestID must precede AccessLog so every record carries request_id.
//
// Route middleware:
//
//	r.GET("/me", h.me, middlewares.JWT[accounts.Claims](tokens))
//	r.GET("/dashboard-stats", h.stats, auth, middlewares.Timeout(30*time.Second))
//
// JWT answers 401 "Access token required" when no bearer token is sent and
// 403 "Invalid token" when the token fails verification.
//
// Log records pick up request-scoped values through extractors:
//
//	internal.WithLogger("api", middlewares.RequestIDExtractor(), middlewares.AdminExtractor())
package middlewares
