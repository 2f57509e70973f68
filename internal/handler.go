package internal

// Handler declares routes on a router.
//
// Example:
//
//	type AuthHandler struct {
//	    svc *accounts.Service
//	}
//
//	func (h *AuthHandler) Routes(r mailblaster.Router) {
//	    r.POST("/register", h.register)
//	    r.POST("/login", h.login)
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerFunc is the signature for route handlers.
// Returning a non-nil error hands it to the app's ErrorHandler.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc to add cross-cutting concerns.
// Middleware can inspect the request, short-circuit by returning an error,
// or decorate the response.
//
// Example:
//
//	func RequireJSON(next mailblaster.HandlerFunc) mailblaster.HandlerFunc {
//	    return func(c mailblaster.Context) error {
//	        if !strings.HasPrefix(c.Header("Content-Type"), "application/json") {
//	            return mailblaster.ErrBadRequest("expected a JSON body")
//	        }
//	        return next(c)
//	    }
//	}
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler renders errors returned from handlers.
type ErrorHandler func(Context, error) error
