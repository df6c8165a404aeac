package api

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// Route binds a handler, with optional route-local middlewares, to a method and path.
type Route struct {
	Path        string
	Method      string
	Handler     http.Handler
	Middlewares []func(http.Handler) http.Handler
}

// Router is a thin wrapper over httprouter that registers Route lists.
type Router struct {
	router *httprouter.Router
}

type RouterOption func(*Router)

// WithRoutes registers routes when the router is built.
func WithRoutes(routes ...Route) RouterOption {
	return func(r *Router) {
		r.AddRoutes(routes...)
	}
}

func NewRouter(opts ...RouterOption) *Router {
	rt := &Router{router: httprouter.New()}
	rt.router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		WriteError(w, ErrNotFound, "route not found")
	})
	rt.router.MethodNotAllowed = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		WriteError(w, ErrMethodNotAllowed, "method not allowed")
	})
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}

// AddRoutes applies route middlewares last to first, so the first one listed runs outermost.
func (r *Router) AddRoutes(routes ...Route) {
	for _, route := range routes {
		h := route.Handler
		for i := len(route.Middlewares) - 1; i >= 0; i-- {
			h = route.Middlewares[i](h)
		}
		r.router.Handler(route.Method, route.Path, h)
	}
}
