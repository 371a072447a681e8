package router

import (
	"context"
	"net/http"
	"time"

	"github.com/moemoe-lab/forum/pkg/errorx"
	"github.com/moemoe-lab/forum/pkg/xcontext"
	"github.com/rs/cors"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before or after the handler. A returned error stops the
// chain and is written as the response.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc runs once the response is written, whatever happened before.
type CloserFunc func(ctx context.Context)

type Router struct {
	mux  *http.ServeMux
	root context.Context

	befores []MiddlewareFunc
	afters  []MiddlewareFunc
	closers *[]CloserFunc
}

// New returns a router whose requests inherit the values (configs, logger,
// database...) of ctx.
func New(ctx context.Context) *Router {
	return &Router{
		mux:     http.NewServeMux(),
		root:    ctx,
		closers: &[]CloserFunc{},
	}
}

// Branch returns a router sharing the routes and closers of r. Middlewares
// added to the branch do not affect r.
func (r *Router) Branch() *Router {
	return &Router{
		mux:     r.mux,
		root:    r.root,
		befores: append([]MiddlewareFunc(nil), r.befores...),
		afters:  append([]MiddlewareFunc(nil), r.afters...),
		closers: r.closers,
	}
}

func (r *Router) Before(middleware MiddlewareFunc) {
	r.befores = append(r.befores, middleware)
}

func (r *Router) After(middleware MiddlewareFunc) {
	r.afters = append(r.afters, middleware)
}

func (r *Router) AddCloser(closer CloserFunc) {
	*r.closers = append(*r.closers, closer)
}

// Handle registers a plain http.Handler, bypassing middlewares.
func (r *Router) Handle(pattern string, handler http.Handler) {
	r.mux.Handle(pattern, handler)
}

func (r *Router) Handler() http.Handler {
	allowedOrigins := xcontext.Configs(r.root).ApiServer.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	return cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r.mux)
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	route(r, http.MethodGet, pattern, handler)
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	route(r, http.MethodPost, pattern, handler)
}

func PUT[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	route(r, http.MethodPut, pattern, handler)
}

func route[Request, Response any](
	r *Router, method, pattern string, handler HandlerFunc[Request, Response],
) {
	befores := append([]MiddlewareFunc(nil), r.befores...)
	afters := append([]MiddlewareFunc(nil), r.afters...)

	r.mux.HandleFunc(method+" "+pattern, func(w http.ResponseWriter, req *http.Request) {
		ctx := context.Context(&requestContext{Context: req.Context(), root: r.root})
		ctx = xcontext.WithHTTPRequest(ctx, req)
		ctx = xcontext.WithHTTPWriter(ctx, w)
		ctx = xcontext.WithStartTime(ctx, time.Now())

		defer func() {
			writeResponse(ctx)
			for _, closer := range *r.closers {
				closer(ctx)
			}
		}()

		var err error
		ctx, err = runMiddlewares(ctx, befores)
		if err != nil {
			ctx = xcontext.WithError(ctx, err)
			return
		}

		var request Request
		if err := bind(req, &request); err != nil {
			xcontext.Logger(ctx).Debugf("Cannot bind the request: %v", err)
			ctx = xcontext.WithError(ctx, errorx.New(errorx.BadRequest, "Invalid request"))
			return
		}

		resp, err := handler(ctx, &request)
		if err != nil {
			ctx = xcontext.WithError(ctx, err)
			return
		}

		ctx = xcontext.WithResponse(ctx, resp)
		ctx, err = runMiddlewares(ctx, afters)
		if err != nil {
			ctx = xcontext.WithError(ctx, err)
		}
	})
}

func runMiddlewares(ctx context.Context, middlewares []MiddlewareFunc) (context.Context, error) {
	for _, middleware := range middlewares {
		var err error
		ctx, err = middleware(ctx)
		if err != nil {
			return ctx, err
		}
	}

	return ctx, nil
}

// requestContext carries the cancellation of the HTTP request and looks up
// values in the request first, then in the root context of the router.
type requestContext struct {
	context.Context
	root context.Context
}

func (c *requestContext) Value(key any) any {
	if v := c.Context.Value(key); v != nil {
		return v
	}

	return c.root.Value(key)
}
