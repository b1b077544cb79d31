package router

import (
	"net/http"

	"github.com/erp/backoffice/internal/interfaces/http/handler"
	"github.com/erp/backoffice/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

const (
	defaultAPIVersion            = "v1"
	defaultMergePermissionHeader = "X-Merge-Permission"
	defaultMergeBodyLimit        = 1 << 20
)

// Handlers are the endpoint sets mounted under the API prefix
type Handlers struct {
	Reports *handler.ReportHandler
	System  *handler.SystemHandler
}

// Options scope middleware to the groups that need it. Report reads are
// plain GETs; only the assignee group takes a body or a merge grant.
type Options struct {
	APIVersion string
	// MergePermissionHeader is the gateway header read on the assignee group
	MergePermissionHeader string
	// MergeBodyLimit caps merge request bodies in bytes
	MergeBodyLimit int64
}

func (o Options) withDefaults() Options {
	if o.APIVersion == "" {
		o.APIVersion = defaultAPIVersion
	}
	if o.MergePermissionHeader == "" {
		o.MergePermissionHeader = defaultMergePermissionHeader
	}
	if o.MergeBodyLimit <= 0 {
		o.MergeBodyLimit = defaultMergeBodyLimit
	}
	return o
}

// Router mounts the back-office route groups on a gin engine
type Router struct {
	engine *gin.Engine
	opts   Options
	groups []*RouteGroup
}

// New builds the report, assignee and system groups. Nothing is mounted
// until Setup.
func New(engine *gin.Engine, h Handlers, opts Options) *Router {
	opts = opts.withDefaults()
	return &Router{
		engine: engine,
		opts:   opts,
		groups: []*RouteGroup{
			ReportRoutes(h.Reports),
			AssigneeRoutes(h.Reports).Use(
				middleware.MergePermission(opts.MergePermissionHeader),
				middleware.BodyLimit(opts.MergeBodyLimit),
			),
			SystemRoutes(h.System),
		},
	}
}

// Setup mounts every group under /api/<version> and returns what it mounted
func (r *Router) Setup() []RouteInfo {
	api := r.engine.Group("/api/" + r.opts.APIVersion)

	var mounted []RouteInfo
	for _, g := range r.groups {
		mounted = append(mounted, g.mount(api)...)
	}
	return mounted
}

// RouteInfo describes one mounted endpoint
type RouteInfo struct {
	Group  string
	Method string
	Path   string
	// Guarded is set when the group runs its own middleware
	Guarded bool
}

// RouteGroup is a named prefix with its routes and group-only middleware
type RouteGroup struct {
	name       string
	prefix     string
	middleware []gin.HandlerFunc
	routes     []route
}

type route struct {
	method  string
	path    string
	handler gin.HandlerFunc
}

// NewRouteGroup creates an empty group
func NewRouteGroup(name, prefix string) *RouteGroup {
	return &RouteGroup{name: name, prefix: prefix}
}

// Use adds middleware that runs for this group's routes only
func (g *RouteGroup) Use(middleware ...gin.HandlerFunc) *RouteGroup {
	g.middleware = append(g.middleware, middleware...)
	return g
}

func (g *RouteGroup) GET(path string, h gin.HandlerFunc) *RouteGroup {
	return g.handle(http.MethodGet, path, h)
}

func (g *RouteGroup) POST(path string, h gin.HandlerFunc) *RouteGroup {
	return g.handle(http.MethodPost, path, h)
}

func (g *RouteGroup) handle(method, path string, h gin.HandlerFunc) *RouteGroup {
	g.routes = append(g.routes, route{method: method, path: path, handler: h})
	return g
}

// Name returns the group name
func (g *RouteGroup) Name() string {
	return g.name
}

func (g *RouteGroup) mount(parent *gin.RouterGroup) []RouteInfo {
	group := parent.Group(g.prefix, g.middleware...)

	mounted := make([]RouteInfo, 0, len(g.routes))
	for _, rt := range g.routes {
		group.Handle(rt.method, rt.path, rt.handler)
		mounted = append(mounted, RouteInfo{
			Group:   g.name,
			Method:  rt.method,
			Path:    group.BasePath() + rt.path,
			Guarded: len(g.middleware) > 0,
		})
	}
	return mounted
}
