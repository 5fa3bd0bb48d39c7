package router_helper

import (
	"net/http"
	"path"

	"github.com/julienschmidt/httprouter"
)

// RouteGroup registers routes on a router under a common path prefix.
type RouteGroup struct {
	router *httprouter.Router
	prefix string
}

func NewRouteGroup(router *httprouter.Router, prefix string) *RouteGroup {
	if prefix == "/" {
		prefix = ""
	}
	return &RouteGroup{router: router, prefix: prefix}
}

func (g *RouteGroup) Group(prefix string) *RouteGroup {
	return NewRouteGroup(g.router, g.path(prefix))
}

func (g *RouteGroup) GET(p string, h httprouter.Handle) {
	g.router.GET(g.path(p), h)
}

func (g *RouteGroup) HEAD(p string, h httprouter.Handle) {
	g.router.HEAD(g.path(p), h)
}

// Read registers h for both GET and HEAD.
func (g *RouteGroup) Read(p string, h httprouter.Handle) {
	g.GET(p, h)
	g.HEAD(p, h)
}

func (g *RouteGroup) Handler(method, p string, h http.Handler) {
	g.router.Handler(method, g.path(p), h)
}

func (g *RouteGroup) path(p string) string {
	if g.prefix == "" {
		return p
	}
	joined := path.Join(g.prefix, p)
	// path.Join drops a trailing slash that catch-all and root routes rely on
	if len(p) > 0 && p[len(p)-1] == '/' && joined[len(joined)-1] != '/' {
		joined += "/"
	}
	return joined
}
