// Package httpmux assembles the admin root mux from its mounted parts.
package httpmux

import (
	"io/fs"
	"net/http"

	routepath "github.com/dronesimulator/admin/internal/services/admin/routepath"
)

// MountStatic wires static asset serving into the root mux.
func MountStatic(rootMux *http.ServeMux, staticFS fs.FS, withStaticMime func(http.Handler) http.Handler) {
	if rootMux == nil || staticFS == nil {
		return
	}
	staticHandler := http.StripPrefix(routepath.StaticPrefix, http.FileServer(http.FS(staticFS)))
	if withStaticMime != nil {
		staticHandler = withStaticMime(staticHandler)
	}
	rootMux.Handle(routepath.StaticPrefix, staticHandler)
}

// MountMetrics exposes the Prometheus scrape endpoint.
func MountMetrics(rootMux *http.ServeMux, metricsHandler http.Handler) {
	if rootMux == nil || metricsHandler == nil {
		return
	}
	rootMux.Handle(routepath.Metrics, metricsHandler)
}

// MountAdminRoutes mounts session-backed admin routes under the root path.
func MountAdminRoutes(rootMux *http.ServeMux, adminHandler http.Handler) {
	if rootMux == nil || adminHandler == nil {
		return
	}
	rootMux.Handle(routepath.Root, adminHandler)
}
