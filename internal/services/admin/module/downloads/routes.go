package downloads

import (
	"net/http"

	"github.com/dronesimulator/admin/internal/services/admin/platform/httpx"
	routepath "github.com/dronesimulator/admin/internal/services/admin/routepath"
)

// Service defines downloads route handlers consumed by this route module.
type Service interface {
	HandleDownloadsPage(w http.ResponseWriter, r *http.Request)
	HandleDownloadsRefresh(w http.ResponseWriter, r *http.Request)
	HandleDownloadDetail(w http.ResponseWriter, r *http.Request)
	HandleDownloadDelete(w http.ResponseWriter, r *http.Request)
	HandleDownloadsExport(w http.ResponseWriter, r *http.Request)
}

// RegisterRoutes wires downloads routes into the provided mux.
func RegisterRoutes(mux *http.ServeMux, service Service) {
	if mux == nil || service == nil {
		return
	}
	mux.HandleFunc(routepath.Downloads, service.HandleDownloadsPage)
	mux.HandleFunc(routepath.DownloadsRefresh, service.HandleDownloadsRefresh)
	mux.HandleFunc(routepath.DownloadsDetail, service.HandleDownloadDetail)
	mux.HandleFunc(routepath.DownloadsDelete, service.HandleDownloadDelete)
	mux.HandleFunc(routepath.DownloadsExport, service.HandleDownloadsExport)
	mux.HandleFunc(routepath.Downloads+"/", func(w http.ResponseWriter, r *http.Request) {
		if httpx.RedirectTrailingSlash(w, r) {
			return
		}
		http.NotFound(w, r)
	})
}
