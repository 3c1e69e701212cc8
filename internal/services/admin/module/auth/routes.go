package auth

import (
	"net/http"

	routepath "github.com/dronesimulator/admin/internal/services/admin/routepath"
)

// Service defines login and logout handlers.
type Service interface {
	HandleLogin(w http.ResponseWriter, r *http.Request)
	HandleLogout(w http.ResponseWriter, r *http.Request)
}

// RegisterRoutes wires auth routes into the provided mux.
func RegisterRoutes(mux *http.ServeMux, service Service) {
	if mux == nil || service == nil {
		return
	}
	mux.HandleFunc(routepath.Login, service.HandleLogin)
	mux.HandleFunc(routepath.Logout, service.HandleLogout)
}
