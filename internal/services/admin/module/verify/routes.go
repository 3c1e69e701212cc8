package verify

import (
	"net/http"

	routepath "github.com/dronesimulator/admin/internal/services/admin/routepath"
)

// Service defines the public email verification handlers.
type Service interface {
	HandleEmailVerified(w http.ResponseWriter, r *http.Request)
	HandleVerifyEmail(w http.ResponseWriter, r *http.Request)
}

// RegisterRoutes wires verification routes into the provided mux.
func RegisterRoutes(mux *http.ServeMux, service Service) {
	if mux == nil || service == nil {
		return
	}
	mux.HandleFunc(routepath.EmailVerified, service.HandleEmailVerified)
	mux.HandleFunc(routepath.VerifyEmail, service.HandleVerifyEmail)
}
