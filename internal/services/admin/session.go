package admin

import (
	"net/http"

	"github.com/dronesimulator/admin/internal/platform/requestctx"
	"github.com/dronesimulator/admin/internal/services/admin/authstate"
	"github.com/dronesimulator/admin/internal/services/admin/storage"
)

// withSession resolves the session and device scopes from their cookies,
// hydrates an auth provider and attaches both to the request context.
func (h *Handler) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := h.cookies.Session(w, r)
		if err != nil {
			logf(r, "admin session cookie: %v", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		var persistent storage.Scope
		if h.devices != nil {
			deviceID, err := h.cookies.Device(w, r)
			if err != nil {
				logf(r, "admin device cookie: %v", err)
			} else {
				persistent = storage.Bind(h.devices, deviceID)
			}
		}

		provider := authstate.NewProvider(h.auth, storage.Bind(h.sessions, sessionID), persistent)
		provider.Hydrate(r.Context())

		ctx := requestctx.WithSessionID(r.Context(), sessionID)
		ctx = authstate.WithProvider(ctx, provider)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionScope returns the request's session ID and auth provider.
func sessionScope(r *http.Request) (string, *authstate.Provider) {
	return requestctx.SessionIDFromContext(r.Context()), authstate.MustFromContext(r.Context())
}
