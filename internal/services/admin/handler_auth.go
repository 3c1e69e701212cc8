package admin

import (
	"net/http"
	"slices"
	"strings"

	"github.com/dronesimulator/admin/internal/services/admin/authstate"
	"github.com/dronesimulator/admin/internal/services/admin/platform/httpx"
	"github.com/dronesimulator/admin/internal/services/admin/routepath"
	"github.com/dronesimulator/admin/internal/services/admin/storage"
	"github.com/dronesimulator/admin/internal/services/admin/templates"
)

// loginRoles are the roles offered on the login form; the first is the default.
var loginRoles = []string{"admin", "master"}

// HandleLogin renders the login form and submits credentials.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	_, provider := sessionScope(r)
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		if provider.IsAuthenticated() {
			httpx.WriteRedirect(w, r, routepath.Downloads)
			return
		}
		h.renderLogin(w, r, http.StatusOK, templates.LoginView{Role: loginRoles[0]})
	case http.MethodPost:
		h.submitLogin(w, r)
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

func (h *Handler) submitLogin(w http.ResponseWriter, r *http.Request) {
	sessionID, provider := sessionScope(r)
	if err := r.ParseForm(); err != nil {
		h.renderLogin(w, r, http.StatusBadRequest, templates.LoginView{Role: loginRoles[0], Failed: true})
		return
	}
	email := strings.TrimSpace(r.PostForm.Get("email"))
	password := r.PostForm.Get("password")
	role := strings.TrimSpace(r.PostForm.Get("role"))
	if !slices.Contains(loginRoles, role) {
		role = loginRoles[0]
	}
	remember := r.PostForm.Get("remember") != ""

	if !provider.Login(r.Context(), email, password, role, authstate.RememberDevice(remember)) {
		h.renderLogin(w, r, http.StatusUnauthorized, templates.LoginView{
			Email:    email,
			Role:     role,
			Remember: remember,
			Failed:   true,
		})
		return
	}
	// A new login fetches its own record set on the next visit.
	h.downloads.Forget(sessionID)
	if err := h.rotateSession(w, r, sessionID); err != nil {
		logf(r, "admin login rotate session: %v", err)
		h.renderLogin(w, r, http.StatusInternalServerError, templates.LoginView{
			Email:    email,
			Role:     role,
			Remember: remember,
			Failed:   true,
		})
		return
	}
	logf(r, "admin login role=%s", role)
	httpx.WriteRedirect(w, r, routepath.Downloads)
}

// rotateSession moves the freshly stored login onto a new session owner so
// the cookie carried before login no longer reaches it. On failure neither
// owner keeps the login.
func (h *Handler) rotateSession(w http.ResponseWriter, r *http.Request, sessionID string) error {
	owners := []string{sessionID}
	rotated, err := h.cookies.Rotate(w, r)
	if err == nil {
		owners = append(owners, rotated)
		err = storage.Move(r.Context(), h.sessions, sessionID, rotated, storage.AuthKeys...)
	}
	if err != nil {
		for _, owner := range owners {
			if cerr := h.sessions.RemoveItems(r.Context(), owner, storage.AuthKeys...); cerr != nil {
				logf(r, "admin login clear session: %v", cerr)
			}
		}
	}
	return err
}

func (h *Handler) renderLogin(w http.ResponseWriter, r *http.Request, status int, view templates.LoginView) {
	loc, tag := h.localizer(w, r)
	page := h.pageContext(w, r, loc, tag)
	view.Roles = loginRoles
	h.renderPage(w, r, status, page, templates.T(loc, "login.title"), templates.LoginForm(page, view))
}

// HandleLogout clears the stored login and returns to the login form.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	sessionID, provider := sessionScope(r)
	provider.Logout(r.Context())
	h.downloads.Forget(sessionID)
	httpx.WriteRedirect(w, r, routepath.Login)
}
