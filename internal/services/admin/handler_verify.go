package admin

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dronesimulator/admin/internal/services/admin/integration/backend"
	"github.com/dronesimulator/admin/internal/services/admin/templates"
)

// HandleEmailVerified renders the static verification confirmation.
func (h *Handler) HandleEmailVerified(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	loc, tag := h.localizer(w, r)
	page := h.pageContext(w, r, loc, tag)
	h.renderPage(w, r, http.StatusOK, page, templates.T(loc, "verified.title"), templates.EmailVerified(page, h.appLoginURL))
}

// HandleVerifyEmail verifies the email and token of a verification link and
// renders the outcome. A link missing either parameter makes no call.
func (h *Handler) HandleVerifyEmail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	loc, tag := h.localizer(w, r)
	page := h.pageContext(w, r, loc, tag)

	email := strings.TrimSpace(r.URL.Query().Get("email"))
	token := strings.TrimSpace(r.URL.Query().Get("token"))
	var message string
	if email == "" || token == "" {
		message = templates.T(loc, "verify.missing")
	} else {
		resp, err := h.verifier.VerifyEmail(r.Context(), email, token)
		if err != nil {
			var statusErr *backend.StatusError
			if errors.As(err, &statusErr) {
				logf(r, "verify email failed status=%d", statusErr.StatusCode)
			} else {
				logf(r, "verify email error: %v", err)
			}
		}
		message = strings.TrimSpace(resp.Message)
		if message == "" {
			message = templates.T(loc, "verify.failed")
		}
	}
	h.renderPage(w, r, http.StatusOK, page, templates.T(loc, "verify.title"), templates.VerifyResult(page, message))
}
