package admin

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/dronesimulator/admin/internal/platform/telemetry/metrics"
	"github.com/dronesimulator/admin/internal/services/admin/authstate"
	"github.com/dronesimulator/admin/internal/services/admin/downloads"
	"github.com/dronesimulator/admin/internal/services/admin/i18n"
	"github.com/dronesimulator/admin/internal/services/admin/integration/backend"
	authmodule "github.com/dronesimulator/admin/internal/services/admin/module/auth"
	downloadsmodule "github.com/dronesimulator/admin/internal/services/admin/module/downloads"
	verifymodule "github.com/dronesimulator/admin/internal/services/admin/module/verify"
	"github.com/dronesimulator/admin/internal/services/admin/platform/flash"
	"github.com/dronesimulator/admin/internal/services/admin/platform/httpx"
	"github.com/dronesimulator/admin/internal/services/admin/platform/requestmeta"
	"github.com/dronesimulator/admin/internal/services/admin/platform/sessioncookie"
	"github.com/dronesimulator/admin/internal/services/admin/routepath"
	"github.com/dronesimulator/admin/internal/services/admin/static"
	"github.com/dronesimulator/admin/internal/services/admin/storage"
	"github.com/dronesimulator/admin/internal/services/admin/templates"
	"github.com/dronesimulator/admin/internal/services/admin/transport/httpmux"
)

// DefaultAppLoginURL is the product login linked from the verified page.
const DefaultAppLoginURL = "https://dronesimulator.in/auth"

// Verifier performs the email verification call.
type Verifier interface {
	VerifyEmail(ctx context.Context, email, token string) (backend.VerifyResponse, error)
}

// Dependencies wires the handler to its collaborators.
type Dependencies struct {
	Authenticator authstate.Authenticator
	Verifier      Verifier
	Downloads     *downloads.Service
	// SessionStore backs the browser-session scope. Required.
	SessionStore storage.Store
	// DeviceStore backs the remember-this-device scope. Optional.
	DeviceStore  storage.Store
	Cookies      *sessioncookie.Codec
	SchemePolicy requestmeta.SchemePolicy
	AppLoginURL  string
	// Location is the display time zone; nil means UTC.
	Location *time.Location
}

// Handler routes admin dashboard requests.
type Handler struct {
	auth        authstate.Authenticator
	verifier    Verifier
	downloads   *downloads.Service
	sessions    storage.Store
	devices     storage.Store
	cookies     *sessioncookie.Codec
	policy      requestmeta.SchemePolicy
	appLoginURL string
	location    *time.Location
	now         func() time.Time
}

// NewHandler builds the HTTP handler for the admin server.
func NewHandler(deps Dependencies) (http.Handler, error) {
	h, err := newHandler(deps)
	if err != nil {
		return nil, err
	}
	return h.routes(), nil
}

func newHandler(deps Dependencies) (*Handler, error) {
	switch {
	case deps.Authenticator == nil:
		return nil, errors.New("authenticator is required")
	case deps.Verifier == nil:
		return nil, errors.New("verifier is required")
	case deps.Downloads == nil:
		return nil, errors.New("downloads service is required")
	case deps.SessionStore == nil:
		return nil, errors.New("session store is required")
	case deps.Cookies == nil:
		return nil, errors.New("cookie codec is required")
	}
	appLoginURL := deps.AppLoginURL
	if appLoginURL == "" {
		appLoginURL = DefaultAppLoginURL
	}
	location := deps.Location
	if location == nil {
		location = time.UTC
	}
	return &Handler{
		auth:        deps.Authenticator,
		verifier:    deps.Verifier,
		downloads:   deps.Downloads,
		sessions:    deps.SessionStore,
		devices:     deps.DeviceStore,
		cookies:     deps.Cookies,
		policy:      deps.SchemePolicy,
		appLoginURL: appLoginURL,
		location:    location,
		now:         time.Now,
	}, nil
}

// routes wires the HTTP routes for the admin handler.
func (h *Handler) routes() http.Handler {
	rootMux := http.NewServeMux()
	httpmux.MountStatic(rootMux, static.FS(), withStaticCache)
	httpmux.MountMetrics(rootMux, metrics.Handler())
	verifymodule.RegisterRoutes(rootMux, h)

	protected := http.NewServeMux()
	downloadsmodule.RegisterRoutes(protected, h)
	protected.HandleFunc(routepath.Root, h.handleRoot)

	sessionMux := http.NewServeMux()
	authmodule.RegisterRoutes(sessionMux, h)
	sessionMux.Handle(routepath.Root, h.requireAuth(protected))
	httpmux.MountAdminRoutes(rootMux, h.withSession(sessionMux))

	return httpx.Chain(rootMux,
		httpx.RequestID(),
		httpx.RecoverPanic(),
		httpx.SameOriginWrites(),
	)
}

func withStaticCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != routepath.Root {
		h.renderError(w, r, http.StatusNotFound, "error.not_found")
		return
	}
	httpx.WriteRedirect(w, r, routepath.Downloads)
}

func (h *Handler) localizer(w http.ResponseWriter, r *http.Request) (*message.Printer, language.Tag) {
	tag, persist := i18n.ResolveTag(r)
	if persist {
		i18n.SetLanguageCookie(w, tag)
	}
	return i18n.Printer(tag), tag
}

// pageContext builds layout context and consumes any pending flash notice.
func (h *Handler) pageContext(w http.ResponseWriter, r *http.Request, loc *message.Printer, tag language.Tag) templates.PageContext {
	query := r.URL.Query()
	query.Del(i18n.LangParam)
	page := templates.PageContext{
		Lang:         tag.String(),
		Loc:          loc,
		CurrentPath:  r.URL.Path,
		CurrentQuery: query.Encode(),
	}
	if provider, ok := authstate.FromContext(r.Context()); ok {
		if user := provider.User(); user != nil {
			page.User = &templates.UserView{
				Name:   user.Name,
				Email:  user.Email,
				Role:   user.Role,
				Avatar: user.Avatar,
			}
		}
	}
	if notice, ok := flash.ReadAndClear(w, r, h.policy); ok {
		text := templates.T(loc, notice.Key)
		if notice.Arg != "" {
			text = templates.T(loc, notice.Key, notice.Arg)
		}
		page.Notice = &templates.NoticeView{Error: notice.Kind == flash.KindError, Text: text}
	}
	return page
}

// renderPage writes body as a full document, or as a fragment for HTMX.
func (h *Handler) renderPage(w http.ResponseWriter, r *http.Request, status int, page templates.PageContext, title string, body templ.Component) {
	component := templates.Page(page, title, body, httpx.IsHTMXRequest(r))
	templ.Handler(component, templ.WithStatus(status)).ServeHTTP(w, r)
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, status int, key string) {
	loc, tag := h.localizer(w, r)
	page := h.pageContext(w, r, loc, tag)
	h.renderPage(w, r, status, page, templates.T(loc, "error.title"), templates.ErrorContent(page, templates.T(loc, key)))
}

func (h *Handler) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		provider, ok := authstate.FromContext(r.Context())
		if !ok || !provider.IsAuthenticated() {
			httpx.WriteRedirect(w, r, routepath.Login)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	for _, method := range allowed {
		w.Header().Add("Allow", method)
	}
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}

// logf prefixes a log line with the request id.
func logf(r *http.Request, format string, args ...any) {
	log.Printf("request_id=%s "+format, append([]any{httpx.RequestIDOf(r)}, args...)...)
}
