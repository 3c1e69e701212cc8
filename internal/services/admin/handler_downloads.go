package admin

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/dronesimulator/admin/internal/platform/telemetry/metrics"
	"github.com/dronesimulator/admin/internal/services/admin/authstate"
	"github.com/dronesimulator/admin/internal/services/admin/downloads"
	"github.com/dronesimulator/admin/internal/services/admin/integration/backend"
	apperrors "github.com/dronesimulator/admin/internal/services/admin/platform/errors"
	"github.com/dronesimulator/admin/internal/services/admin/platform/flash"
	"github.com/dronesimulator/admin/internal/services/admin/platform/httpx"
	"github.com/dronesimulator/admin/internal/services/admin/routepath"
	"github.com/dronesimulator/admin/internal/services/admin/storage"
	"github.com/dronesimulator/admin/internal/services/admin/templates"
)

// HandleDownloadsPage renders the filtered downloads table. The first visit
// of a session fetches the record set.
func (h *Handler) HandleDownloadsPage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	sessionID, provider := sessionScope(r)
	if !h.downloads.Loaded(sessionID) {
		h.loadDownloads(r, sessionID, provider)
	}
	h.renderDownloads(w, r, nil)
}

// HandleDownloadsRefresh refetches the record set and returns to the view.
func (h *Handler) HandleDownloadsRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	sessionID, provider := sessionScope(r)
	h.loadDownloads(r, sessionID, provider)
	httpx.WriteRedirect(w, r, routepath.DownloadsWithQuery(downloads.ParseCriteria(r.URL.Query()).Query()))
}

// HandleDownloadDetail renders the detail dialog over the table.
func (h *Handler) HandleDownloadDetail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	sessionID, _ := sessionScope(r)
	email := strings.TrimSpace(r.URL.Query().Get(routepath.EmailParam))
	criteria := downloads.ParseCriteria(r.URL.Query())

	h.renderDownloads(w, r, func(page templates.PageContext, layout string) templ.Component {
		view := templates.DetailView{
			Email:    email,
			CloseURL: routepath.DownloadsWithQuery(criteria.Query()),
		}
		if record, ok := h.downloads.Find(sessionID, email); ok {
			view.Found = true
			view.Name = record.Name
			view.Phone = record.Phone
			view.Location = record.Location()
			view.Purpose = record.PurposeOfUse
			view.Count = record.DownloadCount
			view.CreatedOn = downloads.FormatTimestamp(record.CreatedAt, layout, h.location)
			view.History = make([]string, 0, len(record.DownloadHistory))
			for _, ts := range record.DownloadHistory {
				view.History = append(view.History, downloads.FormatTimestamp(ts, layout, h.location))
			}
		}
		return templates.DetailDialog(page, view)
	})
}

// HandleDownloadDelete asks for confirmation on GET and deletes on POST.
func (h *Handler) HandleDownloadDelete(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		email := strings.TrimSpace(r.URL.Query().Get(routepath.EmailParam))
		criteria := downloads.ParseCriteria(r.URL.Query())
		h.renderDownloads(w, r, func(page templates.PageContext, _ string) templ.Component {
			return templates.DeleteConfirm(page, templates.DeleteConfirmView{
				Email:     email,
				ActionURL: routepath.DownloadDelete(email, criteria.Query()),
				CancelURL: routepath.DownloadsWithQuery(criteria.Query()),
			})
		})
	case http.MethodPost:
		h.submitDelete(w, r)
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

func (h *Handler) submitDelete(w http.ResponseWriter, r *http.Request) {
	sessionID, provider := sessionScope(r)
	email := strings.TrimSpace(r.PostFormValue(routepath.EmailParam))
	if email == "" {
		email = strings.TrimSpace(r.URL.Query().Get(routepath.EmailParam))
	}
	back := routepath.DownloadsWithQuery(downloads.ParseCriteria(r.URL.Query()).Query())
	if email == "" {
		httpx.WriteError(w, apperrors.EK(apperrors.KindInvalidInput, "delete.failed", "email is required"))
		return
	}

	token, _, err := provider.Session().Get(r.Context(), storage.KeyToken)
	if err != nil {
		logf(r, "admin delete read token: %v", err)
	}
	if err := h.downloads.Delete(r.Context(), sessionID, token, email); err != nil {
		var statusErr *backend.StatusError
		if errors.As(err, &statusErr) {
			logf(r, "admin delete failed email=%s status=%d body=%q", email, statusErr.StatusCode, statusErr.Body)
		} else {
			logf(r, "admin delete failed email=%s: %v", email, err)
		}
		flash.Write(w, r, flash.Error("delete.failed"), h.policy)
		httpx.WriteRedirect(w, r, back)
		return
	}
	logf(r, "admin delete email=%s", email)
	flash.Write(w, r, flash.Success("delete.done", email), h.policy)
	httpx.WriteRedirect(w, r, back)
}

// HandleDownloadsExport streams the filtered records as a CSV attachment.
func (h *Handler) HandleDownloadsExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	sessionID, _ := sessionScope(r)
	_, tag := h.localizer(w, r)
	criteria := downloads.ParseCriteria(r.URL.Query())
	records, err := downloads.Filter(h.downloads.Records(sessionID), criteria, h.now(), h.location)
	if err != nil {
		httpx.WriteError(w, apperrors.EK(apperrors.KindInvalidInput, "downloads.expression_invalid", err.Error()))
		return
	}

	var buf bytes.Buffer
	if err := downloads.WriteCSV(&buf, records, downloads.DateTimeLayout(tag), h.location); err != nil {
		logf(r, "admin export: %v", err)
		httpx.WriteError(w, err)
		return
	}
	metrics.ObserveExport(len(records))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", downloads.ExportFilename))
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) loadDownloads(r *http.Request, sessionID string, provider *authstate.Provider) {
	adminEmail := sessionValue(r.Context(), provider, storage.KeyEmail)
	records := h.downloads.Load(r.Context(), sessionID, adminEmail)
	logf(r, "admin downloads loaded records=%d", len(records))
}

func sessionValue(ctx context.Context, provider *authstate.Provider, key string) string {
	value, _, err := provider.Session().Get(ctx, key)
	if err != nil {
		return ""
	}
	return value
}

type dialogFunc func(page templates.PageContext, layout string) templ.Component

// renderDownloads renders the table for the request's criteria, optionally
// with a dialog over it.
func (h *Handler) renderDownloads(w http.ResponseWriter, r *http.Request, dialog dialogFunc) {
	sessionID, _ := sessionScope(r)
	loc, tag := h.localizer(w, r)
	page := h.pageContext(w, r, loc, tag)
	layout := downloads.DateTimeLayout(tag)
	criteria := downloads.ParseCriteria(r.URL.Query())

	view := h.downloadsView(loc, tag, criteria, h.downloads.Records(sessionID))
	if dialog != nil {
		view.Dialog = dialog(page, layout)
	}
	h.renderPage(w, r, http.StatusOK, page, templates.T(loc, "downloads.title"), templates.DownloadsContent(page, view))
}

func (h *Handler) downloadsView(loc *message.Printer, tag language.Tag, criteria downloads.Criteria, records []downloads.Record) templates.DownloadsView {
	layout := downloads.DateTimeLayout(tag)
	view := templates.DownloadsView{
		Quick:      string(criteria.Quick),
		From:       criteria.From,
		To:         criteria.To,
		Expression: criteria.Expression,
		ClearURL:   routepath.Downloads,
		ExportURL:  routepath.DownloadsExportWithQuery(criteria.Query()),
		RefreshURL: routepath.DownloadsRefreshWithQuery(criteria.Query()),
	}
	for _, quick := range downloads.QuickFilters {
		view.QuickFilters = append(view.QuickFilters, templates.QuickFilterOption{
			Key:    string(quick),
			Label:  templates.T(loc, "downloads.quick."+string(quick)),
			URL:    routepath.DownloadsWithQuery(criteria.ToggleQuick(quick).Query()),
			Active: criteria.Quick == quick,
		})
	}

	filtered, err := downloads.Filter(records, criteria, h.now(), h.location)
	if err != nil {
		view.ExpressionError = err.Error()
		dateOnly := criteria
		dateOnly.Expression = ""
		if filtered, err = downloads.Filter(records, dateOnly, h.now(), h.location); err != nil {
			filtered = records
		}
	}

	view.Total = len(filtered)
	view.Rows = make([]templates.DownloadRow, 0, len(filtered))
	for _, record := range filtered {
		view.Rows = append(view.Rows, templates.DownloadRow{
			Name:      orDefault(record.Name, "Anonymous"),
			Email:     orDefault(record.Email, "N/A"),
			Phone:     orDefault(record.Phone, "N/A"),
			Location:  record.Location(),
			CreatedAt: downloads.FormatTimestamp(record.CreatedAt, layout, h.location),
			Count:     record.DownloadCount,
			DetailURL: routepath.DownloadDetail(record.Email, criteria.Query()),
			DeleteURL: routepath.DownloadDelete(record.Email, criteria.Query()),
		})
	}
	return view
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
