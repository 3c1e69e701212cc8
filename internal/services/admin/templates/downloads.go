package templates

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/dronesimulator/admin/internal/services/admin/routepath"
)

const mainTarget = `hx-target="#main" hx-push-url="true"`

// DownloadsView holds the rendered state of the downloads table.
type DownloadsView struct {
	Rows            []DownloadRow
	Total           int
	Quick           string
	From            string
	To              string
	Expression      string
	ExpressionError string
	QuickFilters    []QuickFilterOption
	ClearURL        string
	ExportURL       string
	RefreshURL      string
	// Dialog is rendered over the table when set.
	Dialog templ.Component
}

// QuickFilterOption is one quick filter toggle.
type QuickFilterOption struct {
	Key    string
	Label  string
	URL    string
	Active bool
}

// DownloadRow is one table row.
type DownloadRow struct {
	Name      string
	Email     string
	Phone     string
	Location  string
	CreatedAt string
	Count     int
	DetailURL string
	DeleteURL string
}

// DetailView is the read-only detail dialog for one record.
type DetailView struct {
	Found     bool
	Email     string
	Name      string
	Phone     string
	Location  string
	Purpose   string
	Count     int
	CreatedOn string
	History   []string
	CloseURL  string
}

// DeleteConfirmView is the delete confirmation dialog.
type DeleteConfirmView struct {
	Email     string
	ActionURL string
	CancelURL string
}

// DownloadsContent renders the downloads header, filters and table.
func DownloadsContent(page PageContext, view DownloadsView) templ.Component {
	return component(func(m *markup) {
		m.raw(`<section id="downloads" class="downloads">`)
		m.raw(`<div class="header"><div><h1>`, esc(T(page.Loc, "downloads.title")), `</h1>`)
		m.raw(`<p class="subtitle">`, esc(T(page.Loc, "downloads.subtitle")), `</p></div>`)
		m.raw(`<div class="actions">`)
		m.raw(`<a class="btn btn-primary" id="export" href="`, esc(view.ExportURL), `" download>`, esc(T(page.Loc, "downloads.export")), `</a>`)
		m.raw(`<form method="post" action="`, esc(view.RefreshURL), `" hx-post="`, esc(view.RefreshURL), `" `, mainTarget, `>`)
		m.raw(`<button type="submit" class="btn">`, esc(T(page.Loc, "downloads.refresh")), `</button></form>`)
		m.raw(`<div id="total" class="total">`, esc(T(page.Loc, "downloads.total", view.Total)), `</div>`)
		m.raw(`</div></div>`)

		m.child(downloadsFilters(page, view))
		if view.ExpressionError != "" {
			m.raw(`<div role="alert" class="alert alert-error">`, esc(T(page.Loc, "downloads.expression_invalid", view.ExpressionError)), `</div>`)
		}
		m.child(downloadsTable(page, view.Rows))
		m.child(view.Dialog)
		m.raw(`</section>`)
	})
}

func downloadsFilters(page PageContext, view DownloadsView) templ.Component {
	return component(func(m *markup) {
		m.raw(`<form class="filters" method="get" action="`, routepath.Downloads, `" hx-get="`, routepath.Downloads, `" `, mainTarget, `>`)
		if view.Quick != "" {
			m.raw(`<input type="hidden" name="quick" value="`, esc(view.Quick), `">`)
		}
		m.raw(`<label>`, esc(T(page.Loc, "downloads.from")), ` <input type="date" name="from" value="`, esc(view.From), `"></label>`)
		m.raw(`<label>`, esc(T(page.Loc, "downloads.to")), ` <input type="date" name="to" value="`, esc(view.To), `"></label>`)
		m.raw(`<label>`, esc(T(page.Loc, "downloads.expression")), ` <input type="search" name="filter" placeholder="country = &#34;India&#34;" value="`, esc(view.Expression), `"></label>`)
		m.raw(`<button type="submit" class="btn">`, esc(T(page.Loc, "downloads.apply")), `</button>`)
		m.raw(`</form><div class="quick-filters">`)
		for _, option := range view.QuickFilters {
			class := "btn btn-sm"
			pressed := "false"
			if option.Active {
				class = "btn btn-sm btn-active"
				pressed = "true"
			}
			m.raw(`<a class="`, class, `" data-quick="`, esc(option.Key), `" aria-pressed="`, pressed, `" href="`, esc(option.URL), `" hx-get="`, esc(option.URL), `" `, mainTarget, `>`, esc(option.Label), `</a>`)
		}
		m.raw(`<a class="btn btn-sm btn-ghost" id="clear-filters" href="`, esc(view.ClearURL), `" hx-get="`, esc(view.ClearURL), `" `, mainTarget, `>`, esc(T(page.Loc, "downloads.clear")), `</a>`)
		m.raw(`</div>`)
	})
}

func downloadsTable(page PageContext, rows []DownloadRow) templ.Component {
	return component(func(m *markup) {
		if len(rows) == 0 {
			m.raw(`<p class="empty">`, esc(T(page.Loc, "downloads.empty")), `</p>`)
			return
		}
		m.raw(`<div class="table-wrap"><table class="table"><thead><tr>`)
		for _, key := range []string{
			"downloads.column.name",
			"downloads.column.email",
			"downloads.column.phone",
			"downloads.column.location",
			"downloads.column.created_at",
			"downloads.column.count",
			"downloads.column.actions",
		} {
			m.raw(`<th>`, esc(T(page.Loc, key)), `</th>`)
		}
		m.raw(`</tr></thead><tbody>`)
		for _, row := range rows {
			m.raw(`<tr data-email="`, esc(row.Email), `">`)
			m.raw(`<td>`, esc(row.Name), `</td>`)
			m.raw(`<td>`, esc(row.Email), `</td>`)
			m.raw(`<td>`, esc(row.Phone), `</td>`)
			m.raw(`<td>`, esc(row.Location), `</td>`)
			m.raw(`<td>`, esc(row.CreatedAt), `</td>`)
			m.raw(`<td>`, strconv.Itoa(row.Count), `</td>`)
			m.raw(`<td class="row-actions">`)
			m.raw(`<a class="view" title="`, esc(T(page.Loc, "downloads.action.view")), `" href="`, esc(row.DetailURL), `" hx-get="`, esc(row.DetailURL), `" `, mainTarget, `>`, esc(T(page.Loc, "downloads.action.view")), `</a> `)
			m.raw(`<a class="delete" title="`, esc(T(page.Loc, "downloads.action.delete")), `" href="`, esc(row.DeleteURL), `" hx-get="`, esc(row.DeleteURL), `" `, mainTarget, `>`, esc(T(page.Loc, "downloads.action.delete")), `</a>`)
			m.raw(`</td></tr>`)
		}
		m.raw(`</tbody></table></div>`)
	})
}

// DetailDialog renders the read-only record dialog.
func DetailDialog(page PageContext, view DetailView) templ.Component {
	return component(func(m *markup) {
		m.raw(`<dialog open class="modal" id="detail"><div class="modal-box"><h2>`, esc(T(page.Loc, "detail.title")), `</h2>`)
		if !view.Found {
			m.raw(`<p>`, esc(T(page.Loc, "detail.not_found", view.Email)), `</p>`)
		} else {
			field := func(key, value string) {
				m.raw(`<p><strong>`, esc(T(page.Loc, key)), `</strong> `, esc(value), `</p>`)
			}
			field("detail.name", view.Name)
			field("detail.email", view.Email)
			field("detail.phone", view.Phone)
			field("detail.location", view.Location)
			field("detail.purpose", view.Purpose)
			field("detail.count", strconv.Itoa(view.Count))
			field("detail.created_on", view.CreatedOn)
			m.raw(`<p><strong>`, esc(T(page.Loc, "detail.history")), `</strong></p><ul class="history">`)
			for _, entry := range view.History {
				m.raw(`<li>`, esc(entry), `</li>`)
			}
			m.raw(`</ul>`)
		}
		m.raw(`<div class="modal-action"><a class="btn" href="`, esc(view.CloseURL), `" hx-get="`, esc(view.CloseURL), `" `, mainTarget, `>`, esc(T(page.Loc, "detail.close")), `</a></div>`)
		m.raw(`</div></dialog>`)
	})
}

// DeleteConfirm renders the delete confirmation dialog.
func DeleteConfirm(page PageContext, view DeleteConfirmView) templ.Component {
	return component(func(m *markup) {
		m.raw(`<dialog open class="modal" id="delete-confirm"><div class="modal-box"><h2>`, esc(T(page.Loc, "delete.title")), `</h2>`)
		m.raw(`<p>`, esc(T(page.Loc, "delete.confirm", view.Email)), `</p>`)
		m.raw(`<form method="post" action="`, esc(view.ActionURL), `" hx-post="`, esc(view.ActionURL), `" `, mainTarget, `>`)
		m.raw(`<input type="hidden" name="email" value="`, esc(view.Email), `">`)
		m.raw(`<div class="modal-action"><a class="btn" href="`, esc(view.CancelURL), `" hx-get="`, esc(view.CancelURL), `" `, mainTarget, `>`, esc(T(page.Loc, "delete.cancel")), `</a>`)
		m.raw(`<button type="submit" class="btn btn-error">`, esc(T(page.Loc, "delete.submit")), `</button></div>`)
		m.raw(`</form></div></dialog>`)
	})
}
