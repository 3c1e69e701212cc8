package templates

import (
	"github.com/a-h/templ"

	"github.com/dronesimulator/admin/internal/services/admin/routepath"
)

// ErrorContent renders an error message with a link back to the downloads.
func ErrorContent(page PageContext, message string) templ.Component {
	return component(func(m *markup) {
		m.raw(`<section class="card error"><h1>`, esc(T(page.Loc, "error.title")), `</h1>`)
		m.raw(`<p>`, esc(message), `</p>`)
		m.raw(`<a href="`, routepath.Downloads, `">`, esc(T(page.Loc, "error.back")), `</a></section>`)
	})
}
