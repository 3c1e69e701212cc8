package templates

import (
	"github.com/a-h/templ"
)

// EmailVerified renders the static confirmation card.
func EmailVerified(page PageContext, loginURL string) templ.Component {
	return component(func(m *markup) {
		m.raw(`<section class="card verify"><h1>`, esc(T(page.Loc, "verified.title")), `</h1>`)
		m.raw(`<p>`, esc(T(page.Loc, "verified.body")), `</p>`)
		m.raw(`<a class="btn btn-primary" href="`, safeURL(loginURL), `">`, esc(T(page.Loc, "verified.link")), `</a>`)
		m.raw(`</section>`)
	})
}

// VerifyResult renders the outcome of a verification link.
func VerifyResult(page PageContext, message string) templ.Component {
	return component(func(m *markup) {
		m.raw(`<section class="card verify"><h1>`, esc(T(page.Loc, "verify.title")), `</h1>`)
		m.raw(`<p id="verify-message">`, esc(message), `</p></section>`)
	})
}
