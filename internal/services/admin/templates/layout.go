package templates

import (
	"github.com/a-h/templ"

	"github.com/dronesimulator/admin/internal/services/admin/routepath"
)

const htmxScript = "https://unpkg.com/htmx.org@2.0.4"

// Layout renders the full admin document around body.
func Layout(page PageContext, title string, body templ.Component) templ.Component {
	return component(func(m *markup) {
		appName := T(page.Loc, "app.title")
		m.raw(`<!DOCTYPE html><html lang="`, esc(normalizeTag(page.Lang).String()), `" data-theme="light"><head>`)
		m.raw(`<meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
		m.raw(`<title>`, esc(ComposePageTitle(title, appName)), `</title>`)
		m.raw(`<link rel="stylesheet" href="`, routepath.StaticPrefix, `admin.css">`)
		m.raw(`<script src="`, htmxScript, `" defer></script>`)
		m.raw(`</head><body>`)
		m.child(navbar(page, appName))
		m.raw(`<main id="main" class="container">`)
		m.child(Notice(page.Notice))
		m.child(body)
		m.raw(`</main></body></html>`)
	})
}

func navbar(page PageContext, appName string) templ.Component {
	return component(func(m *markup) {
		m.raw(`<header class="navbar"><a class="brand" href="`, routepath.Root, `">`, esc(appName), `</a>`)
		if page.User != nil {
			m.raw(`<nav><a href="`, routepath.Downloads, `">`, esc(T(page.Loc, "nav.downloads")), `</a></nav>`)
		}
		m.raw(`<div class="languages" aria-label="`, esc(T(page.Loc, "nav.language")), `">`)
		for _, option := range LanguageOptions(page) {
			if option.Active {
				m.raw(`<span class="active" lang="`, esc(option.Tag), `">`, esc(option.Label), `</span>`)
				continue
			}
			m.raw(`<a href="`, esc(option.URL), `" lang="`, esc(option.Tag), `">`, esc(option.Label), `</a>`)
		}
		m.raw(`</div>`)
		if user := page.User; user != nil {
			m.raw(`<div class="user">`)
			if user.Avatar != "" {
				m.raw(`<img class="avatar" src="`, safeURL(user.Avatar), `" alt="" width="32" height="32">`)
			}
			m.raw(`<span class="user-name">`, esc(user.Name), `</span>`)
			m.raw(`<form method="post" action="`, routepath.Logout, `"><button type="submit" class="btn btn-ghost">`, esc(T(page.Loc, "nav.logout")), `</button></form>`)
			m.raw(`</div>`)
		}
		m.raw(`</header>`)
	})
}

// Notice renders a flash alert. A nil notice renders nothing.
func Notice(notice *NoticeView) templ.Component {
	return component(func(m *markup) {
		if notice == nil || notice.Text == "" {
			return
		}
		class := "alert alert-success"
		role := "status"
		if notice.Error {
			class = "alert alert-error"
			role = "alert"
		}
		m.raw(`<div id="notice" role="`, role, `" class="`, class, `">`, esc(notice.Text), `</div>`)
	})
}

// Page renders body inside Layout for full loads and alone for HTMX swaps.
func Page(page PageContext, title string, body templ.Component, fragment bool) templ.Component {
	if fragment {
		return component(func(m *markup) {
			m.raw(`<title>`, esc(ComposePageTitle(title, T(page.Loc, "app.title"))), `</title>`)
			m.child(Notice(page.Notice))
			m.child(body)
		})
	}
	return Layout(page, title, body)
}
