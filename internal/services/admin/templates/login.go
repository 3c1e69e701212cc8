package templates

import (
	"github.com/a-h/templ"

	"github.com/dronesimulator/admin/internal/services/admin/routepath"
)

// LoginView holds the login form state.
type LoginView struct {
	Email    string
	Role     string
	Roles    []string
	Remember bool
	Failed   bool
}

// LoginForm renders the admin login form.
func LoginForm(page PageContext, view LoginView) templ.Component {
	return component(func(m *markup) {
		m.raw(`<section class="card login"><h1>`, esc(T(page.Loc, "login.title")), `</h1>`)
		if view.Failed {
			m.raw(`<div role="alert" class="alert alert-error">`, esc(T(page.Loc, "login.failed")), `</div>`)
		}
		m.raw(`<form method="post" action="`, routepath.Login, `">`)
		m.raw(`<label>`, esc(T(page.Loc, "login.email")), ` <input type="email" name="email" required autocomplete="username" value="`, esc(view.Email), `"></label>`)
		m.raw(`<label>`, esc(T(page.Loc, "login.password")), ` <input type="password" name="password" required autocomplete="current-password"></label>`)
		m.raw(`<label>`, esc(T(page.Loc, "login.role")), ` <select name="role">`)
		for _, role := range view.Roles {
			selected := ""
			if role == view.Role {
				selected = " selected"
			}
			m.raw(`<option value="`, esc(role), `"`, selected, `>`, esc(role), `</option>`)
		}
		m.raw(`</select></label>`)
		checked := ""
		if view.Remember {
			checked = " checked"
		}
		m.raw(`<label class="checkbox"><input type="checkbox" name="remember" value="1"`, checked, `> `, esc(T(page.Loc, "login.remember")), `</label>`)
		m.raw(`<button type="submit" class="btn btn-primary">`, esc(T(page.Loc, "login.submit")), `</button>`)
		m.raw(`</form></section>`)
	})
}
