package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// markup writes HTML for one component render and keeps the first error.
type markup struct {
	ctx context.Context
	w   io.Writer
	err error
}

func component(render func(m *markup)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := &markup{ctx: ctx, w: w}
		render(m)
		return m.err
	})
}

// raw writes trusted markup.
func (m *markup) raw(parts ...string) {
	for _, part := range parts {
		if m.err != nil {
			return
		}
		_, m.err = io.WriteString(m.w, part)
	}
}

// text writes escaped text.
func (m *markup) text(value string) {
	m.raw(templ.EscapeString(value))
}

func (m *markup) child(c templ.Component) {
	if m.err != nil || c == nil {
		return
	}
	m.err = c.Render(m.ctx, m.w)
}

func esc(value string) string {
	return templ.EscapeString(value)
}

// safeURL escapes an href and rejects unsafe schemes.
func safeURL(value string) string {
	return templ.EscapeString(string(templ.URL(value)))
}
