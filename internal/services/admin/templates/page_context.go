package templates

import "golang.org/x/text/message"

// Localizer formats catalog messages. *message.Printer satisfies it.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

// T formats the catalog message key. Without a localizer the key is
// returned as is.
func T(loc Localizer, key string, args ...any) string {
	if loc == nil {
		return key
	}
	return loc.Sprintf(key, args...)
}

// PageContext provides shared layout context for admin pages.
type PageContext struct {
	Lang         string
	Loc          Localizer
	CurrentPath  string
	CurrentQuery string
	User         *UserView
	Notice       *NoticeView
}

// UserView is the signed-in admin shown in the navbar.
type UserView struct {
	Name   string
	Email  string
	Role   string
	Avatar string
}

// NoticeView is a one-time alert rendered above the page content.
type NoticeView struct {
	Error bool
	Text  string
}
