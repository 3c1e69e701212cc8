package templates

import (
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	admini18n "github.com/dronesimulator/admin/internal/services/admin/i18n"
)

// LanguageOption represents a supported language option in the admin UI.
type LanguageOption struct {
	Tag    string
	Label  string
	URL    string
	Active bool
}

// LanguageOptions returns supported language options with active selection.
func LanguageOptions(page PageContext) []LanguageOption {
	active := normalizeTag(page.Lang).String()
	tags := admini18n.Supported()
	options := make([]LanguageOption, 0, len(tags))
	for _, tag := range tags {
		options = append(options, LanguageOption{
			Tag:    tag.String(),
			Label:  languageLabel(tag),
			URL:    admini18n.LanguageURL(page.CurrentPath, page.CurrentQuery, tag.String()),
			Active: tag.String() == active,
		})
	}
	return options
}

// languageLabel names a language in itself, e.g. "português (Brasil)".
func languageLabel(tag language.Tag) string {
	if name := display.Self.Name(tag); name != "" {
		return name
	}
	return tag.String()
}

// normalizeTag coerces unknown tags to the default supported language.
func normalizeTag(value string) language.Tag {
	parsed, err := language.Parse(value)
	if err != nil {
		return admini18n.Default()
	}
	for _, tag := range admini18n.Supported() {
		if tag.String() == parsed.String() {
			return tag
		}
	}
	return admini18n.Default()
}
