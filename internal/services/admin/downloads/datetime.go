package downloads

import (
	"strings"
	"time"

	"golang.org/x/text/language"
)

// InvalidDate is rendered for timestamps that do not parse.
const InvalidDate = "Invalid Date"

// Date-time layouts per display language.
const (
	layoutEnglish    = "1/2/2006, 3:04:05 PM"
	layoutPortuguese = "02/01/2006, 15:04:05"
)

// zoned layouts carry their own offset; the rest are read in the display zone.
var zonedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999Z0700",
}

var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
}

// ParseTimestamp parses a backend timestamp. Values without an offset are
// read in loc; a bare date is midnight UTC.
func ParseTimestamp(value string, loc *time.Location) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, true
		}
	}
	if t, err := time.Parse(time.DateOnly, value); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// DateTimeLayout returns the date-time layout for tag.
func DateTimeLayout(tag language.Tag) string {
	if base, _ := tag.Base(); base.String() == "pt" {
		return layoutPortuguese
	}
	return layoutEnglish
}

// FormatTimestamp renders value in loc using layout, or InvalidDate.
func FormatTimestamp(value, layout string, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	t, ok := ParseTimestamp(value, loc)
	if !ok {
		return InvalidDate
	}
	return t.In(loc).Format(layout)
}
