package downloads

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// QuickFilter selects a rolling window relative to now.
type QuickFilter string

const (
	QuickNone  QuickFilter = ""
	QuickToday QuickFilter = "today"
	QuickWeek  QuickFilter = "7days"
	QuickMonth QuickFilter = "1month"
	QuickYear  QuickFilter = "1year"
)

const (
	dateLayout  = time.DateOnly
	queryQuick  = "quick"
	queryFrom   = "from"
	queryTo     = "to"
	queryFilter = "filter"
)

// QuickFilters lists the quick filters in display order.
var QuickFilters = []QuickFilter{QuickToday, QuickWeek, QuickMonth, QuickYear}

var quickWindowDays = map[QuickFilter]float64{
	QuickWeek:  7,
	QuickMonth: 30,
	QuickYear:  365,
}

// Criteria is the active filter state of the downloads view.
type Criteria struct {
	Quick      QuickFilter
	From       string
	To         string
	Expression string
}

// ParseCriteria reads criteria from query values. Unknown quick filters are
// dropped.
func ParseCriteria(values url.Values) Criteria {
	c := Criteria{
		Quick:      QuickFilter(strings.TrimSpace(values.Get(queryQuick))),
		From:       strings.TrimSpace(values.Get(queryFrom)),
		To:         strings.TrimSpace(values.Get(queryTo)),
		Expression: strings.TrimSpace(values.Get(queryFilter)),
	}
	if !c.Quick.Valid() {
		c.Quick = QuickNone
	}
	return c
}

// Valid reports whether q is a known quick filter.
func (q QuickFilter) Valid() bool {
	switch q {
	case QuickNone, QuickToday, QuickWeek, QuickMonth, QuickYear:
		return true
	default:
		return false
	}
}

// Active reports whether any filter is set.
func (c Criteria) Active() bool {
	return c.Quick != QuickNone || c.From != "" || c.To != "" || c.Expression != ""
}

// Query encodes c as query values.
func (c Criteria) Query() url.Values {
	values := url.Values{}
	if c.Quick != QuickNone {
		values.Set(queryQuick, string(c.Quick))
	}
	if c.From != "" {
		values.Set(queryFrom, c.From)
	}
	if c.To != "" {
		values.Set(queryTo, c.To)
	}
	if c.Expression != "" {
		values.Set(queryFilter, c.Expression)
	}
	return values
}

// ToggleQuick returns c with q switched on, or switched off when already
// active.
func (c Criteria) ToggleQuick(q QuickFilter) Criteria {
	if c.Quick == q {
		c.Quick = QuickNone
	} else {
		c.Quick = q
	}
	return c
}

// Filter applies c to records. A quick filter overrides the date range. The
// expression, when present, applies on top of either. now is the wall clock
// at render time and loc the display time zone.
func Filter(records []Record, c Criteria, now time.Time, loc *time.Location) ([]Record, error) {
	if loc == nil {
		loc = time.UTC
	}
	expression, err := ParseExpression(c.Expression, loc)
	if err != nil {
		return nil, err
	}
	dateMatch, err := datePredicate(c, now, loc)
	if err != nil {
		return nil, err
	}

	out := make([]Record, 0, len(records))
	for _, record := range records {
		if !dateMatch(record) {
			continue
		}
		if expression != nil && !expression.Match(record) {
			continue
		}
		out = append(out, record)
	}
	return out, nil
}

func datePredicate(c Criteria, now time.Time, loc *time.Location) (func(Record) bool, error) {
	switch c.Quick {
	case QuickToday:
		y, m, d := now.In(loc).Date()
		return func(r Record) bool {
			created, ok := ParseTimestamp(r.CreatedAt, loc)
			if !ok {
				return false
			}
			cy, cm, cd := created.In(loc).Date()
			return cy == y && cm == m && cd == d
		}, nil
	case QuickWeek, QuickMonth, QuickYear:
		days := quickWindowDays[c.Quick]
		return func(r Record) bool {
			created, ok := ParseTimestamp(r.CreatedAt, loc)
			if !ok {
				return false
			}
			return now.Sub(created).Hours()/24 <= days
		}, nil
	}

	if c.From == "" && c.To == "" {
		return func(Record) bool { return true }, nil
	}
	var from, to time.Time
	if c.From != "" {
		parsed, err := time.ParseInLocation(dateLayout, c.From, loc)
		if err != nil {
			return nil, fmt.Errorf("invalid from date %q", c.From)
		}
		from = parsed
	}
	if c.To != "" {
		parsed, err := time.ParseInLocation(dateLayout, c.To, loc)
		if err != nil {
			return nil, fmt.Errorf("invalid to date %q", c.To)
		}
		to = parsed.AddDate(0, 0, 1)
	}
	return func(r Record) bool {
		created, ok := ParseTimestamp(r.CreatedAt, loc)
		if !ok {
			return false
		}
		if !from.IsZero() && created.Before(from) {
			return false
		}
		if !to.IsZero() && !created.Before(to) {
			return false
		}
		return true
	}, nil
}
