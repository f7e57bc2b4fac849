package daterange

import (
	"fmt"
	"time"

	"github.com/kailas-cloud/vecprep/internal/domain"
)

// Layout is the canonical date representation on the wire.
const Layout = "2006-01-02"

// Date is a calendar date without time of day.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// String renders the date in canonical form.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) valid() bool {
	if d.Year < 1 || d.Year > 9999 {
		return false
	}
	return DateOf(d.Time()) == d
}

// ParseDate normalizes a date-like value: a "yyyy-mm-dd" string, a time.Time
// (its calendar date in its own location) or a Date.
func ParseDate(field string, v any) (Date, error) {
	switch x := v.(type) {
	case string:
		t, err := time.Parse(Layout, x)
		if err != nil {
			return Date{}, domain.NewParamError(field, "date string %q should be in yyyy-mm-dd format", x)
		}
		return DateOf(t), nil
	case time.Time:
		if x.IsZero() {
			return Date{}, domain.NewParamError(field, "date is required")
		}
		return DateOf(x), nil
	case *time.Time:
		if x == nil {
			return Date{}, domain.NewParamError(field, "date is required")
		}
		return ParseDate(field, *x)
	case Date:
		if !x.valid() {
			return Date{}, domain.NewParamError(field, "invalid date %s", x)
		}
		return x, nil
	case nil:
		return Date{}, domain.NewParamError(field, "date is required")
	default:
		return Date{}, domain.NewParamError(field, "unsupported date type %T", v)
	}
}

// Range is a date interval (start, end]. Start after end is not rejected;
// the server treats such a range as empty.
type Range struct {
	start Date
	end   Date
}

// New parses both endpoints into canonical dates.
func New(start, end any) (Range, error) {
	s, err := ParseDate("start_date", start)
	if err != nil {
		return Range{}, err
	}
	e, err := ParseDate("end_date", end)
	if err != nil {
		return Range{}, err
	}
	return Range{start: s, end: e}, nil
}

// Start returns the canonical exclusive start.
func (r Range) Start() string { return r.start.String() }

// End returns the canonical inclusive end.
func (r Range) End() string { return r.end.String() }

// StartDate returns the exclusive start.
func (r Range) StartDate() Date { return r.start }

// EndDate returns the inclusive end.
func (r Range) EndDate() Date { return r.end }
