package interval

import (
	"time"

	perr "trawlwatch/internal/platform/errors"
)

// Accepted event timestamp layouts, both UTC-suffixed. The registry emits
// either sub-second precision or whole seconds depending on the dataset
const (
	layoutMillis = "2006-01-02T15:04:05.000Z"
	layoutSecs   = "2006-01-02T15:04:05Z"
)

// ParseUTC parses a registry event timestamp, trying the sub-second layout
// first and falling back to whole seconds
func ParseUTC(s string) (time.Time, error) {
	if t, err := time.Parse(layoutMillis, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(layoutSecs, s); err == nil {
		return t, nil
	}
	return time.Time{}, perr.Parsef("unparseable timestamp %q", s)
}

// SpanFromStrings builds a Span from raw start/end timestamp strings.
// Either endpoint missing or unparseable, or an inverted pair, yields a
// parse-coded error; callers drop the event and keep aggregating
func SpanFromStrings(start, end string) (Span, error) {
	if start == "" || end == "" {
		return Span{}, perr.Parsef("event missing start or end timestamp")
	}
	st, err := ParseUTC(start)
	if err != nil {
		return Span{}, err
	}
	en, err := ParseUTC(end)
	if err != nil {
		return Span{}, err
	}
	return New(st, en)
}
