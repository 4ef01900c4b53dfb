package format

import (
	"fmt"
	"strings"
	"time"
)

// DatePlaceholder is returned for empty dates in listings.
const DatePlaceholder = "N/A"

var indonesianMonths = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05.000Z07:00",
	"2006-01-02 15:04:05",
	"02/01/2006",
}

// ParseDate parses the date shapes the remote store produces.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Date formats a stored date as "Jan 2, 2006". Empty input yields
// DatePlaceholder and unparsable input is returned unchanged.
func Date(s string) string {
	if strings.TrimSpace(s) == "" {
		return DatePlaceholder
	}
	t, ok := ParseDate(s)
	if !ok {
		return s
	}
	return t.Format("Jan 2, 2006")
}

// LongDate formats t as an Indonesian long date, e.g. "5 Maret 2024".
func LongDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), indonesianMonths[t.Month()-1], t.Year())
}

// ShortDate formats t as "5/3/2024".
func ShortDate(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d", t.Day(), int(t.Month()), t.Year())
}

// DocumentDate formats a stored date for documents. Empty input yields
// fallback and unparsable input is returned unchanged.
func DocumentDate(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	t, ok := ParseDate(s)
	if !ok {
		return s
	}
	return LongDate(t)
}
