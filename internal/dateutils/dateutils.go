// Package dateutils resolves the date strings found in bank and card
// statement exports, which arrive in whatever format the issuing bank's
// locale prefers.
package dateutils

import (
	"regexp"
	"strings"
	"time"
)

// Layouts for the fixed fallback chain.
const (
	LayoutSlashEU      = "02/01/2006"
	LayoutSlashEUShort = "2/1/2006"
	LayoutSlashUS      = "01/02/2006"
	LayoutSlashUSShort = "1/2/2006"
	LayoutISO          = "2006-01-02"
	LayoutDashEU       = "02-01-2006"
)

// nativeLayouts are the unambiguous formats tried before the fallback chain:
// ISO timestamps and spelled-out month names.
var nativeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"02 Jan 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"January 2, 2006",
}

// FallbackLayouts is the ordered chain of explicit numeric formats. Order
// matters: for strings that match both the day-first and month-first slash
// formats (e.g. "03/04/2024") the first layout wins. That ambiguity has no
// principled resolution from the data alone and is a documented limitation,
// not something this package tries to guess around.
var FallbackLayouts = []string{
	LayoutSlashEU,
	LayoutSlashEUShort,
	LayoutSlashUS,
	LayoutSlashUSShort,
	LayoutISO,
	LayoutDashEU,
}

var whitespace = regexp.MustCompile(`\s+`)

// Clean trims and collapses whitespace in a raw date string.
func Clean(dateStr string) string {
	return whitespace.ReplaceAllString(strings.TrimSpace(dateStr), " ")
}

// Parse resolves a raw date string. It tries the native layouts first and
// then reduces the fallback chain to its first success. The second return
// value reports whether any layout matched.
func Parse(dateStr string) (time.Time, bool) {
	cleaned := Clean(dateStr)
	if cleaned == "" {
		return time.Time{}, false
	}

	for _, layout := range nativeLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t, true
		}
	}

	for _, layout := range FallbackLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// ToISO formats a date as YYYY-MM-DD, the format records are stored with.
func ToISO(date time.Time) string {
	if date.IsZero() {
		return ""
	}
	return date.Format(LayoutISO)
}
