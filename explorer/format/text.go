package format

import (
	"time"

	"github.com/dustin/go-humanize"
)

// Abbr keeps the first length characters of s followed by "..."
func Abbr(s string, length int) string {
	if len(s) > length {
		return s[:length] + "..."
	}
	return s
}

// AbbrAddress keeps the first and last length characters of an address
func AbbrAddress(address string, length int) string {
	if len(address) <= 2*length {
		return address
	}
	return address[:length] + "..." + address[len(address)-length:]
}

// Time layouts understood by ToDay
const (
	LayoutLong    = "long"
	LayoutDate    = "date"
	LayoutTime    = "time"
	LayoutFrom    = "from"
	LayoutTo      = "to"
	LayoutBlock   = "block"
	LayoutDefault = ""
)

var now = time.Now

// ToDay renders a timestamp in one of the explorer layouts
func ToDay(t time.Time, layout string) string {
	if t.IsZero() {
		return Placeholder
	}
	switch layout {
	case LayoutLong:
		return t.Format("2006-01-02 15:04")
	case LayoutDate:
		return t.Format("2006-01-02")
	case LayoutTime:
		return t.Format("15:04:05")
	case LayoutFrom:
		return humanize.RelTime(t, now(), "ago", "from now")
	case LayoutTo:
		return humanize.RelTime(now(), t, "ago", "from now")
	case LayoutBlock:
		return t.Format("02-01-2006 03:04:05")
	}
	return t.Format("2006-01-02 15:04:05")
}
