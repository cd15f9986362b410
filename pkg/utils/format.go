package utils

import (
	"time"

	"github.com/dustin/go-humanize"
)

// FormatSize renders a byte count for display ("12 kB")
func FormatSize(bytes int64) string {
	if bytes < 0 {
		bytes = 0
	}
	return humanize.Bytes(uint64(bytes))
}

// FormatAge renders how long ago t was relative to now ("3 hours ago")
func FormatAge(t, now time.Time) string {
	return humanize.RelTime(t, now, "ago", "from now")
}
