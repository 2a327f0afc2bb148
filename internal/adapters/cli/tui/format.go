package tui

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// FormatSize formats a byte count for display
// Examples: 0 -> "0 B", 1536 -> "1.5 KiB", 7340032 -> "7.0 MiB"
func FormatSize(size int64) string {
	if size < 0 {
		size = 0
	}
	return humanize.IBytes(uint64(size))
}

// FormatDuration formats an elapsed time for display
// Examples: 42.13s -> "42.1s", 754s -> "12m34s"
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return d.Round(time.Second).String()
}

// TruncateName shortens a file name to fit a display column
func TruncateName(name string, max int) string {
	if max <= 3 || len(name) <= max {
		return name
	}
	return name[:max-3] + "..."
}
