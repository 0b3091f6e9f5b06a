package parsing

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// HyphenateYyyyMmDd simply hyphenates yyyymmdd date values for display.
func HyphenateYyyyMmDd(d string) string {
	d = strings.ReplaceAll(d, " ", "")
	d = strings.ReplaceAll(d, "-", "")
	if len(d) < 8 {
		return d
	}

	return d[0:4] + "-" + d[4:6] + "-" + d[6:8]
}

// FormatUploadDate formats an extractor upload date (e.g. 20240131) or a
// word date (e.g. Jan 31st, 2024) as yyyy-mm-dd.
//
// Unparseable input is returned as-is.
func FormatUploadDate(d string) string {
	d = strings.TrimSpace(d)
	if d == "" {
		return ""
	}
	if len(d) == 8 && isDigits(d) {
		if _, err := time.Parse("20060102", d); err == nil {
			return HyphenateYyyyMmDd(d)
		}
	}
	t, err := dateparse.ParseAny(d)
	if err != nil {
		return d
	}
	return t.Format("2006-01-02")
}

// FormatDuration renders a length in seconds as H:MM:SS or M:SS.
//
// Zero-length items are live streams.
func FormatDuration(seconds int) string {
	if seconds <= 0 {
		return "LIVE"
	}

	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%d:%02d", minutes, secs)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
