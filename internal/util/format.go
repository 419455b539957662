package util

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// TruncateString truncates a string to maxLen and adds "..." if needed.
func TruncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen < 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// FormatCount formats a row count with thousands separators.
func FormatCount(n int) string {
	return humanize.Comma(int64(n))
}

// FormatShown formats "shown/total rows", collapsing to "total rows" when
// nothing is hidden.
func FormatShown(shown, total int) string {
	if shown == total {
		return fmt.Sprintf("%s rows", FormatCount(total))
	}
	return fmt.Sprintf("%s/%s rows", FormatCount(shown), FormatCount(total))
}

// SingleLine collapses newlines and tabs so a value fits on one table row.
func SingleLine(s string) string {
	if !strings.ContainsAny(s, "\n\r\t") {
		return s
	}
	r := strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ")
	return r.Replace(s)
}
