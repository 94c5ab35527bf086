// ABOUTME: Timestamp formatting for show notes
// ABOUTME: Converts millisecond offsets to H:MM:SS strings
package stitch

import "fmt"

// FormatTimestamp renders a millisecond offset as H:MM:SS, omitting the
// hours digit when zero: 65000 -> "1:05", 3665000 -> "1:01:05".
func FormatTimestamp(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	totalSec := ms / 1000
	h := totalSec / 3600
	m := (totalSec % 3600) / 60
	s := totalSec % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
