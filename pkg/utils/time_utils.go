package utils

import "time"

// Convert an epoch value in seconds to UTC.
// Returns zero time if t<=0 to let callers decide how to render.
func FromUnixSeconds(t int64) time.Time {
	if t <= 0 {
		return time.Time{}
	}
	return time.Unix(t, 0).UTC()
}

// FormatUnixRFC3339 renders a stored timestamp, e.g. 2025-09-24T08:12:00Z.
func FormatUnixRFC3339(t int64) string {
	ts := FromUnixSeconds(t)
	if ts.IsZero() {
		return ""
	}
	return ts.Format(time.RFC3339)
}
