package ui

import (
	"time"

	"github.com/dustin/go-humanize"
)

// playTime renders the API's millisecond play time counter as a rough
// human duration.
func playTime(millis int64) string {
	if millis <= 0 {
		return "-"
	}

	elapsed := time.Duration(millis) * time.Millisecond
	if elapsed < time.Minute {
		return "<1 minute"
	}

	return humanize.RelTime(time.Now().Add(-elapsed), time.Now(), "", "")
}

// age renders a timestamp as a relative age, "12 minutes ago".
func age(t time.Time) string {
	if t.IsZero() {
		return "never"
	}

	return humanize.Time(t)
}
