package schedule

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	clockLayout = "15:04"

	// UnknownTime stands in for an end time that could not be computed.
	UnknownTime = "unknown"
)

var meridiemHour = regexp.MustCompile(`^(\d{1,2})\s*(am|pm)$`)

// NormalizeTime accepts "9am", "3 PM", "9:05" or "09:05" and renders the
// 24-hour "HH:MM" form.
func NormalizeTime(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))

	if m := meridiemHour.FindStringSubmatch(s); m != nil {
		hour, err := strconv.Atoi(m[1])
		if err != nil || hour < 1 || hour > 12 {
			return "", false
		}
		hour %= 12
		if m[2] == "pm" {
			hour += 12
		}
		return time.Date(0, 1, 1, hour, 0, 0, 0, time.UTC).Format(clockLayout), true
	}

	t, err := time.Parse("15:04", s)
	if err != nil {
		return "", false
	}
	return t.Format(clockLayout), true
}

// EndTime adds minutes to start and drops any day rollover, so a meeting
// that runs past midnight ends "early" on the clock.
func EndTime(start string, minutes int) string {
	normalized, ok := NormalizeTime(start)
	if !ok {
		return UnknownTime
	}
	t, err := time.Parse(clockLayout, normalized)
	if err != nil {
		return UnknownTime
	}
	return t.Add(time.Duration(minutes) * time.Minute).Format(clockLayout)
}
