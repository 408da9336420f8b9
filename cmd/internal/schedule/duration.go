package schedule

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/sosodev/duration"
)

// DefaultDuration is used whenever a duration cannot be read. Callers get no
// signal that the fallback happened.
const DefaultDuration = 60

var spokenDuration = regexp.MustCompile(`^(\d+)\s*(m|min|mins|minute|minutes|h|hr|hrs|hour|hours)$`)

// ParseDuration turns "45", "PT30M", "PT1H30M" or "30 minutes" into minutes.
func ParseDuration(s string) int {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultDuration
	}

	if n, err := strconv.Atoi(s); err == nil {
		return atLeastOne(n)
	}

	if strings.HasPrefix(s, "p") {
		d, err := duration.Parse(strings.ToUpper(s))
		if err != nil {
			return DefaultDuration
		}
		return atLeastOne(int(d.ToTimeDuration() / time.Minute))
	}

	m := spokenDuration.FindStringSubmatch(s)
	if m == nil {
		return DefaultDuration
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return DefaultDuration
	}
	if strings.HasPrefix(m[2], "h") {
		n *= 60
	}
	return atLeastOne(n)
}

func atLeastOne(n int) int {
	if n < 1 {
		return DefaultDuration
	}
	return n
}
