package schedule

// Interval is a same-day span in zero-padded "HH:MM" form, so plain string
// comparison orders it.
type Interval struct {
	Start string
	End   string
}

func NewInterval(start string, minutes int) (Interval, bool) {
	normalized, ok := NormalizeTime(start)
	if !ok {
		return Interval{}, false
	}
	return Interval{Start: normalized, End: EndTime(normalized, minutes)}, true
}

// ConflictsWith reports whether an existing meeting collides with the
// proposed interval p. A candidate collides when it starts strictly inside
// p, starts exactly with p, or ends strictly inside p. A candidate that
// fully encloses p without sharing its start is not caught.
func (p Interval) ConflictsWith(candidate Interval) bool {
	if candidate.Start > p.Start && candidate.Start < p.End {
		return true
	}
	if candidate.Start == p.Start {
		return true
	}
	return candidate.End > p.Start && candidate.End < p.End
}

// Overlaps is the plain interval test: the two spans share some minute.
// Touching ends do not overlap.
func (p Interval) Overlaps(other Interval) bool {
	return p.Start < other.End && other.Start < p.End
}
