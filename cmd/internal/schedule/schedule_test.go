package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"45", 45},
		{" 90 ", 90},
		{"PT30M", 30},
		{"pt1h30m", 90},
		{"PT2H", 120},
		{"30 minutes", 30},
		{"1 hour", 60},
		{"15min", 15},
		{"nonsense", DefaultDuration},
		{"", DefaultDuration},
		{"0", DefaultDuration},
		{"-5", DefaultDuration},
		{"PT20S", DefaultDuration},
		{"P", DefaultDuration},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseDuration(tt.in))
		})
	}
}

func TestNormalizeTime(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"9am", "09:00", true},
		{"3pm", "15:00", true},
		{"3 PM", "15:00", true},
		{"12am", "00:00", true},
		{"12pm", "12:00", true},
		{"9:05", "09:05", true},
		{"14:30", "14:30", true},
		{"13pm", "", false},
		{"25:00", "", false},
		{"garbage", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := NormalizeTime(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEndTime(t *testing.T) {
	assert.Equal(t, "09:30", EndTime("09:00", 30))
	assert.Equal(t, "10:00", EndTime("9am", 60))
	assert.Equal(t, "16:45", EndTime("3pm", 105))
	assert.Equal(t, "00:30", EndTime("23:30", 60))
	assert.Equal(t, UnknownTime, EndTime("garbage", 30))
}

func TestIntervalConflictsWith(t *testing.T) {
	proposed := Interval{Start: "10:00", End: "11:00"}

	tests := []struct {
		name      string
		candidate Interval
		want      bool
	}{
		{"identical", Interval{"10:00", "11:00"}, true},
		{"same start longer", Interval{"10:00", "12:00"}, true},
		{"starts inside", Interval{"10:30", "11:30"}, true},
		{"ends inside", Interval{"09:30", "10:30"}, true},
		{"nested", Interval{"10:15", "10:45"}, true},
		{"ends at proposed start", Interval{"09:00", "10:00"}, false},
		{"starts at proposed end", Interval{"11:00", "12:00"}, false},
		{"before", Interval{"08:00", "09:00"}, false},
		{"after", Interval{"12:00", "13:00"}, false},
		{"encloses without shared start", Interval{"09:00", "12:00"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, proposed.ConflictsWith(tt.candidate))
		})
	}
}

func TestIntervalOverlaps(t *testing.T) {
	proposed := Interval{Start: "10:00", End: "11:00"}

	tests := []struct {
		name  string
		other Interval
		want  bool
	}{
		{"identical", Interval{"10:00", "11:00"}, true},
		{"starts inside", Interval{"10:30", "11:30"}, true},
		{"ends inside", Interval{"09:30", "10:30"}, true},
		{"nested", Interval{"10:15", "10:45"}, true},
		{"encloses", Interval{"09:00", "12:00"}, true},
		{"ends at proposed start", Interval{"09:00", "10:00"}, false},
		{"starts at proposed end", Interval{"11:00", "12:00"}, false},
		{"before", Interval{"08:00", "09:00"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, proposed.Overlaps(tt.other))
			assert.Equal(t, tt.want, tt.other.Overlaps(proposed), "symmetric")
		})
	}
}

func TestNewInterval(t *testing.T) {
	iv, ok := NewInterval("9am", 45)
	assert.True(t, ok)
	assert.Equal(t, Interval{Start: "09:00", End: "09:45"}, iv)

	_, ok = NewInterval("noon-ish", 45)
	assert.False(t, ok)
}
