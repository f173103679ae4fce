package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/config"
	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/models"
)

var day = time.Date(2027, 3, 8, 0, 0, 0, 0, time.UTC) // a Monday

func at(clock string) time.Time {
	return ParseHM(day, clock)
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name         string
		aStart, aEnd string
		bStart, bEnd string
		want         bool
	}{
		{"disjoint before", "09:00", "09:30", "10:00", "10:30", false},
		{"touching edges", "09:30", "10:00", "10:00", "10:30", false},
		{"partial overlap", "09:45", "10:15", "10:00", "10:30", true},
		{"contained", "10:05", "10:25", "10:00", "10:30", true},
		{"containing", "09:00", "11:00", "10:00", "10:30", true},
		{"identical", "10:00", "10:30", "10:00", "10:30", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Overlaps(at(tc.aStart), at(tc.aEnd), at(tc.bStart), at(tc.bEnd))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseHM(t *testing.T) {
	got := ParseHM(day, "14:30")
	assert.Equal(t, 14, got.Hour())
	assert.Equal(t, 30, got.Minute())
	assert.Equal(t, day.Year(), got.Year())
	assert.Equal(t, day.Location(), got.Location())
}

func TestDayWindow_IntersectsBusinessHours(t *testing.T) {
	sched := &models.WorkerSchedule{
		Active:    true,
		StartTime: "07:00",
		EndTime:   "21:00",
	}
	hours := config.HoursRange{Open: "09:00", Close: "19:00"}

	work, brk, ok := DayWindow(sched, hours, day)

	require.True(t, ok)
	assert.True(t, work.Start.Equal(at("09:00")))
	assert.True(t, work.End.Equal(at("19:00")))
	assert.False(t, brk.Valid())
}

func TestDayWindow_ScheduleNarrowerThanHours(t *testing.T) {
	sched := &models.WorkerSchedule{
		Active:     true,
		StartTime:  "10:00",
		EndTime:    "16:00",
		BreakStart: "12:00",
		BreakEnd:   "13:00",
	}
	hours := config.HoursRange{Open: "09:00", Close: "19:00"}

	work, brk, ok := DayWindow(sched, hours, day)

	require.True(t, ok)
	assert.True(t, work.Start.Equal(at("10:00")))
	assert.True(t, work.End.Equal(at("16:00")))
	require.True(t, brk.Valid())
	assert.True(t, brk.Start.Equal(at("12:00")))
	assert.True(t, brk.End.Equal(at("13:00")))
}

func TestDayWindow_InactiveOrMissing(t *testing.T) {
	hours := config.HoursRange{Open: "09:00", Close: "19:00"}

	_, _, ok := DayWindow(nil, hours, day)
	assert.False(t, ok)

	_, _, ok = DayWindow(&models.WorkerSchedule{Active: false, StartTime: "09:00", EndTime: "18:00"}, hours, day)
	assert.False(t, ok)

	_, _, ok = DayWindow(&models.WorkerSchedule{Active: true}, hours, day)
	assert.False(t, ok)
}

func TestDayWindow_EmptyIntersection(t *testing.T) {
	sched := &models.WorkerSchedule{
		Active:    true,
		StartTime: "06:00",
		EndTime:   "08:00",
	}
	hours := config.HoursRange{Open: "09:00", Close: "19:00"}

	_, _, ok := DayWindow(sched, hours, day)
	assert.False(t, ok)
}

func TestWithinWindow(t *testing.T) {
	work := Window{Start: at("09:00"), End: at("18:00")}
	brk := Window{Start: at("12:00"), End: at("13:00")}

	cases := []struct {
		name       string
		start, end string
		want       bool
	}{
		{"inside", "10:00", "10:30", true},
		{"flush with opening", "09:00", "09:30", true},
		{"flush with closing", "17:30", "18:00", true},
		{"ends at break start", "11:30", "12:00", true},
		{"starts at break end", "13:00", "13:30", true},
		{"before opening", "08:30", "09:00", false},
		{"past closing", "17:45", "18:15", false},
		{"inside break", "12:00", "12:30", false},
		{"straddles break", "11:45", "12:15", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, WithinWindow(work, brk, at(tc.start), at(tc.end)))
		})
	}
}

func TestWithinWindow_NoBreak(t *testing.T) {
	work := Window{Start: at("09:00"), End: at("18:00")}

	assert.True(t, WithinWindow(work, Window{}, at("12:00"), at("12:30")))
}
