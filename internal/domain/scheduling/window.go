package scheduling

import (
	"time"

	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/config"
	"github.com/AleCarrera11/citasya-fullstack-sub000/internal/models"
)

// Window is a concrete half-open interval [Start, End) on a given day.
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) Valid() bool {
	return w.End.After(w.Start)
}

func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// ParseHM anchors a wall-clock "HH:MM" string on the given date, in the
// date's location.
func ParseHM(date time.Time, hm string) time.Time {
	t, _ := time.Parse("15:04", hm)
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0,
		date.Location(),
	)
}

// DayWindow intersects the worker's schedule for the date's weekday with the
// center's business hours for that weekday type. ok is false when the worker
// does not attend that day or the intersection is empty. The break window is
// zero when the schedule has none.
func DayWindow(
	sched *models.WorkerSchedule,
	hours config.HoursRange,
	date time.Time,
) (work Window, brk Window, ok bool) {

	if sched == nil || !sched.Active || sched.StartTime == "" || sched.EndTime == "" {
		return Window{}, Window{}, false
	}

	work = Window{
		Start: ParseHM(date, sched.StartTime),
		End:   ParseHM(date, sched.EndTime),
	}

	open := ParseHM(date, hours.Open)
	closing := ParseHM(date, hours.Close)
	if work.Start.Before(open) {
		work.Start = open
	}
	if work.End.After(closing) {
		work.End = closing
	}
	if !work.Valid() {
		return Window{}, Window{}, false
	}

	if sched.BreakStart != "" && sched.BreakEnd != "" {
		brk = Window{
			Start: ParseHM(date, sched.BreakStart),
			End:   ParseHM(date, sched.BreakEnd),
		}
	}

	return work, brk, true
}

// WithinWindow reports whether [start, end) fits inside the working window
// without touching the break.
func WithinWindow(work Window, brk Window, start, end time.Time) bool {
	if start.Before(work.Start) || end.After(work.End) {
		return false
	}
	if brk.Valid() && Overlaps(start, end, brk.Start, brk.End) {
		return false
	}
	return true
}
