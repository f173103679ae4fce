package validators

import "time"

func IsClockTime(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil
}

// IsClockRange reports whether both ends are valid "HH:MM" times and the
// range is non-empty.
func IsClockRange(start, end string) bool {
	s, errS := time.Parse("15:04", start)
	e, errE := time.Parse("15:04", end)
	return errS == nil && errE == nil && e.After(s)
}
