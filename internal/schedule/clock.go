package schedule

import (
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// ErrBadClock is returned for a period time that is not "HH:MM".
var ErrBadClock = errors.New("bad clock value")

var dayKeys = [...]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// DayKey maps a weekday to the key used in a class's weekly schedule.
func DayKey(wd time.Weekday) string {
	return dayKeys[int(wd)%len(dayKeys)]
}

// ParseClock turns "HH:MM" into minutes since midnight.
func ParseClock(s string) (int, error) {
	hh, mm, found := strings.Cut(strings.TrimSpace(s), ":")
	if !found {
		return 0, errors.Wrapf(ErrBadClock, "%q", s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 24 {
		return 0, errors.Wrapf(ErrBadClock, "%q: hour", s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, errors.Wrapf(ErrBadClock, "%q: minute", s)
	}
	return h*60 + m, nil
}

// MinuteOfDay is the wall-clock minute of t; seconds are dropped.
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
