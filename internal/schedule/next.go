package schedule

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/Makepad-fr/homeroom/internal/model"
)

const day = 24 * time.Hour

// Upcoming is the next period that still has to start today.
type Upcoming struct {
	Index        int
	Subject      string
	Start        string
	MinutesUntil int
}

// NextPeriod returns the first period, in timeSettings order, that starts
// strictly after now and has a subject. Empty periods are stepped over.
// It relies on timeSettings being chronological.
func NextPeriod(data model.GlobalData, className string, now time.Time) (Upcoming, bool) {
	subjects, ok := Subjects(data, className, now)
	if !ok {
		return Upcoming{}, false
	}
	nowMin := MinuteOfDay(now)
	for i, win := range data.TimeSettings {
		startMin, err := ParseClock(win.Start)
		if err != nil || startMin <= nowMin {
			continue
		}
		if i >= len(subjects) || subjects[i] == "" {
			continue
		}
		return Upcoming{
			Index:        i,
			Subject:      subjects[i],
			Start:        win.Start,
			MinutesUntil: startMin - nowMin,
		}, true
	}
	return Upcoming{}, false
}

// DatedTest is a test with its date parsed.
type DatedTest struct {
	model.TestEvent
	At time.Time
}

// NextTest returns the earliest test dated strictly after now.
// Tests whose date cannot be parsed are ignored.
func NextTest(tests []model.TestEvent, now time.Time) (DatedTest, bool) {
	future := make([]DatedTest, 0, len(tests))
	for _, t := range tests {
		at, err := ParseDate(t.Date, now.Location())
		if err != nil || !at.After(now) {
			continue
		}
		future = append(future, DatedTest{TestEvent: t, At: at})
	}
	if len(future) == 0 {
		return DatedTest{}, false
	}
	sort.SliceStable(future, func(i, j int) bool {
		return future[i].At.Before(future[j].At)
	})
	return future[0], true
}

// DaysUntil is floor((at-now)/24h)+1. A test a few hours away is "1 day"
// away and a test tomorrow evening is "2 days" away; the +1 is intended.
func DaysUntil(at, now time.Time) int {
	diff := at.Sub(now)
	return int(math.Floor(float64(diff)/float64(day))) + 1
}

var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02 15:04",
	"2006/01/02",
}

// ParseDate accepts RFC 3339, a bare date (taken as UTC midnight) or a
// date-time without zone (taken in loc).
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.Errorf("unrecognised date %q", s)
}
