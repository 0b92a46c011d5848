package schedule

import (
	"time"

	"github.com/Makepad-fr/homeroom/internal/model"
)

// Period is one renderable slot of today's schedule.
type Period struct {
	Index    int // position in timeSettings
	Subject  string
	Start    string
	End      string
	StartMin int
	EndMin   int
	Current  bool
}

// Number is the 1-based period number shown to students.
func (p Period) Number() int { return p.Index + 1 }

// Today is the resolved schedule for one class on one day.
type Today struct {
	DayKey   string
	Subjects []string // raw day schedule, empty entries included
	Periods  []Period // non-empty subjects that have a usable time window
	Current  int      // index into timeSettings, -1 when no period is running
	Skipped  []int    // subject indexes without a usable time window
}

// NoClasses reports whether there is nothing scheduled for the day.
func (t Today) NoClasses() bool { return len(t.Subjects) == 0 }

// Subjects looks up the day schedule of className for the weekday of now.
// ok is false when the class or the day is missing entirely.
func Subjects(data model.GlobalData, className string, now time.Time) (subjects []string, ok bool) {
	week, found := data.Schedules[className]
	if !found || week == nil {
		return nil, false
	}
	subjects, ok = week[DayKey(now.Weekday())]
	return subjects, ok && subjects != nil
}

// ResolveToday works out which periods className has today and which one,
// if any, is running at now. Both ends of a window count as inside it.
func ResolveToday(data model.GlobalData, className string, now time.Time) Today {
	subjects, _ := Subjects(data, className, now)
	t := Today{
		DayKey:   DayKey(now.Weekday()),
		Subjects: subjects,
		Current:  -1,
	}
	nowMin := MinuteOfDay(now)
	for i, sub := range subjects {
		if sub == "" {
			continue
		}
		if i >= len(data.TimeSettings) {
			t.Skipped = append(t.Skipped, i)
			continue
		}
		win := data.TimeSettings[i]
		startMin, err := ParseClock(win.Start)
		if err != nil {
			t.Skipped = append(t.Skipped, i)
			continue
		}
		endMin, err := ParseClock(win.End)
		if err != nil {
			t.Skipped = append(t.Skipped, i)
			continue
		}
		p := Period{
			Index:    i,
			Subject:  sub,
			Start:    win.Start,
			End:      win.End,
			StartMin: startMin,
			EndMin:   endMin,
			Current:  startMin <= nowMin && nowMin <= endMin,
		}
		if p.Current && t.Current < 0 {
			t.Current = i
		}
		t.Periods = append(t.Periods, p)
	}
	return t
}
