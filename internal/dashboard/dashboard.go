// Package dashboard turns loaded data into the texts shown in each named
// region of the dashboard. It does no I/O and takes the time as input.
package dashboard

import (
	"fmt"
	"time"

	"github.com/Makepad-fr/homeroom/internal/model"
	"github.com/Makepad-fr/homeroom/internal/schedule"
)

// Slot names of the display surface.
const (
	SlotClass            = "userClassDisplay"
	SlotClockTime        = "clockTime"
	SlotClockDate        = "clockDate"
	SlotScheduleDay      = "scheduleDay"
	SlotScheduleList     = "scheduleList"
	SlotNextClassSubject = "nextClassSubject"
	SlotNextClassTime    = "nextClassTime"
	SlotTestName         = "testName"
	SlotTestTimer        = "testTimer"
)

const (
	TextNoClassesToday = "本日は授業がありません"
	TextNoClassesShort = "本日は授業なし"
	TextAfterSchool    = "放課後 / 授業終了"
	TextGoodWork       = "お疲れ様でした"
	TextNoTests        = "予定されているテストはありません"
)

// Row is one line of the schedule list.
type Row struct {
	Period  int    `json:"period"`
	Subject string `json:"subject"`
	Time    string `json:"time"`
	Current bool   `json:"current"`
}

// Snapshot holds every region's content at one instant.
type Snapshot struct {
	Class               string `json:"userClassDisplay"`
	ClockTime           string `json:"clockTime"`
	ClockDate           string `json:"clockDate"`
	ScheduleDay         string `json:"scheduleDay"`
	Schedule            []Row  `json:"scheduleList"`
	SchedulePlaceholder string `json:"schedulePlaceholder,omitempty"`
	NextClassSubject    string `json:"nextClassSubject"`
	NextClassTime       string `json:"nextClassTime"`
	TestName            string `json:"testName"`
	TestTimer           string `json:"testTimer"`

	// Skipped lists subject indexes that had no usable time window.
	Skipped []int `json:"-"`
}

// Build fills every region for className at now.
func Build(data model.GlobalData, className string, now time.Time) Snapshot {
	s := Snapshot{Class: className}
	s.ClockTime, s.ClockDate = Clock(now)
	s.ScheduleDay, s.Schedule, s.SchedulePlaceholder, s.Skipped = Schedule(data, className, now)
	s.NextClassSubject, s.NextClassTime = NextClass(data, className, now)
	s.TestName, s.TestTimer = TestCountdown(data.Tests, now)
	return s
}

// Slots flattens the snapshot into slot name -> text. The schedule list is
// one line per row, current row marked with "*".
func (s Snapshot) Slots() map[string]string {
	list := s.SchedulePlaceholder
	for i, r := range s.Schedule {
		if i > 0 {
			list += "\n"
		}
		mark := " "
		if r.Current {
			mark = "*"
		}
		list += fmt.Sprintf("%s%d %s %s", mark, r.Period, r.Subject, r.Time)
	}
	return map[string]string{
		SlotClass:            s.Class,
		SlotClockTime:        s.ClockTime,
		SlotClockDate:        s.ClockDate,
		SlotScheduleDay:      s.ScheduleDay,
		SlotScheduleList:     list,
		SlotNextClassSubject: s.NextClassSubject,
		SlotNextClassTime:    s.NextClassTime,
		SlotTestName:         s.TestName,
		SlotTestTimer:        s.TestTimer,
	}
}

// Schedule renders today's list. When there is nothing today rows is nil
// and placeholder holds the text to show instead.
func Schedule(data model.GlobalData, className string, now time.Time) (day string, rows []Row, placeholder string, skipped []int) {
	day = LongWeekday(now)
	today := schedule.ResolveToday(data, className, now)
	if today.NoClasses() {
		return day, nil, TextNoClassesToday, nil
	}
	rows = make([]Row, 0, len(today.Periods))
	for _, p := range today.Periods {
		rows = append(rows, Row{
			Period:  p.Number(),
			Subject: p.Subject,
			Time:    p.Start + " - " + p.End,
			Current: p.Current,
		})
	}
	return day, rows, "", today.Skipped
}

// NextClass renders the next-class card.
func NextClass(data model.GlobalData, className string, now time.Time) (subject, when string) {
	if _, ok := schedule.Subjects(data, className, now); !ok {
		return TextNoClassesShort, ""
	}
	next, ok := schedule.NextPeriod(data, className, now)
	if !ok {
		return TextAfterSchool, TextGoodWork
	}
	return next.Subject, fmt.Sprintf("%s開始 (%d分後)", next.Start, next.MinutesUntil)
}

// TestCountdown renders the nearest upcoming test.
func TestCountdown(tests []model.TestEvent, now time.Time) (name, timer string) {
	next, ok := schedule.NextTest(tests, now)
	if !ok {
		return TextNoTests, ""
	}
	return next.Name, fmt.Sprintf("あと %d 日", schedule.DaysUntil(next.At, now))
}
