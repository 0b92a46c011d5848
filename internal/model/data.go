package model

import "sort"

// DefaultClass is used when no class was ever selected.
const DefaultClass = "21HR"

// GlobalData is the shared data file fetched on startup.
// It is replaced wholesale on every reload.
type GlobalData struct {
	TimeSettings []PeriodWindow         `json:"timeSettings"`
	Schedules    map[string]DaySchedule `json:"schedules"`
	Tests        []TestEvent            `json:"tests"`
}

// PeriodWindow is a period's "HH:MM" start and end.
// Its index in TimeSettings is the 0-based period number.
type PeriodWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DaySchedule maps a day key (Sun..Sat) to subjects aligned with TimeSettings.
// An empty subject means no class in that period.
type DaySchedule map[string][]string

// TestEvent is an upcoming test. Date is any ISO-ish date string.
type TestEvent struct {
	Name string `json:"name"`
	Date string `json:"date"`
}

// Fallback is the shape used when the data file cannot be loaded.
func Fallback() GlobalData {
	return GlobalData{
		TimeSettings: []PeriodWindow{},
		Schedules:    map[string]DaySchedule{DefaultClass: {}},
		Tests:        []TestEvent{},
	}
}

// Classes returns the class names present in the data, sorted.
func (d GlobalData) Classes() []string {
	out := make([]string, 0, len(d.Schedules))
	for name := range d.Schedules {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
