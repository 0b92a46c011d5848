package dashboard

import (
	"fmt"
	"time"
)

var (
	shortWeekdays = [...]string{"日", "月", "火", "水", "木", "金", "土"}
	longWeekdays  = [...]string{"日曜日", "月曜日", "火曜日", "水曜日", "木曜日", "金曜日", "土曜日"}
)

// Clock formats now the way the ja-JP locale does: "15:04:05" and
// "2006年1月2日(月)".
func Clock(now time.Time) (clock, date string) {
	clock = now.Format("15:04:05")
	date = fmt.Sprintf("%d年%d月%d日(%s)", now.Year(), int(now.Month()), now.Day(), shortWeekdays[now.Weekday()])
	return clock, date
}

// LongWeekday is the full ja-JP weekday name, e.g. "月曜日".
func LongWeekday(now time.Time) string {
	return longWeekdays[now.Weekday()]
}
