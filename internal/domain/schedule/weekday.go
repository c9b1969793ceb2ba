package schedule

import (
	"strings"
	"time"

	"github.com/riskibarqy/quiniela/internal/platform/textfold"
)

const minWeekdayPrefix = 3

var spanishWeekdays = []struct {
	name string
	day  time.Weekday
}{
	{name: "domingo", day: time.Sunday},
	{name: "lunes", day: time.Monday},
	{name: "martes", day: time.Tuesday},
	{name: "miercoles", day: time.Wednesday},
	{name: "jueves", day: time.Thursday},
	{name: "viernes", day: time.Friday},
	{name: "sabado", day: time.Saturday},
}

// WeekdayIndex maps a Spanish day token (full or abbreviated, accents and a
// trailing period optional) to its weekday.
//
// Unrecognized tokens return (time.Sunday, false). Callers that only have a
// token and need a weekday regardless get Sunday, which is a known weak default.
func WeekdayIndex(token string) (time.Weekday, bool) {
	key := strings.TrimRight(textfold.Key(token), ".,")
	if len(key) < minWeekdayPrefix {
		return time.Sunday, false
	}

	for _, candidate := range spanishWeekdays {
		if strings.HasPrefix(candidate.name, key) {
			return candidate.day, true
		}
	}
	return time.Sunday, false
}
