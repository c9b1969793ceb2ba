package schedule

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/riskibarqy/quiniela/internal/domain/match"
)

// DateLayout renders instants the way clients expect them (UTC, millisecond precision).
const DateLayout = "2006-01-02T15:04:05.000Z07:00"

const (
	defaultHour   = 12
	defaultMinute = 0
)

var (
	versusPattern    = regexp.MustCompile(`(?i)\s+vs\s+`)
	positionsPattern = regexp.MustCompile(`\s+(\d+)\s+(\d+)$`)
	clockPattern     = regexp.MustCompile(`(?i)(\d{1,2}):(\d{2})\s?(am|pm)?`)
	lineBreak        = regexp.MustCompile(`\r?\n`)
	wordPattern      = regexp.MustCompile(`[\p{L}\p{M}]+`)
)

// awayTeamTrailer is stripped between the away team and a weekday written
// as "(viernes)" or "Toluca, vie.".
const awayTeamTrailer = " \t,;(-["

// ParseText parses a pasted block, one match per line. Lines that are not
// match lines are dropped; the remaining drafts keep their input order.
func ParseText(raw string, ref time.Time) []match.Draft {
	out := make([]match.Draft, 0)
	for _, line := range lineBreak.Split(raw, -1) {
		draft, ok := ParseLine(line, ref)
		if !ok {
			continue
		}
		out = append(out, draft)
	}
	return out
}

// ParseLine turns "Home vs Away <weekday> [dd-mm] [HH:MM[am|pm]] [homePos awayPos]"
// into a draft. Weekdays resolve to the next occurrence on or after ref, in
// ref's location. Without a weekday the draft is scheduled at ref itself.
func ParseLine(line string, ref time.Time) (match.Draft, bool) {
	clean := strings.TrimSpace(line)
	if clean == "" {
		return match.Draft{}, false
	}

	parts := versusPattern.Split(clean, 2)
	if len(parts) < 2 {
		return match.Draft{}, false
	}

	draft := match.Draft{
		HomeTeam: strings.TrimSpace(parts[0]),
		Status:   match.StatusScheduled,
	}
	rest := strings.TrimSpace(parts[1])

	if loc := positionsPattern.FindStringSubmatchIndex(rest); loc != nil {
		home, homeErr := strconv.Atoi(rest[loc[2]:loc[3]])
		away, awayErr := strconv.Atoi(rest[loc[4]:loc[5]])
		if homeErr == nil && awayErr == nil {
			draft.HomePosition = &home
			draft.AwayPosition = &away
			rest = strings.TrimSpace(rest[:loc[0]])
		}
	}

	kickoff := ref
	draft.AwayTeam = rest

	// The first token always belongs to the away team.
	firstTokenEnd := strings.IndexFunc(rest, unicode.IsSpace)
	if firstTokenEnd < 0 {
		firstTokenEnd = len(rest)
	}
	for _, loc := range wordPattern.FindAllStringIndex(rest, -1) {
		if loc[0] < firstTokenEnd {
			continue
		}
		day, ok := WeekdayIndex(rest[loc[0]:loc[1]])
		if !ok {
			continue
		}
		draft.AwayTeam = strings.TrimRight(rest[:loc[0]], awayTeamTrailer)
		kickoff = resolveKickoff(day, rest[loc[0]:], ref)
		break
	}

	draft.Date = kickoff.UTC().Format(DateLayout)
	draft.Timestamp = kickoff.UnixMilli()
	return draft, true
}

func resolveKickoff(day time.Weekday, fragment string, ref time.Time) time.Time {
	hour, minute := parseClock(fragment)

	offset := (int(day) - int(ref.Weekday()) + 7) % 7
	year, month, date := ref.Date()
	return time.Date(year, month, date+offset, hour, minute, 0, 0, ref.Location())
}

// parseClock reads the first H:MM token, converting 12-hour suffixes.
// Missing or out-of-range clocks default to noon.
func parseClock(fragment string) (int, int) {
	groups := clockPattern.FindStringSubmatch(fragment)
	if groups == nil {
		return defaultHour, defaultMinute
	}

	hour, err := strconv.Atoi(groups[1])
	if err != nil {
		return defaultHour, defaultMinute
	}
	minute, err := strconv.Atoi(groups[2])
	if err != nil {
		return defaultHour, defaultMinute
	}

	switch strings.ToLower(groups[3]) {
	case "pm":
		if hour < 12 {
			hour += 12
		}
	case "am":
		if hour == 12 {
			hour = 0
		}
	}

	if hour > 23 || minute > 59 {
		return defaultHour, defaultMinute
	}
	return hour, minute
}
