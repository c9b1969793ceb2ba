package week

import (
	"errors"
	"time"

	"github.com/gosimple/slug"
	"github.com/riskibarqy/quiniela/internal/domain/match"
)

const (
	StatusOpen     = "OPEN"
	StatusClosed   = "CLOSED"
	StatusFinished = "FINISHED"
)

var ErrDuplicateSlug = errors.New("week slug already exists")

// Week is one round of matches ("jornada") published together.
type Week struct {
	ID        string
	Name      string
	Slug      string
	Status    string
	CloseDate time.Time
	Price     int64
	AdminFee  int64
	CreatedAt time.Time
	Matches   []match.Match
}

func SlugFor(name string) string {
	return slug.Make(name)
}

// EarliestKickoff returns the first match start, or fallback when there are no matches.
func EarliestKickoff(matches []match.Match, fallback time.Time) time.Time {
	if len(matches) == 0 {
		return fallback
	}

	earliest := matches[0].Timestamp
	for _, m := range matches[1:] {
		if m.Timestamp < earliest {
			earliest = m.Timestamp
		}
	}
	return time.UnixMilli(earliest).UTC()
}

func (w Week) AcceptsEntries(now time.Time) bool {
	return w.Status == StatusOpen && !now.After(w.CloseDate)
}

// AllMatchesSettled reports whether every match that will be played has finished.
func (w Week) AllMatchesSettled() bool {
	if len(w.Matches) == 0 {
		return false
	}
	for _, m := range w.Matches {
		if m.Status == match.StatusPostponed {
			continue
		}
		if !m.IsFinished() {
			return false
		}
	}
	return true
}

func (w Week) FindMatch(matchID string) (int, bool) {
	for idx, m := range w.Matches {
		if m.ID == matchID {
			return idx, true
		}
	}
	return -1, false
}

func (w Week) MatchIDs() map[string]struct{} {
	out := make(map[string]struct{}, len(w.Matches))
	for _, m := range w.Matches {
		out[m.ID] = struct{}{}
	}
	return out
}

func (w Week) Clone() Week {
	copied := w
	copied.Matches = match.CloneAll(w.Matches)
	return copied
}
