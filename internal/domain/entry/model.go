package entry

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/quiniela/internal/domain/match"
)

const (
	PaymentPending = "PENDING"
	PaymentPaid    = "PAID"
)

var (
	ErrInvalidSelection = errors.New("invalid pick selection")
	ErrDuplicatePick    = errors.New("duplicate pick for match")
	ErrUnknownMatch     = errors.New("pick references a match outside the week")
	ErrNoPicks          = errors.New("at least one pick is required")
	ErrDuplicateName    = errors.New("participant name already used in week")
)

// Pick is a participant's predicted outcome for one match.
type Pick struct {
	MatchID   string
	Selection match.Outcome
}

// Entry is one participant's submission for a week.
// Score and Hits are derived from match results and are recomputed on demand.
type Entry struct {
	ID                   string
	WeekID               string
	ParticipantName      string
	TotalGoalsPrediction int
	Picks                []Pick
	PaymentStatus        string
	SubmittedAt          time.Time
	Score                int
	Hits                 []string
}

func (e Entry) Clone() Entry {
	copied := e
	copied.Picks = append([]Pick(nil), e.Picks...)
	copied.Hits = append([]string(nil), e.Hits...)
	return copied
}

// NameKey is the case-insensitive identity of a participant inside a week.
func NameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ValidatePicks checks that every pick targets a known match exactly once with a valid selection.
func ValidatePicks(picks []Pick, matchIDs map[string]struct{}) error {
	if len(picks) == 0 {
		return ErrNoPicks
	}

	seen := make(map[string]struct{}, len(picks))
	for _, pick := range picks {
		if _, ok := match.ParseOutcome(string(pick.Selection)); !ok {
			return fmt.Errorf("%w: match=%s selection=%q", ErrInvalidSelection, pick.MatchID, pick.Selection)
		}
		if _, ok := matchIDs[pick.MatchID]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownMatch, pick.MatchID)
		}
		if _, exists := seen[pick.MatchID]; exists {
			return fmt.Errorf("%w: %s", ErrDuplicatePick, pick.MatchID)
		}
		seen[pick.MatchID] = struct{}{}
	}

	return nil
}
