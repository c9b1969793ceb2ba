package match

import (
	"errors"
	"fmt"
	"strings"
)

const (
	StatusScheduled = "SCHEDULED"
	StatusInPlay    = "IN_PLAY"
	StatusFinished  = "FINISHED"
	StatusPostponed = "POSTPONED"
)

// Outcome is the result of a match from the home side's point of view.
type Outcome string

const (
	OutcomeHome Outcome = "L"
	OutcomeDraw Outcome = "E"
	OutcomeAway Outcome = "V"
)

var ErrNegativeScore = errors.New("score cannot be negative")

// Draft is a parsed match line that has not been attached to a week yet.
type Draft struct {
	HomeTeam     string
	AwayTeam     string
	Date         string
	Timestamp    int64
	Status       string
	HomePosition *int
	AwayPosition *int
}

// Result holds the final score. Outcome is always derived from the scores.
type Result struct {
	HomeScore int
	AwayScore int
	Outcome   Outcome
}

// Match is one fixture of a week.
type Match struct {
	ID           string
	WeekID       string
	HomeTeam     string
	AwayTeam     string
	HomeLogo     string
	AwayLogo     string
	Date         string
	Timestamp    int64
	Status       string
	HomePosition *int
	AwayPosition *int
	Result       *Result
}

func OutcomeOf(homeScore, awayScore int) Outcome {
	switch {
	case homeScore > awayScore:
		return OutcomeHome
	case awayScore > homeScore:
		return OutcomeAway
	default:
		return OutcomeDraw
	}
}

func NewResult(homeScore, awayScore int) (Result, error) {
	if homeScore < 0 || awayScore < 0 {
		return Result{}, fmt.Errorf("%w: home=%d away=%d", ErrNegativeScore, homeScore, awayScore)
	}

	return Result{
		HomeScore: homeScore,
		AwayScore: awayScore,
		Outcome:   OutcomeOf(homeScore, awayScore),
	}, nil
}

// Finish records the final score and moves the match to FINISHED.
func (m *Match) Finish(homeScore, awayScore int) error {
	result, err := NewResult(homeScore, awayScore)
	if err != nil {
		return err
	}

	m.Result = &result
	m.Status = StatusFinished
	return nil
}

func (m Match) IsFinished() bool {
	return m.Status == StatusFinished && m.Result != nil
}

// Goals returns the combined score, or zero when no result is recorded.
func (m Match) Goals() int {
	if m.Result == nil {
		return 0
	}
	return m.Result.HomeScore + m.Result.AwayScore
}

func NormalizeStatus(value string) string {
	status := strings.ToUpper(strings.TrimSpace(value))
	if status == "" {
		return StatusScheduled
	}
	return status
}

func IsValidStatus(status string) bool {
	switch status {
	case StatusScheduled, StatusInPlay, StatusFinished, StatusPostponed:
		return true
	default:
		return false
	}
}

func ParseOutcome(value string) (Outcome, bool) {
	switch Outcome(strings.ToUpper(strings.TrimSpace(value))) {
	case OutcomeHome:
		return OutcomeHome, true
	case OutcomeDraw:
		return OutcomeDraw, true
	case OutcomeAway:
		return OutcomeAway, true
	default:
		return "", false
	}
}

// FromDraft attaches a draft to a week.
func FromDraft(id, weekID string, d Draft) Match {
	return Match{
		ID:           id,
		WeekID:       weekID,
		HomeTeam:     d.HomeTeam,
		AwayTeam:     d.AwayTeam,
		Date:         d.Date,
		Timestamp:    d.Timestamp,
		Status:       StatusScheduled,
		HomePosition: clonePosition(d.HomePosition),
		AwayPosition: clonePosition(d.AwayPosition),
	}
}

// Clone returns a deep copy so callers can mutate without aliasing.
func (m Match) Clone() Match {
	copied := m
	copied.HomePosition = clonePosition(m.HomePosition)
	copied.AwayPosition = clonePosition(m.AwayPosition)
	if m.Result != nil {
		result := *m.Result
		copied.Result = &result
	}
	return copied
}

func CloneAll(items []Match) []Match {
	out := make([]Match, 0, len(items))
	for _, item := range items {
		out = append(out, item.Clone())
	}
	return out
}

func clonePosition(v *int) *int {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
