package match

import (
	"errors"
	"testing"
)

func TestOutcomeOf(t *testing.T) {
	tests := []struct {
		name string
		home int
		away int
		want Outcome
	}{
		{name: "home win", home: 2, away: 1, want: OutcomeHome},
		{name: "away win", home: 0, away: 3, want: OutcomeAway},
		{name: "goalless draw", home: 0, away: 0, want: OutcomeDraw},
		{name: "scoring draw", home: 2, away: 2, want: OutcomeDraw},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OutcomeOf(tt.home, tt.away); got != tt.want {
				t.Fatalf("unexpected outcome: got=%s want=%s", got, tt.want)
			}
		})
	}
}

func TestOutcomeOf_ConsistentWithScores(t *testing.T) {
	for home := 0; home <= 6; home++ {
		for away := 0; away <= 6; away++ {
			got := OutcomeOf(home, away)
			switch {
			case home == away && got != OutcomeDraw:
				t.Fatalf("%d-%d: expected E, got %s", home, away, got)
			case home > away && got != OutcomeHome:
				t.Fatalf("%d-%d: expected L, got %s", home, away, got)
			case home < away && got != OutcomeAway:
				t.Fatalf("%d-%d: expected V, got %s", home, away, got)
			}
		}
	}
}

func TestMatch_Finish(t *testing.T) {
	m := Match{ID: "m1", Status: StatusScheduled}
	if err := m.Finish(1, 3); err != nil {
		t.Fatalf("finish match: %v", err)
	}
	if m.Status != StatusFinished {
		t.Fatalf("expected FINISHED, got %s", m.Status)
	}
	if m.Result == nil || m.Result.Outcome != OutcomeAway {
		t.Fatalf("unexpected result: %+v", m.Result)
	}
	if !m.IsFinished() {
		t.Fatalf("expected match to report finished")
	}
	if m.Goals() != 4 {
		t.Fatalf("unexpected goals: got=%d want=4", m.Goals())
	}
}

func TestMatch_FinishRejectsNegativeScore(t *testing.T) {
	m := Match{ID: "m1", Status: StatusScheduled}
	err := m.Finish(-1, 0)
	if !errors.Is(err, ErrNegativeScore) {
		t.Fatalf("expected ErrNegativeScore, got %v", err)
	}
	if m.Status != StatusScheduled || m.Result != nil {
		t.Fatalf("match must stay untouched on invalid score: %+v", m)
	}
}

func TestParseOutcome(t *testing.T) {
	if got, ok := ParseOutcome(" e "); !ok || got != OutcomeDraw {
		t.Fatalf("expected E, got %q ok=%t", got, ok)
	}
	if _, ok := ParseOutcome("X"); ok {
		t.Fatalf("expected X to be rejected")
	}
}

func TestClone_DoesNotAlias(t *testing.T) {
	pos := 4
	original := Match{ID: "m1", HomePosition: &pos, Result: &Result{HomeScore: 1, AwayScore: 0, Outcome: OutcomeHome}}
	copied := original.Clone()

	*copied.HomePosition = 9
	copied.Result.HomeScore = 7

	if *original.HomePosition != 4 {
		t.Fatalf("position aliased: %d", *original.HomePosition)
	}
	if original.Result.HomeScore != 1 {
		t.Fatalf("result aliased: %d", original.Result.HomeScore)
	}
}
