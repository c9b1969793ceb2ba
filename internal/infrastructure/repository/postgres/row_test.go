package postgres

import (
	"testing"
	"time"

	"github.com/riskibarqy/quiniela/internal/domain/entry"
	"github.com/riskibarqy/quiniela/internal/domain/match"
)

func TestMatchRowConversion(t *testing.T) {
	position := 14
	kickoff := time.Date(2026, 1, 31, 1, 0, 0, 0, time.UTC)
	finished := match.Match{
		ID:           "m1",
		WeekID:       "w1",
		HomeTeam:     "Toluca",
		AwayTeam:     "Pachuca",
		Timestamp:    kickoff.UnixMilli(),
		Status:       match.StatusScheduled,
		HomePosition: &position,
	}
	if err := finished.Finish(2, 2); err != nil {
		t.Fatalf("finish: %v", err)
	}

	row := matchToRow("w1", 3, finished)
	if row.SortOrder != 3 || row.HomeScore == nil || *row.HomeScore != 2 || row.Outcome == nil || *row.Outcome != "E" {
		t.Fatalf("unexpected row: %+v", row)
	}

	got := matchFromRow(row)
	if got.Date != "2026-01-31T01:00:00.000Z" || got.Timestamp != kickoff.UnixMilli() {
		t.Fatalf("unexpected kickoff: date=%s ts=%d", got.Date, got.Timestamp)
	}
	if !got.IsFinished() || got.Result.Outcome != match.OutcomeDraw {
		t.Fatalf("unexpected result: %+v", got.Result)
	}
	if got.HomePosition == nil || *got.HomePosition != 14 || got.AwayPosition != nil {
		t.Fatalf("unexpected positions: %v %v", got.HomePosition, got.AwayPosition)
	}
}

func TestMatchFromRow_Unplayed(t *testing.T) {
	got := matchFromRow(matchTableModel{ID: "m1", Status: match.StatusScheduled})
	if got.Result != nil {
		t.Fatalf("expected no result, got %+v", got.Result)
	}
}

func TestMatchFromRow_Status(t *testing.T) {
	tests := []struct {
		stored string
		want   string
	}{
		{stored: "FINISHED", want: match.StatusFinished},
		{stored: " in_play ", want: match.StatusInPlay},
		{stored: "", want: match.StatusScheduled},
		{stored: "LIVE", want: match.StatusScheduled},
	}

	for _, tt := range tests {
		t.Run(tt.stored, func(t *testing.T) {
			got := matchFromRow(matchTableModel{ID: "m1", Status: tt.stored})
			if got.Status != tt.want {
				t.Fatalf("unexpected status: got=%q want=%q", got.Status, tt.want)
			}
		})
	}
}

func TestEntryFromRow(t *testing.T) {
	picks, err := marshalPicks([]entry.Pick{{MatchID: "m1", Selection: match.OutcomeAway}})
	if err != nil {
		t.Fatalf("marshal picks: %v", err)
	}
	if picks != `[{"match_id":"m1","selection":"V"}]` {
		t.Fatalf("unexpected picks json: %s", picks)
	}

	got, err := entryFromRow(entryTableModel{
		ID:              "e1",
		WeekID:          "w1",
		ParticipantName: "Ana",
		Picks:           []byte(picks),
		Score:           1,
		Hits:            []byte(`["m1"]`),
	})
	if err != nil {
		t.Fatalf("entry from row: %v", err)
	}
	if len(got.Picks) != 1 || got.Picks[0].Selection != match.OutcomeAway {
		t.Fatalf("unexpected picks: %+v", got.Picks)
	}
	if len(got.Hits) != 1 || got.Hits[0] != "m1" {
		t.Fatalf("unexpected hits: %+v", got.Hits)
	}
}

func TestEntryFromRow_EmptyHitsAndBadJSON(t *testing.T) {
	got, err := entryFromRow(entryTableModel{ID: "e1", Picks: []byte(`[]`)})
	if err != nil {
		t.Fatalf("entry from row: %v", err)
	}
	if got.Hits == nil || len(got.Hits) != 0 {
		t.Fatalf("expected non-nil empty hits, got %#v", got.Hits)
	}

	if _, err := entryFromRow(entryTableModel{ID: "e2", Picks: []byte(`{`)}); err == nil {
		t.Fatalf("expected decode error")
	}

	if hits, _ := marshalHits(nil); hits != "[]" {
		t.Fatalf("unexpected empty hits json: %s", hits)
	}
}
