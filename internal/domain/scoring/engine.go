package scoring

import (
	"sort"

	"github.com/riskibarqy/quiniela/internal/domain/entry"
	"github.com/riskibarqy/quiniela/internal/domain/match"
	"github.com/sourcegraph/conc/iter"
)

// ScoreParticipant returns a copy of e with Score and Hits computed against matches.
// A pick hits only when its match is FINISHED with a recorded result whose
// outcome equals the selection. Picks for unknown matches are misses.
func ScoreParticipant(e entry.Entry, matches []match.Match) entry.Entry {
	byID := make(map[string]match.Match, len(matches))
	for _, item := range matches {
		if _, exists := byID[item.ID]; exists {
			continue
		}
		byID[item.ID] = item
	}

	out := e.Clone()
	out.Score = 0
	out.Hits = make([]string, 0, len(e.Picks))
	for _, pick := range e.Picks {
		item, ok := byID[pick.MatchID]
		if !ok || !item.IsFinished() {
			continue
		}
		if pick.Selection != item.Result.Outcome {
			continue
		}
		out.Score++
		out.Hits = append(out.Hits, item.ID)
	}

	return out
}

// ScoreAll scores every entry against the same match snapshot, concurrently,
// keeping input order.
func ScoreAll(entries []entry.Entry, matches []match.Match) []entry.Entry {
	return iter.Map(entries, func(e *entry.Entry) entry.Entry {
		return ScoreParticipant(*e, matches)
	})
}

// ComputeWeekTotalGoals sums goals over finished matches.
func ComputeWeekTotalGoals(matches []match.Match) int {
	total := 0
	for _, item := range matches {
		if !item.IsFinished() {
			continue
		}
		total += item.Goals()
	}
	return total
}

// GoalsDistance is the tiebreaker distance between a prediction and the actual total.
func GoalsDistance(prediction, weekTotalGoals int) int {
	diff := prediction - weekTotalGoals
	if diff < 0 {
		return -diff
	}
	return diff
}

// SortLeaderboard orders entries by score descending, then by goals distance
// ascending. Entries tied on both keep their input order.
func SortLeaderboard(entries []entry.Entry, weekTotalGoals int) []entry.Entry {
	out := make([]entry.Entry, 0, len(entries))
	for _, item := range entries {
		out = append(out, item.Clone())
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return GoalsDistance(out[i].TotalGoalsPrediction, weekTotalGoals) <
			GoalsDistance(out[j].TotalGoalsPrediction, weekTotalGoals)
	})

	return out
}
