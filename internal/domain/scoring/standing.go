package scoring

import "github.com/riskibarqy/quiniela/internal/domain/entry"

// Standing is one leaderboard row.
type Standing struct {
	Position      int
	GoalsDistance int
	Entry         entry.Entry
}

// Rank assigns positions to a sorted leaderboard. Rows tied on score and
// goals distance share a position; the next distinct row takes the next number.
func Rank(sorted []entry.Entry, weekTotalGoals int) []Standing {
	out := make([]Standing, 0, len(sorted))
	position := 0
	for idx, item := range sorted {
		distance := GoalsDistance(item.TotalGoalsPrediction, weekTotalGoals)
		if idx == 0 || item.Score != out[idx-1].Entry.Score || distance != out[idx-1].GoalsDistance {
			position++
		}
		out = append(out, Standing{
			Position:      position,
			GoalsDistance: distance,
			Entry:         item,
		})
	}
	return out
}

// PrizePot is the amount left for winners after the admin fee.
func PrizePot(entries int, price, adminFee int64) int64 {
	pot := int64(entries)*price - adminFee
	if pot < 0 {
		return 0
	}
	return pot
}
