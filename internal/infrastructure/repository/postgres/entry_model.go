package postgres

import "time"

type entryTableModel struct {
	ID                   string    `db:"id"`
	WeekID               string    `db:"week_id"`
	ParticipantName      string    `db:"participant_name"`
	TotalGoalsPrediction int       `db:"total_goals_prediction"`
	Picks                []byte    `db:"picks"`
	PaymentStatus        string    `db:"payment_status"`
	SubmittedAt          time.Time `db:"submitted_at"`
	Score                int       `db:"score"`
	Hits                 []byte    `db:"hits"`
}

type entryInsertModel struct {
	ID                   string    `db:"id"`
	WeekID               string    `db:"week_id"`
	ParticipantName      string    `db:"participant_name"`
	ParticipantKey       string    `db:"participant_key"`
	TotalGoalsPrediction int       `db:"total_goals_prediction"`
	Picks                string    `db:"picks"`
	PaymentStatus        string    `db:"payment_status"`
	SubmittedAt          time.Time `db:"submitted_at"`
	Score                int       `db:"score"`
	Hits                 string    `db:"hits"`
}

type pickJSON struct {
	MatchID   string `json:"match_id"`
	Selection string `json:"selection"`
}
