package httpapi

import (
	"time"

	"github.com/riskibarqy/quiniela/internal/domain/entry"
	"github.com/riskibarqy/quiniela/internal/domain/match"
	"github.com/riskibarqy/quiniela/internal/domain/scoring"
	"github.com/riskibarqy/quiniela/internal/domain/week"
	"github.com/riskibarqy/quiniela/internal/usecase"
)

type parseWeekRequest struct {
	Text string `json:"text" validate:"required"`
}

type createWeekRequest struct {
	Name     string                   `json:"name" validate:"required,max=120"`
	Price    *int64                   `json:"price" validate:"omitempty,gte=0"`
	AdminFee *int64                   `json:"admin_fee" validate:"omitempty,gte=0"`
	Matches  []createWeekMatchRequest `json:"matches" validate:"dive"`
}

// createWeekMatchRequest mirrors parsedMatchDTO so a parse preview can be posted back as is.
// Logos and short names are resolved server side.
type createWeekMatchRequest struct {
	HomeTeam      string `json:"home_team" validate:"required,max=80"`
	AwayTeam      string `json:"away_team" validate:"required,max=80"`
	HomeLogo      string `json:"home_logo"`
	AwayLogo      string `json:"away_logo"`
	HomeShortName string `json:"home_short_name"`
	AwayShortName string `json:"away_short_name"`
	Date          string `json:"date"`
	Timestamp     int64  `json:"timestamp" validate:"gte=0"`
	Status        string `json:"status"`
	HomePosition  *int   `json:"home_position" validate:"omitempty,gte=0"`
	AwayPosition  *int   `json:"away_position" validate:"omitempty,gte=0"`
}

type recordResultRequest struct {
	HomeScore *int `json:"home_score" validate:"required,gte=0"`
	AwayScore *int `json:"away_score" validate:"required,gte=0"`
}

type submitEntryRequest struct {
	WeekID               string             `json:"week_id" validate:"required"`
	ParticipantName      string             `json:"participant_name" validate:"required,max=60"`
	TotalGoalsPrediction *int               `json:"total_goals_prediction" validate:"required,gte=0"`
	Picks                []submitPickRecord `json:"picks" validate:"required,min=1,dive"`
}

type submitPickRecord struct {
	MatchID   string `json:"match_id" validate:"required"`
	Selection string `json:"selection" validate:"required,oneof=L E V l e v"`
}

type weekPathRequest struct {
	WeekID string `validate:"required"`
}

type matchResultDTO struct {
	HomeScore int    `json:"home_score"`
	AwayScore int    `json:"away_score"`
	Outcome   string `json:"outcome"`
}

type matchDTO struct {
	ID           string          `json:"id"`
	WeekID       string          `json:"week_id"`
	HomeTeam     string          `json:"home_team"`
	AwayTeam     string          `json:"away_team"`
	HomeLogo     string          `json:"home_logo,omitempty"`
	AwayLogo     string          `json:"away_logo,omitempty"`
	Date         string          `json:"date"`
	Timestamp    int64           `json:"timestamp"`
	Status       string          `json:"status"`
	HomePosition *int            `json:"home_position,omitempty"`
	AwayPosition *int            `json:"away_position,omitempty"`
	Result       *matchResultDTO `json:"result,omitempty"`
}

type weekDTO struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Slug      string     `json:"slug"`
	Status    string     `json:"status"`
	CloseDate string     `json:"close_date"`
	Price     int64      `json:"price"`
	AdminFee  int64      `json:"admin_fee"`
	CreatedAt string     `json:"created_at"`
	Matches   []matchDTO `json:"matches"`
}

type parsedMatchDTO struct {
	HomeTeam      string `json:"home_team"`
	AwayTeam      string `json:"away_team"`
	HomeLogo      string `json:"home_logo,omitempty"`
	AwayLogo      string `json:"away_logo,omitempty"`
	HomeShortName string `json:"home_short_name"`
	AwayShortName string `json:"away_short_name"`
	Date          string `json:"date"`
	Timestamp     int64  `json:"timestamp"`
	Status        string `json:"status"`
	HomePosition  *int   `json:"home_position,omitempty"`
	AwayPosition  *int   `json:"away_position,omitempty"`
}

type parsedWeekDTO struct {
	RawText string           `json:"raw_text"`
	Matches []parsedMatchDTO `json:"matches"`
}

type pickDTO struct {
	MatchID   string `json:"match_id"`
	Selection string `json:"selection"`
}

type entryDTO struct {
	ID                   string    `json:"id"`
	WeekID               string    `json:"week_id"`
	ParticipantName      string    `json:"participant_name"`
	TotalGoalsPrediction int       `json:"total_goals_prediction"`
	Picks                []pickDTO `json:"picks"`
	PaymentStatus        string    `json:"payment_status"`
	SubmittedAt          string    `json:"submitted_at"`
	Score                int       `json:"score"`
	Hits                 []string  `json:"hits"`
}

type standingDTO struct {
	Position      int      `json:"position"`
	GoalsDistance int      `json:"goals_distance"`
	Entry         entryDTO `json:"entry"`
}

type scoreboardDTO struct {
	Week            weekDTO       `json:"week"`
	Standings       []standingDTO `json:"standings"`
	TotalGoals      int           `json:"total_goals"`
	FinishedMatches int           `json:"finished_matches"`
	TotalMatches    int           `json:"total_matches"`
	Participants    int           `json:"participants"`
	PrizePot        int64         `json:"prize_pot"`
	ComputedAt      string        `json:"computed_at"`
}

func (r createWeekRequest) toInput() usecase.CreateWeekInput {
	drafts := make([]match.Draft, 0, len(r.Matches))
	for _, item := range r.Matches {
		drafts = append(drafts, match.Draft{
			HomeTeam:     item.HomeTeam,
			AwayTeam:     item.AwayTeam,
			Date:         item.Date,
			Timestamp:    item.Timestamp,
			Status:       item.Status,
			HomePosition: item.HomePosition,
			AwayPosition: item.AwayPosition,
		})
	}

	return usecase.CreateWeekInput{
		Name:     r.Name,
		Matches:  drafts,
		Price:    r.Price,
		AdminFee: r.AdminFee,
	}
}

func (r submitEntryRequest) toInput() usecase.SubmitEntryInput {
	picks := make([]entry.Pick, 0, len(r.Picks))
	for _, item := range r.Picks {
		picks = append(picks, entry.Pick{
			MatchID:   item.MatchID,
			Selection: match.Outcome(item.Selection),
		})
	}

	goals := 0
	if r.TotalGoalsPrediction != nil {
		goals = *r.TotalGoalsPrediction
	}
	return usecase.SubmitEntryInput{
		WeekID:               r.WeekID,
		ParticipantName:      r.ParticipantName,
		TotalGoalsPrediction: goals,
		Picks:                picks,
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func matchToDTO(m match.Match) matchDTO {
	out := matchDTO{
		ID:           m.ID,
		WeekID:       m.WeekID,
		HomeTeam:     m.HomeTeam,
		AwayTeam:     m.AwayTeam,
		HomeLogo:     m.HomeLogo,
		AwayLogo:     m.AwayLogo,
		Date:         m.Date,
		Timestamp:    m.Timestamp,
		Status:       m.Status,
		HomePosition: m.HomePosition,
		AwayPosition: m.AwayPosition,
	}
	if m.Result != nil {
		out.Result = &matchResultDTO{
			HomeScore: m.Result.HomeScore,
			AwayScore: m.Result.AwayScore,
			Outcome:   string(m.Result.Outcome),
		}
	}
	return out
}

func weekToDTO(w week.Week) weekDTO {
	matches := make([]matchDTO, 0, len(w.Matches))
	for _, m := range w.Matches {
		matches = append(matches, matchToDTO(m))
	}

	return weekDTO{
		ID:        w.ID,
		Name:      w.Name,
		Slug:      w.Slug,
		Status:    w.Status,
		CloseDate: formatTime(w.CloseDate),
		Price:     w.Price,
		AdminFee:  w.AdminFee,
		CreatedAt: formatTime(w.CreatedAt),
		Matches:   matches,
	}
}

func weeksToDTO(items []week.Week) []weekDTO {
	out := make([]weekDTO, 0, len(items))
	for _, item := range items {
		out = append(out, weekToDTO(item))
	}
	return out
}

func parsedWeekToDTO(parsed usecase.ParsedWeek) parsedWeekDTO {
	matches := make([]parsedMatchDTO, 0, len(parsed.Matches))
	for _, item := range parsed.Matches {
		matches = append(matches, parsedMatchDTO{
			HomeTeam:      item.HomeTeam,
			AwayTeam:      item.AwayTeam,
			HomeLogo:      item.HomeLogo,
			AwayLogo:      item.AwayLogo,
			HomeShortName: item.HomeShortName,
			AwayShortName: item.AwayShortName,
			Date:          item.Date,
			Timestamp:     item.Timestamp,
			Status:        item.Status,
			HomePosition:  item.HomePosition,
			AwayPosition:  item.AwayPosition,
		})
	}
	return parsedWeekDTO{RawText: parsed.RawText, Matches: matches}
}

func entryToDTO(e entry.Entry) entryDTO {
	picks := make([]pickDTO, 0, len(e.Picks))
	for _, pick := range e.Picks {
		picks = append(picks, pickDTO{MatchID: pick.MatchID, Selection: string(pick.Selection)})
	}
	hits := e.Hits
	if hits == nil {
		hits = []string{}
	}

	return entryDTO{
		ID:                   e.ID,
		WeekID:               e.WeekID,
		ParticipantName:      e.ParticipantName,
		TotalGoalsPrediction: e.TotalGoalsPrediction,
		Picks:                picks,
		PaymentStatus:        e.PaymentStatus,
		SubmittedAt:          formatTime(e.SubmittedAt),
		Score:                e.Score,
		Hits:                 hits,
	}
}

func entriesToDTO(items []entry.Entry) []entryDTO {
	out := make([]entryDTO, 0, len(items))
	for _, item := range items {
		out = append(out, entryToDTO(item))
	}
	return out
}

func standingsToDTO(items []scoring.Standing) []standingDTO {
	out := make([]standingDTO, 0, len(items))
	for _, item := range items {
		out = append(out, standingDTO{
			Position:      item.Position,
			GoalsDistance: item.GoalsDistance,
			Entry:         entryToDTO(item.Entry),
		})
	}
	return out
}

func scoreboardToDTO(board usecase.Scoreboard) scoreboardDTO {
	return scoreboardDTO{
		Week:            weekToDTO(board.Week),
		Standings:       standingsToDTO(board.Standings),
		TotalGoals:      board.TotalGoals,
		FinishedMatches: board.FinishedMatches,
		TotalMatches:    board.TotalMatches,
		Participants:    board.Participants,
		PrizePot:        board.PrizePot,
		ComputedAt:      formatTime(board.ComputedAt),
	}
}
