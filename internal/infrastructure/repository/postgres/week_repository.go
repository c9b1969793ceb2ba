package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/quiniela/internal/domain/match"
	"github.com/riskibarqy/quiniela/internal/domain/schedule"
	"github.com/riskibarqy/quiniela/internal/domain/week"
	qb "github.com/riskibarqy/quiniela/internal/platform/querybuilder"
)

var weekColumns = []string{
	"id",
	"name",
	"slug",
	"status",
	"close_date",
	"price",
	"admin_fee",
	"created_at",
	"updated_at",
}

var matchColumns = []string{
	"id",
	"week_id",
	"sort_order",
	"home_team",
	"away_team",
	"home_logo",
	"away_logo",
	"kickoff_at",
	"status",
	"home_position",
	"away_position",
	"home_score",
	"away_score",
	"outcome",
}

const matchUpsertSuffix = `ON CONFLICT (id)
DO UPDATE SET
    sort_order = EXCLUDED.sort_order,
    home_team = EXCLUDED.home_team,
    away_team = EXCLUDED.away_team,
    home_logo = EXCLUDED.home_logo,
    away_logo = EXCLUDED.away_logo,
    kickoff_at = EXCLUDED.kickoff_at,
    status = EXCLUDED.status,
    home_position = EXCLUDED.home_position,
    away_position = EXCLUDED.away_position,
    home_score = EXCLUDED.home_score,
    away_score = EXCLUDED.away_score,
    outcome = EXCLUDED.outcome,
    updated_at = NOW()`

type WeekRepository struct {
	db *sqlx.DB
}

func NewWeekRepository(db *sqlx.DB) *WeekRepository {
	return &WeekRepository{db: db}
}

func (r *WeekRepository) List(ctx context.Context) ([]week.Week, error) {
	query, args, err := qb.Select(weekColumns...).From("weeks").
		Where(qb.IsNull("deleted_at")).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list weeks query: %w", err)
	}

	var rows []weekTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select weeks: %w", err)
	}
	if len(rows) == 0 {
		return []week.Week{}, nil
	}

	weekIDs := make([]any, 0, len(rows))
	for _, row := range rows {
		weekIDs = append(weekIDs, row.ID)
	}
	matchesByWeek, err := r.listMatches(ctx, weekIDs)
	if err != nil {
		return nil, err
	}

	out := make([]week.Week, 0, len(rows))
	for _, row := range rows {
		out = append(out, weekFromRow(row, matchesByWeek[row.ID]))
	}
	return out, nil
}

func (r *WeekRepository) GetByID(ctx context.Context, weekID string) (week.Week, bool, error) {
	return r.getOne(ctx, qb.Eq("id", weekID))
}

func (r *WeekRepository) GetBySlug(ctx context.Context, slug string) (week.Week, bool, error) {
	return r.getOne(ctx, qb.Eq("slug", slug))
}

func (r *WeekRepository) getOne(ctx context.Context, cond qb.Condition) (week.Week, bool, error) {
	query, args, err := qb.Select(weekColumns...).From("weeks").
		Where(cond, qb.IsNull("deleted_at")).
		Limit(1).
		ToSQL()
	if err != nil {
		return week.Week{}, false, fmt.Errorf("build get week query: %w", err)
	}

	var row weekTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return week.Week{}, false, nil
		}
		return week.Week{}, false, fmt.Errorf("get week: %w", err)
	}

	matchesByWeek, err := r.listMatches(ctx, []any{row.ID})
	if err != nil {
		return week.Week{}, false, err
	}
	return weekFromRow(row, matchesByWeek[row.ID]), true, nil
}

func (r *WeekRepository) listMatches(ctx context.Context, weekIDs []any) (map[string][]match.Match, error) {
	query, args, err := qb.Select(matchColumns...).From("matches").
		Where(qb.In("week_id", weekIDs), qb.IsNull("deleted_at")).
		OrderBy("week_id", "sort_order").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list matches query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches: %w", err)
	}

	out := make(map[string][]match.Match, len(weekIDs))
	for _, row := range rows {
		out[row.WeekID] = append(out[row.WeekID], matchFromRow(row))
	}
	return out, nil
}

func (r *WeekRepository) Create(ctx context.Context, item week.Week) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx create week: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	insertModel := weekInsertModel{
		ID:        item.ID,
		Name:      item.Name,
		Slug:      item.Slug,
		Status:    item.Status,
		CloseDate: item.CloseDate.UTC(),
		Price:     item.Price,
		AdminFee:  item.AdminFee,
		CreatedAt: item.CreatedAt.UTC(),
	}
	query, args, err := qb.InsertModel("weeks", insertModel, "")
	if err != nil {
		return fmt.Errorf("build insert week query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: slug=%s", week.ErrDuplicateSlug, item.Slug)
		}
		return fmt.Errorf("insert week id=%s: %w", item.ID, err)
	}

	if err := upsertMatches(ctx, tx, item.ID, item.Matches); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create week: %w", err)
	}
	return nil
}

func (r *WeekRepository) Update(ctx context.Context, item week.Week) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx update week: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := qb.Update("weeks").
		Set("name", item.Name).
		Set("status", item.Status).
		Set("close_date", item.CloseDate.UTC()).
		Set("price", item.Price).
		Set("admin_fee", item.AdminFee).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", item.ID), qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update week query: %w", err)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update week id=%s: %w", item.ID, err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("update week id=%s: no rows affected", item.ID)
	}

	if err := upsertMatches(ctx, tx, item.ID, item.Matches); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit update week: %w", err)
	}
	return nil
}

func upsertMatches(ctx context.Context, tx *sqlx.Tx, weekID string, matches []match.Match) error {
	if len(matches) == 0 {
		return nil
	}

	models := make([]any, 0, len(matches))
	for idx, m := range matches {
		models = append(models, matchToRow(weekID, idx, m))
	}

	query, args, err := qb.InsertModels("matches", models, matchUpsertSuffix)
	if err != nil {
		return fmt.Errorf("build upsert matches query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert matches week_id=%s: %w", weekID, err)
	}
	return nil
}

func weekFromRow(row weekTableModel, matches []match.Match) week.Week {
	if matches == nil {
		matches = []match.Match{}
	}
	return week.Week{
		ID:        row.ID,
		Name:      row.Name,
		Slug:      row.Slug,
		Status:    row.Status,
		CloseDate: row.CloseDate.UTC(),
		Price:     row.Price,
		AdminFee:  row.AdminFee,
		CreatedAt: row.CreatedAt.UTC(),
		Matches:   matches,
	}
}

func matchToRow(weekID string, sortOrder int, m match.Match) matchTableModel {
	row := matchTableModel{
		ID:           m.ID,
		WeekID:       weekID,
		SortOrder:    sortOrder,
		HomeTeam:     m.HomeTeam,
		AwayTeam:     m.AwayTeam,
		HomeLogo:     m.HomeLogo,
		AwayLogo:     m.AwayLogo,
		KickoffAt:    time.UnixMilli(m.Timestamp).UTC(),
		Status:       m.Status,
		HomePosition: m.HomePosition,
		AwayPosition: m.AwayPosition,
	}
	if m.Result != nil {
		home, away := m.Result.HomeScore, m.Result.AwayScore
		outcome := string(m.Result.Outcome)
		row.HomeScore = &home
		row.AwayScore = &away
		row.Outcome = &outcome
	}
	return row
}

func matchFromRow(row matchTableModel) match.Match {
	kickoff := row.KickoffAt.UTC()
	out := match.Match{
		ID:           row.ID,
		WeekID:       row.WeekID,
		HomeTeam:     row.HomeTeam,
		AwayTeam:     row.AwayTeam,
		HomeLogo:     row.HomeLogo,
		AwayLogo:     row.AwayLogo,
		Date:         kickoff.Format(schedule.DateLayout),
		Timestamp:    kickoff.UnixMilli(),
		Status:       match.NormalizeStatus(row.Status),
		HomePosition: row.HomePosition,
		AwayPosition: row.AwayPosition,
	}
	// Rows written by hand or by older releases may carry unknown statuses.
	if !match.IsValidStatus(out.Status) {
		out.Status = match.StatusScheduled
	}
	if row.HomeScore != nil && row.AwayScore != nil {
		out.Result = &match.Result{
			HomeScore: *row.HomeScore,
			AwayScore: *row.AwayScore,
			Outcome:   match.OutcomeOf(*row.HomeScore, *row.AwayScore),
		}
	}
	return out
}
