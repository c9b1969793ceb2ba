package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/quiniela/internal/domain/entry"
	"github.com/riskibarqy/quiniela/internal/domain/match"
	qb "github.com/riskibarqy/quiniela/internal/platform/querybuilder"
)

var entryColumns = []string{
	"id",
	"week_id",
	"participant_name",
	"total_goals_prediction",
	"picks",
	"payment_status",
	"submitted_at",
	"score",
	"hits",
}

type EntryRepository struct {
	db *sqlx.DB
}

func NewEntryRepository(db *sqlx.DB) *EntryRepository {
	return &EntryRepository{db: db}
}

func (r *EntryRepository) ListByWeek(ctx context.Context, weekID string) ([]entry.Entry, error) {
	query, args, err := qb.Select(entryColumns...).From("entries").
		Where(qb.Eq("week_id", weekID), qb.IsNull("deleted_at")).
		OrderBy("submitted_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list entries query: %w", err)
	}

	var rows []entryTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select entries week_id=%s: %w", weekID, err)
	}

	out := make([]entry.Entry, 0, len(rows))
	for _, row := range rows {
		item, err := entryFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *EntryRepository) GetByWeekAndName(ctx context.Context, weekID, participantName string) (entry.Entry, bool, error) {
	query, args, err := qb.Select(entryColumns...).From("entries").
		Where(
			qb.Eq("week_id", weekID),
			qb.Eq("participant_key", entry.NameKey(participantName)),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return entry.Entry{}, false, fmt.Errorf("build get entry by name query: %w", err)
	}

	var row entryTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return entry.Entry{}, false, nil
		}
		return entry.Entry{}, false, fmt.Errorf("get entry by name: %w", err)
	}

	item, err := entryFromRow(row)
	if err != nil {
		return entry.Entry{}, false, err
	}
	return item, true, nil
}

func (r *EntryRepository) Create(ctx context.Context, item entry.Entry) error {
	picks, err := marshalPicks(item.Picks)
	if err != nil {
		return fmt.Errorf("marshal entry picks: %w", err)
	}
	hits, err := marshalHits(item.Hits)
	if err != nil {
		return fmt.Errorf("marshal entry hits: %w", err)
	}

	insertModel := entryInsertModel{
		ID:                   item.ID,
		WeekID:               item.WeekID,
		ParticipantName:      item.ParticipantName,
		ParticipantKey:       entry.NameKey(item.ParticipantName),
		TotalGoalsPrediction: item.TotalGoalsPrediction,
		Picks:                picks,
		PaymentStatus:        item.PaymentStatus,
		SubmittedAt:          item.SubmittedAt.UTC(),
		Score:                item.Score,
		Hits:                 hits,
	}
	query, args, err := qb.InsertModel("entries", insertModel, "")
	if err != nil {
		return fmt.Errorf("build insert entry query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: week=%s name=%s", entry.ErrDuplicateName, item.WeekID, item.ParticipantName)
		}
		return fmt.Errorf("insert entry id=%s: %w", item.ID, err)
	}
	return nil
}

// UpdateScores overwrites only score and hits, in one transaction.
func (r *EntryRepository) UpdateScores(ctx context.Context, weekID string, items []entry.Entry) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx update entry scores: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, item := range items {
		hits, err := marshalHits(item.Hits)
		if err != nil {
			return fmt.Errorf("marshal entry hits: %w", err)
		}

		query, args, err := qb.Update("entries").
			Set("score", item.Score).
			Set("hits", hits).
			SetExpr("updated_at", "NOW()").
			Where(qb.Eq("id", item.ID), qb.Eq("week_id", weekID), qb.IsNull("deleted_at")).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build update entry score query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("update entry score id=%s: %w", item.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit update entry scores: %w", err)
	}
	return nil
}

func entryFromRow(row entryTableModel) (entry.Entry, error) {
	var picks []pickJSON
	if len(row.Picks) > 0 {
		if err := jsoniter.Unmarshal(row.Picks, &picks); err != nil {
			return entry.Entry{}, fmt.Errorf("decode picks entry_id=%s: %w", row.ID, err)
		}
	}
	hits := []string{}
	if len(row.Hits) > 0 {
		if err := jsoniter.Unmarshal(row.Hits, &hits); err != nil {
			return entry.Entry{}, fmt.Errorf("decode hits entry_id=%s: %w", row.ID, err)
		}
	}

	out := entry.Entry{
		ID:                   row.ID,
		WeekID:               row.WeekID,
		ParticipantName:      row.ParticipantName,
		TotalGoalsPrediction: row.TotalGoalsPrediction,
		Picks:                make([]entry.Pick, 0, len(picks)),
		PaymentStatus:        row.PaymentStatus,
		SubmittedAt:          row.SubmittedAt.UTC(),
		Score:                row.Score,
		Hits:                 hits,
	}
	for _, p := range picks {
		out.Picks = append(out.Picks, entry.Pick{MatchID: p.MatchID, Selection: match.Outcome(p.Selection)})
	}
	return out, nil
}

func marshalPicks(picks []entry.Pick) (string, error) {
	rows := make([]pickJSON, 0, len(picks))
	for _, p := range picks {
		rows = append(rows, pickJSON{MatchID: p.MatchID, Selection: string(p.Selection)})
	}
	raw, err := jsoniter.Marshal(rows)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func marshalHits(hits []string) (string, error) {
	if len(hits) == 0 {
		return "[]", nil
	}
	raw, err := jsoniter.Marshal(hits)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
