package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/fpltools/fpl-tournament/internal/domain/entryevent"
	qb "github.com/fpltools/fpl-tournament/internal/platform/querybuilder"
)

// EntryEventRepository reads the authoritative per-entry gameweek results
// written by the ingestion pipeline.
type EntryEventRepository struct {
	db *sqlx.DB
}

func NewEntryEventRepository(db *sqlx.DB) *EntryEventRepository {
	return &EntryEventRepository{db: db}
}

func (r *EntryEventRepository) ListByEventAndEntryIDs(ctx context.Context, eventID int, entryIDs []int64) ([]entryevent.Result, error) {
	if len(entryIDs) == 0 {
		return nil, nil
	}

	query, args, err := qb.Select(entryEventResultColumns...).From("entry_event_results").
		Where(
			qb.Eq("event_id", eventID),
			qb.Int64In("entry_id", entryIDs),
		).
		OrderBy("entry_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list entry event results query: %w", err)
	}

	var rows []entryEventResultTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list entry event results event_id=%d: %w", eventID, err)
	}

	out := make([]entryevent.Result, 0, len(rows))
	for _, row := range rows {
		result, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, result)
	}
	return out, nil
}
