package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/fpltools/fpl-tournament/internal/domain/eventlive"
	qb "github.com/fpltools/fpl-tournament/internal/platform/querybuilder"
)

type eventLiveStatTableModel struct {
	EventID        int   `db:"event_id"`
	ElementID      int64 `db:"element_id"`
	Minutes        int   `db:"minutes"`
	GoalsScored    int   `db:"goals_scored"`
	Assists        int   `db:"assists"`
	CleanSheets    int   `db:"clean_sheets"`
	Bonus          int   `db:"bonus"`
	PenaltiesSaved int   `db:"penalties_saved"`
	Saves          int   `db:"saves"`
	TotalPoints    int   `db:"total_points"`
}

type EventLiveRepository struct {
	db *sqlx.DB
}

func NewEventLiveRepository(db *sqlx.DB) *EventLiveRepository {
	return &EventLiveRepository{db: db}
}

func (r *EventLiveRepository) ListByEvent(ctx context.Context, eventID int) ([]eventlive.Stat, error) {
	query, args, err := qb.Select(
		"event_id", "element_id", "minutes", "goals_scored", "assists",
		"clean_sheets", "bonus", "penalties_saved", "saves", "total_points",
	).From("event_live_stats").
		Where(qb.Eq("event_id", eventID)).
		OrderBy("element_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list event live stats query: %w", err)
	}

	var rows []eventLiveStatTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list event live stats event_id=%d: %w", eventID, err)
	}

	out := make([]eventlive.Stat, 0, len(rows))
	for _, row := range rows {
		out = append(out, eventlive.Stat{
			EventID:        row.EventID,
			ElementID:      row.ElementID,
			Minutes:        row.Minutes,
			GoalsScored:    row.GoalsScored,
			Assists:        row.Assists,
			CleanSheets:    row.CleanSheets,
			Bonus:          row.Bonus,
			PenaltiesSaved: row.PenaltiesSaved,
			Saves:          row.Saves,
			TotalPoints:    row.TotalPoints,
		})
	}
	return out, nil
}
