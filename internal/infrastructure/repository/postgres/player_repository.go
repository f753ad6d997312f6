package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/fpltools/fpl-tournament/internal/domain/player"
	qb "github.com/fpltools/fpl-tournament/internal/platform/querybuilder"
)

type playerTableModel struct {
	ID          int64  `db:"id"`
	WebName     string `db:"web_name"`
	TeamID      int64  `db:"team_id"`
	ElementType int    `db:"element_type"`
}

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) ListByIDs(ctx context.Context, ids []int64) ([]player.Player, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := qb.Select("id", "web_name", "team_id", "element_type").From("players").
		Where(qb.Int64In("id", ids)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, player.Player{
			ID:          row.ID,
			WebName:     row.WebName,
			TeamID:      row.TeamID,
			ElementType: row.ElementType,
		})
	}
	return out, nil
}
