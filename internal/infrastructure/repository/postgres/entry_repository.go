package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/fpltools/fpl-tournament/internal/domain/entry"
	qb "github.com/fpltools/fpl-tournament/internal/platform/querybuilder"
)

type entryTableModel struct {
	EntryID    int64  `db:"entry_id"`
	EntryName  string `db:"entry_name"`
	PlayerName string `db:"player_name"`
}

type EntryRepository struct {
	db *sqlx.DB
}

func NewEntryRepository(db *sqlx.DB) *EntryRepository {
	return &EntryRepository{db: db}
}

func (r *EntryRepository) ListByIDs(ctx context.Context, entryIDs []int64) ([]entry.Info, error) {
	if len(entryIDs) == 0 {
		return nil, nil
	}

	query, args, err := qb.Select("entry_id", "entry_name", "player_name").From("entries").
		Where(qb.Int64In("entry_id", entryIDs)).
		OrderBy("entry_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list entries query: %w", err)
	}

	var rows []entryTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	out := make([]entry.Info, 0, len(rows))
	for _, row := range rows {
		out = append(out, entry.Info{
			EntryID:    row.EntryID,
			EntryName:  row.EntryName,
			PlayerName: row.PlayerName,
		})
	}
	return out, nil
}
