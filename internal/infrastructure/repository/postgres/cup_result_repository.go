package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/fpltools/fpl-tournament/internal/domain/cupresult"
	qb "github.com/fpltools/fpl-tournament/internal/platform/querybuilder"
)

type cupResultInsertModel struct {
	EntryID     int64  `db:"entry_id"`
	EventID     int    `db:"event_id"`
	EntryName   string `db:"entry_name"`
	PlayerName  string `db:"player_name"`
	EventPoints int    `db:"event_points"`

	AgainstEntryID     int64  `db:"against_entry_id"`
	AgainstEntryName   string `db:"against_entry_name"`
	AgainstPlayerName  string `db:"against_player_name"`
	AgainstEventPoints int    `db:"against_event_points"`

	Result    string    `db:"result"`
	UpdatedAt time.Time `db:"updated_at"`
}

const cupResultConflictClause = `ON CONFLICT (entry_id, event_id)
DO UPDATE SET
    entry_name = EXCLUDED.entry_name,
    player_name = EXCLUDED.player_name,
    event_points = EXCLUDED.event_points,
    against_entry_id = EXCLUDED.against_entry_id,
    against_entry_name = EXCLUDED.against_entry_name,
    against_player_name = EXCLUDED.against_player_name,
    against_event_points = EXCLUDED.against_event_points,
    result = EXCLUDED.result,
    updated_at = EXCLUDED.updated_at`

type CupResultRepository struct {
	db *sqlx.DB
}

func NewCupResultRepository(db *sqlx.DB) *CupResultRepository {
	return &CupResultRepository{db: db}
}

func (r *CupResultRepository) UpsertBatch(ctx context.Context, rows []cupresult.Result) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	written := 0
	for start := 0; start < len(rows); start += upsertBatchSize {
		end := min(start+upsertBatchSize, len(rows))
		chunk := rows[start:end]

		models := make([]cupResultInsertModel, 0, len(chunk))
		for _, row := range chunk {
			models = append(models, cupResultInsertModel{
				EntryID:            row.EntryID,
				EventID:            row.EventID,
				EntryName:          row.EntryName,
				PlayerName:         row.PlayerName,
				EventPoints:        row.EventPoints,
				AgainstEntryID:     row.AgainstEntryID,
				AgainstEntryName:   row.AgainstEntryName,
				AgainstPlayerName:  row.AgainstPlayerName,
				AgainstEventPoints: row.AgainstEventPoints,
				Result:             string(row.Outcome),
				UpdatedAt:          row.UpdatedAt,
			})
		}

		query, args, err := qb.InsertModels("entry_event_cup_results", models, cupResultConflictClause)
		if err != nil {
			return written, fmt.Errorf("build upsert cup results query: %w", err)
		}
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return written, fmt.Errorf("upsert cup results rows %d..%d: %w", start, end-1, err)
		}
		written += len(chunk)
	}
	return written, nil
}
