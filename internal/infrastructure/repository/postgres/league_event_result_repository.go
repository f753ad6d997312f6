package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/fpltools/fpl-tournament/internal/domain/leagueresult"
	qb "github.com/fpltools/fpl-tournament/internal/platform/querybuilder"
)

const upsertBatchSize = 500

const leagueEventResultConflictClause = `ON CONFLICT (league_id, league_type, event_id, entry_id)
DO UPDATE SET
    entry_name = EXCLUDED.entry_name,
    player_name = EXCLUDED.player_name,
    overall_points = EXCLUDED.overall_points,
    overall_rank = EXCLUDED.overall_rank,
    team_value = EXCLUDED.team_value,
    bank = EXCLUDED.bank,
    event_points = EXCLUDED.event_points,
    event_transfers = EXCLUDED.event_transfers,
    event_transfers_cost = EXCLUDED.event_transfers_cost,
    event_net_points = EXCLUDED.event_net_points,
    event_bench_points = EXCLUDED.event_bench_points,
    event_auto_sub_points = EXCLUDED.event_auto_sub_points,
    event_rank = EXCLUDED.event_rank,
    event_chip = EXCLUDED.event_chip,
    captain_id = EXCLUDED.captain_id,
    captain_points = EXCLUDED.captain_points,
    captain_blank = EXCLUDED.captain_blank,
    vice_captain_id = EXCLUDED.vice_captain_id,
    vice_captain_points = EXCLUDED.vice_captain_points,
    vice_captain_blank = EXCLUDED.vice_captain_blank,
    played_captain_id = EXCLUDED.played_captain_id,
    highest_score_element_id = EXCLUDED.highest_score_element_id,
    highest_score_points = EXCLUDED.highest_score_points,
    highest_score_blank = EXCLUDED.highest_score_blank,
    updated_at = EXCLUDED.updated_at`

type LeagueEventResultRepository struct {
	db *sqlx.DB
}

func NewLeagueEventResultRepository(db *sqlx.DB) *LeagueEventResultRepository {
	return &LeagueEventResultRepository{db: db}
}

// UpsertBatch writes rows in chunks, each chunk as one multi-row statement.
// A failing chunk aborts the remaining ones; rows already written stay
// persisted and are reflected in the returned count.
func (r *LeagueEventResultRepository) UpsertBatch(ctx context.Context, rows []leagueresult.EventResult) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	written := 0
	for start := 0; start < len(rows); start += upsertBatchSize {
		end := min(start+upsertBatchSize, len(rows))
		chunk := rows[start:end]

		models := make([]leagueEventResultInsertModel, 0, len(chunk))
		for _, row := range chunk {
			models = append(models, newLeagueEventResultInsertModel(row))
		}

		query, args, err := qb.InsertModels("league_event_results", models, leagueEventResultConflictClause)
		if err != nil {
			return written, fmt.Errorf("build upsert league event results query: %w", err)
		}
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return written, fmt.Errorf("upsert league event results rows %d..%d: %w", start, end-1, err)
		}
		written += len(chunk)
	}
	return written, nil
}
