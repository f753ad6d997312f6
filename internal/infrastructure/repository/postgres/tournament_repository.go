package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/fpltools/fpl-tournament/internal/domain/tournament"
	qb "github.com/fpltools/fpl-tournament/internal/platform/querybuilder"
)

type TournamentRepository struct {
	db *sqlx.DB
}

func NewTournamentRepository(db *sqlx.DB) *TournamentRepository {
	return &TournamentRepository{db: db}
}

func (r *TournamentRepository) FindByID(ctx context.Context, id int64) (tournament.Tournament, bool, error) {
	query, args, err := qb.Select(tournamentColumns...).From("tournaments").
		Where(qb.Eq("id", id)).
		Limit(1).
		ToSQL()
	if err != nil {
		return tournament.Tournament{}, false, fmt.Errorf("build find tournament query: %w", err)
	}

	var row tournamentTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return tournament.Tournament{}, false, nil
		}
		return tournament.Tournament{}, false, fmt.Errorf("find tournament id=%d: %w", id, err)
	}
	return row.toDomain(), true, nil
}

func (r *TournamentRepository) ListActive(ctx context.Context) ([]tournament.Tournament, error) {
	query, args, err := qb.Select(tournamentColumns...).From("tournaments").
		Where(qb.Eq("is_active", true)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list active tournaments query: %w", err)
	}

	var rows []tournamentTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list active tournaments: %w", err)
	}

	out := make([]tournament.Tournament, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// TournamentEntryRepository reads the persisted participant roster.
type TournamentEntryRepository struct {
	db *sqlx.DB
}

func NewTournamentEntryRepository(db *sqlx.DB) *TournamentEntryRepository {
	return &TournamentEntryRepository{db: db}
}

func (r *TournamentEntryRepository) ListEntryIDsByTournament(ctx context.Context, tournamentID int64) ([]int64, error) {
	query, args, err := qb.Select("entry_id").From("tournament_entries").
		Where(qb.Eq("tournament_id", tournamentID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list tournament entries query: %w", err)
	}

	var ids []int64
	if err := r.db.SelectContext(ctx, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("list tournament entries tournament_id=%d: %w", tournamentID, err)
	}
	return ids, nil
}
