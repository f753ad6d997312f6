package cached

import (
	"context"
	"fmt"

	"github.com/fpltools/fpl-tournament/internal/domain/tournament"
	"github.com/fpltools/fpl-tournament/internal/platform/cache"
)

const activeTournamentsKey = "tournaments:active"

type tournamentLookup struct {
	Tournament tournament.Tournament
	Found      bool
}

// TournamentRepository fronts tournament reads with an in-process TTL cache.
// Tournament rows change rarely while sync jobs hit them on every run.
type TournamentRepository struct {
	inner tournament.Repository
	store *cache.Store
}

var _ tournament.Repository = (*TournamentRepository)(nil)

func NewTournamentRepository(inner tournament.Repository, store *cache.Store) *TournamentRepository {
	return &TournamentRepository{inner: inner, store: store}
}

func (r *TournamentRepository) FindByID(ctx context.Context, id int64) (tournament.Tournament, bool, error) {
	key := fmt.Sprintf("tournament:%d", id)

	value, err := r.store.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		found, ok, err := r.inner.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return tournamentLookup{Tournament: found, Found: ok}, nil
	})
	if err != nil {
		return tournament.Tournament{}, false, err
	}

	lookup, ok := value.(tournamentLookup)
	if !ok {
		return tournament.Tournament{}, false, fmt.Errorf("unexpected cache value for %s", key)
	}
	return lookup.Tournament, lookup.Found, nil
}

func (r *TournamentRepository) ListActive(ctx context.Context) ([]tournament.Tournament, error) {
	value, err := r.store.GetOrLoad(ctx, activeTournamentsKey, func(ctx context.Context) (any, error) {
		return r.inner.ListActive(ctx)
	})
	if err != nil {
		return nil, err
	}

	tournaments, ok := value.([]tournament.Tournament)
	if !ok {
		return nil, fmt.Errorf("unexpected cache value for %s", activeTournamentsKey)
	}
	return tournaments, nil
}

// Invalidate drops the cached rows for one tournament and the active list.
func (r *TournamentRepository) Invalidate(ctx context.Context, id int64) {
	r.store.Delete(ctx, fmt.Sprintf("tournament:%d", id))
	r.store.Delete(ctx, activeTournamentsKey)
}
