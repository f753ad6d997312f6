package usecase

import (
	"context"
	"fmt"

	"github.com/fpltools/fpl-tournament/internal/domain/tournament"
)

// entryResolver produces the participant entry ids for a tournament. The
// persisted roster wins when present; otherwise the upstream league
// standings are paged until exhausted or the tournament's team cap is hit.
type entryResolver struct {
	provider   FPLProvider
	rosterRepo tournament.EntryRepository
}

func (r entryResolver) Resolve(ctx context.Context, t tournament.Tournament) ([]int64, error) {
	roster, err := r.rosterRepo.ListEntryIDsByTournament(ctx, t.ID)
	if err != nil {
		return nil, fmt.Errorf("list tournament roster tournament_id=%d: %w", t.ID, err)
	}
	if ids := dedupeEntryIDs(roster); len(ids) > 0 {
		return ids, nil
	}

	fetch := r.provider.FetchClassicStandingsPage
	if t.LeagueType == tournament.LeagueTypeH2H {
		fetch = r.provider.FetchH2HStandingsPage
	}
	return collectStandingsEntryIDs(ctx, t.LeagueID, t.TotalTeamNum, fetch)
}

// collectStandingsEntryIDs pages from page one, deduplicating entry ids in
// first-seen order. A maxEntries of 0 means unbounded. Any page failure
// aborts the whole resolution; a partial roster is never returned.
func collectStandingsEntryIDs(
	ctx context.Context,
	leagueID int64,
	maxEntries int,
	fetch func(context.Context, int64, int) (StandingsPage, error),
) ([]int64, error) {
	seen := make(map[int64]struct{})
	var out []int64
	for page := 1; ; page++ {
		standings, err := fetch(ctx, leagueID, page)
		if err != nil {
			return nil, fmt.Errorf("fetch league standings league_id=%d page=%d: %w", leagueID, page, err)
		}
		for _, id := range standings.EntryIDs {
			if id <= 0 {
				continue
			}
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
			if maxEntries > 0 && len(out) >= maxEntries {
				return out, nil
			}
		}
		if !standings.HasNext {
			return out, nil
		}
	}
}

func dedupeEntryIDs(ids []int64) []int64 {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
