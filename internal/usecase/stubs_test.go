package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/fpltools/fpl-tournament/internal/domain/cupresult"
	"github.com/fpltools/fpl-tournament/internal/domain/entry"
	"github.com/fpltools/fpl-tournament/internal/domain/entryevent"
	"github.com/fpltools/fpl-tournament/internal/domain/eventlive"
	"github.com/fpltools/fpl-tournament/internal/domain/leagueresult"
	"github.com/fpltools/fpl-tournament/internal/domain/player"
	"github.com/fpltools/fpl-tournament/internal/domain/tournament"
)

type stubProvider struct {
	picks    map[int64]EntryPicksResponse
	picksErr map[int64]error

	classicPages []StandingsPage
	h2hPages     []StandingsPage
	pageErr      map[int]error

	cups   map[int64]CupResponse
	cupErr map[int64]error

	picksCalls     atomic.Int64
	standingsCalls atomic.Int64
	cupCalls       atomic.Int64
}

func (p *stubProvider) FetchEntryEventPicks(_ context.Context, entryID int64, _ int) (EntryPicksResponse, error) {
	p.picksCalls.Add(1)
	if err, ok := p.picksErr[entryID]; ok {
		return EntryPicksResponse{}, err
	}
	if resp, ok := p.picks[entryID]; ok {
		return resp, nil
	}
	return EntryPicksResponse{}, fmt.Errorf("no stubbed picks for entry %d", entryID)
}

func (p *stubProvider) FetchClassicStandingsPage(_ context.Context, _ int64, page int) (StandingsPage, error) {
	p.standingsCalls.Add(1)
	if err, ok := p.pageErr[page]; ok {
		return StandingsPage{}, err
	}
	if page < 1 || page > len(p.classicPages) {
		return StandingsPage{}, fmt.Errorf("no stubbed classic page %d", page)
	}
	return p.classicPages[page-1], nil
}

func (p *stubProvider) FetchH2HStandingsPage(_ context.Context, _ int64, page int) (StandingsPage, error) {
	p.standingsCalls.Add(1)
	if err, ok := p.pageErr[page]; ok {
		return StandingsPage{}, err
	}
	if page < 1 || page > len(p.h2hPages) {
		return StandingsPage{}, fmt.Errorf("no stubbed h2h page %d", page)
	}
	return p.h2hPages[page-1], nil
}

func (p *stubProvider) FetchEntryCup(_ context.Context, entryID int64) (CupResponse, error) {
	p.cupCalls.Add(1)
	if err, ok := p.cupErr[entryID]; ok {
		return CupResponse{}, err
	}
	if resp, ok := p.cups[entryID]; ok {
		return resp, nil
	}
	return CupResponse{}, fmt.Errorf("no stubbed cup for entry %d", entryID)
}

type stubTournamentRepository struct {
	byID      map[int64]tournament.Tournament
	active    []tournament.Tournament
	err       error
	findCalls atomic.Int64
}

func (r *stubTournamentRepository) FindByID(_ context.Context, id int64) (tournament.Tournament, bool, error) {
	r.findCalls.Add(1)
	if r.err != nil {
		return tournament.Tournament{}, false, r.err
	}
	t, ok := r.byID[id]
	return t, ok, nil
}

func (r *stubTournamentRepository) ListActive(context.Context) ([]tournament.Tournament, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.active, nil
}

type stubRosterRepository struct {
	byTournament map[int64][]int64
	err          error
}

func (r *stubRosterRepository) ListEntryIDsByTournament(_ context.Context, tournamentID int64) ([]int64, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.byTournament[tournamentID], nil
}

type stubEntryInfoRepository struct {
	byID map[int64]entry.Info
}

func (r *stubEntryInfoRepository) ListByIDs(_ context.Context, entryIDs []int64) ([]entry.Info, error) {
	out := make([]entry.Info, 0, len(entryIDs))
	for _, id := range entryIDs {
		if info, ok := r.byID[id]; ok {
			out = append(out, info)
		}
	}
	return out, nil
}

type stubEntryEventRepository struct {
	rows []entryevent.Result
}

func (r *stubEntryEventRepository) ListByEventAndEntryIDs(_ context.Context, eventID int, entryIDs []int64) ([]entryevent.Result, error) {
	wanted := make(map[int64]struct{}, len(entryIDs))
	for _, id := range entryIDs {
		wanted[id] = struct{}{}
	}
	var out []entryevent.Result
	for _, row := range r.rows {
		if row.EventID != eventID {
			continue
		}
		if _, ok := wanted[row.EntryID]; ok {
			out = append(out, row)
		}
	}
	return out, nil
}

type stubLiveRepository struct {
	byEvent map[int][]eventlive.Stat
}

func (r *stubLiveRepository) ListByEvent(_ context.Context, eventID int) ([]eventlive.Stat, error) {
	return r.byEvent[eventID], nil
}

type stubPlayerRepository struct {
	byID map[int64]player.Player
}

func (r *stubPlayerRepository) ListByIDs(_ context.Context, ids []int64) ([]player.Player, error) {
	out := make([]player.Player, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

type stubLeagueResultRepository struct {
	mu      sync.Mutex
	upserts [][]leagueresult.EventResult
	err     error
}

func (r *stubLeagueResultRepository) UpsertBatch(_ context.Context, rows []leagueresult.EventResult) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return 0, r.err
	}
	batch := make([]leagueresult.EventResult, len(rows))
	copy(batch, rows)
	r.upserts = append(r.upserts, batch)
	return len(rows), nil
}

type stubCupResultRepository struct {
	mu      sync.Mutex
	upserts [][]cupresult.Result
	err     error
}

func (r *stubCupResultRepository) UpsertBatch(_ context.Context, rows []cupresult.Result) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return 0, r.err
	}
	batch := make([]cupresult.Result, len(rows))
	copy(batch, rows)
	r.upserts = append(r.upserts, batch)
	return len(rows), nil
}
