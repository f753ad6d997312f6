package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/fpltools/fpl-tournament/internal/domain/entry"
	"github.com/fpltools/fpl-tournament/internal/domain/entryevent"
	"github.com/fpltools/fpl-tournament/internal/domain/eventlive"
	"github.com/fpltools/fpl-tournament/internal/domain/leagueresult"
	"github.com/fpltools/fpl-tournament/internal/domain/player"
	"github.com/fpltools/fpl-tournament/internal/domain/tournament"
	leagueresultmock "github.com/fpltools/fpl-tournament/internal/mocks/domain/leagueresult"
	tournamentmock "github.com/fpltools/fpl-tournament/internal/mocks/domain/tournament"
	"github.com/fpltools/fpl-tournament/internal/platform/logging"
)

func TestEventResultService_SyncLeagueEventResults_SuccessUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tournamentRepo := tournamentmock.NewRepository(t)
	rosterRepo := tournamentmock.NewEntryRepository(t)
	resultRepo := leagueresultmock.NewRepository(t)

	provider := &stubProvider{
		picks: map[int64]EntryPicksResponse{
			501: {
				History: &EntryEventHistory{EventPoints: 48, EventTransfersCost: 4},
				Picks:   []entryevent.Pick{squadPick(10, 1, 2, true, false)},
			},
		},
	}

	service := NewEventResultService(
		provider,
		tournamentRepo,
		rosterRepo,
		&stubEntryInfoRepository{byID: map[int64]entry.Info{
			501: {EntryID: 501, EntryName: "Cutters FC", PlayerName: "Sam Reed"},
		}},
		&stubEntryEventRepository{},
		&stubLiveRepository{byEvent: map[int][]eventlive.Stat{
			5: {{EventID: 5, ElementID: 10, Minutes: 90, GoalsScored: 1, TotalPoints: 8}},
		}},
		&stubPlayerRepository{byID: map[int64]player.Player{
			10: {ID: 10, ElementType: player.ElementTypeForward},
		}},
		resultRepo,
		logging.NewNop(),
	)

	tournamentRepo.
		On("FindByID", mock.Anything, int64(9)).
		Return(tournament.Tournament{
			ID: 9, Name: "Mini League", LeagueID: 640,
			LeagueType: tournament.LeagueTypeClassic, IsActive: true,
		}, true, nil).
		Once()
	rosterRepo.
		On("ListEntryIDsByTournament", mock.Anything, int64(9)).
		Return([]int64{501}, nil).
		Once()
	resultRepo.
		On("UpsertBatch", mock.Anything, mock.MatchedBy(func(rows []leagueresult.EventResult) bool {
			return len(rows) == 1 &&
				rows[0].EntryID == 501 &&
				rows[0].EventID == 5 &&
				rows[0].EventPoints == 48 &&
				rows[0].EventNetPoints == 44
		})).
		Return(1, nil).
		Once()

	summary, err := service.SyncLeagueEventResults(ctx, 9, 5, 2)
	if err != nil {
		t.Fatalf("sync league event results: %v", err)
	}
	if summary.TotalEntries != 1 || summary.Updated != 1 || summary.Skipped != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestEventResultService_SyncLeagueEventResults_NotFoundUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tournamentRepo := tournamentmock.NewRepository(t)
	rosterRepo := tournamentmock.NewEntryRepository(t)
	resultRepo := leagueresultmock.NewRepository(t)

	service := NewEventResultService(
		&stubProvider{},
		tournamentRepo,
		rosterRepo,
		&stubEntryInfoRepository{},
		&stubEntryEventRepository{},
		&stubLiveRepository{},
		&stubPlayerRepository{},
		resultRepo,
		logging.NewNop(),
	)

	tournamentRepo.
		On("FindByID", mock.Anything, int64(42)).
		Return(tournament.Tournament{}, false, nil).
		Once()

	_, err := service.SyncLeagueEventResults(ctx, 42, 5, 1)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
