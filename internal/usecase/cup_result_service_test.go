package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/fpltools/fpl-tournament/internal/domain/cupresult"
	"github.com/fpltools/fpl-tournament/internal/domain/tournament"
	"github.com/fpltools/fpl-tournament/internal/platform/logging"
)

type cupServiceFixture struct {
	provider    *stubProvider
	tournaments *stubTournamentRepository
	roster      *stubRosterRepository
	results     *stubCupResultRepository
	service     *CupResultService
}

func newCupServiceFixture() *cupServiceFixture {
	f := &cupServiceFixture{
		provider: &stubProvider{},
		tournaments: &stubTournamentRepository{
			active: []tournament.Tournament{
				{ID: 1, Name: "Mini League", LeagueID: 100, LeagueType: tournament.LeagueTypeClassic, IsActive: true},
			},
		},
		roster:  &stubRosterRepository{byTournament: map[int64][]int64{}},
		results: &stubCupResultRepository{},
	}
	f.service = NewCupResultService(f.provider, f.tournaments, f.roster, f.results, logging.NewNop())
	return f
}

func TestSyncCupResults_UndecidedWinnerFallsBackToScores(t *testing.T) {
	t.Parallel()

	f := newCupServiceFixture()
	f.roster.byTournament[1] = []int64{111, 222}

	match := CupMatch{
		Event:            20,
		Entry1ID:         111,
		Entry1Name:       "Team 111",
		Entry1PlayerName: "P111",
		Entry1Points:     55,
		Entry2ID:         222,
		Entry2Name:       "Team 222",
		Entry2PlayerName: "P222",
		Entry2Points:     48,
		Winner:           0,
	}
	f.provider.cups = map[int64]CupResponse{
		111: {Matches: []CupMatch{match}},
		222: {Matches: []CupMatch{match}},
	}

	summary, err := f.service.SyncCupResults(context.Background(), 20, 2)
	if err != nil {
		t.Fatalf("SyncCupResults error: %v", err)
	}
	if summary.TotalEntries != 2 || summary.Upserted != 2 || summary.Skipped != 0 || summary.Errors != 0 {
		t.Fatalf("summary = %+v, want total=2 upserted=2", summary)
	}

	if len(f.results.upserts) != 1 {
		t.Fatalf("expected one upsert batch, got %d", len(f.results.upserts))
	}
	rows := f.results.upserts[0]
	byEntry := map[int64]cupresult.Result{}
	for _, row := range rows {
		byEntry[row.EntryID] = row
	}

	winner := byEntry[111]
	if winner.Outcome != cupresult.OutcomeWin {
		t.Fatalf("entry 111 outcome = %q, want win on higher score", winner.Outcome)
	}
	if winner.AgainstEntryID != 222 || winner.AgainstEventPoints != 48 {
		t.Fatalf("entry 111 opponent wrong: %+v", winner)
	}

	loser := byEntry[222]
	if loser.Outcome != cupresult.OutcomeLoss {
		t.Fatalf("entry 222 outcome = %q, want loss", loser.Outcome)
	}
	if loser.EventPoints != 48 || loser.AgainstEventPoints != 55 {
		t.Fatalf("entry 222 perspective wrong: %+v", loser)
	}
}

func TestSyncCupResults_ExplicitWinnerOverridesScores(t *testing.T) {
	t.Parallel()

	f := newCupServiceFixture()
	f.roster.byTournament[1] = []int64{111}

	// The upstream can decide a tie against the raw scores (tie-break rules).
	f.provider.cups = map[int64]CupResponse{
		111: {Matches: []CupMatch{{
			Event:        20,
			Entry1ID:     111,
			Entry1Points: 50,
			Entry2ID:     222,
			Entry2Points: 50,
			Winner:       222,
		}}},
	}

	summary, err := f.service.SyncCupResults(context.Background(), 20, 2)
	if err != nil {
		t.Fatalf("SyncCupResults error: %v", err)
	}
	if summary.Upserted != 1 {
		t.Fatalf("summary = %+v, want upserted=1", summary)
	}
	if got := f.results.upserts[0][0].Outcome; got != cupresult.OutcomeLoss {
		t.Fatalf("outcome = %q, want loss when winner is the opponent", got)
	}
}

func TestSyncCupResults_OutsideCupPhaseIsZeroedNoop(t *testing.T) {
	t.Parallel()

	f := newCupServiceFixture()
	f.roster.byTournament[1] = []int64{111}

	summary, err := f.service.SyncCupResults(context.Background(), 5, 2)
	if err != nil {
		t.Fatalf("SyncCupResults error: %v", err)
	}
	want := CupResultSyncSummary{EventID: 5}
	if summary != want {
		t.Fatalf("summary = %+v, want %+v", summary, want)
	}
	if calls := f.provider.cupCalls.Load(); calls != 0 {
		t.Fatalf("expected no upstream calls outside the cup phase, got %d", calls)
	}
	if len(f.results.upserts) != 0 {
		t.Fatal("persistence must not be touched outside the cup phase")
	}
}

func TestSyncCupResults_CountsFetchErrorsAndMissingMatches(t *testing.T) {
	t.Parallel()

	f := newCupServiceFixture()
	f.roster.byTournament[1] = []int64{111, 222, 333}

	f.provider.cups = map[int64]CupResponse{
		111: {Matches: []CupMatch{{
			Event:        20,
			Entry1ID:     111,
			Entry1Points: 40,
			Entry2ID:     444,
			Entry2Points: 39,
		}}},
		// 222 has matches, none for this event.
		222: {Matches: []CupMatch{{Event: 19, Entry1ID: 222, Entry2ID: 555}}},
	}
	f.provider.cupErr = map[int64]error{
		333: errors.New("cup endpoint 503"),
	}

	summary, err := f.service.SyncCupResults(context.Background(), 20, 2)
	if err != nil {
		t.Fatalf("SyncCupResults error: %v", err)
	}
	if summary.TotalEntries != 3 || summary.Upserted != 1 || summary.Skipped != 1 || summary.Errors != 1 {
		t.Fatalf("summary = %+v, want total=3 upserted=1 skipped=1 errors=1", summary)
	}
}

func TestSyncCupResults_DedupesEntriesAcrossTournaments(t *testing.T) {
	t.Parallel()

	f := newCupServiceFixture()
	f.tournaments.active = append(f.tournaments.active, tournament.Tournament{
		ID: 2, Name: "Second League", LeagueID: 200, LeagueType: tournament.LeagueTypeClassic, IsActive: true,
	})
	f.roster.byTournament[1] = []int64{111}
	f.roster.byTournament[2] = []int64{111}

	f.provider.cups = map[int64]CupResponse{
		111: {Matches: []CupMatch{{
			Event:        20,
			Entry1ID:     111,
			Entry1Points: 41,
			Entry2ID:     222,
			Entry2Points: 40,
		}}},
	}

	summary, err := f.service.SyncCupResults(context.Background(), 20, 2)
	if err != nil {
		t.Fatalf("SyncCupResults error: %v", err)
	}
	if summary.TotalEntries != 1 || summary.Upserted != 1 {
		t.Fatalf("summary = %+v, want a single deduplicated entry", summary)
	}
	if calls := f.provider.cupCalls.Load(); calls != 1 {
		t.Fatalf("expected one cup fetch for the shared entry, got %d", calls)
	}
}
